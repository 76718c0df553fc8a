// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/offergen/pkg/ports"
)

// Sink discards all debug output. It is used when --debug is not set.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveLayoutJSON does nothing.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	return nil
}

// SaveImage does nothing.
func (s *Sink) SaveImage(name string, img image.Image) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
