package mocks

import (
	"image"
	"sync"

	"github.com/user/offergen/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	LayoutJSON []byte
	Images     map[string]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Images:  make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayoutJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayoutJSON = data
	return nil
}

func (m *DebugSink) SaveImage(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Images[name] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                { return false }
func (m *NullSink) SaveLayoutJSON(data []byte) error             { return nil }
func (m *NullSink) SaveImage(name string, img image.Image) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
