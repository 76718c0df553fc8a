package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayoutJSON saves the resolved caption layout as JSON.
	SaveLayoutJSON(data []byte) error

	// SaveImage saves an intermediate image under the given name.
	SaveImage(name string, img image.Image) error
}
