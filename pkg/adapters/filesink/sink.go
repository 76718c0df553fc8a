// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/offergen/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayoutJSON saves the resolved caption layout as layout.json.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "layout.json"), data)
}

// SaveImage saves img as <name>.png. name must be a plain file stem.
func (s *Sink) SaveImage(name string, img image.Image) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid debug image name %q", name)
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name+".png"), data)
}

var _ ports.DebugSink = (*Sink)(nil)
