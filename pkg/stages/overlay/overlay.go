// Package overlay implements the caption compositing stage.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"

	"golang.org/x/image/font"

	"github.com/user/offergen/pkg/fontstore"
	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
	"github.com/user/offergen/pkg/stages/layout"
)

// FontLoadError reports a font that could not be read or parsed.
// The stage recovers from it by using the built-in face.
type FontLoadError struct {
	Name string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %s: %v", e.Name, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// CompositingError reports a failure while drawing the caption.
// It is returned in OverlayResult.Err together with the untouched input image.
type CompositingError struct {
	Err error
}

func (e *CompositingError) Error() string {
	return fmt.Sprintf("compositing: %v", e.Err)
}

func (e *CompositingError) Unwrap() error { return e.Err }

// Stage draws a caption with a translucent panel onto an image.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	fontsDir string
	logger   ports.Logger
}

// NewStage creates a new overlay stage. Font names are resolved inside fontsDir.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, fontsDir string, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		fontsDir: fontsDir,
		logger:   logger.WithComponent("overlay"),
	}
}

// Execute composites input.Text onto input.Image.
func (s *Stage) Execute(ctx context.Context, input pipeline.OverlayInput) (pipeline.OverlayResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.OverlayResult{}, err
	}
	return s.Overlay(input.Image, input.Text, input.Style)
}

// Overlay returns a copy of img with text drawn at style.Anchor over a
// background panel. img is never modified.
//
// An unknown anchor is returned as an error. Drawing failures are reported in
// the result's Err field with the original image and a nil error.
func (s *Stage) Overlay(img image.Image, text string, style pipeline.Style) (pipeline.OverlayResult, error) {
	if !style.Anchor.Valid() {
		return pipeline.OverlayResult{}, &pipeline.UnknownAnchorError{Name: style.Anchor.String()}
	}

	s.logger.Debug("Applying text overlay")

	failed := func(err error) (pipeline.OverlayResult, error) {
		cerr := &CompositingError{Err: err}
		s.logger.Error("Error in overlaying text: %s", cerr.Err.Error())
		return pipeline.OverlayResult{Image: img, Err: cerr}, nil
	}

	if img == nil {
		return failed(errors.New("no image"))
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return failed(fmt.Errorf("image has no area: %dx%d", b.Dx(), b.Dy()))
	}
	if err := style.Validate(); err != nil {
		return failed(err)
	}

	face, fallback := s.resolveFont(style)

	result, err := s.draw(img, text, style, face)
	if err != nil {
		var unknown *pipeline.UnknownAnchorError
		if errors.As(err, &unknown) {
			return pipeline.OverlayResult{}, err
		}
		return failed(err)
	}
	result.FontFallback = fallback
	return result, nil
}

// resolveFont loads the requested font or falls back to the default face.
func (s *Stage) resolveFont(style pipeline.Style) (font.Face, bool) {
	face, err := s.loadFont(style.FontName, float64(style.FontSize))
	if err == nil {
		return face, false
	}
	s.logger.Warn("Font %s not found, using default font: %s", style.FontName, err.Error())
	return s.renderer.DefaultFont(float64(style.FontSize)), true
}

func (s *Stage) loadFont(name string, size float64) (font.Face, error) {
	if err := fontstore.ValidateName(name); err != nil {
		return nil, &FontLoadError{Name: name, Err: err}
	}
	data, err := s.fs.ReadFile(filepath.Join(s.fontsDir, name))
	if err != nil {
		return nil, &FontLoadError{Name: name, Err: err}
	}
	face, err := s.renderer.LoadFont(data, size)
	if err != nil {
		return nil, &FontLoadError{Name: name, Err: err}
	}
	return face, nil
}

// draw runs the measure, layout and paint steps on a copy of img.
// A panic inside the renderer is turned into an error.
func (s *Stage) draw(img image.Image, text string, style pipeline.Style, face font.Face) (result pipeline.OverlayResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()

	canvas := s.renderer.CanvasFromImage(img)
	width, height := canvas.Size()

	textStyle := ports.TextStyle{Face: face, Color: style.TextColor.Opaque()}
	tw, th := canvas.MeasureText(text, textStyle)

	lay, err := layout.ComputeLayout(pipeline.LayoutInput{
		Anchor:      style.Anchor,
		Text:        pipeline.TextMetrics{Width: int(math.Ceil(tw)), Height: int(math.Ceil(th))},
		ImageWidth:  width,
		ImageHeight: height,
		FontSize:    style.FontSize,
	})
	if err != nil {
		return pipeline.OverlayResult{}, err
	}

	s.logger.Debug("Layout: origin (%d, %d), box %v, padding %d", lay.Origin.X, lay.Origin.Y, lay.Box, lay.Padding)

	box := lay.Box
	canvas.DrawRect(box.Left, box.Top, box.Width(), box.Height(), style.BackgroundColor.WithOpacity(style.BackgroundOpacity))
	canvas.DrawText(text, lay.Origin.X, lay.Origin.Y, textStyle)

	return pipeline.OverlayResult{Image: canvas.ToImage(), Layout: lay}, nil
}

var _ pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult] = (*Stage)(nil)
