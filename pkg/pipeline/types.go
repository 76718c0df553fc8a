package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// =============================================================================
// Common Types
// =============================================================================

// Point is a pixel coordinate. It may lie outside the image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TextMetrics holds the measured size of a rendered string.
type TextMetrics struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundingBox is a rectangle given by its edges in pixel coordinates.
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() int { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() int { return b.Bottom - b.Top }

// Empty reports whether the box covers no pixels.
func (b BoundingBox) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// RGB is a color triple. Each channel is valid in 0-255.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Validate reports an error when a channel lies outside 0-255.
func (c RGB) Validate() error {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if ch.value < 0 || ch.value > 255 {
			return fmt.Errorf("%s channel %d out of range 0-255", ch.name, ch.value)
		}
	}
	return nil
}

// Opaque returns the color with full alpha.
func (c RGB) Opaque() color.NRGBA {
	return c.WithOpacity(1)
}

// WithOpacity returns the color with alpha round(opacity*255).
// Callers validate opacity first; out-of-range values are clamped.
func (c RGB) WithOpacity(opacity float64) color.NRGBA {
	a := math.Round(opacity * 255)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: uint8(a)}
}

// RGBFromColor converts any color.Color to an RGB triple, dropping alpha.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: int(n.R), G: int(n.G), B: int(n.B)}
}

// =============================================================================
// Style
// =============================================================================

// Style describes how a caption is rendered onto an image.
// It is a value type and is never mutated after construction.
type Style struct {
	FontName          string  `json:"font_name"`
	FontSize          int     `json:"font_size"`
	Anchor            Anchor  `json:"anchor"`
	TextColor         RGB     `json:"text_color"`
	BackgroundColor   RGB     `json:"bg_color"`
	BackgroundOpacity float64 `json:"bg_opacity"`
}

// Validate checks the drawable parts of the style.
// The anchor is checked separately by the layout resolver.
func (s Style) Validate() error {
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", s.FontSize)
	}
	if err := s.TextColor.Validate(); err != nil {
		return fmt.Errorf("text color: %w", err)
	}
	if err := s.BackgroundColor.Validate(); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	if math.IsNaN(s.BackgroundOpacity) || s.BackgroundOpacity < 0 || s.BackgroundOpacity > 1 {
		return fmt.Errorf("background opacity %v out of range 0-1", s.BackgroundOpacity)
	}
	return nil
}

// =============================================================================
// Layout Stage Types
// =============================================================================

// LayoutInput contains the measured text and target image size.
type LayoutInput struct {
	Anchor      Anchor
	Text        TextMetrics
	ImageWidth  int
	ImageHeight int
	FontSize    int
}

// LayoutResult contains the resolved text origin and panel geometry.
type LayoutResult struct {
	Anchor    Anchor      `json:"anchor"`
	Text      TextMetrics `json:"text"`
	Origin    Point       `json:"origin"`
	Padding   int         `json:"padding"`
	Unclipped BoundingBox `json:"unclipped_box"`
	Box       BoundingBox `json:"box"`
}

// =============================================================================
// Overlay Stage Types
// =============================================================================

// OverlayInput contains everything needed to caption one image.
type OverlayInput struct {
	Image image.Image
	Text  string
	Style Style
}

// OverlayResult contains the composited image.
type OverlayResult struct {
	// Image is the composited copy, or the untouched input when Err is set.
	Image image.Image

	// Layout is the geometry used for drawing.
	Layout LayoutResult

	// FontFallback is true when the requested font could not be loaded.
	FontFallback bool

	// Err holds a recovered compositing failure.
	Err error
}

// =============================================================================
// Caption Stage Types
// =============================================================================

// CaptionInput contains parameters for offer text generation.
type CaptionInput struct {
	Prompt    string
	WordLimit int
}

// CaptionResult contains the generated offer text.
type CaptionResult struct {
	Text     string
	Fallback bool
}

// =============================================================================
// Background Stage Types
// =============================================================================

// BackgroundInput contains parameters for base image generation.
type BackgroundInput struct {
	Prompt string
}

// BackgroundResult contains the generated base image.
type BackgroundResult struct {
	Image    image.Image
	Fallback bool
}
