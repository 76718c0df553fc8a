package ports

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// CanvasFromImage creates an RGBA canvas holding a copy of img.
	// Drawing on the canvas never touches img.
	CanvasFromImage(img image.Image) Canvas

	// LoadFont parses TrueType or OpenType data into a face of the given point size.
	LoadFont(data []byte, size float64) (font.Face, error)

	// DefaultFont returns the built-in face at the given point size.
	DefaultFont(size float64) font.Face

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// Size returns the canvas dimensions.
	Size() (width, height int)

	// DrawRect alpha-blends a filled rectangle over the canvas.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws a single line of text with its top-left corner at (x, y).
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	Face  font.Face
	Color color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatAuto ImageFormat = iota
	FormatJPEG
	FormatPNG
)

// String returns the file extension used for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	default:
		return "auto"
	}
}

// ParseImageFormat parses a format name or file extension.
func ParseImageFormat(s string) ImageFormat {
	switch s {
	case "jpg", "jpeg", ".jpg", ".jpeg":
		return FormatJPEG
	case "png", ".png":
		return FormatPNG
	default:
		return FormatAuto
	}
}
