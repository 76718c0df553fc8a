// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"

	"github.com/user/offergen/pkg/ports"
)

var (
	defaultOnce sync.Once
	defaultFont *opentype.Font
	defaultErr  error
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// CanvasFromImage copies img into a zero-origin RGBA canvas.
// gg assumes bounds starting at (0,0), so sub-images are rebased.
func (r *Renderer) CanvasFromImage(img image.Image) ports.Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Canvas{dc: gg.NewContextForRGBA(dst)}
}

// LoadFont parses TrueType data with freetype, falling back to the
// x/image OpenType parser for CFF-flavoured fonts.
func (r *Renderer) LoadFont(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}

	ttf, ttErr := truetype.Parse(data)
	if ttErr == nil {
		return truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
	}

	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %v; %w", ttErr, err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// DefaultFont returns Go Regular at the requested size.
// If the embedded font cannot be used, the fixed 7x13 bitmap face is returned.
func (r *Renderer) DefaultFont(size float64) font.Face {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = opentype.Parse(goregular.TTF)
	})
	if defaultErr != nil || size <= 0 {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(defaultFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
// JPEG output is flattened onto white since the format has no alpha channel.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, flatten(img), opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return buf.Bytes(), nil
}

func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// DrawRect draws a filled rectangle, blending non-opaque colors over the canvas.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text with its top-left corner at (x, y).
// Glyphs falling outside the canvas are clipped by the raster.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	if text == "" {
		return
	}
	face := faceOrDefault(style.Face)
	c.dc.SetFontFace(face)
	c.dc.SetColor(style.Color)

	ascent := float64(face.Metrics().Ascent.Ceil())
	c.dc.DrawString(text, float64(x), float64(y)+ascent)
}

// MeasureText returns the advance width and line height of text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.dc.SetFontFace(faceOrDefault(style.Face))
	w, h := c.dc.MeasureString(text)
	return math.Ceil(w), math.Ceil(h)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func faceOrDefault(face font.Face) font.Face {
	if face == nil {
		return basicfont.Face7x13
	}
	return face
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
