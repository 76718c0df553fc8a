package mocks

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/user/offergen/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc    func(width, height int, bg color.Color) ports.Canvas
	CanvasFromImageFunc func(img image.Image) ports.Canvas
	LoadFontFunc        func(data []byte, size float64) (font.Face, error)
	DefaultFontFunc     func(size float64) font.Face
	DecodeImageFunc     func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc     func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height)
}

func (m *Renderer) CanvasFromImage(img image.Image) ports.Canvas {
	if m.CanvasFromImageFunc != nil {
		return m.CanvasFromImageFunc(img)
	}
	b := img.Bounds()
	return NewCanvas(b.Dx(), b.Dy())
}

func (m *Renderer) LoadFont(data []byte, size float64) (font.Face, error) {
	if m.LoadFontFunc != nil {
		return m.LoadFontFunc(data, size)
	}
	return basicfont.Face7x13, nil
}

func (m *Renderer) DefaultFont(size float64) font.Face {
	if m.DefaultFontFunc != nil {
		return m.DefaultFontFunc(size)
	}
	return basicfont.Face7x13
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte("encoded-" + format.String()), nil
}

var _ ports.Renderer = (*Renderer)(nil)

// RectCall records a DrawRect invocation.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
}

// TextCall records a DrawText invocation.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	img    *image.RGBA

	// TextWidth and TextHeight are returned by MeasureText.
	TextWidth  float64
	TextHeight float64

	DrawTextFunc func(text string, x, y int, style ports.TextStyle)

	Rects []RectCall
	Texts []TextCall
}

// NewCanvas creates a mock canvas measuring every string as 40x20.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height, TextWidth: 40, TextHeight: 20}
}

func (m *Canvas) Size() (int, int) {
	return m.width, m.height
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	if m.DrawTextFunc != nil {
		m.DrawTextFunc(text, x, y, style)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return m.TextWidth, m.TextHeight
}

func (m *Canvas) ToImage() image.Image {
	if m.img == nil {
		m.img = image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	}
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
