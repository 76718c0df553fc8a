// Package layout implements the caption layout calculation stage.
package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/offergen/pkg/pipeline"
)

// Margin is the fixed distance between edge-anchored text and the image border.
const Margin = 10

// MinPadding is the smallest panel padding around the text.
const MinPadding = 5

// ErrInvalidDimensions is returned for negative text sizes or empty images.
var ErrInvalidDimensions = errors.New("invalid layout dimensions")

// Stage calculates where a caption and its panel go.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new layout stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute calculates the layout based on the input parameters.
func (s *Stage) Execute(ctx context.Context, input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	return ComputeLayout(input)
}

// ComputeLayout resolves the text origin and derives the clipped panel box.
// This is exposed as a standalone function for testing and reuse.
func ComputeLayout(input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	origin, err := ResolvePosition(input.Anchor, input.Text.Width, input.Text.Height, input.ImageWidth, input.ImageHeight)
	if err != nil {
		return pipeline.LayoutResult{}, err
	}

	padding := Padding(input.FontSize)
	unclipped := pipeline.BoundingBox{
		Left:   origin.X - padding,
		Top:    origin.Y - padding,
		Right:  origin.X + input.Text.Width + padding,
		Bottom: origin.Y + input.Text.Height + padding,
	}

	return pipeline.LayoutResult{
		Anchor:    input.Anchor,
		Text:      input.Text,
		Origin:    origin,
		Padding:   padding,
		Unclipped: unclipped,
		Box:       ClipBox(unclipped, input.ImageWidth, input.ImageHeight),
	}, nil
}

// ResolvePosition maps an anchor to the top-left pixel of the text.
//
// w, h are the text size and W, H the image size. The result is not clamped:
// text larger than the image yields negative coordinates.
func ResolvePosition(anchor pipeline.Anchor, w, h, W, H int) (pipeline.Point, error) {
	if w < 0 || h < 0 {
		return pipeline.Point{}, fmt.Errorf("%w: text size %dx%d", ErrInvalidDimensions, w, h)
	}
	if W <= 0 || H <= 0 {
		return pipeline.Point{}, fmt.Errorf("%w: image size %dx%d", ErrInvalidDimensions, W, H)
	}

	left := Margin
	centerX := floorDiv(W-w, 2)
	right := W - w - Margin
	top := Margin
	centerY := floorDiv(H-h, 2)
	bottom := H - h - Margin

	switch anchor {
	case pipeline.AnchorTopLeft:
		return pipeline.Point{X: left, Y: top}, nil
	case pipeline.AnchorTopCenter:
		return pipeline.Point{X: centerX, Y: top}, nil
	case pipeline.AnchorTopRight:
		return pipeline.Point{X: right, Y: top}, nil
	case pipeline.AnchorCenterLeft:
		return pipeline.Point{X: left, Y: centerY}, nil
	case pipeline.AnchorCenter:
		return pipeline.Point{X: centerX, Y: centerY}, nil
	case pipeline.AnchorCenterRight:
		return pipeline.Point{X: right, Y: centerY}, nil
	case pipeline.AnchorBottomLeft:
		return pipeline.Point{X: left, Y: bottom}, nil
	case pipeline.AnchorBottomCenter:
		return pipeline.Point{X: centerX, Y: bottom}, nil
	case pipeline.AnchorBottomRight:
		return pipeline.Point{X: right, Y: bottom}, nil
	case pipeline.AnchorMiddleTopLeft:
		return pipeline.Point{X: W/4 - w/2, Y: H/4 - h/2}, nil
	case pipeline.AnchorMiddleTopRight:
		return pipeline.Point{X: 3*W/4 - w/2, Y: H/4 - h/2}, nil
	case pipeline.AnchorMiddleBottomLeft:
		return pipeline.Point{X: W/4 - w/2, Y: 3*H/4 - h/2}, nil
	case pipeline.AnchorMiddleBottomRight:
		return pipeline.Point{X: 3*W/4 - w/2, Y: 3*H/4 - h/2}, nil
	default:
		return pipeline.Point{}, &pipeline.UnknownAnchorError{Name: anchor.String()}
	}
}

// Padding returns the panel padding for a font size: max(5, floor(size*0.2)).
func Padding(fontSize int) int {
	p := floorDiv(fontSize, 5)
	if p < MinPadding {
		return MinPadding
	}
	return p
}

// ClipBox clamps every edge of b into [0,W] x [0,H].
// The result always satisfies Left <= Right and Top <= Bottom.
func ClipBox(b pipeline.BoundingBox, W, H int) pipeline.BoundingBox {
	out := pipeline.BoundingBox{
		Left:   clamp(b.Left, 0, W),
		Top:    clamp(b.Top, 0, H),
		Right:  clamp(b.Right, 0, W),
		Bottom: clamp(b.Bottom, 0, H),
	}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
