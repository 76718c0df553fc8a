package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/user/offergen/pkg/pipeline"
)

// TestResolvePosition_Table checks every anchor against its formula on a
// 200x100 image with 40x20 text.
func TestResolvePosition_Table(t *testing.T) {
	const W, H, w, h = 200, 100, 40, 20

	tests := []struct {
		anchor pipeline.Anchor
		want   pipeline.Point
	}{
		{pipeline.AnchorTopLeft, pipeline.Point{X: 10, Y: 10}},
		{pipeline.AnchorTopCenter, pipeline.Point{X: 80, Y: 10}},
		{pipeline.AnchorTopRight, pipeline.Point{X: 150, Y: 10}},
		{pipeline.AnchorCenterLeft, pipeline.Point{X: 10, Y: 40}},
		{pipeline.AnchorCenter, pipeline.Point{X: 80, Y: 40}},
		{pipeline.AnchorCenterRight, pipeline.Point{X: 150, Y: 40}},
		{pipeline.AnchorBottomLeft, pipeline.Point{X: 10, Y: 70}},
		{pipeline.AnchorBottomCenter, pipeline.Point{X: 80, Y: 70}},
		{pipeline.AnchorBottomRight, pipeline.Point{X: 150, Y: 70}},
		{pipeline.AnchorMiddleTopLeft, pipeline.Point{X: 30, Y: 15}},
		{pipeline.AnchorMiddleTopRight, pipeline.Point{X: 130, Y: 15}},
		{pipeline.AnchorMiddleBottomLeft, pipeline.Point{X: 30, Y: 65}},
		{pipeline.AnchorMiddleBottomRight, pipeline.Point{X: 130, Y: 65}},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			got, err := ResolvePosition(tt.anchor, w, h, W, H)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// TestResolvePosition_WithinBounds checks that edge and center anchors keep
// text inside the image whenever it fits.
func TestResolvePosition_WithinBounds(t *testing.T) {
	sizes := []struct{ W, H, w, h int }{
		{200, 100, 40, 20},
		{1792, 1024, 900, 48},
		{64, 64, 43, 43},
		{31, 17, 0, 0},
		{1000, 30, 979, 9},
	}

	edgeAnchors := pipeline.Anchors()[:9]

	for _, s := range sizes {
		for _, a := range edgeAnchors {
			p, err := ResolvePosition(a, s.w, s.h, s.W, s.H)
			if err != nil {
				t.Fatalf("%v: unexpected error: %v", a, err)
			}
			if p.X < 0 || p.X > s.W-s.w || p.Y < 0 || p.Y > s.H-s.h {
				t.Errorf("%v with text %dx%d on %dx%d: origin %+v out of bounds",
					a, s.w, s.h, s.W, s.H, p)
			}
		}
	}
}

func TestResolvePosition_FloorDivision(t *testing.T) {
	// Text wider than the image: (50-81)/2 = -15.5 floors to -16.
	p, err := ResolvePosition(pipeline.AnchorCenter, 81, 11, 50, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.X != -16 {
		t.Errorf("expected x=-16, got %d", p.X)
	}
	if p.Y != -1 {
		t.Errorf("expected y=-1, got %d", p.Y)
	}
}

func TestResolvePosition_UnknownAnchor(t *testing.T) {
	_, err := ResolvePosition(pipeline.Anchor(99), 10, 10, 100, 100)
	var unknown *pipeline.UnknownAnchorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownAnchorError, got %v", err)
	}
}

func TestResolvePosition_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, W, H int
	}{
		{"negative text width", -1, 10, 100, 100},
		{"negative text height", 10, -1, 100, 100},
		{"zero image width", 10, 10, 0, 100},
		{"zero image height", 10, 10, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePosition(pipeline.AnchorCenter, tt.w, tt.h, tt.W, tt.H)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		fontSize int
		want     int
	}{
		{10, 5},
		{12, 5},
		{29, 5},
		{30, 6},
		{32, 6},
		{72, 14},
		{100, 20},
	}

	for _, tt := range tests {
		if got := Padding(tt.fontSize); got != tt.want {
			t.Errorf("Padding(%d) = %d, want %d", tt.fontSize, got, tt.want)
		}
	}
}

func TestComputeLayout_Center(t *testing.T) {
	input := pipeline.LayoutInput{
		Anchor:      pipeline.AnchorCenter,
		Text:        pipeline.TextMetrics{Width: 40, Height: 20},
		ImageWidth:  200,
		ImageHeight: 100,
		FontSize:    32,
	}

	result, err := ComputeLayout(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != (pipeline.Point{X: 80, Y: 40}) {
		t.Errorf("origin: expected (80, 40), got %+v", result.Origin)
	}
	if result.Padding != 6 {
		t.Errorf("padding: expected 6, got %d", result.Padding)
	}

	wantBox := pipeline.BoundingBox{Left: 74, Top: 34, Right: 126, Bottom: 66}
	if result.Unclipped != wantBox {
		t.Errorf("unclipped: expected %+v, got %+v", wantBox, result.Unclipped)
	}
	if result.Box != wantBox {
		t.Errorf("box: expected %+v, got %+v", wantBox, result.Box)
	}
}

func TestComputeLayout_ClipsToImage(t *testing.T) {
	input := pipeline.LayoutInput{
		Anchor:      pipeline.AnchorTopLeft,
		Text:        pipeline.TextMetrics{Width: 300, Height: 90},
		ImageWidth:  200,
		ImageHeight: 100,
		FontSize:    100,
	}

	result, err := ComputeLayout(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := pipeline.BoundingBox{Left: 0, Top: 0, Right: 200, Bottom: 100}
	if result.Box != want {
		t.Errorf("expected %+v, got %+v", want, result.Box)
	}
	if result.Unclipped.Left != -10 || result.Unclipped.Right != 330 {
		t.Errorf("unexpected unclipped box %+v", result.Unclipped)
	}
}

// TestClipBox_Invariants checks containment and ordering for extreme inputs,
// and that clamping twice changes nothing.
func TestClipBox_Invariants(t *testing.T) {
	const W, H = 120, 80

	boxes := []pipeline.BoundingBox{
		{Left: -50, Top: -50, Right: 500, Bottom: 500},
		{Left: 200, Top: 100, Right: 300, Bottom: 200},
		{Left: -300, Top: -200, Right: -100, Bottom: -10},
		{Left: 60, Top: 40, Right: 60, Bottom: 40},
		{Left: 10, Top: 10, Right: 5, Bottom: 5},
	}

	for _, b := range boxes {
		got := ClipBox(b, W, H)
		if got.Left < 0 || got.Top < 0 || got.Right > W || got.Bottom > H {
			t.Errorf("ClipBox(%+v) = %+v escapes %dx%d", b, got, W, H)
		}
		if got.Left > got.Right || got.Top > got.Bottom {
			t.Errorf("ClipBox(%+v) = %+v is inverted", b, got)
		}
		if again := ClipBox(got, W, H); again != got {
			t.Errorf("ClipBox not idempotent: %+v then %+v", got, again)
		}
	}
}

func TestComputeLayout_ZeroSizeText(t *testing.T) {
	for _, a := range pipeline.Anchors() {
		result, err := ComputeLayout(pipeline.LayoutInput{
			Anchor:      a,
			ImageWidth:  50,
			ImageHeight: 30,
			FontSize:    12,
		})
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", a, err)
		}
		b := result.Box
		if b.Left > b.Right || b.Top > b.Bottom {
			t.Errorf("%v: inverted box %+v", a, b)
		}
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage()

	result, err := stage.Execute(context.Background(), pipeline.LayoutInput{
		Anchor:      pipeline.AnchorBottomRight,
		Text:        pipeline.TextMetrics{Width: 100, Height: 30},
		ImageWidth:  1792,
		ImageHeight: 1024,
		FontSize:    32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Origin != (pipeline.Point{X: 1682, Y: 984}) {
		t.Errorf("unexpected origin %+v", result.Origin)
	}
	if result.Box.Right != 1788 || result.Box.Bottom != 1020 {
		t.Errorf("unexpected box %+v", result.Box)
	}
}
