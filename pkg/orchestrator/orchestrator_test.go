package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/mocks"
	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
)

// mockCaptionStage is a mock for the caption stage.
type mockCaptionStage struct {
	result pipeline.CaptionResult
	err    error
	input  pipeline.CaptionInput
}

func (m *mockCaptionStage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.CaptionResult{}, m.err
	}
	return m.result, nil
}

// mockBackgroundStage is a mock for the background stage.
type mockBackgroundStage struct {
	result pipeline.BackgroundResult
	err    error
}

func (m *mockBackgroundStage) Execute(ctx context.Context, input pipeline.BackgroundInput) (pipeline.BackgroundResult, error) {
	if m.err != nil {
		return pipeline.BackgroundResult{}, m.err
	}
	return m.result, nil
}

// mockOverlayStage is a mock for the overlay stage.
type mockOverlayStage struct {
	result pipeline.OverlayResult
	err    error
	input  pipeline.OverlayInput
}

func (m *mockOverlayStage) Execute(ctx context.Context, input pipeline.OverlayInput) (pipeline.OverlayResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.OverlayResult{}, m.err
	}
	return m.result, nil
}

// testConfig builds a run configuration from the application defaults.
func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := config.Defaults()
	style, err := cfg.BuildStyle(config.StyleOptions{})
	if err != nil {
		t.Fatalf("default style: %v", err)
	}
	return Config{
		Prompt:    "pizza",
		WordLimit: cfg.DefaultWordLimit,
		Style:     style,
		OutputDir: cfg.ImagesDir,
		Format:    ports.ParseImageFormat(cfg.OutputFormat),
		Quality:   cfg.JPEGQuality,
	}
}

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type fixture struct {
	caption    *mockCaptionStage
	background *mockBackgroundStage
	overlay    *mockOverlayStage
	renderer   *mocks.Renderer
	fs         *mocks.FileSystem
	sink       *mocks.DebugSink
}

func newFixture(debug bool) *fixture {
	base := image.NewRGBA(image.Rect(0, 0, 1792, 1024))
	final := image.NewRGBA(image.Rect(0, 0, 1792, 1024))
	return &fixture{
		caption: &mockCaptionStage{result: pipeline.CaptionResult{Text: "Half Price Pizza Tonight"}},
		background: &mockBackgroundStage{
			result: pipeline.BackgroundResult{Image: base},
		},
		overlay: &mockOverlayStage{
			result: pipeline.OverlayResult{
				Image:  final,
				Layout: pipeline.LayoutResult{Anchor: pipeline.AnchorCenter, Padding: 6},
			},
		},
		renderer: &mocks.Renderer{},
		fs:       mocks.NewFileSystem(),
		sink:     mocks.NewDebugSink(debug),
	}
}

func (f *fixture) orchestrator() *Orchestrator {
	o := New(f.caption, f.background, f.overlay, f.renderer, f.fs, f.sink, mocks.NewLogger())
	o.SetClock(func() time.Time { return fixedTime })
	return o
}

func TestOrchestrator_Run(t *testing.T) {
	f := newFixture(false)
	runCfg := testConfig(t)
	runCfg.Prompt = "pizza"
	runCfg.WordLimit = 4
	runCfg.OutputDir = "out"

	result, err := f.orchestrator().Run(context.Background(), runCfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.caption.input.Prompt != "pizza" || f.caption.input.WordLimit != 4 {
		t.Errorf("unexpected caption input: %+v", f.caption.input)
	}
	if f.overlay.input.Text != "Half Price Pizza Tonight" {
		t.Errorf("expected overlay to receive offer text, got %q", f.overlay.input.Text)
	}
	if f.overlay.input.Image != f.background.result.Image {
		t.Error("expected overlay to receive the base image")
	}
	if f.overlay.input.Style != runCfg.Style {
		t.Error("expected overlay to receive the configured style")
	}

	wantInitial := "half_price_pizza_tonight_20260314_092653_initial.jpg"
	wantFinal := "half_price_pizza_tonight_20260314_092653_final.jpg"
	if result.InitialFile != wantInitial || result.FinalFile != wantFinal {
		t.Errorf("unexpected file names: %s, %s", result.InitialFile, result.FinalFile)
	}
	for _, name := range []string{wantInitial, wantFinal} {
		data, ok := f.fs.GetFile(filepath.Join("out", name))
		if !ok {
			t.Errorf("expected %s to be written", name)
			continue
		}
		if string(data) != "encoded-jpg" {
			t.Errorf("expected JPEG encoding for %s, got %q", name, data)
		}
	}

	if result.OfferText != "Half Price Pizza Tonight" || result.ImageWidth != 1792 || result.ImageHeight != 1024 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(f.sink.Images) != 0 || f.sink.LayoutJSON != nil {
		t.Error("expected no debug output when sink is disabled")
	}
}

func TestOrchestrator_Run_PNG(t *testing.T) {
	f := newFixture(false)
	runCfg := testConfig(t)
	runCfg.Prompt = "pizza"
	runCfg.Format = ports.FormatPNG

	result, err := f.orchestrator().Run(context.Background(), runCfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasSuffix(result.FinalPath, "_final.png") {
		t.Errorf("expected png output, got %s", result.FinalPath)
	}
}

func TestOrchestrator_Run_Debug(t *testing.T) {
	f := newFixture(true)
	runCfg := testConfig(t)
	runCfg.Prompt = "pizza"

	if _, err := f.orchestrator().Run(context.Background(), runCfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, ok := f.sink.Images["initial"]; !ok {
		t.Error("expected initial debug image")
	}
	if _, ok := f.sink.Images["final"]; !ok {
		t.Error("expected final debug image")
	}

	var doc struct {
		Style  map[string]interface{} `json:"style"`
		Layout map[string]interface{} `json:"layout"`
	}
	if err := json.Unmarshal(f.sink.LayoutJSON, &doc); err != nil {
		t.Fatalf("invalid layout JSON: %v", err)
	}
	if doc.Layout["anchor"] != "center" {
		t.Errorf("expected anchor name in layout JSON, got %v", doc.Layout["anchor"])
	}
}

func TestOrchestrator_Run_Degraded(t *testing.T) {
	f := newFixture(false)
	f.caption.result.Fallback = true
	f.background.result.Fallback = true
	f.overlay.result.FontFallback = true
	f.overlay.result.Err = errors.New("compositing failed")

	runCfg := testConfig(t)
	runCfg.Prompt = "pizza"

	result, err := f.orchestrator().Run(context.Background(), runCfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.CaptionFallback || !result.BackgroundFallback || !result.FontFallback {
		t.Errorf("expected fallbacks to be reported: %+v", result)
	}
	if result.CompositingErr == nil {
		t.Error("expected compositing error to be reported")
	}
}

func TestOrchestrator_Run_StageErrors(t *testing.T) {
	stageErr := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(f *fixture)
		wantMsg string
	}{
		{"caption", func(f *fixture) { f.caption.err = stageErr }, "caption stage"},
		{"background", func(f *fixture) { f.background.err = stageErr }, "background stage"},
		{"overlay", func(f *fixture) { f.overlay.err = &pipeline.UnknownAnchorError{Name: "x"} }, "overlay stage"},
		{"write", func(f *fixture) {
			f.fs.WriteFileFunc = func(path string, data []byte) error { return stageErr }
		}, "write output"},
		{"encode", func(f *fixture) {
			f.renderer.EncodeImageFunc = func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
				return nil, stageErr
			}
		}, "encode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			tt.setup(f)
			runCfg := testConfig(t)
			runCfg.Prompt = "pizza"

			_, err := f.orchestrator().Run(context.Background(), runCfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q in %v", tt.wantMsg, err)
			}
		})
	}
}

func TestOrchestrator_Overlay(t *testing.T) {
	f := newFixture(false)
	f.fs.AddFile("in/photo.png", []byte("png data"))

	_, err := f.orchestrator().Overlay(context.Background(), OverlayConfig{
		InputPath:  "in/photo.png",
		OutputPath: "out/captioned.png",
		Text:       "Sale",
		Style:      testConfig(t).Style,
	})
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	if f.overlay.input.Text != "Sale" {
		t.Errorf("unexpected overlay text %q", f.overlay.input.Text)
	}
	data, ok := f.fs.GetFile("out/captioned.png")
	if !ok {
		t.Fatal("expected output file")
	}
	if string(data) != "encoded-png" {
		t.Errorf("expected format from extension, got %q", data)
	}
}

func TestOrchestrator_Overlay_MissingInput(t *testing.T) {
	f := newFixture(false)

	_, err := f.orchestrator().Overlay(context.Background(), OverlayConfig{
		InputPath:  "missing.jpg",
		OutputPath: "out.jpg",
		Style:      testConfig(t).Style,
	})
	if err == nil || !strings.Contains(err.Error(), "read input") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestTimestampFilename(t *testing.T) {
	tests := []struct {
		text   string
		suffix string
		want   string
	}{
		{"Half Price Pizza", "_final.jpg", "half_price_pizza_20260314_092653_final.jpg"},
		{"  50% OFF! Today only.  ", ".png", "50_off_today_only_20260314_092653.png"},
		{"../../etc/passwd", "", "etcpasswd_20260314_092653"},
		{"!!!", "_initial.jpg", "offer_20260314_092653_initial.jpg"},
		{"", ".jpg", "offer_20260314_092653.jpg"},
		{"Café crème brûlée", "", "café_crème_brûlée_20260314_092653"},
	}

	for _, tt := range tests {
		if got := TimestampFilename(tt.text, tt.suffix, fixedTime); got != tt.want {
			t.Errorf("TimestampFilename(%q, %q) = %q, want %q", tt.text, tt.suffix, got, tt.want)
		}
	}
}

func TestSlug_Truncates(t *testing.T) {
	slug := Slug(strings.Repeat("abcdefghij", 10))
	if n := len([]rune(slug)); n != 40 {
		t.Errorf("expected 40 runes, got %d", n)
	}
}
