package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/offergen/pkg/pipeline"
)

// fixture is a temporary workspace with a config file.
type fixture struct {
	dir       string
	imagesDir string
	fontsDir  string
	config    string
}

func newFixture(t *testing.T, extra string) *fixture {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	dir := t.TempDir()
	f := &fixture{
		dir:       dir,
		imagesDir: filepath.Join(dir, "images"),
		fontsDir:  filepath.Join(dir, "fonts"),
		config:    filepath.Join(dir, "config.yaml"),
	}
	if err := os.MkdirAll(f.fontsDir, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := "images_dir: " + f.imagesDir + "\nfonts_dir: " + f.fontsDir + "\n" + extra
	if err := os.WriteFile(f.config, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) run(t *testing.T, stdin string, interactive bool, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"offergen", "--config", f.config, "--quiet"}, args...)
	err := newApp(strings.NewReader(stdin), &out, interactive).Run(argv)
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 80, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

// fakeOpenAI serves chat and image endpoints.
func fakeOpenAI(t *testing.T, offer string) *httptest.Server {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 320, 180))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": offer}},
			},
		})
	})
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"b64_json": b64}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestVersion(t *testing.T) {
	f := newFixture(t, "")
	out, err := f.run(t, "", false, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("output %q does not contain version %q", out, version)
	}
}

func TestFonts(t *testing.T) {
	f := newFixture(t, "")
	for _, name := range []string{"b.otf", "a.ttf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(f.fontsDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := f.run(t, "", false, "fonts")
	if err != nil {
		t.Fatalf("fonts failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "a.ttf" || lines[1] != "b.otf" {
		t.Errorf("fonts output = %q, want a.ttf and b.otf", out)
	}
}

func TestFontsEmpty(t *testing.T) {
	f := newFixture(t, "")
	out, err := f.run(t, "", false, "fonts")
	if err != nil {
		t.Fatalf("fonts failed: %v", err)
	}
	if !strings.Contains(out, f.fontsDir) {
		t.Errorf("expected empty notice naming %s, got %q", f.fontsDir, out)
	}
}

func TestOverlay(t *testing.T) {
	f := newFixture(t, "")
	input := filepath.Join(f.dir, "in.png")
	output := filepath.Join(f.dir, "out.png")
	writePNG(t, input, 200, 100)

	_, err := f.run(t, "", false, "overlay",
		"--text", "Sale", "-o", output, "--position", "bottom-right", "--bg-color", "red", input)
	if err != nil {
		t.Fatalf("overlay failed: %v", err)
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("output size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestOverlayErrors(t *testing.T) {
	f := newFixture(t, "")
	input := filepath.Join(f.dir, "in.png")
	writePNG(t, input, 50, 50)
	output := filepath.Join(f.dir, "out.png")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown position", []string{"--text", "x", "-o", output, "--position", "middle", input}},
		{"unknown color", []string{"--text", "x", "-o", output, "--text-color", "mauve", input}},
		{"missing input", []string{"--text", "x", "-o", output, filepath.Join(f.dir, "nope.png")}},
		{"no input argument", []string{"--text", "x", "-o", output}},
		{"bad format", []string{"--text", "x", "-o", output, "--format", "gif", input}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"overlay"}, tt.args...)
			if _, err := f.run(t, "", false, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	f := newFixture(t, "")
	if _, err := f.run(t, "", false, "generate"); err == nil {
		t.Error("expected error without --prompt")
	}
}

func TestGenerateUnknownService(t *testing.T) {
	f := newFixture(t, "ai_service: acme\n")
	_, err := f.run(t, "", false, "generate", "--prompt", "shoes")
	if err == nil || !strings.Contains(err.Error(), "unknown text service") {
		t.Errorf("expected unknown service error, got %v", err)
	}
}

func TestGenerateWordLimitOutOfRange(t *testing.T) {
	f := newFixture(t, "")
	if _, err := f.run(t, "", false, "generate", "--prompt", "shoes", "--word-limit", "101"); err == nil {
		t.Error("expected word limit error")
	}
}

func TestGenerate(t *testing.T) {
	srv := fakeOpenAI(t, `"Half price shoes"`)
	f := newFixture(t, "openai:\n  api_key: test\n  base_url: "+srv.URL+"/v1\n")
	summary := filepath.Join(f.dir, "summary.md")

	out, err := f.run(t, "", false, "generate",
		"--prompt", "running shoes", "--word-limit", "3", "--format", "png", "--summary", summary)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "Half price shoes") {
		t.Errorf("output %q does not contain offer text", out)
	}

	entries, err := os.ReadDir(f.imagesDir)
	if err != nil {
		t.Fatal(err)
	}
	var initial, final int
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Name(), "half_price_shoes_") && strings.HasSuffix(e.Name(), "_initial.png"):
			initial++
		case strings.HasPrefix(e.Name(), "half_price_shoes_") && strings.HasSuffix(e.Name(), "_final.png"):
			final++
		}
	}
	if initial != 1 || final != 1 {
		t.Errorf("images dir has %d initial and %d final images", initial, final)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(data), "Half price shoes") {
		t.Errorf("summary does not mention the offer:\n%s", data)
	}
}

func TestGenerateInteractive(t *testing.T) {
	srv := fakeOpenAI(t, "Big sale")
	f := newFixture(t, "openai:\n  api_key: test\n  base_url: "+srv.URL+"/v1\n")

	// prompt, word limit, font size, position, text color, bg color, opacity
	answers := strings.Join([]string{"garden tools", "4", "", "9", "", "red", "0.8"}, "\n") + "\n"
	out, err := f.run(t, answers, true, "generate", "--format", "png")
	if err != nil {
		t.Fatalf("generate failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "bottom-right") {
		t.Errorf("position choices were not listed:\n%s", out)
	}
	if !strings.Contains(out, "Big sale") {
		t.Errorf("output does not contain offer text:\n%s", out)
	}
}

func TestGenerateInteractiveEndOfInput(t *testing.T) {
	f := newFixture(t, "openai:\n  api_key: test\n")
	if _, err := f.run(t, "", true, "generate"); err == nil {
		t.Error("expected error when input ends")
	}
}

func TestUnavailableStage(t *testing.T) {
	stage := unavailable[pipeline.CaptionInput, pipeline.CaptionResult]("caption")
	result, err := stage.Execute(context.Background(), pipeline.CaptionInput{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "caption") {
		t.Errorf("expected caption error, got %v", err)
	}
	if result.Text != "" {
		t.Errorf("expected zero result, got %+v", result)
	}
}
