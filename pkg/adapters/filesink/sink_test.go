package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/offergen/pkg/adapters/nullsink"
	"github.com/user/offergen/pkg/mocks"
	"github.com/user/offergen/pkg/ports"
)

var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
	if nullsink.New().Enabled() {
		t.Error("expected null sink to be disabled")
	}
}

func TestSink_SaveLayoutJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	if err := sink.SaveLayoutJSON([]byte(`{"padding":6}`)); err != nil {
		t.Fatalf("SaveLayoutJSON failed: %v", err)
	}

	data, ok := fs.GetFile(filepath.Join(testBaseDir, "layout.json"))
	if !ok {
		t.Fatal("expected layout.json to be written")
	}
	if string(data) != `{"padding":6}` {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestSink_SaveImage(t *testing.T) {
	fs := mocks.NewFileSystem()
	var gotFormat ports.ImageFormat
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			gotFormat = format
			return []byte("png"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveImage("final", image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if gotFormat != ports.FormatPNG {
		t.Errorf("expected PNG encoding, got %v", gotFormat)
	}
	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "final.png")); !ok {
		t.Error("expected final.png to be written")
	}
}

func TestSink_SaveImageRejectsPaths(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		if err := sink.SaveImage(name, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
			t.Errorf("expected error for %q", name)
		}
	}
}

func TestSink_SaveImageEncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("encoder broken")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveImage("initial", image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error")
	}
}
