// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
)

// Config contains all configuration for one offer generation run.
type Config struct {
	// Input
	Prompt    string
	WordLimit int
	Style     pipeline.Style

	// Output
	OutputDir string
	Format    ports.ImageFormat
	Quality   int
}

// OverlayConfig describes captioning an existing image file.
type OverlayConfig struct {
	InputPath  string
	OutputPath string
	Text       string
	Style      pipeline.Style
	Format     ports.ImageFormat
	Quality    int
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	captionStage    pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult]
	backgroundStage pipeline.Stage[pipeline.BackgroundInput, pipeline.BackgroundResult]
	overlayStage    pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult]
	renderer        ports.Renderer
	fs              ports.FileSystem
	sink            ports.DebugSink
	logger          ports.Logger
	now             func() time.Time
}

// New creates a new Orchestrator.
func New(
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult],
	backgroundStage pipeline.Stage[pipeline.BackgroundInput, pipeline.BackgroundResult],
	overlayStage pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult],
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		captionStage:    captionStage,
		backgroundStage: backgroundStage,
		overlayStage:    overlayStage,
		renderer:        renderer,
		fs:              fs,
		sink:            sink,
		logger:          logger,
		now:             time.Now,
	}
}

// SetClock replaces the time source used for output file names.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Generating offer for %q", config.Prompt)

	format := config.Format
	if format == ports.FormatAuto {
		format = ports.FormatJPEG
	}

	// 1. Offer text
	caption, err := o.captionStage.Execute(ctx, pipeline.CaptionInput{
		Prompt:    config.Prompt,
		WordLimit: config.WordLimit,
	})
	if err != nil {
		o.logger.Error("Failed to generate offer: %s", err.Error())
		return RunResult{}, fmt.Errorf("caption stage: %w", err)
	}
	o.logger.Info("Offer text: %s", caption.Text)

	// 2. Base image
	background, err := o.backgroundStage.Execute(ctx, pipeline.BackgroundInput{Prompt: config.Prompt})
	if err != nil {
		o.logger.Error("Failed to generate offer: %s", err.Error())
		return RunResult{}, fmt.Errorf("background stage: %w", err)
	}

	stamp := o.now()
	ext := "." + format.String()
	initialName := TimestampFilename(caption.Text, "_initial"+ext, stamp)
	finalName := TimestampFilename(caption.Text, "_final"+ext, stamp)

	// 3. Save the untouched base image
	initialPath := filepath.Join(config.OutputDir, initialName)
	if err := o.writeImage(initialPath, background.Image, format, config.Quality); err != nil {
		return RunResult{}, err
	}
	o.logger.Info("Saved initial image to %s", initialPath)

	// 4. Caption overlay
	overlay, err := o.overlayStage.Execute(ctx, pipeline.OverlayInput{
		Image: background.Image,
		Text:  caption.Text,
		Style: config.Style,
	})
	if err != nil {
		o.logger.Error("Failed to generate offer: %s", err.Error())
		return RunResult{}, fmt.Errorf("overlay stage: %w", err)
	}

	// 5. Save the final image
	finalPath := filepath.Join(config.OutputDir, finalName)
	if err := o.writeImage(finalPath, overlay.Image, format, config.Quality); err != nil {
		return RunResult{}, err
	}
	o.logger.Info("Saved final image to %s", finalPath)

	o.saveDebug(config.Style, overlay, background.Image)

	o.logger.Info("Offer generated successfully")

	b := background.Image.Bounds()
	return RunResult{
		Prompt:             config.Prompt,
		OfferText:          caption.Text,
		Style:              config.Style,
		Layout:             overlay.Layout,
		InitialFile:        initialName,
		FinalFile:          finalName,
		InitialPath:        initialPath,
		FinalPath:          finalPath,
		ImageWidth:         b.Dx(),
		ImageHeight:        b.Dy(),
		CaptionFallback:    caption.Fallback,
		BackgroundFallback: background.Fallback,
		FontFallback:       overlay.FontFallback,
		CompositingErr:     overlay.Err,
	}, nil
}

// Overlay captions an existing image file.
func (o *Orchestrator) Overlay(ctx context.Context, config OverlayConfig) (pipeline.OverlayResult, error) {
	data, err := o.fs.ReadFile(config.InputPath)
	if err != nil {
		return pipeline.OverlayResult{}, fmt.Errorf("read input: %w", err)
	}
	img, err := o.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return pipeline.OverlayResult{}, fmt.Errorf("decode input: %w", err)
	}

	result, err := o.overlayStage.Execute(ctx, pipeline.OverlayInput{
		Image: img,
		Text:  config.Text,
		Style: config.Style,
	})
	if err != nil {
		return pipeline.OverlayResult{}, fmt.Errorf("overlay stage: %w", err)
	}

	format := config.Format
	if format == ports.FormatAuto {
		format = ports.ParseImageFormat(filepath.Ext(config.OutputPath))
	}
	if format == ports.FormatAuto {
		format = ports.FormatJPEG
	}
	if err := o.writeImage(config.OutputPath, result.Image, format, config.Quality); err != nil {
		return pipeline.OverlayResult{}, err
	}
	o.logger.Info("Saved final image to %s", config.OutputPath)

	o.saveDebug(config.Style, result, img)
	return result, nil
}

func (o *Orchestrator) writeImage(path string, img image.Image, format ports.ImageFormat, quality int) error {
	data, err := o.renderer.EncodeImage(img, format, quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := o.fs.WriteFile(path, data); err != nil {
		o.logger.Error("Failed to write output: %s", err.Error())
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// debugLayout is the layout.json document.
type debugLayout struct {
	Style        pipeline.Style        `json:"style"`
	Layout       pipeline.LayoutResult `json:"layout"`
	FontFallback bool                  `json:"font_fallback"`
	Error        string                `json:"error,omitempty"`
}

func (o *Orchestrator) saveDebug(style pipeline.Style, result pipeline.OverlayResult, initial image.Image) {
	if !o.sink.Enabled() {
		return
	}

	doc := debugLayout{Style: style, Layout: result.Layout, FontFallback: result.FontFallback}
	if result.Err != nil {
		doc.Error = result.Err.Error()
	}
	var errs []error
	if data, err := json.MarshalIndent(doc, "", "  "); err == nil {
		errs = append(errs, o.sink.SaveLayoutJSON(data))
	} else {
		errs = append(errs, err)
	}
	errs = append(errs,
		o.sink.SaveImage("initial", initial),
		o.sink.SaveImage("final", result.Image),
	)
	if err := errors.Join(errs...); err != nil {
		o.logger.Warn("Failed to write output: %s", err.Error())
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	Prompt    string
	OfferText string
	Style     pipeline.Style
	Layout    pipeline.LayoutResult

	// Output files: names relative to the output directory, and full paths
	InitialFile string
	FinalFile   string
	InitialPath string
	FinalPath   string

	ImageWidth  int
	ImageHeight int

	// Degradations that did not abort the run
	CaptionFallback    bool
	BackgroundFallback bool
	FontFallback       bool
	CompositingErr     error
}
