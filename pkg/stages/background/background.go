// Package background implements the base image generation stage.
package background

import (
	"context"
	"image/color"

	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
)

// Size of the blank image used when generation fails.
const (
	FallbackWidth  = 1024
	FallbackHeight = 1024
)

// Stage asks an image generator for a base image.
type Stage struct {
	generator ports.ImageGenerator
	renderer  ports.Renderer
	logger    ports.Logger
}

// NewStage creates a new background stage.
func NewStage(generator ports.ImageGenerator, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		generator: generator,
		renderer:  renderer,
		logger:    logger.WithComponent("background"),
	}
}

// Execute generates the base image, substituting a white canvas when the
// generator fails. Only a cancelled context is returned as an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.BackgroundInput) (pipeline.BackgroundResult, error) {
	s.logger.Debug("Generating background image")

	img, err := s.generator.GenerateImage(ctx, input.Prompt)
	if err == nil && img != nil && !img.Bounds().Empty() {
		b := img.Bounds()
		s.logger.Debug("Background generated: %dx%d", b.Dx(), b.Dy())
		return pipeline.BackgroundResult{Image: img}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return pipeline.BackgroundResult{}, ctxErr
	}
	if err != nil {
		s.logger.Warn("Image generation failed: %s", err.Error())
	} else {
		s.logger.Warn("Image generation failed: %s", "empty image")
	}

	canvas := s.renderer.CreateCanvas(FallbackWidth, FallbackHeight, color.White)
	return pipeline.BackgroundResult{Image: canvas.ToImage(), Fallback: true}, nil
}

var _ pipeline.Stage[pipeline.BackgroundInput, pipeline.BackgroundResult] = (*Stage)(nil)
