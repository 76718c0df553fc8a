// Package caption implements the offer text generation stage.
package caption

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
)

// Word limit bounds accepted by the stage.
const (
	MinWordLimit = 1
	MaxWordLimit = 100
)

// Stage asks a text generator for offer copy and cleans up the answer.
type Stage struct {
	generator ports.TextGenerator
	logger    ports.Logger
}

// NewStage creates a new caption stage.
func NewStage(generator ports.TextGenerator, logger ports.Logger) *Stage {
	return &Stage{
		generator: generator,
		logger:    logger.WithComponent("caption"),
	}
}

// Execute generates the offer text. Generator failures and empty answers
// degrade to FallbackText; only an invalid word limit or a cancelled context
// is returned as an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	if input.WordLimit < MinWordLimit || input.WordLimit > MaxWordLimit {
		return pipeline.CaptionResult{}, fmt.Errorf("word limit %d out of range %d-%d", input.WordLimit, MinWordLimit, MaxWordLimit)
	}

	s.logger.Debug("Generating offer text (%d words)", input.WordLimit)

	text, err := s.generator.GenerateText(ctx, input.Prompt, input.WordLimit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pipeline.CaptionResult{}, ctxErr
		}
		s.logger.Warn("Text generation failed: %s", err.Error())
		return pipeline.CaptionResult{Text: FallbackText(input.Prompt), Fallback: true}, nil
	}

	text = Clean(text)
	if text == "" {
		return pipeline.CaptionResult{Text: FallbackText(input.Prompt), Fallback: true}, nil
	}
	return pipeline.CaptionResult{Text: text}, nil
}

// Clean strips double quotes and surrounding whitespace from generated text.
func Clean(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, `"`, ""))
}

// FallbackText is the offer used when generation fails.
func FallbackText(prompt string) string {
	return fmt.Sprintf("Special offer for %s!", prompt)
}

var _ pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult] = (*Stage)(nil)
