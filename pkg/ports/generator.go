package ports

import (
	"context"
	"image"
)

// TextGenerator produces offer copy from a prompt.
type TextGenerator interface {
	// GenerateText returns roughly wordLimit words of marketing text for prompt.
	GenerateText(ctx context.Context, prompt string, wordLimit int) (string, error)
}

// ImageGenerator produces a background image from a prompt.
type ImageGenerator interface {
	// GenerateImage returns a decoded image for prompt.
	GenerateImage(ctx context.Context, prompt string) (image.Image, error)
}
