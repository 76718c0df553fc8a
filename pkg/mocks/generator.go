package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/offergen/pkg/ports"
)

// TextGenerator is a mock implementation of ports.TextGenerator.
type TextGenerator struct {
	mu sync.Mutex

	GenerateTextFunc func(ctx context.Context, prompt string, wordLimit int) (string, error)

	Prompts []string
}

func (m *TextGenerator) GenerateText(ctx context.Context, prompt string, wordLimit int) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, wordLimit)
	}
	return "Buy one get one free", nil
}

var _ ports.TextGenerator = (*TextGenerator)(nil)

// ImageGenerator is a mock implementation of ports.ImageGenerator.
type ImageGenerator struct {
	mu sync.Mutex

	GenerateImageFunc func(ctx context.Context, prompt string) (image.Image, error)

	Prompts []string
}

func (m *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (image.Image, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateImageFunc != nil {
		return m.GenerateImageFunc(ctx, prompt)
	}
	return image.NewRGBA(image.Rect(0, 0, 320, 180)), nil
}

var _ ports.ImageGenerator = (*ImageGenerator)(nil)
