package main

import (
	"fmt"
	"strings"

	"github.com/user/offergen/pkg/adapters/openai"
	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/ports"
)

// newGenerators builds the text and image generators for the configured service.
func newGenerators(cfg config.Config, renderer ports.Renderer) (ports.TextGenerator, ports.ImageGenerator, error) {
	switch strings.ToLower(cfg.AIService) {
	case "openai":
		client, err := openai.New(openai.Options{
			APIKey:       cfg.OpenAI.APIKey,
			BaseURL:      cfg.OpenAI.BaseURL,
			TextModel:    cfg.OpenAI.TextModel,
			MaxTokens:    cfg.OpenAI.MaxTokens,
			ImageModel:   cfg.OpenAI.ImageModel,
			ImageSize:    cfg.OpenAI.ImageSize,
			ImageQuality: cfg.OpenAI.ImageQuality,
			SystemPrompt: cfg.Prompts.System,
			UserPrompt:   cfg.Prompts.User,
			ImagePrompt:  cfg.Prompts.Image,
		}, renderer)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown text service: %s", cfg.AIService)
	}
}
