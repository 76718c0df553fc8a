// Package openai provides text and image generators backed by the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/user/offergen/pkg/ports"
)

// maxImageBytes bounds the size of a downloaded image.
const maxImageBytes = 32 << 20

// Options configures the generators.
type Options struct {
	APIKey  string
	BaseURL string

	TextModel string
	MaxTokens int

	ImageModel   string
	ImageSize    string
	ImageQuality string

	// Prompt templates; they see {{.Prompt}} and {{.WordLimit}}.
	SystemPrompt string
	UserPrompt   string
	ImagePrompt  string

	// HTTPClient downloads generated images. Defaults to a client with a 60s timeout.
	HTTPClient *http.Client
}

type promptData struct {
	Prompt    string
	WordLimit int
}

// Client wraps a go-openai client and the parsed prompt templates.
type Client struct {
	api      *goopenai.Client
	opts     Options
	system   *template.Template
	user     *template.Template
	image    *template.Template
	http     *http.Client
	renderer ports.Renderer
}

// New creates a client. The renderer decodes downloaded images.
func New(opts Options, renderer ports.Renderer) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	c := &Client{
		api:      goopenai.NewClientWithConfig(cfg),
		opts:     opts,
		http:     opts.HTTPClient,
		renderer: renderer,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}

	var err error
	if c.system, err = template.New("system").Parse(opts.SystemPrompt); err != nil {
		return nil, fmt.Errorf("system prompt: %w", err)
	}
	if c.user, err = template.New("user").Parse(opts.UserPrompt); err != nil {
		return nil, fmt.Errorf("user prompt: %w", err)
	}
	if c.image, err = template.New("image").Parse(opts.ImagePrompt); err != nil {
		return nil, fmt.Errorf("image prompt: %w", err)
	}
	return c, nil
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// GenerateText asks the chat model for offer copy.
func (c *Client) GenerateText(ctx context.Context, prompt string, wordLimit int) (string, error) {
	data := promptData{Prompt: prompt, WordLimit: wordLimit}
	system, err := render(c.system, data)
	if err != nil {
		return "", err
	}
	user, err := render(c.user, data)
	if err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.opts.TextModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens: c.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage asks the image model for a background and downloads it.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (image.Image, error) {
	text, err := render(c.image, promptData{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         text,
		Model:          c.opts.ImageModel,
		N:              1,
		Size:           c.opts.ImageSize,
		Quality:        c.opts.ImageQuality,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("image generation returned no data")
	}

	var data []byte
	switch item := resp.Data[0]; {
	case item.URL != "":
		data, err = c.download(ctx, item.URL)
	case item.B64JSON != "":
		data, err = base64.StdEncoding.DecodeString(item.B64JSON)
	default:
		err = errors.New("image generation returned neither url nor data")
	}
	if err != nil {
		return nil, err
	}

	img, err := c.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}
	return img, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	return data, nil
}

var (
	_ ports.TextGenerator  = (*Client)(nil)
	_ ports.ImageGenerator = (*Client)(nil)
)
