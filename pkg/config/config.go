// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/offergen/pkg/fontstore"
	"github.com/user/offergen/pkg/pipeline"
)

// Style resolution errors.
var (
	ErrUnknownColor = errors.New("unknown color")
	ErrInvalidStyle = errors.New("invalid style")
)

// Config represents the full configuration for offergen.
type Config struct {
	// Storage
	ImagesDir string `yaml:"images_dir"`
	FontsDir  string `yaml:"fonts_dir"`

	// Style defaults
	DefaultFont      string  `yaml:"default_font"`
	DefaultFontSize  int     `yaml:"default_font_size"`
	DefaultPosition  string  `yaml:"default_position"`
	DefaultTextColor string  `yaml:"default_text_color"`
	DefaultBgColor   string  `yaml:"default_bg_color"`
	DefaultBgOpacity float64 `yaml:"default_bg_opacity"`
	DefaultWordLimit int     `yaml:"default_word_limit"`

	// Choices offered by the interactive CLI
	FontSizes []int             `yaml:"font_sizes"`
	Colors    map[string]string `yaml:"colors"`

	// Generation
	AIService string        `yaml:"ai_service"`
	OpenAI    OpenAIConfig  `yaml:"openai"`
	Prompts   PromptsConfig `yaml:"prompts"`

	// Output
	OutputFormat string `yaml:"output_format"`
	JPEGQuality  int    `yaml:"jpeg_quality"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Logging and debug
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// OpenAIConfig holds settings for the OpenAI generators.
type OpenAIConfig struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	TextModel    string `yaml:"text_model"`
	MaxTokens    int    `yaml:"max_tokens"`
	ImageModel   string `yaml:"image_model"`
	ImageSize    string `yaml:"image_size"`
	ImageQuality string `yaml:"image_quality"`
}

// PromptsConfig holds text/template sources for generation prompts.
// Templates see {{.Prompt}} and {{.WordLimit}}.
type PromptsConfig struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
	Image  string `yaml:"image"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"`

	// LogFormat selects "console" or "json" (zap) request logs.
	LogFormat string `yaml:"log_format"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		ImagesDir: "images",
		FontsDir:  "fonts",

		DefaultFont:      "arial.ttf",
		DefaultFontSize:  32,
		DefaultPosition:  "center",
		DefaultTextColor: "white",
		DefaultBgColor:   "black",
		DefaultBgOpacity: 0.5,
		DefaultWordLimit: 5,

		FontSizes: []int{12, 16, 20, 24, 28, 32, 36, 40, 48, 56, 64, 72},
		Colors: map[string]string{
			"white":  "#ffffff",
			"black":  "#000000",
			"red":    "#ff0000",
			"green":  "#00ff00",
			"blue":   "#0000ff",
			"yellow": "#ffff00",
		},

		AIService: "openai",
		OpenAI: OpenAIConfig{
			TextModel:    "gpt-4",
			MaxTokens:    100,
			ImageModel:   "dall-e-3",
			ImageSize:    "1792x1024",
			ImageQuality: "standard",
		},
		Prompts: PromptsConfig{
			System: "You are a copywriter who writes short, catchy promotional offers.",
			User:   "Write a promotional offer about {{.Prompt}} in at most {{.WordLimit}} words. Reply with the offer text only.",
			Image:  "A vibrant, eye-catching advertising background for {{.Prompt}}, with open space for a text banner and no lettering.",
		},

		OutputFormat: "jpg",
		JPEGQuality:  90,

		Server: ServerConfig{
			Addr:      ":8000",
			Mode:      "release",
			LogFormat: "console",
		},

		LogLevel: "info",
		DebugDir: "./debug",
	}
}

// Load builds the configuration from defaults, an optional YAML file, a
// .env file in the working directory and the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		c.OpenAI.BaseURL = url
	}
}

// Validate checks directories, defaults and ranges.
func (c Config) Validate() error {
	if c.ImagesDir == "" {
		return errors.New("images_dir must be set")
	}
	if c.FontsDir == "" {
		return errors.New("fonts_dir must be set")
	}
	if c.DefaultWordLimit < 1 || c.DefaultWordLimit > 100 {
		return fmt.Errorf("default_word_limit %d out of range 1-100", c.DefaultWordLimit)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality %d out of range 1-100", c.JPEGQuality)
	}
	switch c.OutputFormat {
	case "jpg", "jpeg", "png":
	default:
		return fmt.Errorf("output_format %q must be jpg or png", c.OutputFormat)
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	switch c.Server.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("server.log_format %q must be console or json", c.Server.LogFormat)
	}
	_, err := c.BuildStyle(StyleOptions{})
	return err
}

// ColorNames returns the configured color names in sorted order.
func (c Config) ColorNames() []string {
	names := make([]string, 0, len(c.Colors))
	for name := range c.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveColor accepts a configured color name or a #rrggbb hex value.
func (c Config) ResolveColor(value string) (pipeline.RGB, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := c.Colors[key]; ok {
		rgb, ok := parseHex(hex)
		if !ok {
			return pipeline.RGB{}, fmt.Errorf("%w: %s has invalid value %q", ErrUnknownColor, key, hex)
		}
		return rgb, nil
	}
	if strings.HasPrefix(key, "#") {
		if rgb, ok := parseHex(key); ok {
			return rgb, nil
		}
	}
	return pipeline.RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, value)
}

// StyleOptions are user-facing style choices. Zero values take the defaults.
type StyleOptions struct {
	FontName  string
	FontSize  int
	Position  string
	TextColor string
	BgColor   string
	BgOpacity *float64
}

// BuildStyle resolves user-facing choices into a validated pipeline.Style.
// Unknown anchors are reported as *pipeline.UnknownAnchorError.
func (c Config) BuildStyle(opts StyleOptions) (pipeline.Style, error) {
	fontName := firstNonEmpty(opts.FontName, c.DefaultFont)
	if err := fontstore.ValidateName(fontName); err != nil {
		return pipeline.Style{}, fmt.Errorf("%w: %w", ErrInvalidStyle, err)
	}
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = c.DefaultFontSize
	}
	opacity := c.DefaultBgOpacity
	if opts.BgOpacity != nil {
		opacity = *opts.BgOpacity
	}

	anchor, err := pipeline.ParseAnchor(firstNonEmpty(opts.Position, c.DefaultPosition))
	if err != nil {
		return pipeline.Style{}, err
	}
	textColor, err := c.ResolveColor(firstNonEmpty(opts.TextColor, c.DefaultTextColor))
	if err != nil {
		return pipeline.Style{}, fmt.Errorf("text color: %w", err)
	}
	bgColor, err := c.ResolveColor(firstNonEmpty(opts.BgColor, c.DefaultBgColor))
	if err != nil {
		return pipeline.Style{}, fmt.Errorf("background color: %w", err)
	}

	style := pipeline.Style{
		FontName:          fontName,
		FontSize:          fontSize,
		Anchor:            anchor,
		TextColor:         textColor,
		BackgroundColor:   bgColor,
		BackgroundOpacity: opacity,
	}
	if err := style.Validate(); err != nil {
		return pipeline.Style{}, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	return style, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseColor parses a hex color string to color.Color.
// Malformed input yields black.
func ParseColor(hex string) color.Color {
	rgb, ok := parseHex(hex)
	if !ok {
		return color.Black
	}
	return rgb.Opaque()
}

// parseHex parses #rrggbb or rrggbb.
func parseHex(hex string) (pipeline.RGB, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return pipeline.RGB{}, false
	}

	var ch [3]int
	for i := range ch {
		hi, ok1 := hexValue(hex[2*i])
		lo, ok2 := hexValue(hex[2*i+1])
		if !ok1 || !ok2 {
			return pipeline.RGB{}, false
		}
		ch[i] = hi<<4 | lo
	}
	return pipeline.RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
