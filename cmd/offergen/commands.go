package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/offergen/pkg/adapters/filesink"
	"github.com/user/offergen/pkg/adapters/logger"
	"github.com/user/offergen/pkg/adapters/nullsink"
	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/fontstore"
	"github.com/user/offergen/pkg/orchestrator"
	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
	"github.com/user/offergen/pkg/server"
	"github.com/user/offergen/pkg/stages/background"
	"github.com/user/offergen/pkg/stages/caption"
	"github.com/user/offergen/pkg/stages/overlay"
	"github.com/user/offergen/pkg/summarizer"
)

// =============================================================================
// Flags
// =============================================================================

func styleFlags() []cli.Flag {
	category := l10n.T("Style")
	return []cli.Flag{
		&cli.StringFlag{Name: "font", Usage: l10n.T("Font file name in the fonts directory"), Category: category},
		&cli.IntFlag{Name: "font-size", Usage: l10n.T("Font size in pixels"), Category: category},
		&cli.StringFlag{Name: "position", Aliases: []string{"p"}, Usage: l10n.T("Text position, e.g. center or bottom-right"), Category: category},
		&cli.StringFlag{Name: "text-color", Usage: l10n.T("Text color name or #rrggbb"), Category: category},
		&cli.StringFlag{Name: "bg-color", Usage: l10n.T("Panel color name or #rrggbb"), Category: category},
		&cli.Float64Flag{Name: "bg-opacity", Usage: l10n.T("Panel opacity from 0 to 1"), Category: category},
	}
}

func debugFlags() []cli.Flag {
	category := l10n.T("Debug")
	return []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Write layout and intermediate images"), Category: category},
		&cli.PathFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: category},
	}
}

func outputFlags() []cli.Flag {
	category := l10n.T("Output")
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Image format (jpg, png)"), Category: category},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("JPEG quality (1-100)"), Category: category},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// styleOptionsFromFlags collects the style flags that were set.
func styleOptionsFromFlags(c *cli.Context) config.StyleOptions {
	opts := config.StyleOptions{
		FontName:  c.String("font"),
		FontSize:  c.Int("font-size"),
		Position:  c.String("position"),
		TextColor: c.String("text-color"),
		BgColor:   c.String("bg-color"),
	}
	if c.IsSet("bg-opacity") {
		v := c.Float64("bg-opacity")
		opts.BgOpacity = &v
	}
	return opts
}

// withDefaults fills unset style options from the configuration.
func withDefaults(cfg config.Config, opts config.StyleOptions) config.StyleOptions {
	if opts.FontName == "" {
		opts.FontName = cfg.DefaultFont
	}
	if opts.FontSize == 0 {
		opts.FontSize = cfg.DefaultFontSize
	}
	if opts.Position == "" {
		opts.Position = cfg.DefaultPosition
	}
	if opts.TextColor == "" {
		opts.TextColor = cfg.DefaultTextColor
	}
	if opts.BgColor == "" {
		opts.BgColor = cfg.DefaultBgColor
	}
	if opts.BgOpacity == nil {
		v := cfg.DefaultBgOpacity
		opts.BgOpacity = &v
	}
	return opts
}

// promptStyle asks for every style option the flags left unset.
func promptStyle(p *prompter, e *env, opts config.StyleOptions) (config.StyleOptions, error) {
	var err error
	cfg := e.cfg

	if opts.FontName == "" {
		fonts, listErr := fontstore.New(e.fs, cfg.FontsDir).List()
		if listErr == nil && len(fonts) > 0 {
			if opts.FontName, err = p.choose(l10n.T("Available fonts:"), fonts, cfg.DefaultFont); err != nil {
				return opts, err
			}
		}
	}
	if opts.FontSize == 0 {
		sizes := make([]string, len(cfg.FontSizes))
		for i, s := range cfg.FontSizes {
			sizes[i] = strconv.Itoa(s)
		}
		answer, err := p.choose(l10n.T("Available font sizes:"), sizes, strconv.Itoa(cfg.DefaultFontSize))
		if err != nil {
			return opts, err
		}
		if opts.FontSize, err = strconv.Atoi(answer); err != nil {
			return opts, fmt.Errorf("font size %q: %w", answer, err)
		}
	}
	if opts.Position == "" {
		if opts.Position, err = p.choose(l10n.T("Available positions:"), pipeline.AnchorNames(), cfg.DefaultPosition); err != nil {
			return opts, err
		}
	}
	if opts.TextColor == "" {
		if opts.TextColor, err = p.choose(l10n.T("Available text colors:"), cfg.ColorNames(), cfg.DefaultTextColor); err != nil {
			return opts, err
		}
	}
	if opts.BgColor == "" {
		if opts.BgColor, err = p.choose(l10n.T("Available background colors:"), cfg.ColorNames(), cfg.DefaultBgColor); err != nil {
			return opts, err
		}
	}
	if opts.BgOpacity == nil {
		v, err := p.askFloat(l10n.T("Background opacity (0-1)"), cfg.DefaultBgOpacity, 0, 1)
		if err != nil {
			return opts, err
		}
		opts.BgOpacity = &v
	}
	return opts, nil
}

// debugSink returns a file sink when debug output is enabled.
func debugSink(c *cli.Context, e *env) ports.DebugSink {
	if !c.Bool("debug") && !e.cfg.Debug {
		return nullsink.New()
	}
	dir := e.cfg.DebugDir
	if c.IsSet("debug-dir") {
		dir = c.Path("debug-dir")
	}
	return filesink.New(dir, e.fs, e.renderer)
}

// outputFormat resolves the format flag against the configuration.
func outputFormat(c *cli.Context, cfg config.Config) (ports.ImageFormat, int, error) {
	name := cfg.OutputFormat
	if c.IsSet("format") {
		name = c.String("format")
	}
	format := ports.ParseImageFormat(name)
	if name != "" && format == ports.FormatAuto {
		return format, 0, fmt.Errorf("unsupported format %q", name)
	}
	quality := cfg.JPEGQuality
	if c.IsSet("quality") {
		quality = c.Int("quality")
	}
	if quality < 1 || quality > 100 {
		return format, 0, fmt.Errorf("quality %d out of range 1-100", quality)
	}
	return format, quality, nil
}

func newOrchestrator(e *env, sink ports.DebugSink) (*orchestrator.Orchestrator, error) {
	text, img, err := newGenerators(e.cfg, e.renderer)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(
		caption.NewStage(text, e.log),
		background.NewStage(img, e.renderer, e.log),
		overlay.NewStage(e.renderer, e.fs, e.cfg.FontsDir, e.log),
		e.renderer,
		e.fs,
		sink,
		e.log,
	), nil
}

// =============================================================================
// generate
// =============================================================================

func generateCommand(sio *stdio) *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Usage:       l10n.T("Generate an offer image from a prompt"),
		Description: l10n.T("Generate offer text and a background image, then overlay the text. Unset options are asked for interactively on a terminal."),
		Flags: concat(
			[]cli.Flag{
				&cli.StringFlag{Name: "prompt", Usage: l10n.T("What the offer is about"), Category: l10n.T("Offer")},
				&cli.IntFlag{Name: "word-limit", Aliases: []string{"w"}, Usage: l10n.T("Maximum number of words in the offer (1-100)"), Category: l10n.T("Offer")},
				&cli.PathFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for generated images"), Category: l10n.T("Output")},
				&cli.PathFlag{Name: "summary", Usage: l10n.T("Write a Markdown summary to this path"), Category: l10n.T("Output")},
			},
			styleFlags(),
			outputFlags(),
			debugFlags(),
		),
		Action: func(c *cli.Context) error {
			return runGenerate(c, sio)
		},
	}
}

func runGenerate(c *cli.Context, sio *stdio) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	p := newPrompter(sio.in, sio.out)

	prompt := c.String("prompt")
	if prompt == "" {
		if !sio.interactive {
			return fmt.Errorf("--prompt is required")
		}
		if prompt, err = p.ask(l10n.T("Enter the offer prompt"), ""); err != nil {
			return err
		}
	}

	wordLimit := e.cfg.DefaultWordLimit
	if c.IsSet("word-limit") {
		wordLimit = c.Int("word-limit")
	} else if sio.interactive {
		if wordLimit, err = p.askInt(l10n.T("Enter word limit"), wordLimit, caption.MinWordLimit, caption.MaxWordLimit); err != nil {
			return err
		}
	}
	if wordLimit < caption.MinWordLimit || wordLimit > caption.MaxWordLimit {
		return fmt.Errorf("word limit %d out of range %d-%d", wordLimit, caption.MinWordLimit, caption.MaxWordLimit)
	}

	opts := styleOptionsFromFlags(c)
	if sio.interactive {
		if opts, err = promptStyle(p, e, opts); err != nil {
			return err
		}
	}
	opts = withDefaults(e.cfg, opts)
	style, err := e.cfg.BuildStyle(opts)
	if err != nil {
		return err
	}

	format, quality, err := outputFormat(c, e.cfg)
	if err != nil {
		return err
	}
	outputDir := e.cfg.ImagesDir
	if c.IsSet("output-dir") {
		outputDir = c.Path("output-dir")
	}

	orch, err := newOrchestrator(e, debugSink(c, e))
	if err != nil {
		return err
	}

	result, err := orch.Run(c.Context, orchestrator.Config{
		Prompt:    prompt,
		WordLimit: wordLimit,
		Style:     style,
		OutputDir: outputDir,
		Format:    format,
		Quality:   quality,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(sio.out, l10n.F("Offer text: %s", result.OfferText))
	fmt.Fprintln(sio.out, l10n.F("Initial image: %s", result.InitialPath))
	fmt.Fprintln(sio.out, l10n.F("Final image: %s", result.FinalPath))

	if path := c.Path("summary"); path != "" {
		if err := writeSummary(e, path, result, wordLimit, opts, format); err != nil {
			e.log.Warn("Failed to write summary: %s", err.Error())
		}
	}
	return nil
}

func writeSummary(e *env, path string, r orchestrator.RunResult, wordLimit int, opts config.StyleOptions, format ports.ImageFormat) error {
	var size int64
	if data, err := e.fs.ReadFile(r.FinalPath); err == nil {
		size = int64(len(data))
	}
	compositing := ""
	if r.CompositingErr != nil {
		compositing = r.CompositingErr.Error()
	}

	s := summarizer.NewBuilder().
		WithOffer(r.Prompt, r.OfferText, wordLimit, r.CaptionFallback).
		WithStyle(summarizer.StyleInfo{
			FontName:          opts.FontName,
			FontSize:          r.Style.FontSize,
			Position:          r.Style.Anchor.String(),
			TextColor:         opts.TextColor,
			BackgroundColor:   opts.BgColor,
			BackgroundOpacity: r.Style.BackgroundOpacity,
			FontFallback:      r.FontFallback,
		}).
		WithLayout(summarizer.LayoutInfo{
			OriginX:    r.Layout.Origin.X,
			OriginY:    r.Layout.Origin.Y,
			TextWidth:  r.Layout.Text.Width,
			TextHeight: r.Layout.Text.Height,
			Padding:    r.Layout.Padding,
			Left:       r.Layout.Box.Left,
			Top:        r.Layout.Box.Top,
			Right:      r.Layout.Box.Right,
			Bottom:     r.Layout.Box.Bottom,
		}).
		WithOutput(summarizer.OutputInfo{
			InitialPath:        r.InitialPath,
			FinalPath:          r.FinalPath,
			FileSize:           size,
			Width:              r.ImageWidth,
			Height:             r.ImageHeight,
			Format:             format.String(),
			BackgroundFallback: r.BackgroundFallback,
			CompositingError:   compositing,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, e.fs).Write(path, s)
}

// =============================================================================
// overlay
// =============================================================================

func overlayCommand(sio *stdio) *cli.Command {
	return &cli.Command{
		Name:      "overlay",
		Usage:     l10n.T("Overlay text onto an existing image"),
		ArgsUsage: l10n.T("<input image>"),
		Flags: concat(
			[]cli.Flag{
				&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: l10n.T("Text to draw"), Required: true, Category: l10n.T("Offer")},
				&cli.PathFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output image path (required)"), Required: true, Category: l10n.T("Output")},
			},
			styleFlags(),
			outputFlags(),
			debugFlags(),
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one input image, got %d arguments", c.NArg())
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			style, err := e.cfg.BuildStyle(styleOptionsFromFlags(c))
			if err != nil {
				return err
			}

			format := ports.FormatAuto
			if c.IsSet("format") {
				if format = ports.ParseImageFormat(c.String("format")); format == ports.FormatAuto {
					return fmt.Errorf("unsupported format %q", c.String("format"))
				}
			}
			quality := e.cfg.JPEGQuality
			if c.IsSet("quality") {
				quality = c.Int("quality")
			}

			// Only the overlay stage runs for existing images.
			orch := orchestrator.New(
				unavailable[pipeline.CaptionInput, pipeline.CaptionResult]("caption"),
				unavailable[pipeline.BackgroundInput, pipeline.BackgroundResult]("background"),
				overlay.NewStage(e.renderer, e.fs, e.cfg.FontsDir, e.log),
				e.renderer, e.fs, debugSink(c, e), e.log)

			output := c.Path("output")
			result, err := orch.Overlay(c.Context, orchestrator.OverlayConfig{
				InputPath:  c.Args().First(),
				OutputPath: output,
				Text:       c.String("text"),
				Style:      style,
				Format:     format,
				Quality:    quality,
			})
			if err != nil {
				return err
			}
			if result.Err != nil {
				fmt.Fprintln(sio.out, l10n.F("Text could not be drawn, the image was saved unchanged: %s", result.Err.Error()))
			}
			fmt.Fprintln(sio.out, l10n.F("Final image: %s", filepath.Clean(output)))
			return nil
		},
	}
}

// unavailable stands in for a stage that the command never runs.
func unavailable[In, Out any](name string) pipeline.Stage[In, Out] {
	return pipeline.StageFunc[In, Out](func(ctx context.Context, _ In) (Out, error) {
		var zero Out
		return zero, fmt.Errorf("%s stage is not available", name)
	})
}

// =============================================================================
// fonts
// =============================================================================

func fontsCommand(sio *stdio) *cli.Command {
	return &cli.Command{
		Name:  "fonts",
		Usage: l10n.T("List fonts available in the fonts directory"),
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			store := fontstore.New(e.fs, e.cfg.FontsDir)
			fonts, err := store.List()
			if err != nil {
				return err
			}
			if len(fonts) == 0 {
				fmt.Fprintln(sio.out, l10n.F("No fonts found in %s", store.Dir()))
				return nil
			}
			for _, f := range fonts {
				fmt.Fprintln(sio.out, f)
			}
			return nil
		},
	}
}

// =============================================================================
// serve
// =============================================================================

func serveCommand(sio *stdio) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: l10n.T("Run the HTTP API server"),
		Flags: concat(
			[]cli.Flag{
				&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: l10n.T("Listen address"), EnvVars: []string{"OFFERGEN_ADDR"}, Category: l10n.T("Server")},
			},
			debugFlags(),
		),
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				e.cfg.Server.Addr = c.String("addr")
			}

			if e.cfg.Server.LogFormat == "json" && !c.Bool("quiet") {
				z, err := logger.NewZap(e.cfg.Server.Mode, ports.ParseLogLevel(e.cfg.LogLevel))
				if err != nil {
					return fmt.Errorf("create logger: %w", err)
				}
				defer func() { _ = z.Sync() }()
				e.log = z
			}
			gin.SetMode(e.cfg.Server.Mode)

			orch, err := newOrchestrator(e, debugSink(c, e))
			if err != nil {
				return err
			}
			fonts := fontstore.New(e.fs, e.cfg.FontsDir)
			srv := server.New(e.cfg, orch, fonts, e.fs, e.log, version)
			return srv.Run(c.Context, e.cfg.Server.Addr)
		},
	}
}
