// Package main provides the CLI entry point for offergen.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/offergen/pkg/adapters/ggrenderer"
	"github.com/user/offergen/pkg/adapters/logger"
	"github.com/user/offergen/pkg/adapters/osfilesystem"
	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/ports"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if err := newApp(os.Stdin, os.Stdout, interactive).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Prompts read from in and write to out
// when interactive is true.
func newApp(in io.Reader, out io.Writer, interactive bool) *cli.App {
	sio := &stdio{in: in, out: out, interactive: interactive}

	return &cli.App{
		Name:        "offergen",
		Usage:       l10n.T("Generate promotional offer images with captioned text"),
		Description: l10n.T("offergen writes offer copy and a background image with a generative service, then draws the copy onto the image."),
		HideVersion: true,
		Writer:      out,
		ErrWriter:   out,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				EnvVars:  []string{"OFFERGEN_CONFIG"},
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Commands: []*cli.Command{
			generateCommand(sio),
			overlayCommand(sio),
			fontsCommand(sio),
			serveCommand(sio),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(out, l10n.F("offergen version %s", version))
					return nil
				},
			},
		},
	}
}

// stdio carries the terminal streams into commands.
type stdio struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// env holds the adapters shared by all commands.
type env struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	renderer ports.Renderer
}

// setup loads configuration and creates the common adapters.
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	return &env{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
	}, nil
}
