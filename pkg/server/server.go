// Package server exposes offer generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/fontstore"
	"github.com/user/offergen/pkg/orchestrator"
	"github.com/user/offergen/pkg/ports"
)

// Generator runs the offer pipeline.
type Generator interface {
	Run(ctx context.Context, config orchestrator.Config) (orchestrator.RunResult, error)
}

// Server serves the HTTP API.
type Server struct {
	cfg     config.Config
	gen     Generator
	fonts   *fontstore.Store
	fs      ports.FileSystem
	logger  ports.Logger
	version string
}

// New creates a new Server.
func New(cfg config.Config, gen Generator, fonts *fontstore.Store, fs ports.FileSystem, logger ports.Logger, version string) *Server {
	return &Server{
		cfg:     cfg,
		gen:     gen,
		fonts:   fonts,
		fs:      fs,
		logger:  logger.WithComponent("server"),
		version: version,
	}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/health", s.health)
	r.POST("/generate-offer", s.generateOffer)
	r.GET("/images/:name", s.getImage)
	r.GET("/fonts", s.listFonts)
	r.POST("/upload-font", s.uploadFont)

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("%s %s -> %d (%s)", c.Request.Method, path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
