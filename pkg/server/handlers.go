package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/user/offergen/pkg/config"
	"github.com/user/offergen/pkg/fontstore"
	"github.com/user/offergen/pkg/orchestrator"
	"github.com/user/offergen/pkg/pipeline"
	"github.com/user/offergen/pkg/ports"
	"github.com/user/offergen/pkg/stages/caption"
)

// maxUploadBytes bounds uploaded font files.
const maxUploadBytes = 32 << 20

// OfferRequest is the body of POST /generate-offer.
type OfferRequest struct {
	Prompt    string   `json:"prompt" binding:"required"`
	WordLimit int      `json:"word_limit"`
	FontName  string   `json:"font_name"`
	FontSize  int      `json:"font_size"`
	Position  string   `json:"position"`
	TextColor string   `json:"text_color"`
	BgColor   string   `json:"bg_color"`
	BgOpacity *float64 `json:"bg_opacity"`
}

// OfferResponse is the body returned by POST /generate-offer.
type OfferResponse struct {
	OfferText       string `json:"offer_text"`
	InitialImageURL string `json:"initial_image_url"`
	FinalImageURL   string `json:"final_image_url"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) generateOffer(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	wordLimit := req.WordLimit
	if wordLimit == 0 {
		wordLimit = s.cfg.DefaultWordLimit
	}
	if wordLimit < caption.MinWordLimit || wordLimit > caption.MaxWordLimit {
		c.JSON(http.StatusBadRequest, errorResponse{
			Detail: fmt.Sprintf("word_limit must be between %d and %d", caption.MinWordLimit, caption.MaxWordLimit),
		})
		return
	}

	style, err := s.cfg.BuildStyle(config.StyleOptions{
		FontName:  req.FontName,
		FontSize:  req.FontSize,
		Position:  req.Position,
		TextColor: req.TextColor,
		BgColor:   req.BgColor,
		BgOpacity: req.BgOpacity,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	result, err := s.gen.Run(c.Request.Context(), orchestrator.Config{
		Prompt:    req.Prompt,
		WordLimit: wordLimit,
		Style:     style,
		OutputDir: s.cfg.ImagesDir,
		Format:    ports.ParseImageFormat(s.cfg.OutputFormat),
		Quality:   s.cfg.JPEGQuality,
	})
	if err != nil {
		var unknown *pipeline.UnknownAnchorError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		s.logger.Error("Failed to generate offer: %s", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, OfferResponse{
		OfferText:       result.OfferText,
		InitialImageURL: "/images/" + result.InitialFile,
		FinalImageURL:   "/images/" + result.FinalFile,
	})
}

func (s *Server) getImage(c *gin.Context) {
	name := c.Param("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "Image not found"})
		return
	}

	data, err := s.fs.ReadFile(filepath.Join(s.cfg.ImagesDir, name))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "Image not found"})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) listFonts(c *gin.Context) {
	fonts, err := s.fonts.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fonts": fonts})
}

func (s *Server) uploadFont(c *gin.Context) {
	header, err := c.FormFile("font")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "font file is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Detail: "font file is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	name := filepath.Base(header.Filename)
	if err := s.fonts.Save(name, data); err != nil {
		if errors.Is(err, fontstore.ErrInvalidFontName) {
			c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}

	s.logger.Info("Font %s uploaded successfully", name)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Font %s uploaded successfully", name)})
}
