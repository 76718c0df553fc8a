// Package summarizer provides summary generation for offer generation runs.
package summarizer

import "time"

// Summary contains all data collected during one offer generation.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Offer copy
	Offer OfferInfo

	// Caption styling
	Style StyleInfo

	// Resolved caption geometry
	Layout LayoutInfo

	// Output files
	Output OutputInfo
}

// OfferInfo describes the prompt and generated copy.
type OfferInfo struct {
	Prompt    string
	Text      string
	WordLimit int

	// Fallback is true when the built-in offer text was used.
	Fallback bool
}

// StyleInfo contains the caption style choices.
type StyleInfo struct {
	FontName          string
	FontSize          int
	Position          string
	TextColor         string
	BackgroundColor   string
	BackgroundOpacity float64

	// FontFallback is true when the requested font could not be loaded.
	FontFallback bool
}

// LayoutInfo contains the caption placement.
type LayoutInfo struct {
	OriginX, OriginY int
	TextWidth        int
	TextHeight       int
	Padding          int

	// Clipped panel box
	Left, Top, Right, Bottom int
}

// OutputInfo contains information about the written images.
type OutputInfo struct {
	InitialPath string
	FinalPath   string
	FileSize    int64
	Width       int
	Height      int
	Format      string

	// BackgroundFallback is true when the blank base image was used.
	BackgroundFallback bool

	// CompositingError holds a recovered drawing failure, if any.
	CompositingError string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithOffer sets the prompt and generated text.
func (b *Builder) WithOffer(prompt, text string, wordLimit int, fallback bool) *Builder {
	b.summary.Offer = OfferInfo{
		Prompt:    prompt,
		Text:      text,
		WordLimit: wordLimit,
		Fallback:  fallback,
	}
	return b
}

// WithStyle sets caption style information.
func (b *Builder) WithStyle(style StyleInfo) *Builder {
	b.summary.Style = style
	return b
}

// WithLayout sets caption geometry.
func (b *Builder) WithLayout(layout LayoutInfo) *Builder {
	b.summary.Layout = layout
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
