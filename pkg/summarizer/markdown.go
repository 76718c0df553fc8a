package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Translator maps a label to its localized form.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as Markdown.
type MarkdownFormatter struct {
	t       Translator
	version string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) Option {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a formatter. Labels are untranslated by default.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{t: func(key string) string { return key }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.t

	fmt.Fprintf(&b, "# %s\n\n", t("Offer Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Offer"))
	f.row(&b, "Prompt", s.Offer.Prompt)
	f.row(&b, "Offer Text", withNote(s.Offer.Text, s.Offer.Fallback, t("fallback")))
	if s.Offer.WordLimit > 0 {
		f.row(&b, "Word Limit", fmt.Sprintf("%d", s.Offer.WordLimit))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Style"))
	f.row(&b, "Font", withNote(fmt.Sprintf("%s (%d px)", s.Style.FontName, s.Style.FontSize), s.Style.FontFallback, t("default font used")))
	f.row(&b, "Position", s.Style.Position)
	f.row(&b, "Text Color", s.Style.TextColor)
	f.row(&b, "Background", fmt.Sprintf("%s @ %.0f%%", s.Style.BackgroundColor, s.Style.BackgroundOpacity*100))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Layout"))
	f.row(&b, "Text Origin", fmt.Sprintf("(%d, %d)", s.Layout.OriginX, s.Layout.OriginY))
	f.row(&b, "Text Size", fmt.Sprintf("%dx%d", s.Layout.TextWidth, s.Layout.TextHeight))
	f.row(&b, "Padding", fmt.Sprintf("%d px", s.Layout.Padding))
	f.row(&b, "Panel", fmt.Sprintf("(%d, %d) - (%d, %d)", s.Layout.Left, s.Layout.Top, s.Layout.Right, s.Layout.Bottom))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	f.row(&b, "Initial Image", s.Output.InitialPath)
	f.row(&b, "Final Image", s.Output.FinalPath)
	if s.Output.Width > 0 {
		f.row(&b, "Image Size", withNote(fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height), s.Output.BackgroundFallback, t("blank background")))
	}
	if s.Output.Format != "" {
		f.row(&b, "Format", strings.ToUpper(s.Output.Format))
	}
	if s.Output.FileSize > 0 {
		f.row(&b, "File Size", formatBytes(s.Output.FileSize))
	}
	if s.Output.CompositingError != "" {
		f.row(&b, "Compositing Error", s.Output.CompositingError)
	}
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" · offergen %s", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(b, "- **%s**: %s\n", f.t(label), value)
}

func withNote(value string, on bool, note string) string {
	if !on {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, note)
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
