package orchestrator

import (
	"strings"
	"time"
	"unicode"
)

// maxSlugRunes caps the text part of generated file names.
const maxSlugRunes = 40

// TimestampFilename builds "<slug>_<YYYYMMDD_HHMMSS><suffix>" from offer text.
func TimestampFilename(text, suffix string, t time.Time) string {
	return Slug(text) + "_" + t.Format("20060102_150405") + suffix
}

// Slug lower-cases text, turns spaces into underscores and drops characters
// that are unsafe in file names. Empty results become "offer".
func Slug(text string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if n == maxSlugRunes {
			break
		}
		switch {
		case r == ' ':
			r = '_'
		case r == '-' || r == '_':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			continue
		}
		b.WriteRune(r)
		n++
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "offer"
	}
	return slug
}
