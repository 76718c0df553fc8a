// Package fontstore manages the font files available to the overlay stage.
package fontstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/offergen/pkg/ports"
)

// ErrInvalidFontName is returned for names that are not plain font file names.
var ErrInvalidFontName = errors.New("invalid font name")

// Extensions lists the accepted font file extensions.
var Extensions = []string{".ttf", ".otf", ".ttc"}

// Store lists and saves fonts inside a single directory.
type Store struct {
	fs  ports.FileSystem
	dir string
}

// New creates a store rooted at dir.
func New(fs ports.FileSystem, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the fonts directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the font file names in the directory.
func (s *Store) List() ([]string, error) {
	names, err := s.fs.ListDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}
	fonts := make([]string, 0, len(names))
	for _, name := range names {
		if hasFontExt(name) {
			fonts = append(fonts, name)
		}
	}
	return fonts, nil
}

// Save writes a font file. The name must be a base name with a font extension.
func (s *Store) Save(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidFontName, name)
	}
	if err := s.fs.WriteFile(filepath.Join(s.dir, name), data); err != nil {
		return fmt.Errorf("save font %s: %w", name, err)
	}
	return nil
}

// ValidateName checks that name is a plain font file name.
func ValidateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidFontName, name)
	}
	if !hasFontExt(name) {
		return fmt.Errorf("%w: %q must end in %s", ErrInvalidFontName, name, strings.Join(Extensions, ", "))
	}
	return nil
}

func hasFontExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
