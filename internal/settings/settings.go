// Package settings persists the user's match-style vocabulary and display font as a TOML document.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"universe-manager/internal/constants"
	"universe-manager/internal/domain"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

type Settings struct {
	MatchStyles []string `toml:"match_styles"`
	Font        string   `toml:"font"`
}

func Default() Settings {
	return Settings{
		MatchStyles: slices.Clone(constants.DefaultMatchStyles),
		Font:        constants.DefaultFont,
	}
}

func (s Settings) Validate() error {
	if !slices.Contains(constants.Fonts, s.Font) {
		return fmt.Errorf("%w: font %q (want one of %s)", domain.ErrInvalidValue, s.Font, strings.Join(constants.Fonts, ", "))
	}
	for _, style := range s.MatchStyles {
		if strings.TrimSpace(style) == "" {
			return fmt.Errorf("%w: blank match style", domain.ErrInvalidValue)
		}
	}
	return nil
}

func (s Settings) clone() Settings {
	return Settings{MatchStyles: slices.Clone(s.MatchStyles), Font: s.Font}
}

func (s Settings) equal(o Settings) bool {
	return s.Font == o.Font && slices.Equal(s.MatchStyles, o.MatchStyles)
}

// Store holds the current document and writes it back on every mutation.
type Store struct {
	path     string
	logger   zerolog.Logger
	mu       sync.RWMutex
	current  Settings
	onChange []func(Settings)
}

// Open reads the document at path, falling back to defaults when the file does not exist yet.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	current, err := load(path)
	if err != nil {
		return nil, err
	}
	s.current = current
	logger.Info().
		Str("path", path).
		Int("styles", len(current.MatchStyles)).
		Str("font", current.Font).
		Msg("settings loaded")
	return s, nil
}

func load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	doc := Default()
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("parse settings file: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return doc, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

func (s *Store) HasStyle(style string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.current.MatchStyles, style)
}

// OnChange registers fn to run after every mutation or external reload that changes the document.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// AddStyle appends style. Blank or already-present styles are ignored.
func (s *Store) AddStyle(style string) (Settings, error) {
	style = strings.TrimSpace(style)
	return s.update(func(doc *Settings) (bool, error) {
		if style == "" || slices.Contains(doc.MatchStyles, style) {
			return false, nil
		}
		doc.MatchStyles = append(doc.MatchStyles, style)
		return true, nil
	})
}

func (s *Store) RemoveStyle(style string) (Settings, error) {
	return s.update(func(doc *Settings) (bool, error) {
		i := slices.Index(doc.MatchStyles, style)
		if i < 0 {
			return false, fmt.Errorf("%w: %q", domain.ErrStyleNotFound, style)
		}
		doc.MatchStyles = slices.Delete(doc.MatchStyles, i, i+1)
		return true, nil
	})
}

func (s *Store) SetFont(font string) (Settings, error) {
	return s.update(func(doc *Settings) (bool, error) {
		next := Settings{MatchStyles: doc.MatchStyles, Font: font}
		if err := next.Validate(); err != nil {
			return false, err
		}
		changed := doc.Font != font
		doc.Font = font
		return changed, nil
	})
}

// Reload re-reads the file and reports whether the document changed.
func (s *Store) Reload() (bool, error) {
	doc, err := load(s.path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.current.equal(doc) {
		s.mu.Unlock()
		return false, nil
	}
	s.current = doc
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()

	s.logger.Info().Str("path", s.path).Msg("settings reloaded from disk")
	for _, fn := range hooks {
		fn(doc.clone())
	}
	return true, nil
}

func (s *Store) update(mutate func(doc *Settings) (bool, error)) (Settings, error) {
	s.mu.Lock()
	doc := s.current.clone()
	changed, err := mutate(&doc)
	if err != nil || !changed {
		current := s.current.clone()
		s.mu.Unlock()
		return current, err
	}
	if err := save(s.path, doc); err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}
	s.current = doc
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(doc.clone())
	}
	return doc.clone(), nil
}

// save writes through a temp file and rename so watchers never observe a partial document.
func save(path string, doc Settings) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
