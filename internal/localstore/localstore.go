// Package localstore is the local fallback persistence used when the remote
// store is unreachable: whole-value JSON reads and writes keyed by file, no
// partial updates.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xyz-asif/datejar/internal/jar"
)

const (
	ideasFile            = "ideas.json"
	activeCollectionFile = "active_collection.json"
	settingsFile         = "settings.json"
	categoriesFile       = "custom_categories.json"
)

// Settings are free-form user preferences, persisted locally only.
type Settings struct {
	Theme         string `json:"theme"`
	Density       string `json:"density"`
	ConfirmDelete bool   `json:"confirmDelete"`
	AccentColor   string `json:"accentColor"`
	ShowConfetti  bool   `json:"showConfetti"`
}

// DefaultSettings returns the first-run preferences.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "light",
		Density:       "comfortable",
		ConfirmDelete: true,
		AccentColor:   "rose",
		ShowConfetti:  true,
	}
}

// Store persists snapshots under a single data directory.
type Store struct {
	dir string
}

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveIdeas writes the full idea list snapshot.
func (s *Store) SaveIdeas(ideas []jar.Idea) error {
	return s.writeJSON(ideasFile, ideas)
}

// LoadIdeas reads the snapshot; a missing file yields an empty list.
func (s *Store) LoadIdeas() ([]jar.Idea, error) {
	var ideas []jar.Idea
	if err := s.readJSON(ideasFile, &ideas); err != nil {
		return nil, err
	}
	if ideas == nil {
		ideas = []jar.Idea{}
	}
	return ideas, nil
}

// SaveActiveCollection remembers the collection the user last worked in.
func (s *Store) SaveActiveCollection(name string) error {
	return s.writeJSON(activeCollectionFile, name)
}

// LoadActiveCollection returns the remembered collection, or the default.
func (s *Store) LoadActiveCollection() (string, error) {
	var name string
	if err := s.readJSON(activeCollectionFile, &name); err != nil {
		return "", err
	}
	if name == "" {
		name = jar.DefaultCollection
	}
	return name, nil
}

func (s *Store) SaveSettings(settings Settings) error {
	return s.writeJSON(settingsFile, settings)
}

func (s *Store) LoadSettings() (Settings, error) {
	settings := DefaultSettings()
	path := filepath.Join(s.dir, settingsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}
	if err := s.readJSON(settingsFile, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Store) SaveCustomCategories(categories []string) error {
	return s.writeJSON(categoriesFile, categories)
}

func (s *Store) LoadCustomCategories() ([]string, error) {
	var categories []string
	if err := s.readJSON(categoriesFile, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// writeJSON writes atomically via a temp file rename so a crash mid-write
// never corrupts the last good snapshot.
func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
