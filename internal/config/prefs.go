// internal/config/prefs.go
//
// User preferences are deliberately injected rather than read from an
// ambient global, so first-run behavior (the tour overlay) is testable
// against an in-memory store.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TourSeenKey flags that the technician has dismissed the first-run tour.
const TourSeenKey = "tour_seen"

// UserPreferencesStore is a tiny key/value surface for cross-session
// flags.
type UserPreferencesStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FilePrefs is the yaml-backed preferences store.
type FilePrefs struct {
	path   string
	values map[string]string
}

// NewFilePrefs loads (or initializes) preferences at the given path.
func NewFilePrefs(path string) (*FilePrefs, error) {
	p := &FilePrefs{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("config: read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("config: parse prefs: %w", err)
	}
	if p.values == nil {
		p.values = map[string]string{}
	}
	return p, nil
}

// Get returns a stored value.
func (p *FilePrefs) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set stores a value and persists the file immediately.
func (p *FilePrefs) Set(key, value string) error {
	p.values[key] = value
	data, err := yaml.Marshal(p.values)
	if err != nil {
		return fmt.Errorf("config: encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("config: ensure prefs dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write prefs: %w", err)
	}
	return nil
}

// MemoryPrefs is an in-memory store for tests.
type MemoryPrefs map[string]string

// Get returns a stored value.
func (m MemoryPrefs) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores a value.
func (m MemoryPrefs) Set(key, value string) error {
	m[key] = value
	return nil
}
