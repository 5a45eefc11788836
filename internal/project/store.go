// internal/project/store.go
//
// Snapshot persistence for a scoping session. The whole project (domain
// state plus panel state) round-trips through one yaml file under
// .sds/state/, loaded on start and autosaved on every committed change.

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samedayscope/sds/internal/scope"
)

// SnapshotVersion guards against loading files written by an
// incompatible build.
const SnapshotVersion = 1

// Snapshot is the on-disk shape of a session.
type Snapshot struct {
	Version int                         `yaml:"version"`
	SavedAt time.Time                   `yaml:"saved_at"`
	State   scope.ProjectState          `yaml:"state"`
	Panels  map[string]scope.PanelState `yaml:"panels,omitempty"`
}

// Store reads and writes snapshots at a fixed path.
type Store struct {
	path string
	now  func() time.Time
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithClock overrides the clock used for the saved-at timestamp.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewStore builds a snapshot store for the given file path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Save writes the session to disk.
func (s *Store) Save(state scope.ProjectState, panels map[string]scope.PanelState) error {
	snap := Snapshot{
		Version: SnapshotVersion,
		SavedAt: s.now().UTC(),
		State:   state,
		Panels:  panels,
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("project: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("project: ensure state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("project: write snapshot: %w", err)
	}
	return nil
}

// Load reads the session back. A missing file returns an empty snapshot
// so a fresh project starts cleanly.
func (s *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{Version: SnapshotVersion}, nil
		}
		return Snapshot{}, fmt.Errorf("project: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("project: parse snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("project: snapshot version %d is not supported", snap.Version)
	}
	return snap, nil
}
