package config

import (
	"path/filepath"
	"testing"
)

func TestFilePrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	p, err := NewFilePrefs(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := p.Get(TourSeenKey); ok {
		t.Fatalf("fresh prefs should be empty")
	}
	if err := p.Set(TourSeenKey, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reloaded, err := NewFilePrefs(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, ok := reloaded.Get(TourSeenKey); !ok || v != "true" {
		t.Fatalf("got %q, %v after reload", v, ok)
	}
}

func TestMemoryPrefs(t *testing.T) {
	m := MemoryPrefs{}
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := m.Get("k"); !ok || v != "v" {
		t.Fatalf("got %q, %v", v, ok)
	}
}
