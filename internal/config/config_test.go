package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitScopeDirCreatesStructure(t *testing.T) {
	dir := t.TempDir()
	if err := InitScopeDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, sub := range []string{"logs", "state", "reports"} {
		p := filepath.Join(dir, ScopeDir, sub)
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("missing dir %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ScopeDir, "config.yaml")); err != nil {
		t.Fatalf("config.yaml not seeded: %v", err)
	}
}

func TestInitScopeDirKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	if err := InitScopeDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(dir, ScopeDir, "config.yaml")
	custom := []byte("version: 1\nbranding:\n  company: Acme\n")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := InitScopeDir(dir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != string(custom) {
		t.Fatalf("config.yaml overwritten: %q, %v", data, err)
	}
}

func TestNewConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Project.Branding.Company != "Same Day Scope" {
		t.Fatalf("company = %q", cfg.Project.Branding.Company)
	}
	if len(cfg.Floors()) == 0 {
		t.Fatalf("default floors missing")
	}
}

func TestNewConfigLoadsAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	if err := InitScopeDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	yaml := `version: 1
branding:
  company: "  Acme Restoration  "
  logo_paths:
    - assets/logo.png
floors:
  - " Basement "
  - ""
  - Floor 1
`
	path := filepath.Join(dir, ScopeDir, "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Project.Branding.Company != "Acme Restoration" {
		t.Fatalf("company = %q", cfg.Project.Branding.Company)
	}
	wantLogo := filepath.Join(dir, "assets", "logo.png")
	if got := cfg.Project.Branding.LogoPaths[0]; got != wantLogo {
		t.Fatalf("logo path = %q, want %q", got, wantLogo)
	}
	floors := cfg.Floors()
	if len(floors) != 2 || floors[0] != "Basement" || floors[1] != "Floor 1" {
		t.Fatalf("floors = %v", floors)
	}
}

func TestNewConfigRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	if err := InitScopeDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(dir, ScopeDir, "config.yaml")
	if err := os.WriteFile(path, []byte("version: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewConfig(dir); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{ProjectDir: "/job", ScopeProjectDir: "/job/.sds"}
	if got := cfg.SnapshotPath(); got != filepath.Join("/job/.sds", "state", "project.yaml") {
		t.Fatalf("snapshot path = %q", got)
	}
	if got := cfg.PrefsPath(); got != filepath.Join("/job/.sds", "prefs.yaml") {
		t.Fatalf("prefs path = %q", got)
	}
}
