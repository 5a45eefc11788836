// internal/config/config.go
//
// This package handles configuration and the .sds directory structure.
// Every project scoped with sds gets a .sds/ folder created where the
// technician ran the tool.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ScopeDir is the name of the directory we create per project.
	ScopeDir = ".sds"

	defaultCompany = "Same Day Scope"
	defaultTagline = "Property Restoration & Pack-out"
)

const defaultProjectConfigYAML = `# sds project configuration
version: 1

branding:
  company: Same Day Scope
  tagline: Property Restoration & Pack-out
  # logo_paths lists image files tried in order for the print letterhead.
  # When none exists the company name renders as text.
  logo_paths: []

# Floor choices offered when adding rooms. Basement and Attic are always
# recognized by name even if removed here.
floors:
  - Basement
  - Floor 1
  - Floor 2
  - Attic
`

// BrandingConfig is the letterhead block of config.yaml.
type BrandingConfig struct {
	Company   string   `yaml:"company"`
	Tagline   string   `yaml:"tagline,omitempty"`
	LogoPaths []string `yaml:"logo_paths,omitempty"`
}

// ProjectConfig models .sds/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Branding BrandingConfig `yaml:"branding"`
	Floors   []string       `yaml:"floors,omitempty"`
}

// Config holds the runtime configuration for sds.
type Config struct {
	// ProjectDir is the directory where the user ran `sds` from.
	ProjectDir string

	// ScopeProjectDir is ProjectDir/.sds.
	ScopeProjectDir string

	Project ProjectConfig
}

// InitScopeDir creates the .sds directory structure in the given project
// directory. Called on every startup; existing content is left alone.
//
// Structure created:
// .sds/
// ├── logs/     <- journey log
// ├── state/    <- project snapshot
// └── reports/  <- exported print documents
func InitScopeDir(projectDir string) error {
	scopeDir := filepath.Join(projectDir, ScopeDir)
	dirs := []string{
		filepath.Join(scopeDir, "logs"),
		filepath.Join(scopeDir, "state"),
		filepath.Join(scopeDir, "reports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(scopeDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		ScopeProjectDir: filepath.Join(projectDir, ScopeDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ScopeProjectDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.ScopeProjectDir, "state")
}

// ReportsDir returns the path exported print documents are written to.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.ScopeProjectDir, "reports")
}

// SnapshotPath returns the project snapshot file.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.StateDir(), "project.yaml")
}

// PrefsPath returns the user preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.ScopeProjectDir, "prefs.yaml")
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ScopeProjectDir, "config.yaml")
}

// Floors returns the configured floor choices.
func (c *Config) Floors() []string {
	return c.Project.Floors
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Branding: BrandingConfig{
			Company: defaultCompany,
			Tagline: defaultTagline,
		},
		Floors: []string{"Basement", "Floor 1", "Floor 2", "Attic"},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Branding.Company) == "" {
		pc.Branding.Company = defaultCompany
	}
	if len(pc.Floors) == 0 {
		pc.Floors = []string{"Basement", "Floor 1", "Floor 2", "Attic"}
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Branding.Company = strings.TrimSpace(pc.Branding.Company)
	pc.Branding.Tagline = strings.TrimSpace(pc.Branding.Tagline)
	for i, p := range pc.Branding.LogoPaths {
		pc.Branding.LogoPaths[i] = resolvePath(base, p)
	}
	floors := pc.Floors[:0]
	for _, f := range pc.Floors {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			floors = append(floors, trimmed)
		}
	}
	pc.Floors = floors
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Branding.Company == "" {
		return fmt.Errorf("branding.company is required")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
