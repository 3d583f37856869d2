// internal/config/config.go
//
// This package handles configuration and the .patchwork directory
// structure. Every project that uses the studio gets a .patchwork/ folder
// created in its root, holding config.yaml, draft autosaves, the design
// library database, and session logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"patchwork/internal/design"
)

const (
	// StudioDir is the name of the directory we create in each project.
	StudioDir = ".patchwork"

	defaultBlockSize   = 5
	defaultPatternRows = 6
	defaultPatternCols = 6
	defaultListenAddr  = "127.0.0.1:8023"
)

const defaultConfigYAML = `# patchwork studio configuration
version: 1

designer:
  block_size: 5
  pattern_rows: 6
  pattern_cols: 6

server:
  listen: 127.0.0.1:8023

# Palette presets offered when creating a new design. Colors are hex.
palettes:
  - name: Classic
    roles:
      - name: Background
        color: "#F5F0E8"
      - name: Feature
        color: "#B03A48"
  - name: Coastal
    roles:
      - name: Background
        color: "#FFFFFF"
      - name: Sea
        color: "#1F6FA8"
      - name: Sand
        color: "#E8D8B0"
`

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PaletteRole is one named color inside a preset.
type PaletteRole struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// PalettePreset is a named starter palette offered for new designs.
type PalettePreset struct {
	Name  string        `yaml:"name"`
	Roles []PaletteRole `yaml:"roles"`
}

// DesignerConfig captures default canvas dimensions.
type DesignerConfig struct {
	BlockSize   int `yaml:"block_size"`
	PatternRows int `yaml:"pattern_rows"`
	PatternCols int `yaml:"pattern_cols"`
}

// ServerConfig captures the REST API listen address.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ProjectConfig models .patchwork/config.yaml.
type ProjectConfig struct {
	Version  int             `yaml:"version"`
	Designer DesignerConfig  `yaml:"designer"`
	Server   ServerConfig    `yaml:"server"`
	Palettes []PalettePreset `yaml:"palettes,omitempty"`
}

// Config holds the runtime configuration for the studio.
type Config struct {
	// ProjectDir is the directory the user ran `patchwork` from.
	ProjectDir string

	// StudioProjectDir is ProjectDir/.patchwork.
	StudioProjectDir string

	Project ProjectConfig
}

// InitStudioDir creates the .patchwork directory structure in the given
// project directory. Called on startup.
//
// Structure created:
// .patchwork/
// ├── drafts/   <- autosaved working copies, one JSON file per design
// ├── logs/     <- session logbook
// └── library.db (created lazily by the store)
func InitStudioDir(projectDir string) error {
	studioDir := filepath.Join(projectDir, StudioDir)
	dirs := []string{
		filepath.Join(studioDir, "drafts"),
		filepath.Join(studioDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(studioDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		StudioProjectDir: filepath.Join(projectDir, StudioDir),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DraftsDir returns the path to the draft autosave directory.
func (c *Config) DraftsDir() string {
	return filepath.Join(c.StudioProjectDir, "drafts")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.StudioProjectDir, "logs")
}

// LibraryPath returns the design library database file.
func (c *Config) LibraryPath() string {
	return filepath.Join(c.StudioProjectDir, "library.db")
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.StudioProjectDir, "config.yaml")
}

// BlockSize returns the default grid size for new blocks.
func (c *Config) BlockSize() int {
	return c.Project.Designer.BlockSize
}

// PatternLayout returns the default layout for new patterns.
func (c *Config) PatternLayout() (rows, cols int) {
	return c.Project.Designer.PatternRows, c.Project.Designer.PatternCols
}

// ListenAddr returns the REST API listen address.
func (c *Config) ListenAddr() string {
	return c.Project.Server.Listen
}

// Palettes returns the configured palette presets.
func (c *Config) Palettes() []PalettePreset {
	return c.Project.Palettes
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
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
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Designer: DesignerConfig{
			BlockSize:   defaultBlockSize,
			PatternRows: defaultPatternRows,
			PatternCols: defaultPatternCols,
		},
		Server: ServerConfig{Listen: defaultListenAddr},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Designer.BlockSize == 0 {
		pc.Designer.BlockSize = defaultBlockSize
	}
	if pc.Designer.PatternRows == 0 {
		pc.Designer.PatternRows = defaultPatternRows
	}
	if pc.Designer.PatternCols == 0 {
		pc.Designer.PatternCols = defaultPatternCols
	}
	if strings.TrimSpace(pc.Server.Listen) == "" {
		pc.Server.Listen = defaultListenAddr
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Server.Listen = strings.TrimSpace(pc.Server.Listen)
	for i := range pc.Palettes {
		pc.Palettes[i].Name = strings.TrimSpace(pc.Palettes[i].Name)
		for j := range pc.Palettes[i].Roles {
			role := &pc.Palettes[i].Roles[j]
			role.Name = strings.TrimSpace(role.Name)
			role.Color = strings.ToUpper(strings.TrimSpace(role.Color))
		}
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Designer.BlockSize < design.MinSize || pc.Designer.BlockSize > design.MaxSize {
		return fmt.Errorf("designer.block_size must be between %d and %d", design.MinSize, design.MaxSize)
	}
	if pc.Designer.PatternRows < design.MinLayout || pc.Designer.PatternRows > design.MaxLayout {
		return fmt.Errorf("designer.pattern_rows must be between %d and %d", design.MinLayout, design.MaxLayout)
	}
	if pc.Designer.PatternCols < design.MinLayout || pc.Designer.PatternCols > design.MaxLayout {
		return fmt.Errorf("designer.pattern_cols must be between %d and %d", design.MinLayout, design.MaxLayout)
	}
	if _, _, err := net.SplitHostPort(pc.Server.Listen); err != nil {
		return fmt.Errorf("server.listen %q: %w", pc.Server.Listen, err)
	}
	for i, preset := range pc.Palettes {
		if err := preset.validate(); err != nil {
			return fmt.Errorf("palettes[%d]: %w", i, err)
		}
	}
	return nil
}

func (p PalettePreset) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Roles) < design.MinRoles || len(p.Roles) > design.MaxRoles {
		return fmt.Errorf("must have between %d and %d roles", design.MinRoles, design.MaxRoles)
	}
	for j, role := range p.Roles {
		if role.Name == "" {
			return fmt.Errorf("roles[%d]: name is required", j)
		}
		if !hexColor.MatchString(role.Color) {
			return fmt.Errorf("roles[%d]: color %q must be #RRGGBB", j, role.Color)
		}
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
