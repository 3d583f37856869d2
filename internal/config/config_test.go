package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	studioDir := filepath.Join(projectDir, StudioDir)
	if err := os.MkdirAll(studioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, StudioProjectDir: studioDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.BlockSize() != defaultBlockSize {
		t.Fatalf("expected default block size %d, got %d", defaultBlockSize, c.BlockSize())
	}
	if c.ListenAddr() != defaultListenAddr {
		t.Fatalf("expected default listen addr %q, got %q", defaultListenAddr, c.ListenAddr())
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	studioDir := filepath.Join(projectDir, StudioDir)
	if err := os.MkdirAll(studioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
designer:
  block_size: 7
  pattern_rows: 10
  pattern_cols: 8
server:
  listen: 0.0.0.0:9000
palettes:
  - name: Classic
    roles:
      - name: Background
        color: "#f5f0e8"
      - name: Feature
        color: "#B03A48"
`)
	if err := os.WriteFile(filepath.Join(studioDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, StudioProjectDir: studioDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.BlockSize() != 7 {
		t.Fatalf("wrong block size: %d", c.BlockSize())
	}
	rows, cols := c.PatternLayout()
	if rows != 10 || cols != 8 {
		t.Fatalf("wrong pattern layout: %dx%d", rows, cols)
	}
	if c.ListenAddr() != "0.0.0.0:9000" {
		t.Fatalf("wrong listen addr: %s", c.ListenAddr())
	}
	if len(c.Palettes()) != 1 {
		t.Fatalf("expected 1 palette preset, got %d", len(c.Palettes()))
	}
	if got := c.Palettes()[0].Roles[0].Color; got != "#F5F0E8" {
		t.Fatalf("expected normalized color, got %s", got)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"block size too large", "designer:\n  block_size: 12\n"},
		{"bad listen addr", "server:\n  listen: not-an-addr\n"},
		{"bad palette color", "palettes:\n  - name: Bad\n    roles:\n      - name: X\n        color: red\n"},
		{"unnamed preset", "palettes:\n  - roles:\n      - name: X\n        color: \"#112233\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			projectDir := t.TempDir()
			studioDir := filepath.Join(projectDir, StudioDir)
			if err := os.MkdirAll(studioDir, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(studioDir, "config.yaml"), []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			c := &Config{ProjectDir: projectDir, StudioProjectDir: studioDir, Project: defaultProjectConfig()}
			if err := c.loadProjectConfig(); err == nil {
				t.Fatal("expected validation error but got none")
			}
		})
	}
}

func TestInitStudioDirSeedsConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitStudioDir(projectDir); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"drafts", "logs", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(projectDir, StudioDir, sub)); err != nil {
			t.Fatalf("expected %s to exist: %v", sub, err)
		}
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Palettes()) != 2 {
		t.Fatalf("seeded config should carry 2 presets, got %d", len(cfg.Palettes()))
	}
}
