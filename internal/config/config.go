package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the per-repository configuration file, found at the repo root.
const FileName = ".slicer.toml"

// Config captures the user editable settings stored in .slicer.toml.
type Config struct {
	Slices       []string   `toml:"slices"`
	Contracts    string     `toml:"contracts"`
	BranchPrefix string     `toml:"branch_prefix"`
	DirPrefix    string     `toml:"dir_prefix"`
	Setup        SetupBlock `toml:"setup"`
}

// SetupBlock describes the external commands and template overlay used by
// the setup command.
type SetupBlock struct {
	Generator   string   `toml:"generator"`
	Backend     string   `toml:"backend"`
	TemplateDir string   `toml:"template_dir"`
	Overlay     []string `toml:"overlay"`
	Placeholder string   `toml:"placeholder"`
}

var (
	// ErrNoSlices indicates the slice list is empty.
	ErrNoSlices = errors.New("config.slices must list at least one slice")
	// ErrContractsNotListed indicates the contracts slice is missing from the list.
	ErrContractsNotListed = errors.New("config.contracts must be one of config.slices")
)

// Default returns the baseline configuration: the canonical five-slice
// layout with the conventional branch and directory prefixes.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Slices) == 0 {
		c.Slices = []string{"contracts", "frontend", "ui", "backend", "data"}
	}
	if c.Contracts == "" {
		c.Contracts = c.Slices[0]
	}
	if c.BranchPrefix == "" {
		c.BranchPrefix = "slice/"
	}
	if c.DirPrefix == "" {
		c.DirPrefix = "slice-"
	}
	c.Setup.applyDefaults()
}

func (s *SetupBlock) applyDefaults() {
	if s.Generator == "" {
		s.Generator = "npx --yes create-next-app@latest"
	}
	if s.TemplateDir == "" {
		s.TemplateDir = "."
	}
	if len(s.Overlay) == 0 {
		s.Overlay = []string{"AGENTS.md", "openspec", ".skills"}
	}
	if s.Placeholder == "" {
		s.Placeholder = "__PROJECT_NAME__"
	}
}

// Validate ensures the configuration can drive every command uniformly.
func (c Config) Validate() error {
	if len(c.Slices) == 0 {
		return ErrNoSlices
	}
	seen := make(map[string]bool, len(c.Slices))
	for _, name := range c.Slices {
		if name == "" {
			return errors.New("config.slices must not contain empty names")
		}
		if strings.ContainsAny(name, " /\\") {
			return fmt.Errorf("invalid slice name %q (no spaces or path separators)", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate slice name %q", name)
		}
		seen[name] = true
	}
	if !seen[c.Contracts] {
		return ErrContractsNotListed
	}
	if strings.TrimSpace(c.BranchPrefix) == "" || strings.TrimSpace(c.DirPrefix) == "" {
		return errors.New("config.branch_prefix and config.dir_prefix must be non-empty")
	}
	return nil
}

// Load reads configuration from disk. Missing files return the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
