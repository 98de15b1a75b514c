// Package config loads the build configuration from a TOML file with
// defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all build configuration.
type Config struct {
	Content ContentConfig `toml:"content"`
	Images  ImagesConfig  `toml:"images"`
	Build   BuildConfig   `toml:"build"`
}

// ContentConfig locates the content tree and controls listing generation.
type ContentConfig struct {
	Root         string   `toml:"root"`
	TemplatesDir string   `toml:"templates_dir"`
	Categories   []string `toml:"categories"`
	PostsPerPage int      `toml:"posts_per_page"`
	BaseURL      string   `toml:"base_url"`
	CachePath    string   `toml:"cache_path"` // empty disables the discovery cache
}

// ImagesConfig controls thumbnail optimization.
type ImagesConfig struct {
	Optimize    bool `toml:"optimize"`
	MaxWidth    int  `toml:"max_width"` // 0 means default; negative disables downscaling
	JPEGQuality int  `toml:"jpeg_quality"`
	WebP        bool `toml:"webp"`
}

// BuildConfig holds pipeline settings.
type BuildConfig struct {
	Workers   int    `toml:"workers"` // 0 means derive from CPU count
	OutputDir string `toml:"output_dir"`
}

const defaultConfigContent = `[content]
root = "./blogs"
templates_dir = "./templates"
categories = ["Applications", "Software Tools", "Ecosystems"]
posts_per_page = 12
base_url = ""
cache_path = ""

[images]
optimize = true
# Set max_width to -1 to re-encode without downscaling.
max_width = 1280
jpeg_quality = 80
webp = true

[build]
workers = 0
output_dir = ""
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, a default config file is created there first. Environment
// variables override values from the file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func createDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(defaultConfigContent), 0o644)
}

func applyDefaults(cfg *Config) {
	if cfg.Content.Root == "" {
		cfg.Content.Root = "./blogs"
	}
	if cfg.Content.TemplatesDir == "" {
		cfg.Content.TemplatesDir = "./templates"
	}
	if len(cfg.Content.Categories) == 0 {
		cfg.Content.Categories = []string{"Applications", "Software Tools", "Ecosystems"}
	}
	if cfg.Content.PostsPerPage == 0 {
		cfg.Content.PostsPerPage = 12
	}
	if cfg.Images.MaxWidth == 0 {
		cfg.Images.MaxWidth = 1280
	}
	if cfg.Images.JPEGQuality == 0 {
		cfg.Images.JPEGQuality = 80
	}
	if cfg.Build.OutputDir == "" {
		// Listing pages land next to the content by default.
		cfg.Build.OutputDir = cfg.Content.Root
	}
}

// applyEnvOverrides applies environment variable overrides, which take
// priority over the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLOGFORGE_ROOT"); v != "" {
		cfg.Content.Root = v
	}
	if v := os.Getenv("BLOGFORGE_TEMPLATES"); v != "" {
		cfg.Content.TemplatesDir = v
	}
	if v := os.Getenv("BLOGFORGE_OUTPUT"); v != "" {
		cfg.Build.OutputDir = v
	}
}

func validate(cfg *Config) error {
	if cfg.Content.PostsPerPage < 1 {
		return fmt.Errorf("invalid content.posts_per_page %d: must be >= 1", cfg.Content.PostsPerPage)
	}
	if cfg.Images.JPEGQuality < 1 || cfg.Images.JPEGQuality > 100 {
		return fmt.Errorf("invalid images.jpeg_quality %d: must be between 1 and 100", cfg.Images.JPEGQuality)
	}
	if cfg.Build.Workers < 0 {
		return fmt.Errorf("invalid build.workers %d: must be >= 0", cfg.Build.Workers)
	}
	return nil
}
