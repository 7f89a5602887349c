package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shaderkit/internal/shader"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside the
// pipeline.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: bad size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if len(c.Shaders.Programs) > 0 {
		if err := shader.ValidateDescriptors(c.Shaders.Programs); err != nil {
			return fmt.Errorf("shaders: %w", err)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./shaderkit.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "shaderkit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shaderkit")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shaderkit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shaderkit")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Relative shader directories are resolved against the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.Shaders.BaseDir != "" && !filepath.IsAbs(cfg.Shaders.BaseDir) {
		cfg.Shaders.BaseDir = filepath.Join(filepath.Dir(path), cfg.Shaders.BaseDir)
	}
	return nil
}
