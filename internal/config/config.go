// Package config handles shaderkit configuration loading and management.
package config

import "github.com/Faultbox/shaderkit/internal/shader"

// Config holds all settings.
type Config struct {
	Shaders  ShaderConfig   `yaml:"shaders"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ShaderConfig holds shader source and program settings.
type ShaderConfig struct {
	BaseDir  string                     `yaml:"base_dir"` // Empty means built-in sources
	Platform string                     `yaml:"platform"` // "RPI" adds a GLSL ES version directive
	Programs []shader.ProgramDescriptor `yaml:"programs"` // Empty means color + texture
}

// GraphicsConfig holds settings for the window owning the GL context.
type GraphicsConfig struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Hidden  bool `yaml:"hidden"`
	GLMajor int  `yaml:"gl_major"`
	GLMinor int  `yaml:"gl_minor"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shaders: ShaderConfig{
			BaseDir:  "",
			Platform: "",
		},
		Graphics: GraphicsConfig{
			Width:   640,
			Height:  480,
			Hidden:  true,
			GLMajor: 2,
			GLMinor: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Programs returns the configured program descriptors, or the built-in
// color and texture programs when none are configured.
func (c *Config) Programs() []shader.ProgramDescriptor {
	if len(c.Shaders.Programs) == 0 {
		return shader.DefaultDescriptors()
	}
	return c.Shaders.Programs
}
