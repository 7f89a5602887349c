package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/shaderkit/internal/shader"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Shaders.BaseDir != "" {
		t.Errorf("expected built-in shaders by default, got base dir %s", cfg.Shaders.BaseDir)
	}
	if cfg.Shaders.Platform != "" {
		t.Errorf("expected no platform tag by default, got %s", cfg.Shaders.Platform)
	}
	if !cfg.Graphics.Hidden {
		t.Error("expected hidden window by default")
	}
	if cfg.Graphics.GLMajor != 2 || cfg.Graphics.GLMinor != 1 {
		t.Errorf("expected GL 2.1, got %d.%d", cfg.Graphics.GLMajor, cfg.Graphics.GLMinor)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	progs := cfg.Programs()
	if len(progs) != 2 || progs[0].Name != shader.ColorProgramName || progs[1].Name != shader.TextureProgramName {
		t.Errorf("expected color and texture programs by default, got %+v", progs)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "shaderkit.yaml")

	yamlContent := `
shaders:
  base_dir: glsl
  platform: RPI
  programs:
    - name: solid
      vertex: solid.vert
      fragment: solid.frag
      attributes: [pos]
      uniforms: [mvp, tint]

graphics:
  width: 320
  height: 200
  hidden: false

logging:
  level: "debug"
  log_file: "shaders.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := filepath.Join(tmpDir, "glsl"); cfg.Shaders.BaseDir != want {
		t.Errorf("expected base dir %s, got %s", want, cfg.Shaders.BaseDir)
	}
	if cfg.Shaders.Platform != "RPI" {
		t.Errorf("expected platform RPI, got %s", cfg.Shaders.Platform)
	}

	progs := cfg.Programs()
	if len(progs) != 1 {
		t.Fatalf("expected 1 program, got %d", len(progs))
	}
	p := progs[0]
	if p.Name != "solid" || p.Vertex != "solid.vert" || p.Fragment != "solid.frag" {
		t.Errorf("unexpected program %+v", p)
	}
	if len(p.Attributes) != 1 || p.Attributes[0] != "pos" {
		t.Errorf("unexpected attributes %v", p.Attributes)
	}
	if len(p.Uniforms) != 2 || p.Uniforms[1] != "tint" {
		t.Errorf("unexpected uniforms %v", p.Uniforms)
	}

	if cfg.Graphics.Width != 320 || cfg.Graphics.Height != 200 {
		t.Errorf("expected 320x200, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Hidden {
		t.Error("expected hidden to be false")
	}
	// Not in the file, so the default survives.
	if cfg.Graphics.GLMajor != 2 {
		t.Errorf("expected default GL major 2, got %d", cfg.Graphics.GLMajor)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "shaders.log" {
		t.Errorf("expected log file 'shaders.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{
			name: "program without fragment",
			mutate: func(c *Config) {
				c.Shaders.Programs = []shader.ProgramDescriptor{{Name: "a", Vertex: "a.vert"}}
			},
			wantErr: true,
		},
		{
			name: "duplicate program",
			mutate: func(c *Config) {
				c.Shaders.Programs = []shader.ProgramDescriptor{shader.ColorProgram(), shader.ColorProgram()}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "platform flag",
			setup: func() { *flagPlatform = "RPI" },
			verify: func(cfg *Config) {
				if cfg.Shaders.Platform != "RPI" {
					t.Errorf("expected platform RPI, got %s", cfg.Shaders.Platform)
				}
			},
			teardown: func() { *flagPlatform = "" },
		},
		{
			name:  "shader dir flag",
			setup: func() { *flagShaderDir = "/srv/glsl" },
			verify: func(cfg *Config) {
				if cfg.Shaders.BaseDir != "/srv/glsl" {
					t.Errorf("expected base dir /srv/glsl, got %s", cfg.Shaders.BaseDir)
				}
			},
			teardown: func() { *flagShaderDir = "" },
		},
		{
			name:  "visible flag",
			setup: func() { *flagVisible = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Hidden {
					t.Error("expected visible window with visible flag")
				}
			},
			teardown: func() { *flagVisible = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
shaders:
  platform: desktop
graphics:
  width: 800
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagPlatform = "RPI"
	defer func() {
		*flagConfig = ""
		*flagPlatform = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Shaders.Platform != "RPI" {
		t.Errorf("expected platform RPI from flag, got %s", cfg.Shaders.Platform)
	}
	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800 from file, got %d", cfg.Graphics.Width)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Shaders.Platform = "RPI"
	cfg.Shaders.Programs = shader.DefaultDescriptors()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Shaders.Platform != "RPI" {
		t.Errorf("expected platform RPI, got %s", loaded.Shaders.Platform)
	}
	if len(loaded.Shaders.Programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(loaded.Shaders.Programs))
	}
	if got := loaded.Shaders.Programs[1].Uniforms; len(got) != 4 || got[3] != "tex" {
		t.Errorf("unexpected texture uniforms %v", got)
	}
}
