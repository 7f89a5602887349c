package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagPlatform  = flag.String("platform", "", "Platform tag (RPI adds #version 100)")
	flagShaderDir = flag.String("shader-dir", "", "Directory to load shader sources from")
	flagWatch     = flag.Bool("watch", false, "Rebuild programs when shader sources change")
	flagDryRun    = flag.Bool("dry-run", false, "Use the in-memory GL context instead of a window")
	flagVisible   = flag.Bool("visible", false, "Show the window owning the GL context")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Watch reports whether --watch was given.
func Watch() bool {
	return *flagWatch
}

// DryRun reports whether --dry-run was given.
func DryRun() bool {
	return *flagDryRun
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPlatform != "" {
		cfg.Shaders.Platform = *flagPlatform
	}
	if *flagShaderDir != "" {
		cfg.Shaders.BaseDir = *flagShaderDir
	}
	if *flagVisible {
		cfg.Graphics.Hidden = false
	}
}
