// Package main is the entry point for shaderc, which builds the configured
// shader programs on a real or in-memory GL context and prints their
// locations.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/bootstrap"
	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/engine/glcontext"
	"github.com/Faultbox/shaderkit/internal/engine/window"
	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
	"github.com/Faultbox/shaderkit/internal/shader/shadertest"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		switch {
		case shader.IsLoadError(err):
			logger.Error("failed to load shader sources", zap.Error(err))
		case shader.IsFatal(err):
			logger.Error("failed to build shader programs", zap.Error(err))
		default:
			logger.Error("shaderc error", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	ctx, win, err := openContext(cfg)
	if err != nil {
		return err
	}
	if win != nil {
		defer win.Close()
	}

	descs := cfg.Programs()
	st := bootstrap.Storage(cfg)

	res, err := bootstrap.Build(ctx, st, descs, cfg.Shaders.Platform)
	if err != nil {
		return err
	}
	bootstrap.LogResult(res)
	if err := res.WriteReport(os.Stdout); err != nil {
		res.Close()
		return err
	}

	if config.Watch() {
		return watch(cfg, win, ctx, st, descs, res)
	}
	res.Close()
	return nil
}

// openContext returns the GL context to build on and the window owning it.
// The window is nil for dry runs.
func openContext(cfg *config.Config) (shader.Context, *window.Window, error) {
	if config.DryRun() {
		logger.Info("using in-memory GL context")
		return shadertest.NewContext(), nil, nil
	}

	wcfg := window.Config{
		Title:   "shaderc",
		Width:   cfg.Graphics.Width,
		Height:  cfg.Graphics.Height,
		Hidden:  cfg.Graphics.Hidden,
		GLMajor: cfg.Graphics.GLMajor,
		GLMinor: cfg.Graphics.GLMinor,
	}
	if cfg.Shaders.Platform == shader.EmbeddedPlatform {
		wcfg.GLES, wcfg.GLMajor, wcfg.GLMinor = true, 2, 0
	}

	win, err := window.New(wcfg)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := glcontext.New()
	if err != nil {
		win.Close()
		return nil, nil, err
	}
	return ctx, win, nil
}
