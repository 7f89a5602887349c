package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/bootstrap"
	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/engine/window"
	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
)

const debounce = 150 * time.Millisecond

// watch rebuilds every program when one of their sources changes. Each
// rebuild loads into a new SourceCache; the current programs are replaced
// only when the rebuild succeeds.
//
// Runs on the main goroutine, which owns the GL context. win is polled for
// quit events when a real window exists.
func watch(cfg *config.Config, win *window.Window, ctx shader.Context, st shader.Storage, descs []shader.ProgramDescriptor, current *bootstrap.Result) error {
	defer func() { current.Close() }()

	if cfg.Shaders.BaseDir == "" {
		return fmt.Errorf("watch: built-in shaders cannot change, set a shader directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Shaders.BaseDir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Shaders.BaseDir, err)
	}

	sources := make(map[string]bool)
	for _, ref := range shader.SourceRefs(descs) {
		sources[filepath.Clean(filepath.Join(cfg.Shaders.BaseDir, filepath.FromSlash(ref.Name)))] = true
	}

	logger.Info("watching shader sources", zap.String("dir", cfg.Shaders.BaseDir))

	var pending <-chan time.Time
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !sources[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("shader source changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-pending:
			pending = nil
			next, err := bootstrap.Build(ctx, st, descs, cfg.Shaders.Platform)
			if err != nil {
				logger.Error("rebuild failed, keeping previous programs", zap.Error(err))
				continue
			}
			current.Close()
			current = next
			bootstrap.LogResult(current)
			if err := current.WriteReport(os.Stdout); err != nil {
				return err
			}

		case <-tick.C:
			if win != nil && win.PollEvents() {
				return nil
			}
		}
	}
}
