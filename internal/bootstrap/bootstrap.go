// Package bootstrap wires configuration, sources, a graphics context and the
// rendering engine into one startup sequence.
package bootstrap

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shaderkit/internal/config"
	"github.com/Faultbox/shaderkit/internal/engine/renderer"
	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
	"github.com/Faultbox/shaderkit/shaders"
)

// Storage returns where shader sources are read from: the configured base
// directory, or the built-in sources when none is set.
func Storage(cfg *config.Config) shader.Storage {
	if cfg.Shaders.BaseDir == "" {
		return shader.FSStorage{FS: shaders.FS}
	}
	return shader.DirStorage{Base: cfg.Shaders.BaseDir}
}

// Result is a finished startup.
type Result struct {
	Engine   *renderer.Engine
	Programs []*shader.Program
	Cache    *shader.SourceCache
}

// Build creates a source cache for descs, runs the pipeline on ctx and
// returns the engine owning the programs.
//
// On error nothing stays allocated: programs registered before the failure
// are deleted.
func Build(ctx shader.Context, st shader.Storage, descs []shader.ProgramDescriptor, platform string) (*Result, error) {
	log := logger.Named("shader")
	cache := shader.NewSourceCache(st, shader.SourceRefs(descs), log)
	return BuildWithCache(ctx, cache, descs, platform)
}

// BuildWithCache is Build with a caller owned cache.
func BuildWithCache(ctx shader.Context, cache *shader.SourceCache, descs []shader.ProgramDescriptor, platform string) (*Result, error) {
	engine := renderer.New(ctx)
	pipeline := shader.NewPipeline(ctx, cache, engine, descs, shader.Options{
		Logger: logger.Named("shader"),
	})

	programs, err := pipeline.Run(platform)
	if err != nil {
		engine.Close()
		return nil, err
	}
	return &Result{Engine: engine, Programs: programs, Cache: cache}, nil
}

// Close releases every program owned by the result.
func (r *Result) Close() {
	r.Engine.Close()
}

// ProgramReport is the printable form of a registered program.
type ProgramReport struct {
	Name       string           `yaml:"name"`
	Handle     uint32           `yaml:"handle"`
	Attributes map[string]int32 `yaml:"attributes"`
	Uniforms   map[string]int32 `yaml:"uniforms"`
	Unresolved []string         `yaml:"unresolved,omitempty"`
}

// Report lists every program with its locations.
func (r *Result) Report() []ProgramReport {
	reports := make([]ProgramReport, 0, len(r.Programs))
	for _, p := range r.Programs {
		rep := ProgramReport{
			Name:       p.Name,
			Handle:     p.Handle,
			Attributes: p.Attributes,
			Uniforms:   p.Uniforms,
		}
		for name, loc := range p.Attributes {
			if loc == shader.Unresolved {
				rep.Unresolved = append(rep.Unresolved, "attribute "+name)
			}
		}
		for name, loc := range p.Uniforms {
			if loc == shader.Unresolved {
				rep.Unresolved = append(rep.Unresolved, "uniform "+name)
			}
		}
		sort.Strings(rep.Unresolved)
		reports = append(reports, rep)
	}
	return reports
}

// WriteReport writes Report as YAML.
func (r *Result) WriteReport(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Report()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return enc.Close()
}

// LogResult logs a one-line summary per program.
func LogResult(r *Result) {
	for _, p := range r.Programs {
		logger.Info("program ready",
			zap.String("program", p.Name),
			zap.Uint32("handle", p.Handle),
			zap.Int("attributes", len(p.Attributes)),
			zap.Int("uniforms", len(p.Uniforms)),
		)
	}
}
