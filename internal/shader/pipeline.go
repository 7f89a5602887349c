package shader

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/logger"
)

// Registry receives finished programs and becomes their owner.
type Registry interface {
	Register(p *Program) error
}

// TransitionFunc observes pipeline state changes. program is empty for
// transitions that are not tied to a single program.
type TransitionFunc func(program string, from, to State)

// Options configures a Pipeline.
type Options struct {
	Logger       *zap.Logger
	OnTransition TransitionFunc
}

// Pipeline builds every described program and registers it.
//
// Programs are built strictly one after another in descriptor order: a
// program is compiled, linked, made current, bound and registered before the
// next one starts. All native calls go through one Context and Run must be
// called from the thread owning it.
type Pipeline struct {
	ctx      Context
	cache    *SourceCache
	registry Registry
	descs    []ProgramDescriptor
	binder   *Binder
	log      *zap.Logger
	observe  TransitionFunc

	mu      sync.Mutex
	running bool
	state   State
	program string
	err     error
}

// NewPipeline creates a pipeline over descs. The cache must have been
// created for SourceRefs(descs) or a superset of it.
func NewPipeline(ctx Context, cache *SourceCache, registry Registry, descs []ProgramDescriptor, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logger.Named("shader")
	}
	return &Pipeline{
		ctx:      ctx,
		cache:    cache,
		registry: registry,
		descs:    append([]ProgramDescriptor(nil), descs...),
		binder:   NewBinder(ctx, log),
		log:      log,
		observe:  opts.OnTransition,
	}
}

// State returns the current state and the program it applies to.
func (p *Pipeline) State() (State, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.program
}

// Err returns the error that aborted the pipeline, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run preloads sources for platform and builds every program.
//
// A *LoadError leaves the pipeline Uninitialized so Run may be retried.
// Any other error is a *FatalError; the pipeline is then Aborted for good.
func (p *Pipeline) Run(platform string) ([]*Program, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer p.end()

	if err := ValidateDescriptors(p.descs); err != nil {
		return nil, p.abort(&FatalError{Stage: StageUsage, Err: err})
	}

	p.transition("", SourcesLoading)
	if _, err := p.cache.Preload(platform); err != nil {
		p.transition("", Uninitialized)
		return nil, err
	}
	p.transition("", SourcesReady)

	programs := make([]*Program, 0, len(p.descs))
	for _, d := range p.descs {
		prog, err := p.build(d)
		if err != nil {
			return nil, p.abort(err)
		}
		programs = append(programs, prog)
	}

	p.log.Info("shader programs ready", zap.Int("count", len(programs)))
	return programs, nil
}

func (p *Pipeline) build(d ProgramDescriptor) (*Program, error) {
	p.transition(d.Name, Compiling)
	vertSrc, err := p.source(d, d.Vertex)
	if err != nil {
		return nil, err
	}
	fragSrc, err := p.source(d, d.Fragment)
	if err != nil {
		return nil, err
	}

	vert, err := Compile(p.ctx, vertSrc)
	if err != nil {
		return nil, withProgram(err, d.Name)
	}
	frag, err := Compile(p.ctx, fragSrc)
	if err != nil {
		// The vertex shader is useless without its partner.
		release(p.ctx, 0, vert)
		return nil, withProgram(err, d.Name)
	}

	p.transition(d.Name, Linking)
	prog, err := Link(p.ctx, d.Name, vert, frag)
	if err != nil {
		return nil, err
	}

	p.ctx.UseProgram(prog.Handle)
	p.transition(d.Name, Activated)

	p.transition(d.Name, Binding)
	for _, name := range d.Attributes {
		p.binder.LocateAttribute(prog, name)
	}
	for _, name := range d.Uniforms {
		p.binder.LocateUniform(prog, name)
	}

	if err := p.registry.Register(prog); err != nil {
		// Nobody owns the program.
		p.ctx.DeleteProgram(prog.Handle)
		return nil, &FatalError{Stage: StageRegister, Program: d.Name, Err: err}
	}
	p.transition(d.Name, Registered)

	p.log.Debug("shader program registered",
		zap.String("program", d.Name),
		zap.Uint32("handle", prog.Handle),
		zap.Any("attributes", prog.Attributes),
		zap.Any("uniforms", prog.Uniforms),
	)
	return prog, nil
}

func (p *Pipeline) source(d ProgramDescriptor, name string) (Source, error) {
	src, ok := p.cache.Get(name)
	if !ok {
		return Source{}, &FatalError{
			Stage:   StageUsage,
			Program: d.Name,
			Source:  name,
			Err:     errors.New("source not in cache"),
		}
	}
	return src, nil
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.running:
		return &FatalError{Stage: StageUsage, Err: errors.New("pipeline is already running")}
	case p.state != Uninitialized:
		return &FatalError{Stage: StageUsage, Err: fmt.Errorf("pipeline cannot run from state %s", p.state)}
	}
	p.running = true
	return nil
}

func (p *Pipeline) end() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

func (p *Pipeline) transition(program string, to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	p.program = program
	p.mu.Unlock()

	p.log.Debug("shader pipeline transition",
		zap.String("program", program),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	if p.observe != nil {
		p.observe(program, from, to)
	}
}

func (p *Pipeline) abort(err error) error {
	p.mu.Lock()
	program := p.program
	p.err = err
	p.mu.Unlock()

	p.log.Error("shader pipeline aborted", zap.String("program", program), zap.Error(err))
	p.transition(program, Aborted)
	return err
}

func withProgram(err error, program string) error {
	var fe *FatalError
	if errors.As(err, &fe) && fe.Program == "" {
		fe.Program = program
	}
	return err
}
