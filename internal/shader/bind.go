package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/logger"
)

// Unresolved is the location reported for names the linked program does not
// expose.
const Unresolved int32 = -1

// Binder resolves attribute and uniform locations on linked programs.
// Names that do not resolve are logged and recorded as Unresolved; the
// Binder never fails.
type Binder struct {
	ctx Context
	log *zap.Logger
}

// NewBinder returns a Binder using ctx.
func NewBinder(ctx Context, log *zap.Logger) *Binder {
	if log == nil {
		log = logger.Named("shader")
	}
	return &Binder{ctx: ctx, log: log}
}

// LocateAttribute resolves an attribute location and stores it on p.
func (b *Binder) LocateAttribute(p *Program, name string) int32 {
	loc := b.ctx.AttribLocation(p.Handle, name)
	if loc < 0 {
		loc = Unresolved
		b.warn(p, "attribute", name)
	}
	if p.Attributes == nil {
		p.Attributes = make(map[string]int32)
	}
	p.Attributes[name] = loc
	return loc
}

// LocateUniform resolves a uniform location and stores it on p.
func (b *Binder) LocateUniform(p *Program, name string) int32 {
	loc := b.ctx.UniformLocation(p.Handle, name)
	if loc < 0 {
		loc = Unresolved
		b.warn(p, "uniform", name)
	}
	if p.Uniforms == nil {
		p.Uniforms = make(map[string]int32)
	}
	p.Uniforms[name] = loc
	return loc
}

func (b *Binder) warn(p *Program, kind, name string) {
	b.log.Warn("location not found",
		zap.String("program", p.Name),
		zap.String("kind", kind),
		zap.String("name", name),
	)
}
