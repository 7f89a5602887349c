package shader

import (
	"fmt"
	"strings"
)

// Program is a linked program object and the locations resolved for it.
// Every location is either a valid index or Unresolved.
type Program struct {
	Name       string
	Handle     uint32
	Attributes map[string]int32
	Uniforms   map[string]int32
}

// Attribute returns the resolved location of an attribute, or Unresolved.
func (p *Program) Attribute(name string) int32 {
	if loc, ok := p.Attributes[name]; ok {
		return loc
	}
	return Unresolved
}

// Uniform returns the resolved location of a uniform, or Unresolved.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return Unresolved
}

// Link attaches vert and frag to a new program object and links it.
//
// On success both shader objects are detached and deleted; the program no
// longer needs them. On any failure the program and every shader passed in
// are deleted and a *FatalError is returned; link failures carry the native
// info log.
func Link(ctx Context, name string, vert, frag *CompiledShader) (*Program, error) {
	if err := checkStage(vert, Vertex); err != nil {
		discard(ctx, vert, frag)
		return nil, &FatalError{Stage: StageUsage, Program: name, Err: err}
	}
	if err := checkStage(frag, Fragment); err != nil {
		discard(ctx, vert, frag)
		return nil, &FatalError{Stage: StageUsage, Program: name, Err: err}
	}

	program := ctx.CreateProgram()
	if program == 0 {
		discard(ctx, vert, frag)
		return nil, &FatalError{Stage: StageCreateProgram, Program: name, Err: errNilHandle}
	}

	ctx.AttachShader(program, vert.Handle)
	ctx.AttachShader(program, frag.Handle)
	ctx.LinkProgram(program)

	if !ctx.LinkStatus(program) {
		log := strings.TrimSpace(ctx.ProgramInfoLog(program))
		ctx.DeleteProgram(program)
		discard(ctx, vert, frag)
		return nil, &FatalError{Stage: StageLink, Program: name, Log: log, Err: errLinkStatus}
	}

	release(ctx, program, vert)
	release(ctx, program, frag)

	return &Program{
		Name:       name,
		Handle:     program,
		Attributes: make(map[string]int32),
		Uniforms:   make(map[string]int32),
	}, nil
}

func checkStage(s *CompiledShader, want Kind) error {
	switch {
	case s == nil:
		return fmt.Errorf("missing %s shader", want)
	case s.Kind != want:
		return fmt.Errorf("%s is a %s shader, want %s", s.Name, s.Kind, want)
	case s.released:
		return fmt.Errorf("%s shader %s was already released", want, s.Name)
	case s.Handle == 0:
		return fmt.Errorf("%s shader %s has no handle", want, s.Name)
	}
	return nil
}

// release detaches s from program (when non-zero) and deletes it.
func release(ctx Context, program uint32, s *CompiledShader) {
	if program != 0 {
		ctx.DetachShader(program, s.Handle)
	}
	ctx.DeleteShader(s.Handle)
	s.released = true
}

// discard deletes every shader that is still owned by the caller.
func discard(ctx Context, shaders ...*CompiledShader) {
	for _, s := range shaders {
		if s == nil || s.released || s.Handle == 0 {
			continue
		}
		release(ctx, 0, s)
	}
}
