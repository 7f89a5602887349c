// Package shadertest provides an in-memory shader.Context.
//
// The fake understands just enough GLSL to be useful: it finds attribute and
// uniform declarations, enforces that a #version directive comes first,
// fails compilation on #error and fails linking when a stage has no main
// function. Locations are assigned in declaration order, so identical
// sources always produce identical locations.
package shadertest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Faultbox/shaderkit/internal/shader"
)

var (
	attribRe  = regexp.MustCompile(`^\s*(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	uniformRe = regexp.MustCompile(`^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	mainRe    = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

type shaderObject struct {
	kind     shader.Kind
	text     string
	compiled bool
	log      string
	attribs  []string
	uniforms []string
	hasMain  bool
}

type programObject struct {
	attached []uint32
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
}

// Context is a fake graphics context. It is not safe for concurrent use,
// just like the real thing.
type Context struct {
	// Failure injection.
	FailCreateShader  bool
	FailCreateProgram bool
	FailLink          bool

	next     uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	current  uint32
	errs     []string
}

// NewContext returns an empty fake context.
func NewContext() *Context {
	return &Context{
		next:     1,
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
	}
}

var _ shader.Context = (*Context)(nil)

func (c *Context) alloc() uint32 {
	h := c.next
	c.next++
	return h
}

func (c *Context) fail(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

// Errors returns every invalid call made so far, such as use of a deleted
// handle.
func (c *Context) Errors() []string {
	return append([]string(nil), c.errs...)
}

// ShaderLive reports whether a shader object exists.
func (c *Context) ShaderLive(h uint32) bool {
	_, ok := c.shaders[h]
	return ok
}

// ProgramLive reports whether a program object exists.
func (c *Context) ProgramLive(h uint32) bool {
	_, ok := c.programs[h]
	return ok
}

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int { return len(c.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int { return len(c.programs) }

// Current returns the program made current by the last UseProgram.
func (c *Context) Current() uint32 { return c.current }

// Attached returns the shaders attached to program.
func (c *Context) Attached(program uint32) []uint32 {
	p, ok := c.programs[program]
	if !ok {
		return nil
	}
	return append([]uint32(nil), p.attached...)
}

func (c *Context) CreateShader(kind shader.Kind) uint32 {
	if c.FailCreateShader {
		return 0
	}
	h := c.alloc()
	c.shaders[h] = &shaderObject{kind: kind}
	return h
}

func (c *Context) DeleteShader(h uint32) {
	if _, ok := c.shaders[h]; !ok {
		c.fail("DeleteShader: invalid shader %d", h)
		return
	}
	for ph, p := range c.programs {
		for _, a := range p.attached {
			if a == h {
				c.fail("DeleteShader: shader %d still attached to program %d", h, ph)
			}
		}
	}
	delete(c.shaders, h)
}

func (c *Context) ShaderSource(h uint32, text string) {
	s, ok := c.shaders[h]
	if !ok {
		c.fail("ShaderSource: invalid shader %d", h)
		return
	}
	s.text = text
}

func (c *Context) CompileShader(h uint32) {
	s, ok := c.shaders[h]
	if !ok {
		c.fail("CompileShader: invalid shader %d", h)
		return
	}
	s.compiled, s.log = false, ""
	s.attribs, s.uniforms = nil, nil

	seenCode := false
	for i, line := range strings.Split(s.text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "//"):
			continue
		case strings.HasPrefix(trimmed, "#version"):
			if seenCode {
				s.log = fmt.Sprintf("ERROR: 0:%d: '#version' : must occur first in shader", i+1)
				return
			}
		case strings.HasPrefix(trimmed, "#error"):
			s.log = fmt.Sprintf("ERROR: 0:%d: '#error' : %s", i+1, strings.TrimSpace(strings.TrimPrefix(trimmed, "#error")))
			return
		}
		seenCode = true

		if m := attribRe.FindStringSubmatch(line); m != nil && s.kind == shader.Vertex {
			s.attribs = append(s.attribs, m[1])
		}
		if m := uniformRe.FindStringSubmatch(line); m != nil {
			s.uniforms = append(s.uniforms, m[1])
		}
	}
	s.hasMain = mainRe.MatchString(s.text)
	s.compiled = true
}

func (c *Context) CompileStatus(h uint32) bool {
	s, ok := c.shaders[h]
	if !ok {
		c.fail("CompileStatus: invalid shader %d", h)
		return false
	}
	return s.compiled
}

func (c *Context) ShaderInfoLog(h uint32) string {
	s, ok := c.shaders[h]
	if !ok {
		c.fail("ShaderInfoLog: invalid shader %d", h)
		return ""
	}
	return s.log
}

func (c *Context) CreateProgram() uint32 {
	if c.FailCreateProgram {
		return 0
	}
	h := c.alloc()
	c.programs[h] = &programObject{}
	return h
}

func (c *Context) DeleteProgram(h uint32) {
	p, ok := c.programs[h]
	if !ok {
		c.fail("DeleteProgram: invalid program %d", h)
		return
	}
	// Deleting a program implicitly detaches its shaders.
	p.attached = nil
	delete(c.programs, h)
	if c.current == h {
		c.current = 0
	}
}

func (c *Context) AttachShader(program, h uint32) {
	p, ok := c.programs[program]
	if !ok {
		c.fail("AttachShader: invalid program %d", program)
		return
	}
	if _, ok := c.shaders[h]; !ok {
		c.fail("AttachShader: invalid shader %d", h)
		return
	}
	p.attached = append(p.attached, h)
}

func (c *Context) DetachShader(program, h uint32) {
	p, ok := c.programs[program]
	if !ok {
		c.fail("DetachShader: invalid program %d", program)
		return
	}
	for i, a := range p.attached {
		if a == h {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
	c.fail("DetachShader: shader %d not attached to program %d", h, program)
}

func (c *Context) LinkProgram(program uint32) {
	p, ok := c.programs[program]
	if !ok {
		c.fail("LinkProgram: invalid program %d", program)
		return
	}
	p.linked, p.log = false, ""
	p.attribs, p.uniforms = nil, nil

	if c.FailLink {
		p.log = "ERROR: Linking failed (injected)"
		return
	}

	var vert, frag *shaderObject
	for _, h := range p.attached {
		s := c.shaders[h]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("ERROR: shader %d is not compiled", h)
			return
		}
		if s.kind == shader.Vertex {
			vert = s
		} else {
			frag = s
		}
	}
	switch {
	case vert == nil:
		p.log = "ERROR: no vertex shader attached"
		return
	case frag == nil:
		p.log = "ERROR: no fragment shader attached"
		return
	case !vert.hasMain:
		p.log = "ERROR: vertex shader: missing main function"
		return
	case !frag.hasMain:
		p.log = "ERROR: fragment shader: missing main function"
		return
	}

	p.attribs = make(map[string]int32)
	for _, name := range vert.attribs {
		if _, ok := p.attribs[name]; !ok {
			p.attribs[name] = int32(len(p.attribs))
		}
	}
	p.uniforms = make(map[string]int32)
	for _, s := range []*shaderObject{vert, frag} {
		for _, name := range s.uniforms {
			if _, ok := p.uniforms[name]; !ok {
				p.uniforms[name] = int32(len(p.uniforms))
			}
		}
	}
	p.linked = true
}

func (c *Context) LinkStatus(program uint32) bool {
	p, ok := c.programs[program]
	if !ok {
		c.fail("LinkStatus: invalid program %d", program)
		return false
	}
	return p.linked
}

func (c *Context) ProgramInfoLog(program uint32) string {
	p, ok := c.programs[program]
	if !ok {
		c.fail("ProgramInfoLog: invalid program %d", program)
		return ""
	}
	return p.log
}

func (c *Context) AttribLocation(program uint32, name string) int32 {
	p, ok := c.programs[program]
	if !ok || !p.linked {
		c.fail("AttribLocation: program %d is not linked", program)
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	p, ok := c.programs[program]
	if !ok || !p.linked {
		c.fail("UniformLocation: program %d is not linked", program)
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) UseProgram(program uint32) {
	if program != 0 {
		p, ok := c.programs[program]
		if !ok || !p.linked {
			c.fail("UseProgram: program %d is not linked", program)
			return
		}
	}
	c.current = program
}
