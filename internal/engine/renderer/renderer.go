// Package renderer is the rendering engine side of the shader pipeline: it
// takes ownership of linked programs and keeps the locations it draws with.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
)

// ColorLocations are the bindings of the color program.
type ColorLocations struct {
	ModelviewProjection int32
	Trans               int32
	Opacity             int32
	Pos                 int32
	Color               int32
}

// TextureLocations are the bindings of the texture program.
type TextureLocations struct {
	ModelviewProjection int32
	Trans               int32
	Opacity             int32
	Pos                 int32
	Texcoords           int32
	Tex                 int32
}

// ColorProgram is a registered color program.
type ColorProgram struct {
	Handle uint32
	ColorLocations
}

// TextureProgram is a registered texture program.
type TextureProgram struct {
	Handle uint32
	TextureLocations
}

// Engine owns registered programs until Close.
type Engine struct {
	ctx shader.Context

	color   *ColorProgram
	texture *TextureProgram

	programs []*shader.Program
	byName   map[string]*shader.Program
}

var _ shader.Registry = (*Engine)(nil)

// New creates an engine that deletes its programs through ctx.
func New(ctx shader.Context) *Engine {
	return &Engine{
		ctx:    ctx,
		byName: make(map[string]*shader.Program),
	}
}

// RegisterColorProgram installs the program used for flat colored geometry.
func (e *Engine) RegisterColorProgram(handle uint32, loc ColorLocations) {
	e.color = &ColorProgram{Handle: handle, ColorLocations: loc}
	logger.Debug("color program registered", zap.Uint32("handle", handle))
}

// RegisterTextureProgram installs the program used for textured geometry.
func (e *Engine) RegisterTextureProgram(handle uint32, loc TextureLocations) {
	e.texture = &TextureProgram{Handle: handle, TextureLocations: loc}
	logger.Debug("texture program registered", zap.Uint32("handle", handle))
}

// Register takes ownership of p. The color and texture programs are also
// installed in their dedicated slots.
func (e *Engine) Register(p *shader.Program) error {
	if p == nil || p.Handle == 0 {
		return fmt.Errorf("register: invalid program")
	}
	if _, ok := e.byName[p.Name]; ok {
		return fmt.Errorf("register: program %s already registered", p.Name)
	}

	switch p.Name {
	case shader.ColorProgramName:
		e.RegisterColorProgram(p.Handle, ColorLocations{
			ModelviewProjection: p.Uniform("modelviewProjection"),
			Trans:               p.Uniform("trans"),
			Opacity:             p.Uniform("opacity"),
			Pos:                 p.Attribute("pos"),
			Color:               p.Attribute("color"),
		})
	case shader.TextureProgramName:
		e.RegisterTextureProgram(p.Handle, TextureLocations{
			ModelviewProjection: p.Uniform("modelviewProjection"),
			Trans:               p.Uniform("trans"),
			Opacity:             p.Uniform("opacity"),
			Pos:                 p.Attribute("pos"),
			Texcoords:           p.Attribute("texcoords"),
			Tex:                 p.Uniform("tex"),
		})
	}

	e.programs = append(e.programs, p)
	e.byName[p.Name] = p
	return nil
}

// Color returns the registered color program, or nil.
func (e *Engine) Color() *ColorProgram { return e.color }

// Texture returns the registered texture program, or nil.
func (e *Engine) Texture() *TextureProgram { return e.texture }

// Program returns a registered program by name.
func (e *Engine) Program(name string) (*shader.Program, bool) {
	p, ok := e.byName[name]
	return p, ok
}

// Programs returns every registered program in registration order.
func (e *Engine) Programs() []*shader.Program {
	return append([]*shader.Program(nil), e.programs...)
}

// Close deletes every registered program.
func (e *Engine) Close() {
	if len(e.programs) > 0 {
		logger.Info("closing renderer", zap.Int("programs", len(e.programs)))
	}
	e.ctx.UseProgram(0)
	for _, p := range e.programs {
		e.ctx.DeleteProgram(p.Handle)
	}
	e.programs = nil
	e.byName = make(map[string]*shader.Program)
	e.color = nil
	e.texture = nil
}
