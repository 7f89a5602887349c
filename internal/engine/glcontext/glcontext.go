// Package glcontext implements shader.Context on top of go-gl.
package glcontext

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/logger"
	"github.com/Faultbox/shaderkit/internal/shader"
)

// Context forwards shader calls to the OpenGL context current on the calling
// thread.
type Context struct{}

var _ shader.Context = Context{}

// New loads the OpenGL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is made current!
func New() (Context, error) {
	if err := gl.Init(); err != nil {
		return Context{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	return Context{}, nil
}

func (Context) CreateShader(kind shader.Kind) uint32 {
	switch kind {
	case shader.Vertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case shader.Fragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (Context) DeleteShader(h uint32) {
	gl.DeleteShader(h)
}

func (Context) ShaderSource(h uint32, text string) {
	csource, free := gl.Strs(text + "\x00")
	gl.ShaderSource(h, 1, csource, nil)
	free()
}

func (Context) CompileShader(h uint32) {
	gl.CompileShader(h)
}

func (Context) CompileStatus(h uint32) bool {
	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ShaderInfoLog(h uint32) string {
	var logLen int32
	gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(h, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Context) AttachShader(program, h uint32) {
	gl.AttachShader(program, h)
}

func (Context) DetachShader(program, h uint32) {
	gl.DetachShader(program, h)
}

func (Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (Context) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Context) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}
