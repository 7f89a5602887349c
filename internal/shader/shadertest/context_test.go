package shadertest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/shaderkit/internal/shader"
)

func TestDeclarationParsing(t *testing.T) {
	c := NewContext()

	vs := c.CreateShader(shader.Vertex)
	c.ShaderSource(vs, `#version 100
// comment
uniform highp mat4 mvp;
attribute mediump vec3 pos;
attribute vec2 uv;
uniform vec4 bones[4];
void main() { gl_Position = mvp * vec4(pos, 1.0); }
`)
	c.CompileShader(vs)
	require.True(t, c.CompileStatus(vs), c.ShaderInfoLog(vs))

	fs := c.CreateShader(shader.Fragment)
	c.ShaderSource(fs, "uniform sampler2D tex;\nuniform highp mat4 mvp;\nvoid main() {}\n")
	c.CompileShader(fs)
	require.True(t, c.CompileStatus(fs))

	p := c.CreateProgram()
	c.AttachShader(p, vs)
	c.AttachShader(p, fs)
	c.LinkProgram(p)
	require.True(t, c.LinkStatus(p), c.ProgramInfoLog(p))

	assert.Equal(t, int32(0), c.AttribLocation(p, "pos"))
	assert.Equal(t, int32(1), c.AttribLocation(p, "uv"))
	assert.Equal(t, int32(-1), c.AttribLocation(p, "mvp"))
	assert.Equal(t, int32(0), c.UniformLocation(p, "mvp"))
	assert.Equal(t, int32(1), c.UniformLocation(p, "bones"))
	assert.Equal(t, int32(2), c.UniformLocation(p, "tex"))
	assert.Empty(t, c.Errors())
}

func TestVersionMustComeFirst(t *testing.T) {
	c := NewContext()
	s := c.CreateShader(shader.Fragment)
	c.ShaderSource(s, "precision mediump float;\n#version 100\nvoid main() {}\n")
	c.CompileShader(s)

	assert.False(t, c.CompileStatus(s))
	assert.Contains(t, c.ShaderInfoLog(s), "must occur first")
}

func TestInvalidHandlesAreRecorded(t *testing.T) {
	c := NewContext()
	c.DeleteShader(42)
	c.UseProgram(7)
	assert.Len(t, c.Errors(), 2)
	assert.Zero(t, c.Current())
}

func TestDeleteAttachedShaderIsRecorded(t *testing.T) {
	c := NewContext()
	s := c.CreateShader(shader.Vertex)
	p := c.CreateProgram()
	c.AttachShader(p, s)
	c.DeleteShader(s)
	assert.Len(t, c.Errors(), 1)
}
