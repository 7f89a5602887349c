package shader

// Context is the set of native graphics calls the pipeline needs.
// Implementations are bound to one graphics context and must only be used
// from the thread that owns it.
type Context interface {
	CreateShader(kind Kind) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, text string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string

	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ProgramInfoLog(program uint32) string

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
}
