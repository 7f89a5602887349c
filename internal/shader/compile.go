package shader

import "strings"

// CompiledShader is a shader object that compiled successfully.
type CompiledShader struct {
	Handle uint32
	Kind   Kind
	Name   string

	released bool
}

// Released reports whether the shader object was deleted after linking.
func (s *CompiledShader) Released() bool {
	return s.released
}

// Compile creates a shader object for src and compiles it.
// Any failure is returned as a *FatalError; the shader object is deleted
// before returning.
func Compile(ctx Context, src Source) (*CompiledShader, error) {
	handle := ctx.CreateShader(src.Kind)
	if handle == 0 {
		return nil, &FatalError{Stage: StageCreateShader, Source: src.Name, Err: errNilHandle}
	}

	ctx.ShaderSource(handle, src.Text)
	ctx.CompileShader(handle)

	if !ctx.CompileStatus(handle) {
		log := strings.TrimSpace(ctx.ShaderInfoLog(handle))
		ctx.DeleteShader(handle)
		return nil, &FatalError{
			Stage:  StageCompile,
			Source: src.Name + " (" + src.Kind.String() + ")",
			Log:    log,
			Err:    errCompileStatus,
		}
	}

	return &CompiledShader{Handle: handle, Kind: src.Kind, Name: src.Name}, nil
}
