package shader

import (
	"errors"
	"fmt"
)

// LoadError reports a source that could not be read. It is recoverable:
// the cache stays empty and Preload may be called again.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("load shader %q (%s): %v", e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("load shader %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Stage identifies where a fatal failure happened.
type Stage string

const (
	StageCreateShader  Stage = "create-shader"
	StageCompile       Stage = "compile"
	StageCreateProgram Stage = "create-program"
	StageLink          Stage = "link"
	StageUsage         Stage = "usage"
	StageRegister      Stage = "register"
)

// FatalError is a failure that leaves no usable program behind. Callers
// must not continue rendering after receiving one.
type FatalError struct {
	Stage   Stage
	Program string
	Source  string
	Log     string
	Err     error
}

func (e *FatalError) Error() string {
	msg := "shader: " + string(e.Stage)
	if e.Program != "" {
		msg += " program " + e.Program
	}
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Log != "" {
		msg += ": " + e.Log
	}
	return msg
}

func (e *FatalError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// IsLoadError reports whether err carries a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

var (
	errNilHandle     = errors.New("native allocation returned a zero handle")
	errCompileStatus = errors.New("compile status is false")
	errLinkStatus    = errors.New("link status is false")
	errInvalidUTF8   = errors.New("not valid UTF-8")
)
