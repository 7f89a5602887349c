// Package shader turns shader source text into linked GPU programs with
// resolved attribute and uniform locations.
//
// The pipeline is split into small steps that can be driven one at a time:
// sources are loaded once per process into a SourceCache, compiled with
// Compile, linked with Link and bound with a Binder. Pipeline runs all of
// them for a list of ProgramDescriptor values and hands every finished
// Program to a Registry.
package shader

import "fmt"

// Kind is the pipeline stage a shader source belongs to.
type Kind uint8

const (
	Vertex Kind = iota
	Fragment
)

// String returns the lowercase stage name.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// EmbeddedPlatform is the platform tag that needs an explicit GLSL ES
// version directive in front of every source.
const EmbeddedPlatform = "RPI"

// VersionDirective is prepended to sources loaded for EmbeddedPlatform.
const VersionDirective = "#version 100\n"

// Ref names one source file and the stage it is compiled for.
type Ref struct {
	Name string
	Kind Kind
}

// Source is loaded shader text. It is never modified after loading.
type Source struct {
	Name string
	Kind Kind
	Text string
}

// Transform applies the platform specific rewrite to raw shader text.
func Transform(text, platform string) string {
	if platform == EmbeddedPlatform {
		return VersionDirective + text
	}
	return text
}
