package shader

import (
	"errors"
	"fmt"
)

// Names of the two built-in programs.
const (
	ColorProgramName   = "color"
	TextureProgramName = "texture"
)

// ProgramDescriptor describes one program: the sources it is built from and
// the names to resolve once it is linked. Each Pipeline run builds a fresh
// Program from it; descriptors carry no native state.
type ProgramDescriptor struct {
	Name       string   `yaml:"name"`
	Vertex     string   `yaml:"vertex"`
	Fragment   string   `yaml:"fragment"`
	Attributes []string `yaml:"attributes"`
	Uniforms   []string `yaml:"uniforms"`
}

// ColorProgram draws flat colored geometry.
func ColorProgram() ProgramDescriptor {
	return ProgramDescriptor{
		Name:       ColorProgramName,
		Vertex:     "color.vert",
		Fragment:   "color.frag",
		Attributes: []string{"pos", "color"},
		Uniforms:   []string{"modelviewProjection", "trans", "opacity"},
	}
}

// TextureProgram draws textured geometry.
func TextureProgram() ProgramDescriptor {
	return ProgramDescriptor{
		Name:       TextureProgramName,
		Vertex:     "texture.vert",
		Fragment:   "texture.frag",
		Attributes: []string{"pos", "texcoords"},
		Uniforms:   []string{"modelviewProjection", "trans", "opacity", "tex"},
	}
}

// DefaultDescriptors returns the color and texture programs, in that order.
func DefaultDescriptors() []ProgramDescriptor {
	return []ProgramDescriptor{ColorProgram(), TextureProgram()}
}

// Validate checks that d names a program and both of its sources.
func (d ProgramDescriptor) Validate() error {
	switch {
	case d.Name == "":
		return errors.New("program has no name")
	case d.Vertex == "":
		return fmt.Errorf("program %s: missing vertex source", d.Name)
	case d.Fragment == "":
		return fmt.Errorf("program %s: missing fragment source", d.Name)
	}
	return nil
}

// ValidateDescriptors validates every descriptor and rejects duplicate names
// and sources used for both stages.
func ValidateDescriptors(descs []ProgramDescriptor) error {
	if len(descs) == 0 {
		return errors.New("no programs configured")
	}
	names := make(map[string]bool, len(descs))
	kinds := make(map[string]Kind)
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return err
		}
		if names[d.Name] {
			return fmt.Errorf("duplicate program %s", d.Name)
		}
		names[d.Name] = true
		for _, ref := range d.refs() {
			if k, ok := kinds[ref.Name]; ok && k != ref.Kind {
				return fmt.Errorf("program %s: %s used as both %s and %s", d.Name, ref.Name, k, ref.Kind)
			}
			kinds[ref.Name] = ref.Kind
		}
	}
	return nil
}

// SourceRefs lists the sources needed by descs without duplicates,
// in first-use order.
func SourceRefs(descs []ProgramDescriptor) []Ref {
	seen := make(map[string]bool)
	var refs []Ref
	for _, d := range descs {
		for _, ref := range d.refs() {
			if seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

func (d ProgramDescriptor) refs() []Ref {
	return []Ref{
		{Name: d.Vertex, Kind: Vertex},
		{Name: d.Fragment, Kind: Fragment},
	}
}
