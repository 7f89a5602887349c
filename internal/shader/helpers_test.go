package shader_test

import (
	"io/fs"
	"sync"

	"github.com/Faultbox/shaderkit/internal/shader"
)

const (
	colorVert = `uniform mat4 modelviewProjection;
uniform mat4 trans;
attribute vec4 pos;
attribute vec4 color;
varying vec4 fcolor;
void main() {
    gl_Position = modelviewProjection * trans * pos;
    fcolor = color;
}
`
	colorFrag = `precision mediump float;
uniform float opacity;
varying vec4 fcolor;
void main() {
    gl_FragColor = vec4(fcolor.rgb, fcolor.a * opacity);
}
`
	textureVert = `uniform mat4 modelviewProjection;
uniform mat4 trans;
attribute vec4 pos;
attribute vec2 texcoords;
varying vec2 uv;
void main() {
    gl_Position = modelviewProjection * trans * pos;
    uv = texcoords;
}
`
	textureFrag = `precision mediump float;
uniform float opacity;
uniform sampler2D tex;
varying vec2 uv;
void main() {
    vec4 texel = texture2D(tex, uv);
    gl_FragColor = vec4(texel.rgb, texel.a * opacity);
}
`
)

// countingStorage is an in-memory Storage that counts reads per name.
type countingStorage struct {
	mu    sync.Mutex
	files map[string]string
	reads map[string]int
	// gate, when set, blocks every read until closed.
	gate chan struct{}
}

func newStorage() *countingStorage {
	return &countingStorage{
		files: map[string]string{
			"color.vert":   colorVert,
			"color.frag":   colorFrag,
			"texture.vert": textureVert,
			"texture.frag": textureFrag,
		},
		reads: make(map[string]int),
	}
}

func (s *countingStorage) ReadFile(name string) ([]byte, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[name]++
	text, ok := s.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(text), nil
}

func (s *countingStorage) set(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = text
}

func (s *countingStorage) remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
}

func (s *countingStorage) totalReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.reads {
		n += c
	}
	return n
}

// recordingRegistry keeps registered programs in order.
type recordingRegistry struct {
	programs []*shader.Program
	err      error
}

func (r *recordingRegistry) Register(p *shader.Program) error {
	if r.err != nil {
		return r.err
	}
	r.programs = append(r.programs, p)
	return nil
}

func defaultRefs() []shader.Ref {
	return shader.SourceRefs(shader.DefaultDescriptors())
}
