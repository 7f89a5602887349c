// Package shaders provides the built-in GLSL shader sources.
//
// The sources are written for GLSL ES 1.00 / GLSL 1.10 and carry no #version
// directive; the loader adds one on platforms that need it.
package shaders

import "embed"

// FS holds color.vert, color.frag, texture.vert and texture.frag.
//
//go:embed *.vert *.frag
var FS embed.FS
