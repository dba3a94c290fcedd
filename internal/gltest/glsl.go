// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gltest

import (
	"regexp"
	"strconv"
	"strings"

	"gioui.org/glcache/gl"
)

// decl is a variable declaration found in shader source.
type decl struct {
	name string
	typ  gl.Enum
	// size is the array length, 1 for non-arrays.
	size int
	// loc is the explicit layout location, or -1.
	loc int
}

type blockDecl struct {
	name    string
	members []decl
	// instance is the instance name, empty for anonymous blocks.
	instance string
}

type shaderDecls struct {
	attribs  []decl
	uniforms []decl
	blocks   []blockDecl
}

var (
	commentRE = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
	blockRE   = regexp.MustCompile(`(?s)(?:layout\s*\([^)]*\)\s*)?uniform\s+(\w+)\s*\{([^}]*)\}\s*(\w+)?\s*;`)
	uniformRE = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	attribRE  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:attribute|in)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*;`)
	memberRE  = regexp.MustCompile(`(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
)

var glslTypes = map[string]gl.Enum{
	"float":                gl.FLOAT,
	"vec2":                 gl.FLOAT_VEC2,
	"vec3":                 gl.FLOAT_VEC3,
	"vec4":                 gl.FLOAT_VEC4,
	"int":                  gl.INT,
	"ivec2":                gl.INT_VEC2,
	"ivec3":                gl.INT_VEC3,
	"ivec4":                gl.INT_VEC4,
	"uint":                 gl.UNSIGNED_INT,
	"uvec2":                gl.UNSIGNED_INT_VEC2,
	"uvec3":                gl.UNSIGNED_INT_VEC3,
	"uvec4":                gl.UNSIGNED_INT_VEC4,
	"bool":                 gl.BOOL,
	"bvec2":                gl.BOOL_VEC2,
	"bvec3":                gl.BOOL_VEC3,
	"bvec4":                gl.BOOL_VEC4,
	"mat2":                 gl.FLOAT_MAT2,
	"mat3":                 gl.FLOAT_MAT3,
	"mat4":                 gl.FLOAT_MAT4,
	"sampler2D":            gl.SAMPLER_2D,
	"sampler3D":            gl.SAMPLER_3D,
	"samplerCube":          gl.SAMPLER_CUBE,
	"sampler2DArray":       gl.SAMPLER_2D_ARRAY,
	"sampler2DShadow":      gl.SAMPLER_2D_SHADOW,
	"samplerCubeShadow":    gl.SAMPLER_CUBE_SHADOW,
	"sampler2DArrayShadow": gl.SAMPLER_2D_ARRAY_SHADOW,
	"isampler2D":           gl.INT_SAMPLER_2D,
	"isampler3D":           gl.INT_SAMPLER_3D,
	"isamplerCube":         gl.INT_SAMPLER_CUBE,
	"isampler2DArray":      gl.INT_SAMPLER_2D_ARRAY,
	"usampler2D":           gl.UNSIGNED_INT_SAMPLER_2D,
	"usampler3D":           gl.UNSIGNED_INT_SAMPLER_3D,
	"usamplerCube":         gl.UNSIGNED_INT_SAMPLER_CUBE,
	"usampler2DArray":      gl.UNSIGNED_INT_SAMPLER_2D_ARRAY,
}

// compileError returns the info log of source with an #error directive.
func compileError(src string) (string, bool) {
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#error") {
			msg := strings.TrimSpace(strings.TrimPrefix(line, "#error"))
			return "ERROR: 0:" + strconv.Itoa(i+1) + ": '#error' : " + msg, true
		}
	}
	return "", false
}

func parseSize(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// scan extracts the interface declarations of a shader. Attributes are
// only collected for vertex shaders.
func scan(typ gl.Enum, src string) shaderDecls {
	src = commentRE.ReplaceAllString(src, "")
	var d shaderDecls
	for _, m := range blockRE.FindAllStringSubmatch(src, -1) {
		b := blockDecl{name: m[1], instance: m[3]}
		for _, mm := range memberRE.FindAllStringSubmatch(m[2], -1) {
			t, ok := glslTypes[mm[1]]
			if !ok {
				continue
			}
			b.members = append(b.members, decl{name: mm[2], typ: t, size: parseSize(mm[3]), loc: -1})
		}
		d.blocks = append(d.blocks, b)
	}
	src = blockRE.ReplaceAllString(src, "")
	for _, m := range uniformRE.FindAllStringSubmatch(src, -1) {
		t, ok := glslTypes[m[1]]
		if !ok {
			continue
		}
		d.uniforms = append(d.uniforms, decl{name: m[2], typ: t, size: parseSize(m[3]), loc: -1})
	}
	if typ == gl.VERTEX_SHADER {
		for _, m := range attribRE.FindAllStringSubmatch(src, -1) {
			t, ok := glslTypes[m[2]]
			if !ok {
				continue
			}
			loc := -1
			if m[1] != "" {
				loc, _ = strconv.Atoi(m[1])
			}
			d.attribs = append(d.attribs, decl{name: m[3], typ: t, size: 1, loc: loc})
		}
	}
	return d
}

// std140 returns the base alignment and size of a std140 member of type
// t.
func std140(t gl.Enum) (align, size int) {
	switch t {
	case gl.FLOAT_VEC2, gl.INT_VEC2, gl.UNSIGNED_INT_VEC2, gl.BOOL_VEC2:
		return 8, 8
	case gl.FLOAT_VEC3, gl.INT_VEC3, gl.UNSIGNED_INT_VEC3, gl.BOOL_VEC3:
		return 16, 12
	case gl.FLOAT_VEC4, gl.INT_VEC4, gl.UNSIGNED_INT_VEC4, gl.BOOL_VEC4:
		return 16, 16
	case gl.FLOAT_MAT2:
		return 16, 32
	case gl.FLOAT_MAT3:
		return 16, 48
	case gl.FLOAT_MAT4:
		return 16, 64
	default:
		return 4, 4
	}
}

func alignUp(v, a int) int {
	return (v + a - 1) / a * a
}

// layoutBlock returns the std140 offsets of the members of b and the
// block data size.
func layoutBlock(b blockDecl) ([]int, int) {
	offsets := make([]int, len(b.members))
	off := 0
	for i, m := range b.members {
		align, size := std140(m.typ)
		if m.size > 1 {
			align = 16
			size = alignUp(size, 16) * m.size
		}
		off = alignUp(off, align)
		offsets[i] = off
		off += size
	}
	return offsets, alignUp(off, 16)
}
