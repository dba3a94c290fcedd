// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glcache/internal/gltest"
)

func TestIntrospectAttributes(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)

	loc, err := r.AttribLocation(p, "pos")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)
	loc, err = r.AttribLocation(p, "uv")
	require.NoError(t, err)
	assert.Equal(t, 1, loc)

	_, err = r.AttribLocation(p, "normal")
	assert.ErrorIs(t, err, ErrLocationMissing)
	_, err = r.AttribLocation(Program{}, "pos")
	assert.ErrorIs(t, err, ErrResourceMissing)
}

func TestSamplerUnits(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)
	obj := glProgram(t, r, p)

	units := map[string]int{
		"tex":        0,
		"shadows":    1,
		"shadows[0]": 1,
		"shadows[2]": 3,
	}
	for name, want := range units {
		unit, err := r.SamplerUnit(p, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, unit, name)
	}
	_, err := r.SamplerUnit(p, "shadows[3]")
	assert.ErrorIs(t, err, ErrLocationMissing)
	_, err = r.SamplerUnit(p, "color")
	assert.ErrorIs(t, err, ErrLocationMissing)

	// The units were written to the sampler uniforms.
	assert.Equal(t, []float32{0}, f.UniformValue(obj, "tex"))
	assert.Equal(t, []float32{1}, f.UniformValue(obj, "shadows[0]"))
	assert.Equal(t, []float32{3}, f.UniformValue(obj, "shadows[2]"))
}

func TestSamplerUnitsPerProgram(t *testing.T) {
	r := newRenderer(t, gltest.NewWebGL2())
	p1, err := r.CompileProgram(quadVert, texFrag)
	require.NoError(t, err)
	p2 := compileQuad(t, r)

	for _, p := range []Program{p1, p2} {
		unit, err := r.SamplerUnit(p, "tex")
		require.NoError(t, err)
		assert.Equal(t, 0, unit, "%v", p)
	}
}

// texFrag declares a single sampler.
const texFrag = `#version 300 es
precision mediump float;
uniform sampler2D tex;
in vec2 vUV;
out vec4 fragColor;
void main() {
	fragColor = texture(tex, vUV);
}
`

func TestUploadUniforms(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)
	obj := glProgram(t, r, p)

	require.NoError(t, r.UploadUniformFloat("color", 1, 0.5, 0.25, 1))
	assert.Equal(t, []float32{1, 0.5, 0.25, 1}, f.UniformValue(obj, "color"))

	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	require.NoError(t, r.UploadUniformMatrix("transform", m))
	assert.Equal(t, m, f.UniformValue(obj, "transform"))

	assert.Error(t, r.UploadUniformMatrix("transform", m[:9]))
	assert.Error(t, r.UploadUniformMatrix("color", m))
	assert.Error(t, r.UploadUniformFloat("color", 1, 2, 3, 4, 5))
	assert.Error(t, r.UploadUniformSlice("color", 4, m[:6]))
	require.NoError(t, r.UploadUniformSlice("color", 4, m[:4]))
	assert.Equal(t, m[:4], f.UniformValue(obj, "color"))

	assert.ErrorIs(t, r.UploadUniformFloat("missing", 1), ErrLocationMissing)
	assert.ErrorIs(t, r.UploadUniformInt("missing", 1), ErrLocationMissing)

	require.NoError(t, r.UploadUniformIntSlice("shadows", 1, []int32{3, 2, 1}))
	assert.Equal(t, []float32{1}, f.UniformValue(obj, "shadows[2]"))
}

func TestUniformLookupMemoized(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)
	obj := glProgram(t, r, p)
	f.ResetCalls()

	// Array elements past the first are not enumerated.
	require.NoError(t, r.UploadUniformInt("shadows[1]", 7))
	require.NoError(t, r.UploadUniformInt("shadows[1]", 8))
	assert.Equal(t, 1, f.Calls("GetUniformLocation"))
	assert.Equal(t, []float32{8}, f.UniformValue(obj, "shadows[1]"))

	// Enumerated names never reach the context.
	require.NoError(t, r.UploadUniformFloat("color", 1, 1, 1, 1))
	assert.Equal(t, 1, f.Calls("GetUniformLocation"))

	// Misses are not remembered.
	assert.Error(t, r.UploadUniformInt("shadows[5]", 1))
	assert.Error(t, r.UploadUniformInt("shadows[5]", 1))
	assert.Equal(t, 3, f.Calls("GetUniformLocation"))
}

func TestUniformWithoutProgram(t *testing.T) {
	r := newRenderer(t, gltest.NewWebGL2())
	assert.ErrorIs(t, r.UploadUniformFloat("color", 1), ErrResourceMissing)
	compileQuad(t, r)
	require.NoError(t, r.ActivateProgram(Program{}))
	assert.ErrorIs(t, r.UploadUniformMatrix("transform", make([]float32, 16)), ErrResourceMissing)
}

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		in   string
		base string
		idx  int
		ok   bool
	}{
		{"lights[3]", "lights", 3, true},
		{"a.b[0]", "a.b", 0, true},
		{"lights", "", 0, false},
		{"[2]", "", 0, false},
		{"lights[x]", "", 0, false},
		{"lights[-1]", "", 0, false},
	}
	for _, test := range tests {
		base, idx, ok := splitIndex(test.in)
		assert.Equal(t, test.ok, ok, test.in)
		assert.Equal(t, test.base, base, test.in)
		assert.Equal(t, test.idx, idx, test.in)
	}
	base, ok := arrayBase("colors[0]")
	assert.True(t, ok)
	assert.Equal(t, "colors", base)
	_, ok = arrayBase("colors[1]")
	assert.False(t, ok)
}
