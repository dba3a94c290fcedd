// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glcache/gl"
	"gioui.org/glcache/internal/gltest"
)

func TestActivateTextureElision(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	tex := createTexture(t, r)
	f.ResetCalls()

	require.NoError(t, r.ActivateTexture(0, tex, Texture2D))
	require.NoError(t, r.ActivateTexture(0, tex, Texture2D))
	assert.Equal(t, 1, f.Calls("BindTexture"))
	assert.Equal(t, 1, f.Calls("ActiveTexture"))

	require.NoError(t, r.ActivateTexture(1, tex, Texture2D))
	assert.Equal(t, 2, f.Calls("BindTexture"))
	assert.Equal(t, 2, f.Calls("ActiveTexture"))
	assert.Equal(t, glTexture(t, r, tex), f.BoundTexture(1, gl.TEXTURE_2D))

	// Releasing always reaches the context.
	require.NoError(t, r.ActivateTexture(1, Texture{}, Texture2D))
	require.NoError(t, r.ActivateTexture(1, Texture{}, Texture2D))
	assert.Equal(t, 4, f.Calls("BindTexture"))
	assert.False(t, f.BoundTexture(1, gl.TEXTURE_2D).Valid())
}

func TestActivateTextureUnitRange(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	tex := createTexture(t, r)
	assert.ErrorIs(t, r.ActivateTexture(16, tex, Texture2D), ErrCapabilityMissing)
	assert.ErrorIs(t, r.ActivateTexture(-1, tex, Texture2D), ErrCapabilityMissing)
	require.NoError(t, r.ActivateTexture(15, tex, Texture2D))
	assert.Equal(t, 15, f.ActiveUnit())

	r1 := newRenderer(t, gltest.NewWebGL1())
	tex = createTexture(t, r1)
	assert.ErrorIs(t, r1.ActivateTexture(0, tex, Texture3D), ErrCapabilityMissing)
}

func TestActivateTextureForSampler(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	albedo := createTexture(t, r)
	shadow := createTexture(t, r)

	require.NoError(t, r.ActivateTextureForSampler("tex", albedo, Texture2D))
	require.NoError(t, r.ActivateTextureForSampler("shadows[1]", shadow, Texture2D))
	assert.Equal(t, glTexture(t, r, albedo), f.BoundTexture(0, gl.TEXTURE_2D))
	assert.Equal(t, glTexture(t, r, shadow), f.BoundTexture(2, gl.TEXTURE_2D))

	assert.ErrorIs(t, r.ActivateTextureForSampler("color", albedo, Texture2D), ErrLocationMissing)
	require.NoError(t, r.ActivateProgram(Program{}))
	assert.ErrorIs(t, r.ActivateTextureForSampler("tex", albedo, Texture2D), ErrResourceMissing)
}

const skyFrag = `#version 300 es
precision mediump float;
uniform samplerCube sky;
uniform sampler2D tex;
out vec4 fragColor;
void main() {
	fragColor = texture(sky, vec3(1.0)) * texture(tex, vec2(0.0));
}
`

func TestActivateTextureForSamplerTarget(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p, err := r.CompileProgram(quadVert, skyFrag)
	require.NoError(t, err)
	require.NoError(t, r.ActivateProgram(p))
	unit, err := r.SamplerUnit(p, "sky")
	require.NoError(t, err)
	cube := createTexture(t, r)
	flat := createTexture(t, r)
	f.ResetCalls()

	assert.Error(t, r.ActivateTextureForSampler("sky", cube, Texture2D))
	assert.Error(t, r.ActivateTextureForSampler("tex", flat, TextureCubeMap))
	assert.Equal(t, 0, f.Calls("BindTexture"))

	require.NoError(t, r.ActivateTextureForSampler("sky", cube, TextureCubeMap))
	assert.Equal(t, glTexture(t, r, cube), f.BoundTexture(unit, gl.TEXTURE_CUBE_MAP))
	require.NoError(t, r.ActivateTextureForSampler("tex", flat, Texture2D))
}

func TestSamplerUnitsShared(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	a, err := r.CompileProgram(quadVert, texFrag)
	require.NoError(t, err)
	b := compileQuad(t, r)
	tex := createTexture(t, r)

	// Both programs sample tex from unit 0, so switching programs keeps
	// the binding.
	require.NoError(t, r.ActivateTextureForSampler("tex", tex, Texture2D))
	f.ResetCalls()
	require.NoError(t, r.ActivateProgram(a))
	require.NoError(t, r.ActivateTextureForSampler("tex", tex, Texture2D))
	require.NoError(t, r.ActivateProgram(b))
	require.NoError(t, r.ActivateTextureForSampler("tex", tex, Texture2D))
	assert.Equal(t, 0, f.Calls("BindTexture"))
	assert.Equal(t, 2, f.Calls("UseProgram"))
}

func TestDeleteTextureForgetsUnits(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	tex := createTexture(t, r)
	require.NoError(t, r.ActivateTexture(3, tex, Texture2D))
	require.NoError(t, r.DeleteTexture(tex))
	assert.False(t, f.BoundTexture(3, gl.TEXTURE_2D).Valid())

	tex2 := createTexture(t, r)
	f.ResetCalls()
	require.NoError(t, r.ActivateTexture(3, tex2, Texture2D))
	assert.Equal(t, 1, f.Calls("BindTexture"))
	assert.ErrorIs(t, r.ActivateTexture(3, tex, Texture2D), ErrResourceMissing)
}
