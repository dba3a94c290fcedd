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

func TestBindBufferElision(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	b1, err := r.CreateBuffer()
	require.NoError(t, err)
	b2, err := r.CreateBuffer()
	require.NoError(t, err)
	f.ResetCalls()

	require.NoError(t, r.BindBuffer(BufferTargetArray, b1))
	require.NoError(t, r.BindBuffer(BufferTargetArray, b1))
	assert.Equal(t, 1, f.Calls("BindBuffer"))
	assert.Equal(t, glBuffer(t, r, b1), f.BoundBuffer(gl.ARRAY_BUFFER))

	require.NoError(t, r.BindBuffer(BufferTargetArray, b2))
	assert.Equal(t, 2, f.Calls("BindBuffer"))

	// Other targets are tracked separately.
	require.NoError(t, r.BindBuffer(BufferTargetCopyRead, b2))
	assert.Equal(t, 3, f.Calls("BindBuffer"))
}

func TestBindBufferRelease(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	b, err := r.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, r.BindBuffer(BufferTargetArray, b))
	f.ResetCalls()

	require.NoError(t, r.BindBuffer(BufferTargetArray, Buffer{}))
	require.NoError(t, r.BindBuffer(BufferTargetArray, Buffer{}))
	assert.Equal(t, 2, f.Calls("BindBuffer"))
	assert.False(t, f.BoundBuffer(gl.ARRAY_BUFFER).Valid())

	// The release cleared the record.
	require.NoError(t, r.BindBuffer(BufferTargetArray, b))
	assert.Equal(t, 3, f.Calls("BindBuffer"))
}

func TestAlwaysRebind(t *testing.T) {
	f := gltest.NewWebGL2()
	cfg := DefaultConfig()
	cfg.AlwaysRebind = true
	r := newRendererConfig(t, f, cfg)
	b, err := r.CreateBuffer()
	require.NoError(t, err)
	f.ResetCalls()

	require.NoError(t, r.BindBuffer(BufferTargetArray, b))
	require.NoError(t, r.BindBuffer(BufferTargetArray, b))
	assert.Equal(t, 2, f.Calls("BindBuffer"))
}

func TestElementBindingFollowsVertexArray(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	idx := createBuffer(t, r, BufferTargetElementArray, []byte{0, 1, 2, 0})
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	f.ResetCalls()

	require.NoError(t, r.ActivateVertexArray(va))
	require.NoError(t, r.BindBuffer(BufferTargetElementArray, idx))
	assert.Equal(t, 1, f.Calls("BindBuffer"), "element record must be dropped when the vertex array changes")
	assert.Equal(t, glBuffer(t, r, idx).V, f.VertexArrayState(glVertexArray(t, r, va)).Elements)

	require.NoError(t, r.ActivateVertexArray(va))
	assert.Equal(t, 1, f.Calls("BindVertexArray"))
	require.NoError(t, r.BindBuffer(BufferTargetElementArray, idx))
	assert.Equal(t, 1, f.Calls("BindBuffer"))

	require.NoError(t, r.ActivateVertexArray(VertexArray{}))
	require.NoError(t, r.BindBuffer(BufferTargetElementArray, idx))
	assert.Equal(t, 2, f.Calls("BindBuffer"))
}

func TestDeleteForgetsBindings(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	b, err := r.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, r.BindBuffer(BufferTargetArray, b))
	require.NoError(t, r.DeleteBuffer(b))

	b2, err := r.CreateBuffer()
	require.NoError(t, err)
	f.ResetCalls()
	require.NoError(t, r.BindBuffer(BufferTargetArray, b2))
	assert.Equal(t, 1, f.Calls("BindBuffer"))

	assert.ErrorIs(t, r.BindBuffer(BufferTargetArray, b), ErrResourceMissing)
}

func TestActivateProgramElision(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)
	assert.Equal(t, glProgram(t, r, p), f.CurrentProgram())
	f.ResetCalls()

	require.NoError(t, r.ActivateProgram(p))
	assert.Equal(t, 0, f.Calls("UseProgram"))

	require.NoError(t, r.ActivateProgram(Program{}))
	require.NoError(t, r.ActivateProgram(Program{}))
	assert.Equal(t, 2, f.Calls("UseProgram"))
	assert.False(t, f.CurrentProgram().Valid())

	require.NoError(t, r.ActivateProgram(p))
	assert.Equal(t, 3, f.Calls("UseProgram"))

	require.NoError(t, r.DeleteProgram(p))
	assert.ErrorIs(t, r.ActivateProgram(p), ErrResourceMissing)
	assert.ErrorIs(t, r.UploadUniformFloat("color", 1), ErrResourceMissing)
}

func TestBindBufferBase(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	b, err := r.CreateBuffer()
	require.NoError(t, err)
	f.ResetCalls()

	require.NoError(t, r.BindBufferBase(BufferTargetUniform, 3, b))
	require.NoError(t, r.BindBufferBase(BufferTargetUniform, 3, b))
	assert.Equal(t, 1, f.Calls("BindBufferBase"))
	assert.Equal(t, glBuffer(t, r, b), f.BoundBufferBase(gl.UNIFORM_BUFFER, 3))

	// The generic binding was updated as well.
	require.NoError(t, r.BindBuffer(BufferTargetUniform, b))
	assert.Equal(t, 0, f.Calls("BindBuffer"))

	assert.ErrorIs(t, r.BindBufferBase(BufferTargetUniform, 24, b), ErrCapabilityMissing)
	assert.Error(t, r.BindBufferBase(BufferTargetArray, 0, b))

	r1 := newRenderer(t, gltest.NewWebGL1())
	assert.ErrorIs(t, r1.BindBufferBase(BufferTargetUniform, 0, Buffer{}), ErrCapabilityMissing)
}
