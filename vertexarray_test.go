// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/shader"

	"gioui.org/glcache/gl"
	"gioui.org/glcache/internal/gltest"
)

var vec2Layout = VertexLayout{Type: shader.DataTypeFloat, Size: 2, Stride: 16}

func TestAssignVertexArray(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))
	idx := createBuffer(t, r, BufferTargetElementArray, []byte{0, 1, 2, 2, 1, 3})
	va, err := r.CreateVertexArray()
	require.NoError(t, err)

	uvLayout := vec2Layout
	uvLayout.Offset = 8
	err = r.AssignVertexArray(va, idx, []VertexAttribute{
		{Name: "pos", Buffer: verts, Layout: vec2Layout},
		{Name: "uv", Buffer: verts, Layout: uvLayout},
	})
	require.NoError(t, err)
	assert.False(t, f.CurrentVertexArray().Valid())

	state := f.VertexArrayState(glVertexArray(t, r, va))
	assert.Equal(t, glBuffer(t, r, idx).V, state.Elements)
	require.Contains(t, state.Attribs, gl.Attrib(1))
	uv := state.Attribs[1]
	assert.True(t, uv.Enabled)
	assert.Equal(t, glBuffer(t, r, verts).V, uv.Buffer)
	assert.Equal(t, 8, uv.Offset)
	assert.Equal(t, 16, uv.Stride)

	// The default vertex array is untouched.
	assert.Empty(t, f.VertexArrayState(gl.VertexArray{}).Attribs)

	require.NoError(t, r.ActivateVertexArray(va))
	require.NoError(t, r.DrawElements(DrawModeTriangles, 6, IndexTypeUint8, 0))
	require.Len(t, f.Draws(), 1)
	assert.True(t, f.Draws()[0].Indexed)
}

func TestAssignVertexArrayUnknownAttribute(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	live := f.Live()
	f.ResetCalls()

	err = r.AssignVertexArray(va, Buffer{}, []VertexAttribute{
		{Name: "pos", Buffer: verts, Layout: vec2Layout},
		{Name: "normal", Buffer: verts, Layout: vec2Layout},
	})
	assert.ErrorIs(t, err, ErrLocationMissing)
	assert.Equal(t, 0, f.Calls("BindVertexArray"))
	assert.Equal(t, 0, f.Calls("VertexAttribPointer"))
	assert.False(t, f.CurrentVertexArray().Valid())
	assert.Equal(t, live, f.Live())
	assert.Empty(t, f.VertexArrayState(glVertexArray(t, r, va)).Attribs)

	err = r.AssignVertexArray(va, Buffer{}, []VertexAttribute{{Name: "pos", Buffer: Buffer{}, Layout: vec2Layout}})
	assert.ErrorIs(t, err, ErrResourceMissing)

	// A failed assignment unbinds the bound vertex array, even when it
	// is the one being assigned.
	require.NoError(t, r.ActivateVertexArray(va))
	err = r.AssignVertexArray(va, Buffer{}, []VertexAttribute{{Name: "nope", Buffer: verts, Layout: vec2Layout}})
	assert.ErrorIs(t, err, ErrLocationMissing)
	assert.False(t, f.CurrentVertexArray().Valid())
	assert.Empty(t, f.VertexArrayState(glVertexArray(t, r, va)).Attribs)

	stale, err := r.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, r.DeleteVertexArray(stale))
	require.NoError(t, r.ActivateVertexArray(va))
	assert.ErrorIs(t, r.AssignVertexArray(stale, Buffer{}, nil), ErrResourceMissing)
	assert.False(t, f.CurrentVertexArray().Valid())

	// The unbind is not elided by a stale record.
	f.ResetCalls()
	require.NoError(t, r.ActivateVertexArray(va))
	assert.Equal(t, 1, f.Calls("BindVertexArray"))
}

func TestAssignVertexArrayClearsIndices(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))
	idx := createBuffer(t, r, BufferTargetElementArray, []byte{0, 1, 2})
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	attrs := []VertexAttribute{{Name: "pos", Buffer: verts, Layout: vec2Layout}}

	require.NoError(t, r.AssignVertexArray(va, idx, attrs))
	assert.Equal(t, glBuffer(t, r, idx).V, f.VertexArrayState(glVertexArray(t, r, va)).Elements)

	require.NoError(t, r.AssignVertexArray(va, Buffer{}, attrs))
	assert.Zero(t, f.VertexArrayState(glVertexArray(t, r, va)).Elements)
	require.NoError(t, r.ActivateVertexArray(va))
	assert.ErrorIs(t, r.DrawElements(DrawModeTriangles, 3, IndexTypeUint8, 0), ErrResourceMissing)
}

func TestAssignVertexArrayRestoresBindings(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))
	other := createBuffer(t, r, BufferTargetArray, make([]byte, 64))
	a, err := r.CreateVertexArray()
	require.NoError(t, err)
	b, err := r.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, r.ActivateVertexArray(a))

	require.NoError(t, r.AssignVertexArray(b, Buffer{}, []VertexAttribute{{Name: "pos", Buffer: verts, Layout: vec2Layout}}))
	f.ResetCalls()

	// The binding of a was replaced and must be reissued.
	require.NoError(t, r.ActivateVertexArray(a))
	assert.Equal(t, 1, f.Calls("BindVertexArray"))
	// ARRAY_BUFFER still holds verts.
	require.NoError(t, r.BindBuffer(BufferTargetArray, verts))
	assert.Equal(t, 0, f.Calls("BindBuffer"))
	require.NoError(t, r.BindBuffer(BufferTargetArray, other))
	assert.Equal(t, 1, f.Calls("BindBuffer"))
}

func TestActivateAttribute(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))

	inst := VertexLayout{Type: shader.DataTypeFloat, Size: 2, Divisor: 1}
	require.NoError(t, r.ActivateAttribute("uv", verts, inst))
	at := f.VertexArrayState(gl.VertexArray{}).Attribs[1]
	require.NotNil(t, at)
	assert.True(t, at.Enabled)
	assert.Equal(t, 1, at.Divisor)

	require.NoError(t, r.DisableAttribute("uv"))
	assert.False(t, at.Enabled)
	assert.ErrorIs(t, r.DisableAttribute("normal"), ErrLocationMissing)

	require.NoError(t, r.DrawArraysInstanced(DrawModeTriangles, 0, 6, 4))
	require.Len(t, f.Draws(), 1)
	assert.Equal(t, 4, f.Draws()[0].Instances)
}

func TestVertexLayoutChecks(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 64))

	bad := []VertexLayout{
		{Type: shader.DataTypeFloat, Size: 0},
		{Type: shader.DataTypeFloat, Size: 5},
		{Type: shader.DataTypeFloat, Size: 2, Stride: -1},
		{Type: shader.DataTypeFloat, Size: 2, Integer: true},
	}
	for _, l := range bad {
		assert.Error(t, r.ActivateAttribute("pos", verts, l), "%+v", l)
	}
	require.NoError(t, r.ActivateAttribute("pos", verts, VertexLayout{Type: shader.DataTypeInt, Size: 2, Integer: true}))
	assert.True(t, f.VertexArrayState(gl.VertexArray{}).Attribs[0].Integer)
}

func TestVertexArraysWebGL1(t *testing.T) {
	r := newRenderer(t, gltest.NewWebGL1())
	_, err := r.CreateVertexArray()
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.ErrorIs(t, r.ActivateVertexArray(VertexArray{}), ErrCapabilityMissing)
	assert.ErrorIs(t, r.DrawArraysInstanced(DrawModeTriangles, 0, 3, 2), ErrCapabilityMissing)

	p, err := r.CompileProgram(quadVert100, quadFrag100)
	require.NoError(t, err)
	require.NoError(t, r.ActivateProgram(p))
	verts := createBuffer(t, r, BufferTargetArray, make([]byte, 32))
	assert.ErrorIs(t, r.ActivateAttribute("pos", verts, VertexLayout{Type: shader.DataTypeFloat, Size: 2, Divisor: 1}), ErrCapabilityMissing)
	assert.ErrorIs(t, r.ActivateAttribute("pos", verts, VertexLayout{Type: shader.DataTypeInt, Size: 2}), ErrCapabilityMissing)
	require.NoError(t, r.ActivateAttribute("pos", verts, VertexLayout{Type: shader.DataTypeFloat, Size: 2}))

	f := gltest.NewWebGL1("OES_vertex_array_object", "ANGLE_instanced_arrays")
	r = newRenderer(t, f)
	assert.Equal(t, FeatureVertexArrays|FeatureInstancing, r.Features())
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, r.ActivateVertexArray(va))
	assert.Equal(t, glVertexArray(t, r, va), f.CurrentVertexArray())
}

func TestDrawElementsWithoutIndices(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	compileQuad(t, r)
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, r.ActivateVertexArray(va))
	assert.ErrorIs(t, r.DrawElements(DrawModeTriangles, 3, IndexTypeUint16, 0), ErrResourceMissing)

	// Binding an index buffer in the vertex array is enough.
	createBuffer(t, r, BufferTargetElementArray, make([]byte, 6))
	require.NoError(t, r.DrawElements(DrawModeTriangles, 3, IndexTypeUint16, 0))

	assert.Error(t, r.DrawElements(DrawModeTriangles, -1, IndexTypeUint16, 0))
	assert.Error(t, r.DrawArrays(DrawModeTriangles, 0, -3))

	r1 := newRenderer(t, gltest.NewWebGL1())
	assert.ErrorIs(t, r1.DrawElements(DrawModeTriangles, 3, IndexTypeUint32, 0), ErrCapabilityMissing)
	r1 = newRenderer(t, gltest.NewWebGL1("OES_element_index_uint"))
	_, err = r1.backend.indexType(IndexTypeUint32)
	assert.NoError(t, err)
}

func TestDeleteVertexArray(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	va, err := r.CreateVertexArray()
	require.NoError(t, err)
	require.NoError(t, r.ActivateVertexArray(va))
	require.NoError(t, r.DeleteVertexArray(va))
	assert.Equal(t, 0, f.Live().VertexArrays)
	assert.ErrorIs(t, r.DeleteVertexArray(va), ErrResourceMissing)
	assert.ErrorIs(t, r.ActivateVertexArray(va), ErrResourceMissing)

	va2, err := r.CreateVertexArray()
	require.NoError(t, err)
	f.ResetCalls()
	require.NoError(t, r.ActivateVertexArray(va2))
	assert.Equal(t, 1, f.Calls("BindVertexArray"))
}
