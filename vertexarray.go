// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/shader"

	"gioui.org/glcache/gl"
)

type gpuVertexArray struct {
	obj gl.VertexArray
	// indices is the index buffer recorded by AssignVertexArray.
	indices Buffer
}

// VertexLayout describes how a vertex attribute is read from its buffer.
type VertexLayout struct {
	Type shader.DataType
	// Size is the number of components, 1 to 4.
	Size       int
	Normalized bool
	// Integer passes the values to the shader without conversion to
	// float. It needs FeatureIntegerAttributes.
	Integer bool
	Stride  int
	Offset  int
	// Divisor advances the attribute once per Divisor instances instead
	// of once per vertex. It needs FeatureInstancing.
	Divisor int
}

// VertexAttribute connects the vertex attribute Name to a buffer.
type VertexAttribute struct {
	Name   string
	Buffer Buffer
	Layout VertexLayout
}

func (r *Renderer) checkLayout(name string, l VertexLayout) (gl.Enum, error) {
	var typ gl.Enum
	switch l.Type {
	case shader.DataTypeFloat:
		typ = gl.FLOAT
	case shader.DataTypeShort:
		typ = gl.SHORT
	case shader.DataTypeInt:
		if !r.feats.Has(FeatureIntegerAttributes) {
			return 0, noCapability(fmt.Sprintf("attribute %q: int vertex data", name))
		}
		typ = gl.INT
	default:
		return 0, fmt.Errorf("glcache: attribute %q: unknown data type %d", name, l.Type)
	}
	switch {
	case l.Size < 1 || l.Size > 4:
		return 0, fmt.Errorf("glcache: attribute %q: %d components", name, l.Size)
	case l.Stride < 0 || l.Offset < 0 || l.Divisor < 0:
		return 0, fmt.Errorf("glcache: attribute %q: negative stride, offset or divisor", name)
	case l.Integer && typ == gl.FLOAT:
		return 0, fmt.Errorf("glcache: attribute %q: float data for an integer attribute", name)
	case l.Integer && !r.feats.Has(FeatureIntegerAttributes):
		return 0, noCapability(fmt.Sprintf("attribute %q: integer attributes", name))
	case l.Divisor > 0 && !r.feats.Has(FeatureInstancing):
		return 0, noCapability(fmt.Sprintf("attribute %q: instancing", name))
	}
	return typ, nil
}

// setupAttribute sets the pointer of attribute a to the buffer bound to
// ARRAY_BUFFER and enables it.
func (r *Renderer) setupAttribute(a gl.Attrib, typ gl.Enum, l VertexLayout) error {
	if l.Integer {
		if err := r.backend.vertexAttribIPointer(a, l.Size, typ, l.Stride, l.Offset); err != nil {
			return err
		}
	} else {
		r.funcs.VertexAttribPointer(a, l.Size, typ, l.Normalized, l.Stride, l.Offset)
	}
	r.funcs.EnableVertexAttribArray(a)
	if r.feats.Has(FeatureInstancing) {
		return r.backend.vertexAttribDivisor(a, l.Divisor)
	}
	return nil
}

// CreateVertexArray allocates a vertex array object. It needs
// FeatureVertexArrays.
func (r *Renderer) CreateVertexArray() (VertexArray, error) {
	obj, err := r.backend.createVertexArray()
	if err != nil {
		return VertexArray{}, err
	}
	if !obj.Valid() {
		return VertexArray{}, fmt.Errorf("glcache: CreateVertexArray: %w", ErrCreateFailed)
	}
	return VertexArray{r.vertexArrays.Insert(&gpuVertexArray{obj: obj})}, nil
}

// DeleteVertexArray deletes a. If a is bound, the default vertex array
// is bound afterwards.
func (r *Renderer) DeleteVertexArray(a VertexArray) error {
	va, ok := r.vertexArrays.Remove(a.h)
	if !ok {
		return missing("DeleteVertexArray", a)
	}
	r.funcs.DeleteVertexArray(va.obj)
	r.state.forgetVertexArray(a)
	return nil
}

type resolvedAttribute struct {
	loc    gl.Attrib
	typ    gl.Enum
	handle Buffer
	buf    *gpuBuffer
	layout VertexLayout
}

// AssignVertexArray records the index buffer and vertex attributes in a.
// Attribute names are resolved against the active program. Every handle
// and name is checked before a is touched, and no vertex array is bound
// when AssignVertexArray returns, successful or not. The zero indices
// Buffer leaves a without index buffer.
func (r *Renderer) AssignVertexArray(a VertexArray, indices Buffer, attrs []VertexAttribute) error {
	va, idx, resolved, err := r.resolveVertexArray(a, indices, attrs)
	if err != nil {
		if !r.state.vao.IsZero() {
			r.bindVertexArray(VertexArray{}, gl.VertexArray{})
		}
		return err
	}

	// Vertex array state is captured from the calls made while it is
	// bound; none of them may be elided.
	f := r.funcs
	f.BindVertexArray(va.obj)
	if idx != nil {
		f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, idx.obj)
	} else {
		f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{})
	}
	last := -1
	for i, ra := range resolved {
		f.BindBuffer(gl.ARRAY_BUFFER, ra.buf.obj)
		last = i
		if err = r.setupAttribute(ra.loc, ra.typ, ra.layout); err != nil {
			break
		}
	}
	f.BindVertexArray(gl.VertexArray{})
	r.state.vao = VertexArray{}
	r.state.forgetElements()
	// ARRAY_BUFFER is not vertex array state.
	if last >= 0 {
		r.state.buffers[bufferPoint{gl.ARRAY_BUFFER, genericBinding}] = resolved[last].handle
	}
	va.indices = indices
	return err
}

// resolveVertexArray looks up every handle and attribute location of an
// AssignVertexArray call without touching the context.
func (r *Renderer) resolveVertexArray(a VertexArray, indices Buffer, attrs []VertexAttribute) (*gpuVertexArray, *gpuBuffer, []resolvedAttribute, error) {
	va, ok := r.vertexArrays.Get(a.h)
	if !ok {
		return nil, nil, nil, missing("AssignVertexArray", a)
	}
	p, err := r.currentProgram("AssignVertexArray")
	if err != nil {
		return nil, nil, nil, err
	}
	var idx *gpuBuffer
	if !indices.IsZero() {
		if idx, ok = r.buffers.Get(indices.h); !ok {
			return nil, nil, nil, missing("AssignVertexArray", indices)
		}
	}
	resolved := make([]resolvedAttribute, len(attrs))
	for i, attr := range attrs {
		typ, err := r.checkLayout(attr.Name, attr.Layout)
		if err != nil {
			return nil, nil, nil, err
		}
		buf, ok := r.buffers.Get(attr.Buffer.h)
		if !ok {
			return nil, nil, nil, missing("AssignVertexArray", attr.Buffer)
		}
		loc, err := r.attribLocation(p, attr.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		resolved[i] = resolvedAttribute{loc: loc, typ: typ, handle: attr.Buffer, buf: buf, layout: attr.Layout}
	}
	return va, idx, resolved, nil
}

// ActivateAttribute points the attribute name of the active program at
// b and enables it, in the bound vertex array.
func (r *Renderer) ActivateAttribute(name string, b Buffer, l VertexLayout) error {
	p, err := r.currentProgram("ActivateAttribute")
	if err != nil {
		return err
	}
	typ, err := r.checkLayout(name, l)
	if err != nil {
		return err
	}
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return missing("ActivateAttribute", b)
	}
	loc, err := r.attribLocation(p, name)
	if err != nil {
		return err
	}
	r.bindBuffer(gl.ARRAY_BUFFER, b, buf.obj)
	return r.setupAttribute(loc, typ, l)
}

// DisableAttribute disables the attribute name of the active program in
// the bound vertex array.
func (r *Renderer) DisableAttribute(name string) error {
	p, err := r.currentProgram("DisableAttribute")
	if err != nil {
		return err
	}
	loc, err := r.attribLocation(p, name)
	if err != nil {
		return err
	}
	r.funcs.DisableVertexAttribArray(loc)
	return nil
}
