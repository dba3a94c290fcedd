// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

// bindingState mirrors the bindings of the context as far as the
// Renderer changed them. A missing or zero entry means "nothing bound,
// or not known"; binding a real object in that state always reaches the
// context.
type bindingState struct {
	prog    Program
	vao     VertexArray
	buffers map[bufferPoint]Buffer
	units   []textureBinding
	// active is the active texture unit, or -1 if unknown.
	active int
}

// bufferPoint is a buffer binding point. Generic bindings use index -1.
type bufferPoint struct {
	target gl.Enum
	index  int
}

type textureBinding struct {
	tex    Texture
	target gl.Enum
}

const genericBinding = -1

func (s *bindingState) init(units int) {
	if units < 0 {
		units = 0
	}
	*s = bindingState{
		buffers: make(map[bufferPoint]Buffer),
		units:   make([]textureBinding, units),
		active:  -1,
	}
}

func (s *bindingState) forgetBuffer(b Buffer) {
	for pt, v := range s.buffers {
		if v == b {
			delete(s.buffers, pt)
		}
	}
}

func (s *bindingState) forgetTexture(t Texture) {
	for i, u := range s.units {
		if u.tex == t {
			s.units[i] = textureBinding{}
		}
	}
}

func (s *bindingState) forgetProgram(p Program) {
	if s.prog == p {
		s.prog = Program{}
	}
}

func (s *bindingState) forgetVertexArray(a VertexArray) {
	if s.vao == a {
		s.vao = VertexArray{}
		s.forgetElements()
	}
}

// forgetElements drops the element array record. The element array
// binding is vertex array state.
func (s *bindingState) forgetElements() {
	delete(s.buffers, bufferPoint{gl.ELEMENT_ARRAY_BUFFER, genericBinding})
}

func (r *Renderer) bindBuffer(target gl.Enum, b Buffer, obj gl.Buffer) {
	pt := bufferPoint{target, genericBinding}
	if b.IsZero() {
		r.funcs.BindBuffer(target, gl.Buffer{})
		delete(r.state.buffers, pt)
		return
	}
	if !r.rebind && r.state.buffers[pt] == b {
		return
	}
	r.funcs.BindBuffer(target, obj)
	r.state.buffers[pt] = b
}

func (r *Renderer) bindBufferBase(target gl.Enum, idx int, b Buffer, obj gl.Buffer) {
	pt := bufferPoint{target, idx}
	gen := bufferPoint{target, genericBinding}
	if b.IsZero() {
		r.funcs.BindBufferBase(target, idx, gl.Buffer{})
		delete(r.state.buffers, pt)
		delete(r.state.buffers, gen)
		return
	}
	// BindBufferBase binds the generic binding point as well.
	if !r.rebind && r.state.buffers[pt] == b && r.state.buffers[gen] == b {
		return
	}
	r.funcs.BindBufferBase(target, idx, obj)
	r.state.buffers[pt] = b
	r.state.buffers[gen] = b
}

func (r *Renderer) useProgram(p Program, obj gl.Program) {
	if p.IsZero() {
		r.funcs.UseProgram(gl.Program{})
		r.state.prog = Program{}
		return
	}
	if !r.rebind && r.state.prog == p {
		return
	}
	r.funcs.UseProgram(obj)
	r.state.prog = p
}

func (r *Renderer) bindVertexArray(a VertexArray, obj gl.VertexArray) {
	if a.IsZero() {
		r.funcs.BindVertexArray(gl.VertexArray{})
		r.state.vao = VertexArray{}
		r.state.forgetElements()
		return
	}
	if !r.rebind && r.state.vao == a {
		return
	}
	r.funcs.BindVertexArray(obj)
	r.state.vao = a
	r.state.forgetElements()
}

func (r *Renderer) activeTexture(unit int) {
	if r.rebind || unit != r.state.active {
		r.funcs.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
		r.state.active = unit
	}
}

func (r *Renderer) bindTexture(unit int, target gl.Enum, t Texture, obj gl.Texture) error {
	if unit < 0 || unit >= len(r.state.units) {
		return noCapability(fmt.Sprintf("texture unit %d of %d", unit, len(r.state.units)))
	}
	tb := textureBinding{tex: t, target: target}
	if !t.IsZero() && !r.rebind && r.state.units[unit] == tb {
		return nil
	}
	r.activeTexture(unit)
	r.funcs.BindTexture(target, obj)
	if t.IsZero() {
		tb = textureBinding{}
	}
	r.state.units[unit] = tb
	return nil
}

// BindBuffer binds b to target. Binding the buffer already bound there
// is a no-op. The zero Buffer releases the binding.
func (r *Renderer) BindBuffer(target BufferTarget, b Buffer) error {
	t, err := r.backend.bufferTarget(target)
	if err != nil {
		return err
	}
	if b.IsZero() {
		r.bindBuffer(t, b, gl.Buffer{})
		return nil
	}
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return missing("BindBuffer", b)
	}
	r.bindBuffer(t, b, buf.obj)
	return nil
}

// BindBufferBase binds b to the indexed uniform buffer binding idx, and
// to the generic uniform buffer binding.
func (r *Renderer) BindBufferBase(target BufferTarget, idx int, b Buffer) error {
	if !r.feats.Has(FeatureUniformBuffers) {
		return noCapability("indexed buffer bindings")
	}
	if target != BufferTargetUniform {
		return fmt.Errorf("glcache: BindBufferBase: buffer target %d is not indexed", target)
	}
	if n := r.backend.maxUniformBufferBindings(); idx < 0 || idx >= n {
		return noCapability(fmt.Sprintf("uniform buffer binding %d of %d", idx, n))
	}
	if b.IsZero() {
		r.bindBufferBase(gl.UNIFORM_BUFFER, idx, b, gl.Buffer{})
		return nil
	}
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return missing("BindBufferBase", b)
	}
	r.bindBufferBase(gl.UNIFORM_BUFFER, idx, b, buf.obj)
	return nil
}

// ActivateProgram makes p the current program. The zero Program
// releases the current program.
func (r *Renderer) ActivateProgram(p Program) error {
	if p.IsZero() {
		r.useProgram(p, gl.Program{})
		return nil
	}
	prog, ok := r.programs.Get(p.h)
	if !ok {
		return missing("ActivateProgram", p)
	}
	r.useProgram(p, prog.obj)
	return nil
}

// ActivateVertexArray binds a. The zero VertexArray restores the
// default vertex array.
func (r *Renderer) ActivateVertexArray(a VertexArray) error {
	if !r.feats.Has(FeatureVertexArrays) {
		return noCapability("vertex arrays")
	}
	if a.IsZero() {
		r.bindVertexArray(a, gl.VertexArray{})
		return nil
	}
	va, ok := r.vertexArrays.Get(a.h)
	if !ok {
		return missing("ActivateVertexArray", a)
	}
	r.bindVertexArray(a, va.obj)
	return nil
}

// currentProgram returns the active program, or ErrResourceMissing if
// none is active.
func (r *Renderer) currentProgram(op string) (*gpuProgram, error) {
	if r.state.prog.IsZero() {
		return nil, fmt.Errorf("glcache: %s: no active program: %w", op, ErrResourceMissing)
	}
	p, ok := r.programs.Get(r.state.prog.h)
	if !ok {
		return nil, missing(op, r.state.prog)
	}
	return p, nil
}
