// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

// DrawArrays draws count vertices starting at first.
func (r *Renderer) DrawArrays(mode DrawMode, first, count int) error {
	if first < 0 || count < 0 {
		return fmt.Errorf("glcache: DrawArrays: negative first or count")
	}
	r.funcs.DrawArrays(mode.toGL(), first, count)
	return nil
}

// DrawElements draws count indices of type typ read from the bound
// index buffer at byte offset.
func (r *Renderer) DrawElements(mode DrawMode, count int, typ IndexType, offset int) error {
	ty, err := r.elements("DrawElements", count, typ, offset)
	if err != nil {
		return err
	}
	r.funcs.DrawElements(mode.toGL(), count, ty, offset)
	return nil
}

// DrawArraysInstanced is DrawArrays for instances copies. It needs
// FeatureInstancing.
func (r *Renderer) DrawArraysInstanced(mode DrawMode, first, count, instances int) error {
	if first < 0 || count < 0 || instances < 0 {
		return fmt.Errorf("glcache: DrawArraysInstanced: negative first, count or instances")
	}
	return r.backend.drawArraysInstanced(mode.toGL(), first, count, instances)
}

// DrawElementsInstanced is DrawElements for instances copies. It needs
// FeatureInstancing.
func (r *Renderer) DrawElementsInstanced(mode DrawMode, count int, typ IndexType, offset, instances int) error {
	if instances < 0 {
		return fmt.Errorf("glcache: DrawElementsInstanced: negative instances")
	}
	ty, err := r.elements("DrawElementsInstanced", count, typ, offset)
	if err != nil {
		return err
	}
	return r.backend.drawElementsInstanced(mode.toGL(), count, ty, offset, instances)
}

func (r *Renderer) elements(op string, count int, typ IndexType, offset int) (gl.Enum, error) {
	if count < 0 || offset < 0 {
		return 0, fmt.Errorf("glcache: %s: negative count or offset", op)
	}
	ty, err := r.backend.indexType(typ)
	if err != nil {
		return 0, err
	}
	if r.state.vao.IsZero() {
		return ty, nil
	}
	va, ok := r.vertexArrays.Get(r.state.vao.h)
	if !ok {
		return 0, missing(op, r.state.vao)
	}
	_, bound := r.state.buffers[bufferPoint{gl.ELEMENT_ARRAY_BUFFER, genericBinding}]
	if va.indices.IsZero() && !bound {
		return 0, fmt.Errorf("glcache: %s: %v has no index buffer: %w", op, r.state.vao, ErrResourceMissing)
	}
	return ty, nil
}
