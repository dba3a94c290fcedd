// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

type gpuBuffer struct {
	obj   gl.Buffer
	size  int
	usage BufferUsage
}

// CreateBuffer allocates a buffer object without storage.
func (r *Renderer) CreateBuffer() (Buffer, error) {
	obj := r.funcs.CreateBuffer()
	if !obj.Valid() {
		return Buffer{}, fmt.Errorf("glcache: CreateBuffer: %w", ErrCreateFailed)
	}
	return Buffer{r.buffers.Insert(&gpuBuffer{obj: obj})}, nil
}

// DeleteBuffer deletes b and drops every binding of it.
func (r *Renderer) DeleteBuffer(b Buffer) error {
	buf, ok := r.buffers.Remove(b.h)
	if !ok {
		return missing("DeleteBuffer", b)
	}
	r.funcs.DeleteBuffer(buf.obj)
	r.state.forgetBuffer(b)
	return nil
}

func (r *Renderer) lookupBuffer(op string, b Buffer, target BufferTarget) (gl.Enum, *gpuBuffer, error) {
	t, err := r.backend.bufferTarget(target)
	if err != nil {
		return 0, nil, err
	}
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return 0, nil, missing(op, b)
	}
	return t, buf, nil
}

// UploadBufferData binds b to target and replaces its storage with a
// copy of data.
func (r *Renderer) UploadBufferData(b Buffer, target BufferTarget, data []byte, usage BufferUsage) error {
	t, buf, err := r.lookupBuffer("UploadBufferData", b, target)
	if err != nil {
		return err
	}
	r.bindBuffer(t, b, buf.obj)
	r.funcs.BufferData(t, len(data), usage.toGL(), data)
	buf.size = len(data)
	buf.usage = usage
	return nil
}

// AllocateBufferData binds b to target and gives it size bytes of
// uninitialized storage.
func (r *Renderer) AllocateBufferData(b Buffer, target BufferTarget, size int, usage BufferUsage) error {
	if size < 0 {
		return fmt.Errorf("glcache: AllocateBufferData: negative size %d", size)
	}
	t, buf, err := r.lookupBuffer("AllocateBufferData", b, target)
	if err != nil {
		return err
	}
	r.bindBuffer(t, b, buf.obj)
	r.funcs.BufferData(t, size, usage.toGL(), nil)
	buf.size = size
	buf.usage = usage
	return nil
}

// UploadBufferSubData copies data into b at offset. The range must lie
// within the storage of b.
func (r *Renderer) UploadBufferSubData(b Buffer, target BufferTarget, offset int, data []byte) error {
	t, buf, err := r.lookupBuffer("UploadBufferSubData", b, target)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > buf.size {
		return fmt.Errorf("glcache: UploadBufferSubData: range [%d:%d] out of bounds for %v of size %d", offset, offset+len(data), b, buf.size)
	}
	r.bindBuffer(t, b, buf.obj)
	r.funcs.BufferSubData(t, offset, data)
	return nil
}

// ReadBufferData copies len(dst) bytes of b starting at offset into dst.
// It needs FeatureBufferReadback.
func (r *Renderer) ReadBufferData(b Buffer, offset int, dst []byte) error {
	if !r.feats.Has(FeatureBufferReadback) {
		return noCapability("ReadBufferData")
	}
	t, buf, err := r.lookupBuffer("ReadBufferData", b, BufferTargetCopyRead)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(dst) > buf.size {
		return fmt.Errorf("glcache: ReadBufferData: range [%d:%d] out of bounds for %v of size %d", offset, offset+len(dst), b, buf.size)
	}
	r.bindBuffer(t, b, buf.obj)
	return r.backend.readBuffer(t, offset, dst)
}

// BufferSize returns the size in bytes of the storage of b.
func (r *Renderer) BufferSize(b Buffer) (int, error) {
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return 0, missing("BufferSize", b)
	}
	return buf.size, nil
}
