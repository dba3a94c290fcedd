// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"golang.org/x/exp/slices"

	"gioui.org/glcache/gl"
)

// blockRegistry assigns uniform buffer bind points to uniform block
// names. A name keeps its point for the life of the Renderer, so every
// program declaring a block of that name shares the binding.
type blockRegistry struct {
	// names lists the registered names in order of assignment.
	names  []string
	points map[string]int
	// next is one above the highest assigned point.
	next int
	max  int
}

func (r *blockRegistry) init(maxPoints int) {
	*r = blockRegistry{
		points: make(map[string]int),
		max:    maxPoints,
	}
}

func (r *blockRegistry) lookup(name string) (int, bool) {
	p, ok := r.points[name]
	return p, ok
}

// resolve returns the bind point of name, assigning the next free point
// the first time name is seen.
func (r *blockRegistry) resolve(name string) (int, error) {
	if p, ok := r.points[name]; ok {
		return p, nil
	}
	if r.next >= r.max {
		return 0, noCapability(fmt.Sprintf("uniform buffer bind point %d of %d", r.next, r.max))
	}
	p := r.next
	r.points[name] = p
	r.names = append(r.names, name)
	r.next++
	Logger().Debug("glcache: uniform block bind point assigned", "block", name, "point", p)
	return p, nil
}

// RegisterGlobalUniformBuffer reserves a bind point for the uniform
// block name and returns it. Registering a name twice returns the same
// point. Blocks registered before any program declares them are bound
// in registration order.
func (r *Renderer) RegisterGlobalUniformBuffer(name string) (int, error) {
	if !r.feats.Has(FeatureUniformBuffers) {
		return 0, noCapability("uniform buffers")
	}
	if name == "" {
		return 0, fmt.Errorf("glcache: RegisterGlobalUniformBuffer: empty name")
	}
	return r.blocks.resolve(name)
}

// UniformBufferBindPoint returns the bind point of the uniform block
// name.
func (r *Renderer) UniformBufferBindPoint(name string) (int, error) {
	p, ok := r.blocks.lookup(name)
	if !ok {
		return 0, fmt.Errorf("glcache: uniform block %q: %w", name, ErrUniformBufferMissing)
	}
	return p, nil
}

// UniformBufferOffset returns the byte offset of member within the
// uniform block of p. Members of array type may be named with or
// without the "[0]" suffix.
func (r *Renderer) UniformBufferOffset(p Program, block, member string) (int, error) {
	prog, ok := r.programs.Get(p.h)
	if !ok {
		return 0, missing("UniformBufferOffset", p)
	}
	return blockOffset(prog.info, block, member)
}

func blockOffset(info *programInfo, block, member string) (int, error) {
	members, ok := info.offsets[block]
	if !ok {
		return 0, fmt.Errorf("glcache: uniform block %q: %w", block, ErrUniformBufferMissing)
	}
	off, ok := members[member]
	if !ok {
		return 0, fmt.Errorf("glcache: uniform block %q member %q: %w", block, member, ErrUniformBufferOffsetMissing)
	}
	return off, nil
}

// UploadBufferToUniformBuffer binds b to the bind point of the uniform
// block name.
func (r *Renderer) UploadBufferToUniformBuffer(name string, b Buffer) error {
	point, err := r.UniformBufferBindPoint(name)
	if err != nil {
		return err
	}
	buf, ok := r.buffers.Get(b.h)
	if !ok {
		return missing("UploadBufferToUniformBuffer", b)
	}
	r.bindBufferBase(gl.UNIFORM_BUFFER, point, b, buf.obj)
	return nil
}

// UploadUniformBufferMember copies data into b at the offset of member
// in the uniform block of the active program.
func (r *Renderer) UploadUniformBufferMember(b Buffer, block, member string, data []byte) error {
	p, err := r.currentProgram("UploadUniformBufferMember")
	if err != nil {
		return err
	}
	off, err := blockOffset(p.info, block, member)
	if err != nil {
		return err
	}
	return r.UploadBufferSubData(b, BufferTargetUniform, off, data)
}

// UniformBlocks returns the uniform block names with a bind point, in
// order of assignment.
func (r *Renderer) UniformBlocks() []string {
	return slices.Clone(r.blocks.names)
}
