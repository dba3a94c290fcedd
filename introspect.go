// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/glcache/gl"
)

// programInfo caches the interface of a linked program. It is filled by
// introspect and afterwards only grows, when names that were not
// enumerated are looked up.
type programInfo struct {
	attribs  map[string]gl.Attrib
	uniforms map[string]uniformInfo
	// samplers maps sampler uniform names to their first texture unit.
	samplers map[string]samplerInfo
	// blocks maps uniform block names to bind points.
	blocks map[string]int
	// offsets maps block name to member name to byte offset.
	offsets map[string]map[string]int
	// samplerOrder lists the sampler names in order of appearance.
	samplerOrder []string
}

type uniformInfo struct {
	loc gl.Uniform
	// typ is zero for uniforms found by lookup rather than enumeration.
	typ gl.Enum
	// size is the array length, 1 for non-arrays.
	size int
}

type samplerInfo struct {
	loc    gl.Uniform
	unit   int
	count  int
	target gl.Enum
}

func newProgramInfo() *programInfo {
	return &programInfo{
		attribs:  make(map[string]gl.Attrib),
		uniforms: make(map[string]uniformInfo),
		samplers: make(map[string]samplerInfo),
		blocks:   make(map[string]int),
		offsets:  make(map[string]map[string]int),
	}
}

// introspect enumerates the active uniform blocks, attributes and
// uniforms of a linked program. Uniform blocks are bound to their global
// bind points and sampler uniforms are given consecutive texture units,
// in order of appearance.
func (r *Renderer) introspect(prog gl.Program) (*programInfo, error) {
	f := r.funcs
	info := newProgramInfo()
	blockMembers := make(map[int]bool)
	nblocks := r.backend.uniformBlocks(prog)
	for i := 0; i < nblocks; i++ {
		idx := uint(i)
		name := f.GetActiveUniformBlockName(prog, idx)
		members := f.GetActiveUniformBlockUniformIndices(prog, idx)
		for _, m := range members {
			blockMembers[int(m)] = true
		}
		point, err := r.blocks.resolve(name)
		if err != nil {
			return nil, fmt.Errorf("glcache: uniform block %q: %w", name, err)
		}
		f.UniformBlockBinding(prog, idx, uint(point))
		info.blocks[name] = point
		offsets := f.GetActiveUniformsi(prog, members, gl.UNIFORM_OFFSET)
		if len(offsets) != len(members) {
			return nil, fmt.Errorf("glcache: uniform block %q: got %d offsets for %d members: %w",
				name, len(offsets), len(members), ErrUniformBufferOffsetMissing)
		}
		byMember := make(map[string]int, len(members))
		for j, m := range members {
			u := f.GetActiveUniform(prog, int(m))
			member := strings.TrimPrefix(u.Name, name+".")
			byMember[member] = offsets[j]
			if base, ok := arrayBase(member); ok {
				byMember[base] = offsets[j]
			}
		}
		info.offsets[name] = byMember
	}

	nattr := f.GetProgrami(prog, gl.ACTIVE_ATTRIBUTES)
	for i := 0; i < nattr; i++ {
		a := f.GetActiveAttrib(prog, i)
		if strings.HasPrefix(a.Name, "gl_") {
			continue
		}
		if _, exists := info.attribs[a.Name]; exists {
			continue
		}
		loc := f.GetAttribLocation(prog, a.Name)
		if loc < 0 {
			return nil, noLocation("attribute", a.Name)
		}
		info.attribs[a.Name] = gl.Attrib(loc)
	}

	unit := 0
	nuni := f.GetProgrami(prog, gl.ACTIVE_UNIFORMS)
	for i := 0; i < nuni; i++ {
		if blockMembers[i] {
			continue
		}
		u := f.GetActiveUniform(prog, i)
		if strings.HasPrefix(u.Name, "gl_") {
			continue
		}
		loc := f.GetUniformLocation(prog, u.Name)
		if !loc.Valid() {
			return nil, noLocation("uniform", u.Name)
		}
		size := u.Size
		if size < 1 {
			size = 1
		}
		ui := uniformInfo{loc: loc, typ: u.Type, size: size}
		info.uniforms[u.Name] = ui
		name := u.Name
		if base, ok := arrayBase(u.Name); ok {
			info.uniforms[base] = ui
			name = base
		}
		if !gl.IsSampler(u.Type) {
			continue
		}
		if unit+size > len(r.state.units) {
			return nil, noCapability(fmt.Sprintf("sampler %q needs texture units %d-%d of %d", name, unit, unit+size-1, len(r.state.units)))
		}
		info.samplers[name] = samplerInfo{loc: loc, unit: unit, count: size, target: gl.SamplerTarget(u.Type)}
		info.samplerOrder = append(info.samplerOrder, name)
		unit += size
	}
	return info, nil
}

// assignSamplerUnits writes the texture unit of every sampler uniform.
// The program must be active.
func (r *Renderer) assignSamplerUnits(info *programInfo) {
	for _, name := range info.samplerOrder {
		s := info.samplers[name]
		if s.count == 1 {
			r.funcs.Uniform1i(s.loc, s.unit)
			continue
		}
		units := make([]int32, s.count)
		for i := range units {
			units[i] = int32(s.unit + i)
		}
		r.funcs.Uniform1iv(s.loc, units)
	}
}

// arrayBase returns name without a trailing "[0]".
func arrayBase(name string) (string, bool) {
	if strings.HasSuffix(name, "[0]") {
		return strings.TrimSuffix(name, "[0]"), true
	}
	return "", false
}

// splitIndex splits "name[i]" into name and i.
func splitIndex(name string) (string, int, bool) {
	if !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	open := strings.LastIndexByte(name, '[')
	if open <= 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return name[:open], idx, true
}
