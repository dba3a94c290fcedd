// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"gioui.org/glcache/gl"
)

type gpuProgram struct {
	obj  gl.Program
	info *programInfo
}

// DeleteProgram deletes p. If p is the active program, no program is
// considered active afterwards.
func (r *Renderer) DeleteProgram(p Program) error {
	prog, ok := r.programs.Remove(p.h)
	if !ok {
		return missing("DeleteProgram", p)
	}
	r.funcs.DeleteProgram(prog.obj)
	r.state.forgetProgram(p)
	return nil
}

// AttribLocation returns the location of the vertex attribute name of p.
func (r *Renderer) AttribLocation(p Program, name string) (int, error) {
	prog, ok := r.programs.Get(p.h)
	if !ok {
		return 0, missing("AttribLocation", p)
	}
	a, err := r.attribLocation(prog, name)
	if err != nil {
		return 0, err
	}
	return int(a), nil
}

// SamplerUnit returns the texture unit assigned to the sampler uniform
// name of p. Elements of sampler arrays may be named with an index, as
// in "shadows[2]".
func (r *Renderer) SamplerUnit(p Program, name string) (int, error) {
	prog, ok := r.programs.Get(p.h)
	if !ok {
		return 0, missing("SamplerUnit", p)
	}
	unit, _, err := samplerUnit(prog.info, name)
	return unit, err
}

// samplerUnit returns the texture unit and texture target of the sampler
// name.
func samplerUnit(info *programInfo, name string) (int, gl.Enum, error) {
	if s, ok := info.samplers[name]; ok {
		return s.unit, s.target, nil
	}
	if base, idx, ok := splitIndex(name); ok {
		if s, ok := info.samplers[base]; ok && idx < s.count {
			return s.unit + idx, s.target, nil
		}
	}
	return 0, 0, noLocation("sampler", name)
}

// attribLocation looks up an attribute, asking the context for names
// not seen before. Found names are remembered.
func (r *Renderer) attribLocation(p *gpuProgram, name string) (gl.Attrib, error) {
	if a, ok := p.info.attribs[name]; ok {
		return a, nil
	}
	loc := r.funcs.GetAttribLocation(p.obj, name)
	if loc < 0 {
		return 0, noLocation("attribute", name)
	}
	p.info.attribs[name] = gl.Attrib(loc)
	return gl.Attrib(loc), nil
}

// uniform looks up a uniform, asking the context for names not seen
// before, such as individual array elements or struct fields. Found
// names are remembered.
func (r *Renderer) uniform(p *gpuProgram, name string) (uniformInfo, error) {
	if u, ok := p.info.uniforms[name]; ok {
		return u, nil
	}
	loc := r.funcs.GetUniformLocation(p.obj, name)
	if !loc.Valid() {
		return uniformInfo{}, noLocation("uniform", name)
	}
	u := uniformInfo{loc: loc, size: 1}
	if base, _, ok := splitIndex(name); ok {
		u.typ = p.info.uniforms[base].typ
	}
	p.info.uniforms[name] = u
	return u, nil
}
