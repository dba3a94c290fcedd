// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

// UploadUniformFloat sets the float, vec2, vec3 or vec4 uniform name of
// the active program, depending on the number of values.
func (r *Renderer) UploadUniformFloat(name string, v ...float32) error {
	u, err := r.activeUniform("UploadUniformFloat", name)
	if err != nil {
		return err
	}
	switch len(v) {
	case 1:
		r.funcs.Uniform1f(u.loc, v[0])
	case 2:
		r.funcs.Uniform2f(u.loc, v[0], v[1])
	case 3:
		r.funcs.Uniform3f(u.loc, v[0], v[1], v[2])
	case 4:
		r.funcs.Uniform4f(u.loc, v[0], v[1], v[2], v[3])
	default:
		return fmt.Errorf("glcache: UploadUniformFloat %q: %d components", name, len(v))
	}
	return nil
}

// UploadUniformInt is like UploadUniformFloat for int, bool and sampler
// uniforms.
func (r *Renderer) UploadUniformInt(name string, v ...int) error {
	u, err := r.activeUniform("UploadUniformInt", name)
	if err != nil {
		return err
	}
	switch len(v) {
	case 1:
		r.funcs.Uniform1i(u.loc, v[0])
	case 2:
		r.funcs.Uniform2i(u.loc, v[0], v[1])
	case 3:
		r.funcs.Uniform3i(u.loc, v[0], v[1], v[2])
	case 4:
		r.funcs.Uniform4i(u.loc, v[0], v[1], v[2], v[3])
	default:
		return fmt.Errorf("glcache: UploadUniformInt %q: %d components", name, len(v))
	}
	return nil
}

// UploadUniformSlice sets a float uniform, or an array of them, with
// components values per element.
func (r *Renderer) UploadUniformSlice(name string, components int, v []float32) error {
	u, err := r.activeUniform("UploadUniformSlice", name)
	if err != nil {
		return err
	}
	if components < 1 || components > 4 || len(v) == 0 || len(v)%components != 0 {
		return fmt.Errorf("glcache: UploadUniformSlice %q: %d values of %d components", name, len(v), components)
	}
	switch components {
	case 1:
		r.funcs.Uniform1fv(u.loc, v)
	case 2:
		r.funcs.Uniform2fv(u.loc, v)
	case 3:
		r.funcs.Uniform3fv(u.loc, v)
	case 4:
		r.funcs.Uniform4fv(u.loc, v)
	}
	return nil
}

// UploadUniformIntSlice is UploadUniformSlice for int uniforms.
func (r *Renderer) UploadUniformIntSlice(name string, components int, v []int32) error {
	u, err := r.activeUniform("UploadUniformIntSlice", name)
	if err != nil {
		return err
	}
	if components < 1 || components > 4 || len(v) == 0 || len(v)%components != 0 {
		return fmt.Errorf("glcache: UploadUniformIntSlice %q: %d values of %d components", name, len(v), components)
	}
	switch components {
	case 1:
		r.funcs.Uniform1iv(u.loc, v)
	case 2:
		r.funcs.Uniform2iv(u.loc, v)
	case 3:
		r.funcs.Uniform3iv(u.loc, v)
	case 4:
		r.funcs.Uniform4iv(u.loc, v)
	}
	return nil
}

// UploadUniformMatrix sets a mat2, mat3 or mat4 uniform, or an array of
// them, from column major values. The matrix size is taken from the
// uniform type when known and from len(v) otherwise.
func (r *Renderer) UploadUniformMatrix(name string, v []float32) error {
	u, err := r.activeUniform("UploadUniformMatrix", name)
	if err != nil {
		return err
	}
	var dim int
	switch u.typ {
	case gl.FLOAT_MAT2:
		dim = 2
	case gl.FLOAT_MAT3:
		dim = 3
	case gl.FLOAT_MAT4:
		dim = 4
	case 0:
		switch len(v) {
		case 4:
			dim = 2
		case 9:
			dim = 3
		case 16:
			dim = 4
		}
	default:
		return fmt.Errorf("glcache: UploadUniformMatrix %q: not a matrix (type %#x)", name, u.typ)
	}
	if dim == 0 || len(v) == 0 || len(v)%(dim*dim) != 0 {
		return fmt.Errorf("glcache: UploadUniformMatrix %q: %d values", name, len(v))
	}
	switch dim {
	case 2:
		r.funcs.UniformMatrix2fv(u.loc, v)
	case 3:
		r.funcs.UniformMatrix3fv(u.loc, v)
	case 4:
		r.funcs.UniformMatrix4fv(u.loc, v)
	}
	return nil
}

func (r *Renderer) activeUniform(op, name string) (uniformInfo, error) {
	p, err := r.currentProgram(op)
	if err != nil {
		return uniformInfo{}, err
	}
	return r.uniform(p, name)
}
