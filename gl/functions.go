// SPDX-License-Identifier: Unlicense OR MIT

package gl

// ActiveInfo describes an active attribute or uniform of a linked
// program.
type ActiveInfo struct {
	Name string
	// Size is the array length, 1 for non-array variables.
	Size int
	Type Enum
}

// Functions is the set of primitives the wrapped graphics context must
// provide. The method set follows WebGL 2; a WebGL 1 implementation
// routes vertex array and instancing calls through the
// OES_vertex_array_object and ANGLE_instanced_arrays extensions and may
// leave the remaining WebGL 2 methods unimplemented. Callers are expected
// to consult the context version and extensions before calling them.
//
// Create methods return an invalid object when the context refuses the
// allocation, for example after a context loss.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	// BufferData allocates size bytes of storage. If data is non-nil, it
	// is copied to the new storage and size must equal len(data).
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	DeleteBuffer(b Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)
	DeleteVertexArray(a VertexArray)
	DetachShader(p Program, s Shader)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	EnableVertexAttribArray(a Attrib)
	GenerateMipmap(target Enum)
	GetActiveAttrib(p Program, index int) ActiveInfo
	GetActiveUniform(p Program, index int) ActiveInfo
	GetActiveUniformBlockName(p Program, index uint) string
	GetActiveUniformBlockParameteri(p Program, index uint, pname Enum) int
	// GetActiveUniformBlockUniformIndices returns the program uniform
	// indices of the members of a uniform block
	// (UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES).
	GetActiveUniformBlockUniformIndices(p Program, index uint) []uint
	GetActiveUniformsi(p Program, indices []uint, pname Enum) []int
	GetAttribLocation(p Program, name string) int
	GetBufferSubData(target Enum, offset int, dst []byte)
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformBlockIndex(p Program, name string) uint
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexImage2DElement(target Enum, level int, internalFormat, format, ty Enum, el Element)
	TexParameteri(target, pname Enum, param int)
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	Uniform1i(dst Uniform, v int)
	Uniform2i(dst Uniform, v0, v1 int)
	Uniform3i(dst Uniform, v0, v1, v2 int)
	Uniform4i(dst Uniform, v0, v1, v2, v3 int)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	Uniform1iv(dst Uniform, v []int32)
	Uniform2iv(dst Uniform, v []int32)
	Uniform3iv(dst Uniform, v []int32)
	Uniform4iv(dst Uniform, v []int32)
	UniformMatrix2fv(dst Uniform, v []float32)
	UniformMatrix3fv(dst Uniform, v []float32)
	UniformMatrix4fv(dst Uniform, v []float32)
	UniformBlockBinding(p Program, uniformBlockIndex uint, uniformBlockBinding uint)
	UseProgram(p Program)
	VertexAttribDivisor(a Attrib, divisor int)
	VertexAttribIPointer(a Attrib, size int, ty Enum, stride, offset int)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
}
