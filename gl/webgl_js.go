// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"syscall/js"
)

// WebGL implements Functions on top of a WebGL 1 or WebGL 2 rendering
// context.
type WebGL struct {
	Ctx js.Value

	// Extensions used to emulate WebGL 2 on WebGL 1 contexts.
	ExtVertexArrayObject js.Value
	ExtInstancedArrays   js.Value

	isWebGL2 bool

	// Cached reference to the Uint8Array JS type.
	uint8Array   js.Value
	float32Array js.Value
	int32Array   js.Value

	// Scratch buffer shared by all array conversions.
	arrayBuf js.Value
	scratch  []byte
}

// NewWebGL creates a rendering context for the canvas element, preferring
// WebGL 2. The attributes are handed to getContext as is.
func NewWebGL(canvas js.Value, attrs ContextAttributes) (*WebGL, error) {
	if !canvas.Truthy() {
		return nil, errors.New("gl: no <canvas> element given")
	}
	opts := js.ValueOf(attrs.Map())
	for _, typ := range []string{"webgl2", "webgl", "experimental-webgl"} {
		ctx := canvas.Call("getContext", typ, opts)
		if ctx.Truthy() {
			return NewWebGLFromContext(ctx)
		}
	}
	return nil, errors.New("gl: unable to get a webgl context")
}

// NewWebGLFromContext wraps an existing WebGL rendering context.
func NewWebGLFromContext(ctx js.Value) (*WebGL, error) {
	f := &WebGL{
		Ctx:          ctx,
		uint8Array:   js.Global().Get("Uint8Array"),
		float32Array: js.Global().Get("Float32Array"),
		int32Array:   js.Global().Get("Int32Array"),
	}
	webgl2Class := js.Global().Get("WebGL2RenderingContext")
	f.isWebGL2 = !webgl2Class.IsUndefined() && ctx.InstanceOf(webgl2Class)
	if !f.isWebGL2 {
		f.ExtVertexArrayObject = f.getExtension("OES_vertex_array_object")
		f.ExtInstancedArrays = f.getExtension("ANGLE_instanced_arrays")
	}
	if ctx.Call("isContextLost").Bool() {
		return nil, errors.New("gl: context lost")
	}
	return f, nil
}

func (f *WebGL) getExtension(name string) js.Value {
	return f.Ctx.Call("getExtension", name)
}

func (f *WebGL) ActiveTexture(t Enum) {
	f.Ctx.Call("activeTexture", int(t))
}
func (f *WebGL) AttachShader(p Program, s Shader) {
	f.Ctx.Call("attachShader", js.Value(p), js.Value(s))
}
func (f *WebGL) BindAttribLocation(p Program, a Attrib, name string) {
	f.Ctx.Call("bindAttribLocation", js.Value(p), int(a), name)
}
func (f *WebGL) BindBuffer(target Enum, b Buffer) {
	f.Ctx.Call("bindBuffer", int(target), js.Value(b))
}
func (f *WebGL) BindBufferBase(target Enum, index int, b Buffer) {
	f.Ctx.Call("bindBufferBase", int(target), index, js.Value(b))
}
func (f *WebGL) BindTexture(target Enum, t Texture) {
	f.Ctx.Call("bindTexture", int(target), js.Value(t))
}
func (f *WebGL) BindVertexArray(a VertexArray) {
	if f.isWebGL2 {
		f.Ctx.Call("bindVertexArray", js.Value(a))
	} else {
		f.ExtVertexArrayObject.Call("bindVertexArrayOES", js.Value(a))
	}
}
func (f *WebGL) BufferData(target Enum, size int, usage Enum, data []byte) {
	if data == nil {
		f.Ctx.Call("bufferData", int(target), size, int(usage))
	} else {
		f.Ctx.Call("bufferData", int(target), f.byteArrayOf(data), int(usage))
	}
}
func (f *WebGL) BufferSubData(target Enum, offset int, src []byte) {
	f.Ctx.Call("bufferSubData", int(target), offset, f.byteArrayOf(src))
}
func (f *WebGL) CompileShader(s Shader) {
	f.Ctx.Call("compileShader", js.Value(s))
}
func (f *WebGL) CreateBuffer() Buffer {
	return Buffer(f.Ctx.Call("createBuffer"))
}
func (f *WebGL) CreateProgram() Program {
	return Program(f.Ctx.Call("createProgram"))
}
func (f *WebGL) CreateShader(ty Enum) Shader {
	return Shader(f.Ctx.Call("createShader", int(ty)))
}
func (f *WebGL) CreateTexture() Texture {
	return Texture(f.Ctx.Call("createTexture"))
}
func (f *WebGL) CreateVertexArray() VertexArray {
	switch {
	case f.isWebGL2:
		return VertexArray(f.Ctx.Call("createVertexArray"))
	case valid(f.ExtVertexArrayObject):
		return VertexArray(f.ExtVertexArrayObject.Call("createVertexArrayOES"))
	default:
		return VertexArray(js.Null())
	}
}
func (f *WebGL) DeleteBuffer(v Buffer) {
	f.Ctx.Call("deleteBuffer", js.Value(v))
}
func (f *WebGL) DeleteProgram(p Program) {
	f.Ctx.Call("deleteProgram", js.Value(p))
}
func (f *WebGL) DeleteShader(s Shader) {
	f.Ctx.Call("deleteShader", js.Value(s))
}
func (f *WebGL) DeleteTexture(v Texture) {
	f.Ctx.Call("deleteTexture", js.Value(v))
}
func (f *WebGL) DeleteVertexArray(a VertexArray) {
	if f.isWebGL2 {
		f.Ctx.Call("deleteVertexArray", js.Value(a))
	} else {
		f.ExtVertexArrayObject.Call("deleteVertexArrayOES", js.Value(a))
	}
}
func (f *WebGL) DetachShader(p Program, s Shader) {
	f.Ctx.Call("detachShader", js.Value(p), js.Value(s))
}
func (f *WebGL) DisableVertexAttribArray(a Attrib) {
	f.Ctx.Call("disableVertexAttribArray", int(a))
}
func (f *WebGL) DrawArrays(mode Enum, first, count int) {
	f.Ctx.Call("drawArrays", int(mode), first, count)
}
func (f *WebGL) DrawArraysInstanced(mode Enum, first, count, instances int) {
	if f.isWebGL2 {
		f.Ctx.Call("drawArraysInstanced", int(mode), first, count, instances)
	} else {
		f.ExtInstancedArrays.Call("drawArraysInstancedANGLE", int(mode), first, count, instances)
	}
}
func (f *WebGL) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.Ctx.Call("drawElements", int(mode), count, int(ty), offset)
}
func (f *WebGL) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int) {
	if f.isWebGL2 {
		f.Ctx.Call("drawElementsInstanced", int(mode), count, int(ty), offset, instances)
	} else {
		f.ExtInstancedArrays.Call("drawElementsInstancedANGLE", int(mode), count, int(ty), offset, instances)
	}
}
func (f *WebGL) EnableVertexAttribArray(a Attrib) {
	f.Ctx.Call("enableVertexAttribArray", int(a))
}
func (f *WebGL) GenerateMipmap(target Enum) {
	f.Ctx.Call("generateMipmap", int(target))
}
func (f *WebGL) GetActiveAttrib(p Program, index int) ActiveInfo {
	return activeInfo(f.Ctx.Call("getActiveAttrib", js.Value(p), index))
}
func (f *WebGL) GetActiveUniform(p Program, index int) ActiveInfo {
	return activeInfo(f.Ctx.Call("getActiveUniform", js.Value(p), index))
}
func (f *WebGL) GetActiveUniformBlockName(p Program, index uint) string {
	name := f.Ctx.Call("getActiveUniformBlockName", js.Value(p), int(index))
	if !valid(name) {
		return ""
	}
	return name.String()
}
func (f *WebGL) GetActiveUniformBlockParameteri(p Program, index uint, pname Enum) int {
	return paramVal(f.Ctx.Call("getActiveUniformBlockParameter", js.Value(p), int(index), int(pname)))
}
func (f *WebGL) GetActiveUniformBlockUniformIndices(p Program, index uint) []uint {
	arr := f.Ctx.Call("getActiveUniformBlockParameter", js.Value(p), int(index), int(UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES))
	if !valid(arr) {
		return nil
	}
	res := make([]uint, arr.Length())
	for i := range res {
		res[i] = uint(arr.Index(i).Int())
	}
	return res
}
func (f *WebGL) GetActiveUniformsi(p Program, indices []uint, pname Enum) []int {
	idx := make([]interface{}, len(indices))
	for i, v := range indices {
		idx[i] = int(v)
	}
	arr := f.Ctx.Call("getActiveUniforms", js.Value(p), js.ValueOf(idx), int(pname))
	if !valid(arr) {
		return nil
	}
	res := make([]int, arr.Length())
	for i := range res {
		res[i] = paramVal(arr.Index(i))
	}
	return res
}
func (f *WebGL) GetAttribLocation(p Program, name string) int {
	return f.Ctx.Call("getAttribLocation", js.Value(p), name).Int()
}
func (f *WebGL) GetBufferSubData(target Enum, offset int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	f.resizeByteBuffer(len(dst))
	ba := f.uint8Array.New(f.arrayBuf, 0, len(dst))
	f.Ctx.Call("getBufferSubData", int(target), offset, ba)
	js.CopyBytesToGo(dst, ba)
}
func (f *WebGL) GetError() Enum {
	return Enum(f.Ctx.Call("getError").Int())
}
func (f *WebGL) GetInteger(pname Enum) int {
	if !f.isWebGL2 && pname == MAX_UNIFORM_BUFFER_BINDINGS {
		return 0
	}
	return paramVal(f.Ctx.Call("getParameter", int(pname)))
}
func (f *WebGL) GetProgrami(p Program, pname Enum) int {
	if !f.isWebGL2 && pname == ACTIVE_UNIFORM_BLOCKS {
		return 0
	}
	return paramVal(f.Ctx.Call("getProgramParameter", js.Value(p), int(pname)))
}
func (f *WebGL) GetProgramInfoLog(p Program) string {
	return f.Ctx.Call("getProgramInfoLog", js.Value(p)).String()
}
func (f *WebGL) GetShaderi(s Shader, pname Enum) int {
	return paramVal(f.Ctx.Call("getShaderParameter", js.Value(s), int(pname)))
}
func (f *WebGL) GetShaderInfoLog(s Shader) string {
	return f.Ctx.Call("getShaderInfoLog", js.Value(s)).String()
}
func (f *WebGL) GetString(pname Enum) string {
	switch pname {
	case EXTENSIONS:
		extsjs := f.Ctx.Call("getSupportedExtensions")
		if !valid(extsjs) {
			return ""
		}
		var exts []string
		for i := 0; i < extsjs.Length(); i++ {
			exts = append(exts, "GL_"+extsjs.Index(i).String())
		}
		return strings.Join(exts, " ")
	default:
		return f.Ctx.Call("getParameter", int(pname)).String()
	}
}
func (f *WebGL) GetUniformBlockIndex(p Program, name string) uint {
	idx := f.Ctx.Call("getUniformBlockIndex", js.Value(p), name).Float()
	// WebGL reports INVALID_INDEX as the 32-bit 0xffffffff.
	if idx >= math.MaxUint32 {
		return INVALID_INDEX
	}
	return uint(idx)
}
func (f *WebGL) GetUniformLocation(p Program, name string) Uniform {
	return Uniform(f.Ctx.Call("getUniformLocation", js.Value(p), name))
}
func (f *WebGL) LinkProgram(p Program) {
	f.Ctx.Call("linkProgram", js.Value(p))
}
func (f *WebGL) PixelStorei(pname Enum, param int) {
	f.Ctx.Call("pixelStorei", int(pname), param)
}
func (f *WebGL) ShaderSource(s Shader, src string) {
	f.Ctx.Call("shaderSource", js.Value(s), src)
}
func (f *WebGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	pixels := js.Null()
	if len(data) > 0 {
		pixels = f.byteArrayOf(data)
	}
	f.Ctx.Call("texImage2D", int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), pixels)
}
func (f *WebGL) TexImage2DElement(target Enum, level int, internalFormat, format, ty Enum, el Element) {
	f.Ctx.Call("texImage2D", int(target), level, int(internalFormat), int(format), int(ty), js.Value(el))
}
func (f *WebGL) TexParameteri(target, pname Enum, param int) {
	f.Ctx.Call("texParameteri", int(target), int(pname), param)
}
func (f *WebGL) Uniform1f(dst Uniform, v float32) {
	f.Ctx.Call("uniform1f", js.Value(dst), v)
}
func (f *WebGL) Uniform2f(dst Uniform, v0, v1 float32) {
	f.Ctx.Call("uniform2f", js.Value(dst), v0, v1)
}
func (f *WebGL) Uniform3f(dst Uniform, v0, v1, v2 float32) {
	f.Ctx.Call("uniform3f", js.Value(dst), v0, v1, v2)
}
func (f *WebGL) Uniform4f(dst Uniform, v0, v1, v2, v3 float32) {
	f.Ctx.Call("uniform4f", js.Value(dst), v0, v1, v2, v3)
}
func (f *WebGL) Uniform1i(dst Uniform, v int) {
	f.Ctx.Call("uniform1i", js.Value(dst), v)
}
func (f *WebGL) Uniform2i(dst Uniform, v0, v1 int) {
	f.Ctx.Call("uniform2i", js.Value(dst), v0, v1)
}
func (f *WebGL) Uniform3i(dst Uniform, v0, v1, v2 int) {
	f.Ctx.Call("uniform3i", js.Value(dst), v0, v1, v2)
}
func (f *WebGL) Uniform4i(dst Uniform, v0, v1, v2, v3 int) {
	f.Ctx.Call("uniform4i", js.Value(dst), v0, v1, v2, v3)
}
func (f *WebGL) Uniform1fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform1fv", js.Value(dst), f.float32ArrayOf(v))
}
func (f *WebGL) Uniform2fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform2fv", js.Value(dst), f.float32ArrayOf(v))
}
func (f *WebGL) Uniform3fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform3fv", js.Value(dst), f.float32ArrayOf(v))
}
func (f *WebGL) Uniform4fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniform4fv", js.Value(dst), f.float32ArrayOf(v))
}
func (f *WebGL) Uniform1iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform1iv", js.Value(dst), f.int32ArrayOf(v))
}
func (f *WebGL) Uniform2iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform2iv", js.Value(dst), f.int32ArrayOf(v))
}
func (f *WebGL) Uniform3iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform3iv", js.Value(dst), f.int32ArrayOf(v))
}
func (f *WebGL) Uniform4iv(dst Uniform, v []int32) {
	f.Ctx.Call("uniform4iv", js.Value(dst), f.int32ArrayOf(v))
}
func (f *WebGL) UniformMatrix2fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniformMatrix2fv", js.Value(dst), false, f.float32ArrayOf(v))
}
func (f *WebGL) UniformMatrix3fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniformMatrix3fv", js.Value(dst), false, f.float32ArrayOf(v))
}
func (f *WebGL) UniformMatrix4fv(dst Uniform, v []float32) {
	f.Ctx.Call("uniformMatrix4fv", js.Value(dst), false, f.float32ArrayOf(v))
}
func (f *WebGL) UniformBlockBinding(p Program, uniformBlockIndex uint, uniformBlockBinding uint) {
	f.Ctx.Call("uniformBlockBinding", js.Value(p), int(uniformBlockIndex), int(uniformBlockBinding))
}
func (f *WebGL) UseProgram(p Program) {
	f.Ctx.Call("useProgram", js.Value(p))
}
func (f *WebGL) VertexAttribDivisor(a Attrib, divisor int) {
	if f.isWebGL2 {
		f.Ctx.Call("vertexAttribDivisor", int(a), divisor)
	} else {
		f.ExtInstancedArrays.Call("vertexAttribDivisorANGLE", int(a), divisor)
	}
}
func (f *WebGL) VertexAttribIPointer(a Attrib, size int, ty Enum, stride, offset int) {
	f.Ctx.Call("vertexAttribIPointer", int(a), size, int(ty), stride, offset)
}
func (f *WebGL) VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.Ctx.Call("vertexAttribPointer", int(a), size, int(ty), normalized, stride, offset)
}

func activeInfo(v js.Value) ActiveInfo {
	if !valid(v) {
		return ActiveInfo{}
	}
	return ActiveInfo{
		Name: v.Get("name").String(),
		Size: v.Get("size").Int(),
		Type: Enum(v.Get("type").Int()),
	}
}

func (f *WebGL) byteArrayOf(data []byte) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	f.resizeByteBuffer(len(data))
	ba := f.uint8Array.New(f.arrayBuf, 0, len(data))
	js.CopyBytesToJS(ba, data)
	return ba
}

// float32ArrayOf copies v into the scratch buffer and returns a
// Float32Array view of it. WebAssembly is little endian, matching the
// typed array byte order.
func (f *WebGL) float32ArrayOf(v []float32) js.Value {
	n := len(v) * 4
	f.resizeByteBuffer(n)
	f.scratch = growBytes(f.scratch, n)
	for i, x := range v {
		binary.LittleEndian.PutUint32(f.scratch[i*4:], math.Float32bits(x))
	}
	js.CopyBytesToJS(f.uint8Array.New(f.arrayBuf, 0, n), f.scratch[:n])
	return f.float32Array.New(f.arrayBuf, 0, len(v))
}

func (f *WebGL) int32ArrayOf(v []int32) js.Value {
	n := len(v) * 4
	f.resizeByteBuffer(n)
	f.scratch = growBytes(f.scratch, n)
	for i, x := range v {
		binary.LittleEndian.PutUint32(f.scratch[i*4:], uint32(x))
	}
	js.CopyBytesToJS(f.uint8Array.New(f.arrayBuf, 0, n), f.scratch[:n])
	return f.int32Array.New(f.arrayBuf, 0, len(v))
}

func (f *WebGL) resizeByteBuffer(n int) {
	if n == 0 {
		n = 4
	}
	if !f.arrayBuf.IsUndefined() && f.arrayBuf.Get("byteLength").Int() >= n {
		return
	}
	f.arrayBuf = js.Global().Get("ArrayBuffer").New(n)
}

func growBytes(b []byte, n int) []byte {
	if cap(b) >= n {
		return b[:n]
	}
	return make([]byte, n)
}

func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if b := v.Bool(); b {
			return 1
		} else {
			return 0
		}
	case js.TypeNumber:
		return v.Int()
	case js.TypeNull, js.TypeUndefined:
		return 0
	default:
		panic("unknown parameter type")
	}
}
