// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

/*
Package gltest implements gl.Functions in memory, for testing code that
drives a WebGL context without one.

Objects, bindings, vertex array state, buffer contents and uniform values
are tracked the way a context would track them, and every call is
counted. Shader sources are scanned for their attribute, uniform and
uniform block declarations, which the linked program reports through the
usual introspection calls.

Failures are injected through the sources and the FailCreate field:

  - a shader with an #error directive fails to compile, with the directive
    message in its info log;
  - a program with a shader containing the line "// gltest:link-error"
    fails to link;
  - FailCreate["buffer"] (or "texture", "shader", "program",
    "vertexarray") makes the matching Create call return the zero object.
*/
package gltest

import (
	"strconv"
	"strings"

	"gioui.org/glcache/gl"
)

// LinkErrorMarker makes a program fail to link when it appears in one of
// its shaders.
const LinkErrorMarker = "// gltest:link-error"

// Functions is an in-memory gl.Functions.
type Functions struct {
	// Version is returned for VERSION.
	Version string
	// Exts lists the extensions, without their "GL_" prefix.
	Exts []string
	// TextureUnits is returned for MAX_COMBINED_TEXTURE_IMAGE_UNITS.
	TextureUnits int
	// UniformBufferBindings is returned for MAX_UNIFORM_BUFFER_BINDINGS.
	UniformBufferBindings int
	// FailCreate names the object kinds whose creation fails.
	FailCreate map[string]bool

	webgl2 bool
	calls  map[string]int
	err    gl.Enum
	next   uint

	buffers  map[uint]*Buffer
	shaders  map[uint]*shader
	programs map[uint]*program
	textures map[uint]*Texture
	vaos     map[uint]*VertexArray

	program    uint
	vao        uint
	defaultVAO *VertexArray
	bound      map[gl.Enum]uint
	indexed    map[indexedPoint]uint
	active     int
	units      []map[gl.Enum]uint
	pixelStore map[gl.Enum]int
	draws      []Draw
}

// Buffer is the state of a buffer object.
type Buffer struct {
	Data  []byte
	Usage gl.Enum
}

// Texture is the state of a texture object.
type Texture struct {
	// Target is set by the first bind.
	Target         gl.Enum
	Width, Height  int
	InternalFormat gl.Enum
	Format, Type   gl.Enum
	Pixels         []byte
	Element        gl.Element
	Params         map[gl.Enum]int
	Mipmapped      bool
	// Faces counts the cube map faces given an image.
	Faces map[gl.Enum]bool
}

// VertexArray is the state of a vertex array object.
type VertexArray struct {
	Elements uint
	Attribs  map[gl.Attrib]*Attrib
}

// Attrib is the state of a vertex attribute.
type Attrib struct {
	Buffer     uint
	Size       int
	Type       gl.Enum
	Normalized bool
	Integer    bool
	Stride     int
	Offset     int
	Divisor    int
	Enabled    bool
}

// Draw records a draw call.
type Draw struct {
	Mode      gl.Enum
	Count     int
	Instances int
	// Indexed reports a DrawElements variant.
	Indexed bool
	Program uint
}

// Objects counts live objects.
type Objects struct {
	Buffers, Shaders, Programs, Textures, VertexArrays int
}

type indexedPoint struct {
	target gl.Enum
	index  int
}

type shader struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
	decls    shaderDecls
	deleted  bool
	attached int
}

type program struct {
	shaders  []uint
	linked   bool
	log      string
	bindings map[string]int

	attribs  []activeAttrib
	uniforms []activeUniform
	blocks   []activeBlock
	values   map[int][]float32
}

type activeAttrib struct {
	decl
	loc int
}

type activeUniform struct {
	decl
	// loc is the location of the first element, -1 for block members.
	loc    int
	offset int
}

type activeBlock struct {
	name    string
	members []uint
	size    int
	binding int
}

// NewWebGL2 returns a WebGL 2 context.
func NewWebGL2() *Functions {
	f := newFunctions("WebGL 2.0 (OpenGL ES 3.0 gltest)")
	f.webgl2 = true
	f.UniformBufferBindings = 24
	return f
}

// NewWebGL1 returns a WebGL 1 context with the given extensions, named
// without their "GL_" prefix.
func NewWebGL1(exts ...string) *Functions {
	f := newFunctions("WebGL 1.0 (OpenGL ES 2.0 gltest)")
	f.Exts = exts
	return f
}

func newFunctions(version string) *Functions {
	f := &Functions{
		Version:      version,
		TextureUnits: 16,
		FailCreate:   make(map[string]bool),
		calls:        make(map[string]int),
		buffers:      make(map[uint]*Buffer),
		shaders:      make(map[uint]*shader),
		programs:     make(map[uint]*program),
		textures:     make(map[uint]*Texture),
		vaos:         make(map[uint]*VertexArray),
		defaultVAO:   newVertexArray(),
		bound:        make(map[gl.Enum]uint),
		indexed:      make(map[indexedPoint]uint),
		pixelStore:   map[gl.Enum]int{gl.UNPACK_ALIGNMENT: 4},
	}
	return f
}

func newVertexArray() *VertexArray {
	return &VertexArray{Attribs: make(map[gl.Attrib]*Attrib)}
}

func (f *Functions) call(name string) {
	f.calls[name]++
}

// setErr records the first error until GetError reads it.
func (f *Functions) setErr(e gl.Enum) {
	if f.err == gl.NO_ERROR {
		f.err = e
	}
}

func (f *Functions) newID() uint {
	f.next++
	return f.next
}

// Calls returns the number of calls to the method name since the last
// ResetCalls.
func (f *Functions) Calls(name string) int {
	return f.calls[name]
}

// ResetCalls clears the call counts and the draw log.
func (f *Functions) ResetCalls() {
	f.calls = make(map[string]int)
	f.draws = nil
}

// Live counts the objects that have not been deleted. A deleted shader
// still attached to a program is live.
func (f *Functions) Live() Objects {
	return Objects{
		Buffers:      len(f.buffers),
		Shaders:      len(f.shaders),
		Programs:     len(f.programs),
		Textures:     len(f.textures),
		VertexArrays: len(f.vaos),
	}
}

// Err returns the pending error without clearing it.
func (f *Functions) Err() gl.Enum {
	return f.err
}

// Draws returns the draw calls since the last ResetCalls.
func (f *Functions) Draws() []Draw {
	return f.draws
}

// CurrentProgram returns the program in use.
func (f *Functions) CurrentProgram() gl.Program {
	return gl.Program{V: f.program}
}

// CurrentVertexArray returns the bound vertex array.
func (f *Functions) CurrentVertexArray() gl.VertexArray {
	return gl.VertexArray{V: f.vao}
}

// BoundBuffer returns the buffer bound to target. The element array
// binding is read from the bound vertex array.
func (f *Functions) BoundBuffer(target gl.Enum) gl.Buffer {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return gl.Buffer{V: f.currentVAO().Elements}
	}
	return gl.Buffer{V: f.bound[target]}
}

// BoundBufferBase returns the buffer bound to the indexed binding.
func (f *Functions) BoundBufferBase(target gl.Enum, index int) gl.Buffer {
	return gl.Buffer{V: f.indexed[indexedPoint{target, index}]}
}

// ActiveUnit returns the active texture unit.
func (f *Functions) ActiveUnit() int {
	return f.active
}

// BoundTexture returns the texture bound to target on unit.
func (f *Functions) BoundTexture(unit int, target gl.Enum) gl.Texture {
	if unit < 0 || unit >= len(f.units) || f.units[unit] == nil {
		return gl.Texture{}
	}
	return gl.Texture{V: f.units[unit][target]}
}

// BufferState returns the state of b, or nil if b does not exist.
func (f *Functions) BufferState(b gl.Buffer) *Buffer {
	return f.buffers[b.V]
}

// TextureState returns the state of t, or nil if t does not exist.
func (f *Functions) TextureState(t gl.Texture) *Texture {
	return f.textures[t.V]
}

// VertexArrayState returns the state of a, or of the default vertex
// array for the zero a. It returns nil if a does not exist.
func (f *Functions) VertexArrayState(a gl.VertexArray) *VertexArray {
	if !a.Valid() {
		return f.defaultVAO
	}
	return f.vaos[a.V]
}

// PixelStore returns a pixel storage parameter.
func (f *Functions) PixelStore(pname gl.Enum) int {
	return f.pixelStore[pname]
}

// UniformValue returns the values last set for the uniform name of p,
// or nil if it was never set. Elements of arrays are named "name[i]".
func (f *Functions) UniformValue(p gl.Program, name string) []float32 {
	prog := f.programs[p.V]
	if prog == nil {
		return nil
	}
	loc := prog.location(name)
	if loc < 0 {
		return nil
	}
	return prog.values[loc]
}

// UniformBlockBindingOf returns the binding of the uniform block name of
// p, or -1.
func (f *Functions) UniformBlockBindingOf(p gl.Program, name string) int {
	prog := f.programs[p.V]
	if prog == nil {
		return -1
	}
	for _, b := range prog.blocks {
		if b.name == name {
			return b.binding
		}
	}
	return -1
}

func (f *Functions) currentVAO() *VertexArray {
	if f.vao == 0 {
		return f.defaultVAO
	}
	return f.vaos[f.vao]
}

func (f *Functions) ActiveTexture(texture gl.Enum) {
	f.call("ActiveTexture")
	unit := int(texture) - gl.TEXTURE0
	if unit < 0 || unit >= f.TextureUnits {
		f.setErr(gl.INVALID_ENUM)
		return
	}
	f.active = unit
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.call("AttachShader")
	prog, sh := f.programs[p.V], f.shaders[s.V]
	if prog == nil || sh == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	for _, id := range prog.shaders {
		if id == s.V {
			f.setErr(gl.INVALID_OPERATION)
			return
		}
	}
	prog.shaders = append(prog.shaders, s.V)
	sh.attached++
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.call("BindAttribLocation")
	prog := f.programs[p.V]
	if prog == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	prog.bindings[name] = int(a)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.call("BindBuffer")
	if b.Valid() && f.buffers[b.V] == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	if target == gl.ELEMENT_ARRAY_BUFFER {
		f.currentVAO().Elements = b.V
		return
	}
	f.bound[target] = b.V
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.call("BindBufferBase")
	if !f.webgl2 || index < 0 || index >= f.UniformBufferBindings {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	if b.Valid() && f.buffers[b.V] == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	f.indexed[indexedPoint{target, index}] = b.V
	f.bound[target] = b.V
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.call("BindTexture")
	if t.Valid() {
		tex := f.textures[t.V]
		if tex == nil {
			f.setErr(gl.INVALID_OPERATION)
			return
		}
		if tex.Target != 0 && tex.Target != target {
			f.setErr(gl.INVALID_OPERATION)
			return
		}
		tex.Target = target
	}
	for len(f.units) <= f.active {
		f.units = append(f.units, nil)
	}
	if f.units[f.active] == nil {
		f.units[f.active] = make(map[gl.Enum]uint)
	}
	f.units[f.active][target] = t.V
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.call("BindVertexArray")
	if a.Valid() && f.vaos[a.V] == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	f.vao = a.V
}

// targetBuffer returns the buffer bound to target, recording an error
// if there is none.
func (f *Functions) targetBuffer(target gl.Enum) *Buffer {
	id := f.BoundBuffer(target).V
	b := f.buffers[id]
	if b == nil {
		f.setErr(gl.INVALID_OPERATION)
	}
	return b
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.call("BufferData")
	b := f.targetBuffer(target)
	if b == nil {
		return
	}
	if size < 0 || (data != nil && len(data) != size) {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.call("BufferSubData")
	b := f.targetBuffer(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(src) > len(b.Data) {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], src)
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.call("CompileShader")
	sh := f.shaders[s.V]
	if sh == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	if log, failed := compileError(sh.src); failed {
		sh.compiled = false
		sh.log = log
		return
	}
	sh.compiled = true
	sh.log = ""
	sh.decls = scan(sh.typ, sh.src)
}

func (f *Functions) CreateBuffer() gl.Buffer {
	f.call("CreateBuffer")
	if f.FailCreate["buffer"] {
		return gl.Buffer{}
	}
	id := f.newID()
	f.buffers[id] = new(Buffer)
	return gl.Buffer{V: id}
}

func (f *Functions) CreateProgram() gl.Program {
	f.call("CreateProgram")
	if f.FailCreate["program"] {
		return gl.Program{}
	}
	id := f.newID()
	f.programs[id] = &program{bindings: make(map[string]int), values: make(map[int][]float32)}
	return gl.Program{V: id}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.call("CreateShader")
	if f.FailCreate["shader"] {
		return gl.Shader{}
	}
	if ty != gl.VERTEX_SHADER && ty != gl.FRAGMENT_SHADER {
		f.setErr(gl.INVALID_ENUM)
		return gl.Shader{}
	}
	id := f.newID()
	f.shaders[id] = &shader{typ: ty}
	return gl.Shader{V: id}
}

func (f *Functions) CreateTexture() gl.Texture {
	f.call("CreateTexture")
	if f.FailCreate["texture"] {
		return gl.Texture{}
	}
	id := f.newID()
	f.textures[id] = &Texture{Params: make(map[gl.Enum]int), Faces: make(map[gl.Enum]bool)}
	return gl.Texture{V: id}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	f.call("CreateVertexArray")
	if f.FailCreate["vertexarray"] {
		return gl.VertexArray{}
	}
	id := f.newID()
	f.vaos[id] = newVertexArray()
	return gl.VertexArray{V: id}
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.call("DeleteBuffer")
	if f.buffers[b.V] == nil {
		return
	}
	delete(f.buffers, b.V)
	for t, id := range f.bound {
		if id == b.V {
			delete(f.bound, t)
		}
	}
	for pt, id := range f.indexed {
		if id == b.V {
			delete(f.indexed, pt)
		}
	}
	if va := f.currentVAO(); va.Elements == b.V {
		va.Elements = 0
	}
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.call("DeleteProgram")
	prog := f.programs[p.V]
	if prog == nil {
		return
	}
	for _, id := range prog.shaders {
		f.release(id)
	}
	delete(f.programs, p.V)
	if f.program == p.V {
		f.program = 0
	}
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.call("DeleteShader")
	sh := f.shaders[s.V]
	if sh == nil {
		return
	}
	sh.deleted = true
	if sh.attached == 0 {
		delete(f.shaders, s.V)
	}
}

// release drops one attachment of shader id, freeing it if it was
// deleted and is no longer attached.
func (f *Functions) release(id uint) {
	sh := f.shaders[id]
	if sh == nil {
		return
	}
	sh.attached--
	if sh.deleted && sh.attached <= 0 {
		delete(f.shaders, id)
	}
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.call("DeleteTexture")
	if f.textures[t.V] == nil {
		return
	}
	delete(f.textures, t.V)
	for _, u := range f.units {
		for target, id := range u {
			if id == t.V {
				delete(u, target)
			}
		}
	}
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.call("DeleteVertexArray")
	if f.vaos[a.V] == nil {
		return
	}
	delete(f.vaos, a.V)
	if f.vao == a.V {
		f.vao = 0
	}
}

func (f *Functions) DetachShader(p gl.Program, s gl.Shader) {
	f.call("DetachShader")
	prog := f.programs[p.V]
	if prog == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	for i, id := range prog.shaders {
		if id == s.V {
			prog.shaders = append(prog.shaders[:i], prog.shaders[i+1:]...)
			f.release(id)
			return
		}
	}
	f.setErr(gl.INVALID_OPERATION)
}

func (f *Functions) attrib(a gl.Attrib) *Attrib {
	if int(a) >= 16 {
		f.setErr(gl.INVALID_VALUE)
		return nil
	}
	va := f.currentVAO()
	at := va.Attribs[a]
	if at == nil {
		at = &Attrib{Size: 4, Type: gl.FLOAT}
		va.Attribs[a] = at
	}
	return at
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.call("DisableVertexAttribArray")
	if at := f.attrib(a); at != nil {
		at.Enabled = false
	}
}

func (f *Functions) draw(d Draw) {
	if f.program == 0 {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	d.Program = f.program
	f.draws = append(f.draws, d)
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.call("DrawArrays")
	f.draw(Draw{Mode: mode, Count: count, Instances: 1})
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.call("DrawArraysInstanced")
	f.draw(Draw{Mode: mode, Count: count, Instances: instances})
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.call("DrawElements")
	if f.currentVAO().Elements == 0 {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	f.draw(Draw{Mode: mode, Count: count, Instances: 1, Indexed: true})
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.call("DrawElementsInstanced")
	if f.currentVAO().Elements == 0 {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	f.draw(Draw{Mode: mode, Count: count, Instances: instances, Indexed: true})
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.call("EnableVertexAttribArray")
	if at := f.attrib(a); at != nil {
		at.Enabled = true
	}
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.call("GenerateMipmap")
	tex := f.textures[f.BoundTexture(f.active, target).V]
	if tex == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	tex.Mipmapped = true
}

func (f *Functions) linkedProgram(p gl.Program) *program {
	prog := f.programs[p.V]
	if prog == nil {
		f.setErr(gl.INVALID_VALUE)
		return nil
	}
	if !prog.linked {
		f.setErr(gl.INVALID_OPERATION)
		return nil
	}
	return prog
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) gl.ActiveInfo {
	f.call("GetActiveAttrib")
	prog := f.linkedProgram(p)
	if prog == nil || index < 0 || index >= len(prog.attribs) {
		f.setErr(gl.INVALID_VALUE)
		return gl.ActiveInfo{}
	}
	a := prog.attribs[index]
	return gl.ActiveInfo{Name: a.name, Size: 1, Type: a.typ}
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) gl.ActiveInfo {
	f.call("GetActiveUniform")
	prog := f.linkedProgram(p)
	if prog == nil || index < 0 || index >= len(prog.uniforms) {
		f.setErr(gl.INVALID_VALUE)
		return gl.ActiveInfo{}
	}
	u := prog.uniforms[index]
	name := u.name
	if u.size > 1 {
		name += "[0]"
	}
	return gl.ActiveInfo{Name: name, Size: u.size, Type: u.typ}
}

func (f *Functions) block(p gl.Program, index uint) *activeBlock {
	prog := f.linkedProgram(p)
	if prog == nil {
		return nil
	}
	if int(index) >= len(prog.blocks) {
		f.setErr(gl.INVALID_VALUE)
		return nil
	}
	return &prog.blocks[index]
}

func (f *Functions) GetActiveUniformBlockName(p gl.Program, index uint) string {
	f.call("GetActiveUniformBlockName")
	if b := f.block(p, index); b != nil {
		return b.name
	}
	return ""
}

func (f *Functions) GetActiveUniformBlockParameteri(p gl.Program, index uint, pname gl.Enum) int {
	f.call("GetActiveUniformBlockParameteri")
	b := f.block(p, index)
	if b == nil {
		return 0
	}
	switch pname {
	case gl.UNIFORM_BLOCK_DATA_SIZE:
		return b.size
	case gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS:
		return len(b.members)
	default:
		f.setErr(gl.INVALID_ENUM)
		return 0
	}
}

func (f *Functions) GetActiveUniformBlockUniformIndices(p gl.Program, index uint) []uint {
	f.call("GetActiveUniformBlockUniformIndices")
	if b := f.block(p, index); b != nil {
		return append([]uint(nil), b.members...)
	}
	return nil
}

func (f *Functions) GetActiveUniformsi(p gl.Program, indices []uint, pname gl.Enum) []int {
	f.call("GetActiveUniformsi")
	prog := f.linkedProgram(p)
	if prog == nil {
		return nil
	}
	if pname != gl.UNIFORM_OFFSET {
		f.setErr(gl.INVALID_ENUM)
		return nil
	}
	res := make([]int, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(prog.uniforms) {
			f.setErr(gl.INVALID_VALUE)
			return nil
		}
		u := prog.uniforms[idx]
		if u.loc >= 0 {
			res[i] = -1
		} else {
			res[i] = u.offset
		}
	}
	return res
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.call("GetAttribLocation")
	prog := f.linkedProgram(p)
	if prog == nil {
		return -1
	}
	for _, a := range prog.attribs {
		if a.name == name {
			return a.loc
		}
	}
	return -1
}

func (f *Functions) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	f.call("GetBufferSubData")
	if !f.webgl2 {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	b := f.targetBuffer(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(dst) > len(b.Data) {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	copy(dst, b.Data[offset:])
}

func (f *Functions) GetError() gl.Enum {
	f.call("GetError")
	e := f.err
	f.err = gl.NO_ERROR
	return e
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.call("GetInteger")
	switch pname {
	case gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return f.TextureUnits
	case gl.MAX_UNIFORM_BUFFER_BINDINGS:
		if !f.webgl2 {
			f.setErr(gl.INVALID_ENUM)
			return 0
		}
		return f.UniformBufferBindings
	case gl.MAX_VERTEX_ATTRIBS:
		return 16
	case gl.MAX_TEXTURE_SIZE:
		return 4096
	case gl.ACTIVE_TEXTURE:
		return gl.TEXTURE0 + f.active
	default:
		f.setErr(gl.INVALID_ENUM)
		return 0
	}
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.call("GetProgrami")
	prog := f.programs[p.V]
	if prog == nil {
		f.setErr(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if prog.linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.ATTACHED_SHADERS:
		return len(prog.shaders)
	case gl.ACTIVE_ATTRIBUTES:
		return len(prog.attribs)
	case gl.ACTIVE_UNIFORMS:
		return len(prog.uniforms)
	case gl.ACTIVE_UNIFORM_BLOCKS:
		if !f.webgl2 {
			f.setErr(gl.INVALID_ENUM)
			return 0
		}
		return len(prog.blocks)
	case gl.INFO_LOG_LENGTH:
		return len(prog.log)
	default:
		f.setErr(gl.INVALID_ENUM)
		return 0
	}
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.call("GetProgramInfoLog")
	if prog := f.programs[p.V]; prog != nil {
		return prog.log
	}
	f.setErr(gl.INVALID_VALUE)
	return ""
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.call("GetShaderi")
	sh := f.shaders[s.V]
	if sh == nil {
		f.setErr(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if sh.compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(sh.log)
	default:
		f.setErr(gl.INVALID_ENUM)
		return 0
	}
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.call("GetShaderInfoLog")
	if sh := f.shaders[s.V]; sh != nil {
		return sh.log
	}
	f.setErr(gl.INVALID_VALUE)
	return ""
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.call("GetString")
	switch pname {
	case gl.VERSION:
		return f.Version
	case gl.VENDOR:
		return "gltest"
	case gl.RENDERER:
		return "gltest"
	case gl.SHADING_LANGUAGE_VERSION:
		if f.webgl2 {
			return "WebGL GLSL ES 3.00"
		}
		return "WebGL GLSL ES 1.0"
	case gl.EXTENSIONS:
		exts := make([]string, len(f.Exts))
		for i, e := range f.Exts {
			exts[i] = "GL_" + e
		}
		return strings.Join(exts, " ")
	default:
		f.setErr(gl.INVALID_ENUM)
		return ""
	}
}

func (f *Functions) GetUniformBlockIndex(p gl.Program, name string) uint {
	f.call("GetUniformBlockIndex")
	prog := f.linkedProgram(p)
	if prog == nil {
		return gl.INVALID_INDEX
	}
	for i, b := range prog.blocks {
		if b.name == name {
			return uint(i)
		}
	}
	return gl.INVALID_INDEX
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.call("GetUniformLocation")
	prog := f.linkedProgram(p)
	if prog == nil {
		return gl.Uniform{V: -1}
	}
	return gl.Uniform{V: prog.location(name)}
}

// location resolves "name", "name[0]" and "name[i]" to a uniform
// location, or -1.
func (p *program) location(name string) int {
	base, idx := name, 0
	if strings.HasSuffix(name, "]") {
		if open := strings.LastIndexByte(name, '['); open > 0 {
			i, err := strconv.Atoi(name[open+1 : len(name)-1])
			if err != nil || i < 0 {
				return -1
			}
			base, idx = name[:open], i
		}
	}
	for _, u := range p.uniforms {
		if u.loc < 0 || u.name != base {
			continue
		}
		if idx >= u.size {
			return -1
		}
		return u.loc + idx
	}
	return -1
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.call("LinkProgram")
	prog := f.programs[p.V]
	if prog == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	prog.linked = false
	prog.attribs, prog.uniforms, prog.blocks = nil, nil, nil
	prog.values = make(map[int][]float32)
	var vs, fs *shader
	for _, id := range prog.shaders {
		sh := f.shaders[id]
		switch {
		case sh.typ == gl.VERTEX_SHADER && sh.compiled:
			vs = sh
		case sh.typ == gl.FRAGMENT_SHADER && sh.compiled:
			fs = sh
		}
	}
	switch {
	case vs == nil:
		prog.log = "ERROR: missing compiled vertex shader"
		return
	case fs == nil:
		prog.log = "ERROR: missing compiled fragment shader"
		return
	case strings.Contains(vs.src, LinkErrorMarker) || strings.Contains(fs.src, LinkErrorMarker):
		prog.log = "ERROR: Varyings do not match"
		return
	}
	prog.link(vs.decls, fs.decls)
	prog.linked = true
	prog.log = ""
}

// link builds the active variables of a program from the declarations of
// its shaders.
func (p *program) link(vs, fs shaderDecls) {
	used := make(map[int]bool)
	for _, a := range vs.attribs {
		loc := a.loc
		if loc < 0 {
			if b, ok := p.bindings[a.name]; ok {
				loc = b
			}
		}
		if loc >= 0 {
			used[loc] = true
		}
		p.attribs = append(p.attribs, activeAttrib{decl: a, loc: loc})
	}
	next := 0
	for i := range p.attribs {
		if p.attribs[i].loc >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		p.attribs[i].loc = next
		used[next] = true
	}

	seen := make(map[string]bool)
	loc := 0
	for _, d := range [][]decl{vs.uniforms, fs.uniforms} {
		for _, u := range d {
			if seen[u.name] {
				continue
			}
			seen[u.name] = true
			p.uniforms = append(p.uniforms, activeUniform{decl: u, loc: loc})
			loc += u.size
		}
	}
	seenBlocks := make(map[string]bool)
	for _, d := range [][]blockDecl{vs.blocks, fs.blocks} {
		for _, b := range d {
			if seenBlocks[b.name] {
				continue
			}
			seenBlocks[b.name] = true
			offsets, size := layoutBlock(b)
			ab := activeBlock{name: b.name, size: size}
			for i, m := range b.members {
				if b.instance != "" {
					m.name = b.name + "." + m.name
				}
				ab.members = append(ab.members, uint(len(p.uniforms)))
				p.uniforms = append(p.uniforms, activeUniform{decl: m, loc: -1, offset: offsets[i]})
			}
			p.blocks = append(p.blocks, ab)
		}
	}
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.call("PixelStorei")
	f.pixelStore[pname] = param
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.call("ShaderSource")
	sh := f.shaders[s.V]
	if sh == nil {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	sh.src = src
}

// imageTexture returns the texture an image call for target updates.
func (f *Functions) imageTexture(target gl.Enum) *Texture {
	bind := target
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z {
		bind = gl.TEXTURE_CUBE_MAP
	}
	tex := f.textures[f.BoundTexture(f.active, bind).V]
	if tex == nil {
		f.setErr(gl.INVALID_OPERATION)
		return nil
	}
	if bind == gl.TEXTURE_CUBE_MAP {
		tex.Faces[target] = true
	}
	return tex
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.call("TexImage2D")
	tex := f.imageTexture(target)
	if tex == nil {
		return
	}
	if width < 0 || height < 0 {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	tex.Width, tex.Height = width, height
	tex.InternalFormat, tex.Format, tex.Type = internalFormat, format, ty
	tex.Pixels = append([]byte(nil), data...)
	tex.Element = gl.Element{}
	tex.Mipmapped = false
}

func (f *Functions) TexImage2DElement(target gl.Enum, level int, internalFormat, format, ty gl.Enum, el gl.Element) {
	f.call("TexImage2DElement")
	tex := f.imageTexture(target)
	if tex == nil {
		return
	}
	tex.InternalFormat, tex.Format, tex.Type = internalFormat, format, ty
	tex.Pixels = nil
	tex.Element = el
	tex.Mipmapped = false
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.call("TexParameteri")
	tex := f.textures[f.BoundTexture(f.active, target).V]
	if tex == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	tex.Params[pname] = param
}

// setUniform stores elements of components values each, starting at
// location dst.
func (f *Functions) setUniform(name string, dst gl.Uniform, components int, v []float32) {
	f.call(name)
	prog := f.programs[f.program]
	if prog == nil {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	if dst.V < 0 {
		return
	}
	for i := 0; i*components < len(v); i++ {
		end := (i + 1) * components
		if end > len(v) {
			end = len(v)
		}
		prog.values[dst.V+i] = append([]float32(nil), v[i*components:end]...)
	}
}

func ints(v ...int) []float32 {
	res := make([]float32, len(v))
	for i, x := range v {
		res[i] = float32(x)
	}
	return res
}

func int32s(v []int32) []float32 {
	res := make([]float32, len(v))
	for i, x := range v {
		res[i] = float32(x)
	}
	return res
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.setUniform("Uniform1f", dst, 1, []float32{v})
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.setUniform("Uniform2f", dst, 2, []float32{v0, v1})
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.setUniform("Uniform3f", dst, 3, []float32{v0, v1, v2})
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.setUniform("Uniform4f", dst, 4, []float32{v0, v1, v2, v3})
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.setUniform("Uniform1i", dst, 1, ints(v))
}

func (f *Functions) Uniform2i(dst gl.Uniform, v0, v1 int) {
	f.setUniform("Uniform2i", dst, 2, ints(v0, v1))
}

func (f *Functions) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	f.setUniform("Uniform3i", dst, 3, ints(v0, v1, v2))
}

func (f *Functions) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	f.setUniform("Uniform4i", dst, 4, ints(v0, v1, v2, v3))
}

func (f *Functions) Uniform1fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform1fv", dst, 1, v)
}

func (f *Functions) Uniform2fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform2fv", dst, 2, v)
}

func (f *Functions) Uniform3fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform3fv", dst, 3, v)
}

func (f *Functions) Uniform4fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform4fv", dst, 4, v)
}

func (f *Functions) Uniform1iv(dst gl.Uniform, v []int32) {
	f.setUniform("Uniform1iv", dst, 1, int32s(v))
}

func (f *Functions) Uniform2iv(dst gl.Uniform, v []int32) {
	f.setUniform("Uniform2iv", dst, 2, int32s(v))
}

func (f *Functions) Uniform3iv(dst gl.Uniform, v []int32) {
	f.setUniform("Uniform3iv", dst, 3, int32s(v))
}

func (f *Functions) Uniform4iv(dst gl.Uniform, v []int32) {
	f.setUniform("Uniform4iv", dst, 4, int32s(v))
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, v []float32) {
	f.setUniform("UniformMatrix2fv", dst, 4, v)
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, v []float32) {
	f.setUniform("UniformMatrix3fv", dst, 9, v)
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, v []float32) {
	f.setUniform("UniformMatrix4fv", dst, 16, v)
}

func (f *Functions) UniformBlockBinding(p gl.Program, uniformBlockIndex uint, uniformBlockBinding uint) {
	f.call("UniformBlockBinding")
	b := f.block(p, uniformBlockIndex)
	if b == nil {
		return
	}
	if int(uniformBlockBinding) >= f.UniformBufferBindings {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	b.binding = int(uniformBlockBinding)
}

func (f *Functions) UseProgram(p gl.Program) {
	f.call("UseProgram")
	if p.Valid() {
		prog := f.programs[p.V]
		if prog == nil || !prog.linked {
			f.setErr(gl.INVALID_OPERATION)
			return
		}
	}
	f.program = p.V
}

func (f *Functions) VertexAttribDivisor(a gl.Attrib, divisor int) {
	f.call("VertexAttribDivisor")
	if at := f.attrib(a); at != nil {
		at.Divisor = divisor
	}
}

func (f *Functions) vertexAttrib(a gl.Attrib, size int, ty gl.Enum, normalized, integer bool, stride, offset int) {
	buf := f.bound[gl.ARRAY_BUFFER]
	if buf == 0 && f.vao != 0 {
		f.setErr(gl.INVALID_OPERATION)
		return
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		f.setErr(gl.INVALID_VALUE)
		return
	}
	at := f.attrib(a)
	if at == nil {
		return
	}
	at.Buffer = buf
	at.Size, at.Type = size, ty
	at.Normalized, at.Integer = normalized, integer
	at.Stride, at.Offset = stride, offset
}

func (f *Functions) VertexAttribIPointer(a gl.Attrib, size int, ty gl.Enum, stride, offset int) {
	f.call("VertexAttribIPointer")
	f.vertexAttrib(a, size, ty, false, true, stride, offset)
}

func (f *Functions) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.call("VertexAttribPointer")
	f.vertexAttrib(a, size, ty, normalized, false, stride, offset)
}

var _ gl.Functions = (*Functions)(nil)
