// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/shader"

	"gioui.org/glcache/gl"
)

// buildStage is the progress of a program build.
type buildStage uint8

const (
	stageStart buildStage = iota
	stageProgramCreated
	stageFragmentCompiled
	stageVertexCompiled
	stageLinked
)

func (s buildStage) String() string {
	switch s {
	case stageStart:
		return "start"
	case stageProgramCreated:
		return "program created"
	case stageFragmentCompiled:
		return "fragment compiled"
	case stageVertexCompiled:
		return "vertex compiled"
	case stageLinked:
		return "linked"
	default:
		panic("unknown build stage")
	}
}

// programBuild holds the objects of a program under construction. A
// failed step leaves the build at the last stage reached so rollback
// deletes exactly what was created.
type programBuild struct {
	f     gl.Functions
	stage buildStage
	prog  gl.Program
	// Compiled shaders still attached to prog.
	fs, vs gl.Shader
}

func (b *programBuild) createProgram() error {
	p := b.f.CreateProgram()
	if !p.Valid() {
		return fmt.Errorf("glcache: CreateProgram: %w", ErrCreateFailed)
	}
	b.prog = p
	b.stage = stageProgramCreated
	return nil
}

func (b *programBuild) compileFragment(src string) error {
	s, err := b.compile(gl.FRAGMENT_SHADER, "fragment", src)
	if err != nil {
		return err
	}
	b.fs = s
	b.stage = stageFragmentCompiled
	return nil
}

func (b *programBuild) compileVertex(src string) error {
	s, err := b.compile(gl.VERTEX_SHADER, "vertex", src)
	if err != nil {
		return err
	}
	b.vs = s
	b.stage = stageVertexCompiled
	return nil
}

// compile compiles src and attaches it to the program. A shader that
// fails to compile is deleted before compile returns.
func (b *programBuild) compile(typ gl.Enum, stage, src string) (gl.Shader, error) {
	s := b.f.CreateShader(typ)
	if !s.Valid() {
		return gl.Shader{}, fmt.Errorf("glcache: CreateShader(%s): %w", stage, ErrCreateFailed)
	}
	b.f.ShaderSource(s, src)
	b.f.CompileShader(s)
	if b.f.GetShaderi(s, gl.COMPILE_STATUS) == gl.FALSE {
		log := b.f.GetShaderInfoLog(s)
		b.f.DeleteShader(s)
		return gl.Shader{}, &ShaderError{Stage: stage, Log: log}
	}
	b.f.AttachShader(b.prog, s)
	return s, nil
}

// link links the program. After a successful link the shaders are
// detached and deleted.
func (b *programBuild) link(inputs []shader.InputLocation) error {
	for _, inp := range inputs {
		b.f.BindAttribLocation(b.prog, gl.Attrib(inp.Location), inp.Name)
	}
	b.f.LinkProgram(b.prog)
	if b.f.GetProgrami(b.prog, gl.LINK_STATUS) == gl.FALSE {
		return &ShaderError{Stage: "link", Log: b.f.GetProgramInfoLog(b.prog)}
	}
	b.releaseShaders()
	b.stage = stageLinked
	return nil
}

func (b *programBuild) releaseShaders() {
	for _, s := range []*gl.Shader{&b.fs, &b.vs} {
		if s.Valid() {
			b.f.DetachShader(b.prog, *s)
			b.f.DeleteShader(*s)
			*s = gl.Shader{}
		}
	}
}

// rollback deletes every object created by the build.
func (b *programBuild) rollback() {
	if b.stage == stageStart {
		return
	}
	b.releaseShaders()
	b.f.DeleteProgram(b.prog)
	b.prog = gl.Program{}
	b.stage = stageStart
}

func (b *programBuild) run(vsSrc, fsSrc string, inputs []shader.InputLocation) error {
	if err := b.createProgram(); err != nil {
		return err
	}
	if err := b.compileFragment(fsSrc); err != nil {
		return err
	}
	if err := b.compileVertex(vsSrc); err != nil {
		return err
	}
	return b.link(inputs)
}

// CompileProgram compiles and links a program from GLSL sources and
// introspects it. On success the new program is the active program and
// its sampler uniforms are set to their texture units. On failure no
// object created by the call survives; compile and link failures are
// reported as a *ShaderError.
func (r *Renderer) CompileProgram(vertexSrc, fragmentSrc string) (Program, error) {
	return r.compileProgram("", vertexSrc, fragmentSrc, nil)
}

// CompileProgramSources is like CompileProgram for the GLSL ES variants
// of shaders from gioui.org/shader. Vertex inputs are bound to the
// locations listed in vs.Inputs before linking.
func (r *Renderer) CompileProgramSources(vs, fs shader.Sources) (Program, error) {
	for _, src := range []shader.Sources{vs, fs} {
		if src.GLSL100ES == "" {
			return Program{}, fmt.Errorf("glcache: %s: no GLSL ES source", src.Name)
		}
	}
	p, err := r.compileProgram(vs.Name+"+"+fs.Name, vs.GLSL100ES, fs.GLSL100ES, vs.Inputs)
	if err != nil {
		return Program{}, fmt.Errorf("%s: %w", vs.Name, err)
	}
	return p, nil
}

func (r *Renderer) compileProgram(name, vsSrc, fsSrc string, inputs []shader.InputLocation) (Program, error) {
	b := &programBuild{f: r.funcs}
	if err := b.run(vsSrc, fsSrc, inputs); err != nil {
		Logger().Warn("glcache: program build failed", "name", name, "stage", b.stage, "error", err)
		b.rollback()
		return Program{}, err
	}
	info, err := r.introspect(b.prog)
	if err != nil {
		Logger().Warn("glcache: program introspection failed", "name", name, "error", err)
		b.rollback()
		return Program{}, err
	}
	p := Program{r.programs.Insert(&gpuProgram{obj: b.prog, info: info})}
	r.useProgram(p, b.prog)
	r.assignSamplerUnits(info)
	if debugEnabled() {
		Logger().Debug("glcache: program compiled",
			"program", p,
			"name", name,
			"attributes", sortedKeys(info.attribs),
			"uniforms", len(info.uniforms),
			"samplers", info.samplerOrder,
			"blocks", sortedKeys(info.blocks),
		)
	}
	return p, nil
}
