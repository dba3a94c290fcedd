// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glcache

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/shader"

	"gioui.org/glcache/internal/gltest"
)

func TestCompileProgram(t *testing.T) {
	f := gltest.NewWebGL2()
	r := newRenderer(t, f)
	p := compileQuad(t, r)
	assert.False(t, p.IsZero())
	// Shaders are released after linking.
	assert.Equal(t, gltest.Objects{Programs: 1}, f.Live())
	assert.Equal(t, glProgram(t, r, p), f.CurrentProgram())
	assert.Equal(t, 0, int(f.Err()))
}

func TestCompileFailureRollback(t *testing.T) {
	tests := []struct {
		name    string
		vs, fs  string
		stage   string
		kind    error
		log     string
		shaders int
	}{
		{
			name:    "fragment",
			vs:      quadVert,
			fs:      strings.Replace(quadFrag, "precision mediump float;", "#error missing sampler", 1),
			stage:   "fragment",
			kind:    ErrCompileFailed,
			log:     "missing sampler",
			shaders: 1,
		},
		{
			name:    "vertex",
			vs:      strings.Replace(quadVert, "in vec2 uv;", "#error bad input\nin vec2 uv;", 1),
			fs:      quadFrag,
			stage:   "vertex",
			kind:    ErrCompileFailed,
			log:     "bad input",
			shaders: 2,
		},
		{
			name:    "link",
			vs:      quadVert + gltest.LinkErrorMarker + "\n",
			fs:      quadFrag,
			stage:   "link",
			kind:    ErrLinkFailed,
			log:     "Varyings",
			shaders: 2,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := gltest.NewWebGL2()
			r := newRenderer(t, f)
			p, err := r.CompileProgram(test.vs, test.fs)
			require.Error(t, err)
			assert.True(t, p.IsZero())
			assert.ErrorIs(t, err, test.kind)

			var serr *ShaderError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, test.stage, serr.Stage)
			assert.Contains(t, serr.Log, test.log)

			assert.Equal(t, gltest.Objects{}, f.Live())
			assert.Equal(t, test.shaders, f.Calls("CreateShader"))
			assert.False(t, f.CurrentProgram().Valid())
		})
	}
}

func TestCompileCreateFailure(t *testing.T) {
	for _, kind := range []string{"program", "shader"} {
		t.Run(kind, func(t *testing.T) {
			f := gltest.NewWebGL2()
			r := newRenderer(t, f)
			f.FailCreate[kind] = true
			_, err := r.CompileProgram(quadVert, quadFrag)
			assert.ErrorIs(t, err, ErrCreateFailed)
			assert.Equal(t, gltest.Objects{}, f.Live())
		})
	}
}

func TestIntrospectionFailureRollback(t *testing.T) {
	f := gltest.NewWebGL2()
	// tex and shadows need 4 units.
	f.TextureUnits = 3
	r := newRenderer(t, f)
	_, err := r.CompileProgram(quadVert, quadFrag)
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.Equal(t, gltest.Objects{}, f.Live())
}

func TestCompileProgramSources(t *testing.T) {
	f := gltest.NewWebGL1()
	r := newRenderer(t, f)
	vs := shader.Sources{
		Name:      "quad.vert",
		GLSL100ES: quadVert100,
		Inputs: []shader.InputLocation{
			{Name: "pos", Location: 1},
			{Name: "uv", Location: 0},
		},
	}
	fs := shader.Sources{Name: "quad.frag", GLSL100ES: quadFrag100}
	p, err := r.CompileProgramSources(vs, fs)
	require.NoError(t, err)
	loc, err := r.AttribLocation(p, "pos")
	require.NoError(t, err)
	assert.Equal(t, 1, loc)
	loc, err = r.AttribLocation(p, "uv")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)

	_, err = r.CompileProgramSources(shader.Sources{Name: "empty.vert"}, fs)
	assert.Error(t, err)

	vs.GLSL100ES = "#error unsupported\n" + quadVert100
	_, err = r.CompileProgramSources(vs, fs)
	assert.ErrorIs(t, err, ErrCompileFailed)
	assert.Contains(t, err.Error(), "quad.vert")
}

func TestCompileFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	r := newRenderer(t, gltest.NewWebGL2())
	_, err := r.CompileProgram(quadVert, "#error broken\n")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "program build failed")
	assert.Contains(t, buf.String(), `stage="program created"`)

	compileQuad(t, r)
	assert.Contains(t, buf.String(), "program compiled")
}
