// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package glcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gioui.org/glcache/gl"
	"gioui.org/glcache/internal/gltest"
)

const (
	quadVert = `#version 300 es
layout(location = 0) in vec2 pos;
in vec2 uv;
uniform mat4 transform;
out vec2 vUV;
void main() {
	vUV = uv;
	gl_Position = transform * vec4(pos, 0.0, 1.0);
}
`
	quadFrag = `#version 300 es
precision mediump float;
uniform sampler2D tex;
uniform sampler2D shadows[3];
uniform vec4 color;
in vec2 vUV;
out vec4 fragColor;
void main() {
	fragColor = color * texture(tex, vUV) * texture(shadows[1], vUV).r;
}
`
	// Shaders for WebGL 1 contexts.
	quadVert100 = `#version 100
attribute vec2 pos;
attribute vec2 uv;
varying vec2 vUV;
void main() {
	vUV = uv;
	gl_Position = vec4(pos, 0.0, 1.0);
}
`
	quadFrag100 = `#version 100
precision mediump float;
uniform sampler2D tex;
varying vec2 vUV;
void main() {
	gl_FragColor = texture2D(tex, vUV);
}
`
	litVert = `#version 300 es
in vec3 pos;
layout(std140) uniform Camera {
	mat4 view;
	vec3 eye;
	float exposure;
} camera;
void main() {
	gl_Position = camera.view * vec4(pos, 1.0);
}
`
	litFrag = `#version 300 es
precision mediump float;
layout(std140) uniform Lights {
	vec4 colors[4];
	int count;
};
layout(std140) uniform Material {
	vec4 albedo;
};
out vec4 fragColor;
void main() {
	fragColor = colors[0] * albedo * float(count);
}
`
)

func newRenderer(t *testing.T, f gl.Functions) *Renderer {
	t.Helper()
	return newRendererConfig(t, f, DefaultConfig())
}

func newRendererConfig(t *testing.T, f gl.Functions, cfg Config) *Renderer {
	t.Helper()
	r, err := New(f, cfg)
	require.NoError(t, err)
	return r
}

func compileQuad(t *testing.T, r *Renderer) Program {
	t.Helper()
	p, err := r.CompileProgram(quadVert, quadFrag)
	require.NoError(t, err)
	return p
}

// glProgram returns the context object behind p.
func glProgram(t *testing.T, r *Renderer, p Program) gl.Program {
	t.Helper()
	prog, ok := r.programs.Get(p.h)
	require.True(t, ok)
	return prog.obj
}

func glBuffer(t *testing.T, r *Renderer, b Buffer) gl.Buffer {
	t.Helper()
	buf, ok := r.buffers.Get(b.h)
	require.True(t, ok)
	return buf.obj
}

func glTexture(t *testing.T, r *Renderer, tex Texture) gl.Texture {
	t.Helper()
	gt, ok := r.textures.Get(tex.h)
	require.True(t, ok)
	return gt.obj
}

func glVertexArray(t *testing.T, r *Renderer, a VertexArray) gl.VertexArray {
	t.Helper()
	va, ok := r.vertexArrays.Get(a.h)
	require.True(t, ok)
	return va.obj
}

// createBuffer returns a buffer holding data.
func createBuffer(t *testing.T, r *Renderer, target BufferTarget, data []byte) Buffer {
	t.Helper()
	b, err := r.CreateBuffer()
	require.NoError(t, err)
	require.NoError(t, r.UploadBufferData(b, target, data, BufferUsageStatic))
	return b
}

var _ gl.Functions = (*gltest.Functions)(nil)
