// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glcache is a handle based front end to WebGL style graphics
contexts.

A Renderer owns every buffer, texture, program and vertex array it
creates and hands out small handles to them. Binding operations are
compared against the bindings the Renderer last made and skipped when
they would not change anything. Programs are introspected once, when
they are compiled: attribute locations, uniform locations, sampler texture
units and uniform block bind points are cached for the life of the
program.

A Renderer is not safe for concurrent use. It must be used from the
goroutine that owns the graphics context.
*/
package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
	"gioui.org/glcache/internal/arena"
)

// Renderer wraps a graphics context.
type Renderer struct {
	funcs   gl.Functions
	backend backend
	feats   Features
	glver   [2]int
	// rebind disables bind elision.
	rebind bool

	state  bindingState
	blocks blockRegistry

	buffers      arena.Arena[*gpuBuffer]
	textures     arena.Arena[*gpuTexture]
	programs     arena.Arena[*gpuProgram]
	vertexArrays arena.Arena[*gpuVertexArray]
}

// New returns a Renderer for the context f. The context must be current
// and should be in its initial state.
func New(f gl.Functions, cfg Config) (*Renderer, error) {
	glVer := f.GetString(gl.VERSION)
	ver, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return nil, fmt.Errorf("glcache: %w", err)
	}
	exts := gl.Extensions(f)
	b := newBackend(f, ver, exts)
	r := &Renderer{
		funcs:   f,
		backend: b,
		feats:   b.features(),
		glver:   ver,
		rebind:  cfg.AlwaysRebind,
	}
	r.state.init(f.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS))
	r.blocks.init(b.maxUniformBufferBindings())
	if len(cfg.UniformBlocks) > 0 && !r.feats.Has(FeatureUniformBuffers) {
		Logger().Warn("glcache: uniform blocks not supported, ignoring registrations", "blocks", cfg.UniformBlocks)
	} else {
		for _, name := range cfg.UniformBlocks {
			if _, err := r.RegisterGlobalUniformBuffer(name); err != nil {
				return nil, err
			}
		}
	}
	if r.rebind {
		Logger().Warn("glcache: bind elision disabled, every bind reaches the context")
	}
	Logger().Debug("glcache: renderer created",
		"version", glVer,
		"features", r.feats,
		"texture_units", len(r.state.units),
		"uniform_buffer_bindings", r.blocks.max,
	)
	return r, nil
}

// Features returns the optional capabilities of the context.
func (r *Renderer) Features() Features {
	return r.feats
}

// Release deletes every object owned by r. Handles issued before the
// call are invalid afterwards; r itself stays usable.
func (r *Renderer) Release() {
	nva, nprog, ntex, nbuf := r.vertexArrays.Len(), r.programs.Len(), r.textures.Len(), r.buffers.Len()
	r.vertexArrays.Range(func(_ arena.Handle, va *gpuVertexArray) bool {
		r.funcs.DeleteVertexArray(va.obj)
		return true
	})
	r.programs.Range(func(_ arena.Handle, p *gpuProgram) bool {
		r.funcs.DeleteProgram(p.obj)
		return true
	})
	r.textures.Range(func(_ arena.Handle, t *gpuTexture) bool {
		r.funcs.DeleteTexture(t.obj)
		return true
	})
	r.buffers.Range(func(_ arena.Handle, b *gpuBuffer) bool {
		r.funcs.DeleteBuffer(b.obj)
		return true
	})
	r.vertexArrays.Clear()
	r.programs.Clear()
	r.textures.Clear()
	r.buffers.Clear()
	r.state.init(len(r.state.units))
	Logger().Debug("glcache: renderer released",
		"vertex_arrays", nva,
		"programs", nprog,
		"textures", ntex,
		"buffers", nbuf,
	)
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
