// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"
	"syscall/js"

	"gioui.org/glcache/gl"
)

// NewFromCanvas creates a WebGL context for the canvas element, WebGL 2
// if available, and returns a Renderer for it. cfg.Context is passed to
// getContext.
func NewFromCanvas(canvas js.Value, cfg Config) (*Renderer, error) {
	f, err := gl.NewWebGL(canvas, cfg.Context)
	if err != nil {
		return nil, fmt.Errorf("glcache: %w", err)
	}
	return New(f, cfg)
}
