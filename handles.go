// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/internal/arena"
)

// Buffer, Texture, Program and VertexArray are handles to objects owned
// by a Renderer. Handles are small values to be copied freely. A handle
// stays invalid once its object is deleted, even if the storage is
// reused. The zero handle never refers to an object and means "none"
// where a binding is released.
type (
	Buffer      struct{ h arena.Handle }
	Texture     struct{ h arena.Handle }
	Program     struct{ h arena.Handle }
	VertexArray struct{ h arena.Handle }
)

func (b Buffer) IsZero() bool      { return b.h.IsZero() }
func (t Texture) IsZero() bool     { return t.h.IsZero() }
func (p Program) IsZero() bool     { return p.h.IsZero() }
func (a VertexArray) IsZero() bool { return a.h.IsZero() }

func (b Buffer) String() string      { return fmt.Sprintf("buffer(%v)", b.h) }
func (t Texture) String() string     { return fmt.Sprintf("texture(%v)", t.h) }
func (p Program) String() string     { return fmt.Sprintf("program(%v)", p.h) }
func (a VertexArray) String() string { return fmt.Sprintf("vertex array(%v)", a.h) }
