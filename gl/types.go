// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js
// +build !js

package gl

type (
	Buffer      struct{ V uint }
	Program     struct{ V uint }
	Shader      struct{ V uint }
	Texture     struct{ V uint }
	Uniform     struct{ V int }
	VertexArray struct{ V uint }
	// Element stands in for a browser image source. Outside the browser it
	// names an element known to the Functions implementation.
	Element struct{ V uint }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (b Buffer) Equal(o Buffer) bool {
	return b == o
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (p Program) Equal(o Program) bool {
	return p == o
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (s Shader) Equal(o Shader) bool {
	return s == o
}

func (t Texture) Valid() bool {
	return t.V != 0
}

func (t Texture) Equal(o Texture) bool {
	return t == o
}

func (u Uniform) Valid() bool {
	return u.V != -1
}

func (a VertexArray) Valid() bool {
	return a.V != 0
}

func (a VertexArray) Equal(o VertexArray) bool {
	return a == o
}

func (e Element) Valid() bool {
	return e.V != 0
}
