// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "syscall/js"

type (
	Buffer      js.Value
	Program     js.Value
	Shader      js.Value
	Texture     js.Value
	Uniform     js.Value
	VertexArray js.Value
	// Element is an HTMLImageElement, HTMLCanvasElement, HTMLVideoElement,
	// ImageBitmap or ImageData accepted by texImage2D.
	Element js.Value
)

func valid(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func (b Buffer) Valid() bool {
	return valid(js.Value(b))
}

func (b Buffer) Equal(o Buffer) bool {
	return js.Value(b).Equal(js.Value(o))
}

func (p Program) Valid() bool {
	return valid(js.Value(p))
}

func (p Program) Equal(o Program) bool {
	return js.Value(p).Equal(js.Value(o))
}

func (s Shader) Valid() bool {
	return valid(js.Value(s))
}

func (s Shader) Equal(o Shader) bool {
	return js.Value(s).Equal(js.Value(o))
}

func (t Texture) Valid() bool {
	return valid(js.Value(t))
}

func (t Texture) Equal(o Texture) bool {
	return js.Value(t).Equal(js.Value(o))
}

func (u Uniform) Valid() bool {
	return valid(js.Value(u))
}

func (a VertexArray) Valid() bool {
	return valid(js.Value(a))
}

func (a VertexArray) Equal(o VertexArray) bool {
	return js.Value(a).Equal(js.Value(o))
}

func (e Element) Valid() bool {
	return valid(js.Value(e))
}
