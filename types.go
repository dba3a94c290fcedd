// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import "gioui.org/glcache/gl"

type (
	BufferTarget  uint8
	BufferUsage   uint8
	TextureTarget uint8
	TextureFormat uint8
	TextureFilter uint8
	TextureWrap   uint8
	DrawMode      uint8
	IndexType     uint8
)

const (
	BufferTargetArray BufferTarget = iota
	BufferTargetElementArray
	// BufferTargetUniform and the copy targets need uniform buffer
	// support.
	BufferTargetUniform
	BufferTargetCopyRead
	BufferTargetCopyWrite
)

const (
	BufferUsageStatic BufferUsage = iota
	BufferUsageDynamic
	BufferUsageStream
)

const (
	Texture2D TextureTarget = iota
	TextureCubeMap
	// Texture3D and Texture2DArray need FeatureTexture3D.
	Texture3D
	Texture2DArray
)

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
	// TextureFormatR8 is a single channel format, uploaded as LUMINANCE
	// where R8 is not available.
	TextureFormatR8
	TextureFormatRG8
	TextureFormatSRGBA
	TextureFormatRGBA16F
	TextureFormatRGBA32F
	TextureFormatLuminance
	TextureFormatAlpha
)

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

const (
	WrapClampToEdge TextureWrap = iota
	WrapRepeat
	WrapMirroredRepeat
)

const (
	DrawModePoints DrawMode = iota
	DrawModeLines
	DrawModeLineStrip
	DrawModeLineLoop
	DrawModeTriangles
	DrawModeTriangleStrip
	DrawModeTriangleFan
)

const (
	IndexTypeUint8 IndexType = iota
	IndexTypeUint16
	// IndexTypeUint32 needs WebGL 2 or OES_element_index_uint.
	IndexTypeUint32
)

// textureTriple holds the type settings for
// a TexImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
}

// TextureParameters are the sampling parameters of a texture.
type TextureParameters struct {
	MinFilter, MagFilter TextureFilter
	WrapS, WrapT         TextureWrap
}

func (u BufferUsage) toGL() gl.Enum {
	switch u {
	case BufferUsageDynamic:
		return gl.DYNAMIC_DRAW
	case BufferUsageStream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (f TextureFilter) toGL() int {
	switch f {
	case FilterLinear:
		return gl.LINEAR
	case FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case FilterLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.NEAREST
	}
}

func (f TextureFilter) mipmapped() bool {
	return f >= FilterNearestMipmapNearest
}

func (w TextureWrap) toGL() int {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

func (m DrawMode) toGL() gl.Enum {
	switch m {
	case DrawModePoints:
		return gl.POINTS
	case DrawModeLines:
		return gl.LINES
	case DrawModeLineStrip:
		return gl.LINE_STRIP
	case DrawModeLineLoop:
		return gl.LINE_LOOP
	case DrawModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case DrawModeTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func (t IndexType) toGL() gl.Enum {
	switch t {
	case IndexTypeUint8:
		return gl.UNSIGNED_BYTE
	case IndexTypeUint32:
		return gl.UNSIGNED_INT
	default:
		return gl.UNSIGNED_SHORT
	}
}
