// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

// backend isolates the differences between WebGL 1 and WebGL 2
// contexts. Everything else in the Renderer is written against it.
type backend interface {
	features() Features
	createVertexArray() (gl.VertexArray, error)
	// uniformBlocks returns the number of active uniform blocks of p.
	uniformBlocks(p gl.Program) int
	maxUniformBufferBindings() int
	vertexAttribDivisor(a gl.Attrib, divisor int) error
	vertexAttribIPointer(a gl.Attrib, size int, ty gl.Enum, stride, offset int) error
	drawArraysInstanced(mode gl.Enum, first, count, instances int) error
	drawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) error
	readBuffer(target gl.Enum, offset int, dst []byte) error
	bufferTarget(t BufferTarget) (gl.Enum, error)
	textureTarget(t TextureTarget) (gl.Enum, error)
	textureTriple(f TextureFormat) (textureTriple, error)
	indexType(t IndexType) (gl.Enum, error)
}

type webgl1 struct {
	f     gl.Functions
	exts  []string
	feats Features
}

type webgl2 struct {
	f      gl.Functions
	maxUBO int
}

func newBackend(f gl.Functions, ver [2]int, exts []string) backend {
	if ver[0] >= 3 {
		return &webgl2{f: f, maxUBO: f.GetInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS)}
	}
	b := &webgl1{f: f, exts: exts}
	if gl.HasExtension(exts, "GL_OES_vertex_array_object") {
		b.feats |= FeatureVertexArrays
	}
	if gl.HasExtension(exts, "GL_ANGLE_instanced_arrays") {
		b.feats |= FeatureInstancing
	}
	return b
}

func (b *webgl1) features() Features {
	return b.feats
}

func (b *webgl1) createVertexArray() (gl.VertexArray, error) {
	if !b.feats.Has(FeatureVertexArrays) {
		return gl.VertexArray{}, noCapability("vertex arrays (OES_vertex_array_object)")
	}
	return b.f.CreateVertexArray(), nil
}

func (b *webgl1) uniformBlocks(gl.Program) int {
	return 0
}

func (b *webgl1) maxUniformBufferBindings() int {
	return 0
}

func (b *webgl1) vertexAttribDivisor(a gl.Attrib, divisor int) error {
	if !b.feats.Has(FeatureInstancing) {
		return noCapability("attribute divisors (ANGLE_instanced_arrays)")
	}
	b.f.VertexAttribDivisor(a, divisor)
	return nil
}

func (b *webgl1) vertexAttribIPointer(gl.Attrib, int, gl.Enum, int, int) error {
	return noCapability("integer attributes")
}

func (b *webgl1) drawArraysInstanced(mode gl.Enum, first, count, instances int) error {
	if !b.feats.Has(FeatureInstancing) {
		return noCapability("instanced draws (ANGLE_instanced_arrays)")
	}
	b.f.DrawArraysInstanced(mode, first, count, instances)
	return nil
}

func (b *webgl1) drawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) error {
	if !b.feats.Has(FeatureInstancing) {
		return noCapability("instanced draws (ANGLE_instanced_arrays)")
	}
	b.f.DrawElementsInstanced(mode, count, ty, offset, instances)
	return nil
}

func (b *webgl1) readBuffer(gl.Enum, int, []byte) error {
	return noCapability("buffer read back")
}

func (b *webgl1) bufferTarget(t BufferTarget) (gl.Enum, error) {
	switch t {
	case BufferTargetArray:
		return gl.ARRAY_BUFFER, nil
	case BufferTargetElementArray:
		return gl.ELEMENT_ARRAY_BUFFER, nil
	default:
		return 0, noCapability(fmt.Sprintf("buffer target %d", t))
	}
}

func (b *webgl1) textureTarget(t TextureTarget) (gl.Enum, error) {
	switch t {
	case Texture2D:
		return gl.TEXTURE_2D, nil
	case TextureCubeMap:
		return gl.TEXTURE_CUBE_MAP, nil
	default:
		return 0, noCapability(fmt.Sprintf("texture target %d", t))
	}
}

func (b *webgl1) textureTriple(f TextureFormat) (textureTriple, error) {
	switch f {
	case TextureFormatRGBA8:
		return textureTriple{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case TextureFormatRGB8:
		return textureTriple{gl.RGB, gl.RGB, gl.UNSIGNED_BYTE}, nil
	case TextureFormatR8, TextureFormatLuminance:
		// R8, RED not supported on OpenGL ES 2.0.
		return textureTriple{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE}, nil
	case TextureFormatRG8:
		return textureTriple{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE}, nil
	case TextureFormatAlpha:
		return textureTriple{gl.ALPHA, gl.ALPHA, gl.UNSIGNED_BYTE}, nil
	case TextureFormatSRGBA:
		if gl.HasExtension(b.exts, "GL_EXT_sRGB") {
			return textureTriple{gl.SRGB_ALPHA_EXT, gl.SRGB_ALPHA_EXT, gl.UNSIGNED_BYTE}, nil
		}
		return textureTriple{}, noCapability("sRGB textures (EXT_sRGB)")
	case TextureFormatRGBA16F:
		if gl.HasExtension(b.exts, "GL_OES_texture_half_float") {
			return textureTriple{gl.RGBA, gl.RGBA, gl.HALF_FLOAT_OES}, nil
		}
		return textureTriple{}, noCapability("half float textures (OES_texture_half_float)")
	case TextureFormatRGBA32F:
		if gl.HasExtension(b.exts, "GL_OES_texture_float") {
			return textureTriple{gl.RGBA, gl.RGBA, gl.FLOAT}, nil
		}
		return textureTriple{}, noCapability("float textures (OES_texture_float)")
	default:
		return textureTriple{}, fmt.Errorf("glcache: unknown texture format %d", f)
	}
}

func (b *webgl1) indexType(t IndexType) (gl.Enum, error) {
	if t == IndexTypeUint32 && !gl.HasExtension(b.exts, "GL_OES_element_index_uint") {
		return 0, noCapability("32-bit indices (OES_element_index_uint)")
	}
	return t.toGL(), nil
}

func (b *webgl2) features() Features {
	return FeatureVertexArrays | FeatureInstancing | FeatureUniformBuffers |
		FeatureBufferReadback | FeatureIntegerAttributes | FeatureTexture3D | FeatureNPOTMipmaps
}

func (b *webgl2) createVertexArray() (gl.VertexArray, error) {
	return b.f.CreateVertexArray(), nil
}

func (b *webgl2) uniformBlocks(p gl.Program) int {
	return b.f.GetProgrami(p, gl.ACTIVE_UNIFORM_BLOCKS)
}

func (b *webgl2) maxUniformBufferBindings() int {
	return b.maxUBO
}

func (b *webgl2) vertexAttribDivisor(a gl.Attrib, divisor int) error {
	b.f.VertexAttribDivisor(a, divisor)
	return nil
}

func (b *webgl2) vertexAttribIPointer(a gl.Attrib, size int, ty gl.Enum, stride, offset int) error {
	b.f.VertexAttribIPointer(a, size, ty, stride, offset)
	return nil
}

func (b *webgl2) drawArraysInstanced(mode gl.Enum, first, count, instances int) error {
	b.f.DrawArraysInstanced(mode, first, count, instances)
	return nil
}

func (b *webgl2) drawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) error {
	b.f.DrawElementsInstanced(mode, count, ty, offset, instances)
	return nil
}

func (b *webgl2) readBuffer(target gl.Enum, offset int, dst []byte) error {
	b.f.GetBufferSubData(target, offset, dst)
	return nil
}

func (b *webgl2) bufferTarget(t BufferTarget) (gl.Enum, error) {
	switch t {
	case BufferTargetArray:
		return gl.ARRAY_BUFFER, nil
	case BufferTargetElementArray:
		return gl.ELEMENT_ARRAY_BUFFER, nil
	case BufferTargetUniform:
		return gl.UNIFORM_BUFFER, nil
	case BufferTargetCopyRead:
		return gl.COPY_READ_BUFFER, nil
	case BufferTargetCopyWrite:
		return gl.COPY_WRITE_BUFFER, nil
	default:
		return 0, fmt.Errorf("glcache: unknown buffer target %d", t)
	}
}

func (b *webgl2) textureTarget(t TextureTarget) (gl.Enum, error) {
	switch t {
	case Texture2D:
		return gl.TEXTURE_2D, nil
	case TextureCubeMap:
		return gl.TEXTURE_CUBE_MAP, nil
	case Texture3D:
		return gl.TEXTURE_3D, nil
	case Texture2DArray:
		return gl.TEXTURE_2D_ARRAY, nil
	default:
		return 0, fmt.Errorf("glcache: unknown texture target %d", t)
	}
}

func (b *webgl2) textureTriple(f TextureFormat) (textureTriple, error) {
	switch f {
	case TextureFormatRGBA8:
		return textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case TextureFormatRGB8:
		return textureTriple{gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE}, nil
	case TextureFormatR8:
		return textureTriple{gl.R8, gl.RED, gl.UNSIGNED_BYTE}, nil
	case TextureFormatRG8:
		return textureTriple{gl.RG8, gl.RG, gl.UNSIGNED_BYTE}, nil
	case TextureFormatSRGBA:
		return textureTriple{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case TextureFormatRGBA16F:
		return textureTriple{gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT}, nil
	case TextureFormatRGBA32F:
		return textureTriple{gl.RGBA32F, gl.RGBA, gl.FLOAT}, nil
	case TextureFormatLuminance:
		return textureTriple{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE}, nil
	case TextureFormatAlpha:
		return textureTriple{gl.ALPHA, gl.ALPHA, gl.UNSIGNED_BYTE}, nil
	default:
		return textureTriple{}, fmt.Errorf("glcache: unknown texture format %d", f)
	}
}

func (b *webgl2) indexType(t IndexType) (gl.Enum, error) {
	return t.toGL(), nil
}
