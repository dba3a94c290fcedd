// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"gioui.org/glcache/gl"
)

// TextureSource is the content of a texture upload: a PixelSource,
// an ImageSource or an ElementSource.
type TextureSource interface {
	textureSource()
}

// PixelSource is raw pixel data.
type PixelSource struct {
	Width, Height int
	Format        TextureFormat
	// Pixels holds Width*Height pixels of Format, tightly packed. Nil
	// allocates uninitialized storage.
	Pixels []byte
}

// ImageSource is an image converted to 8-bit RGBA before upload.
type ImageSource struct {
	Image image.Image
	// SRGB selects TextureFormatSRGBA over TextureFormatRGBA8.
	SRGB bool
	// Mipmaps reports that mipmaps will be generated for the texture.
	// Without FeatureNPOTMipmaps, images whose sides are not powers of
	// two are scaled up to the next power of two.
	Mipmaps bool
}

// ElementSource is a platform image, canvas or video element.
type ElementSource struct {
	Element gl.Element
	Format  TextureFormat
	// Width and Height are the dimensions of Element, recorded for
	// parameter checks.
	Width, Height int
}

func (PixelSource) textureSource()   {}
func (ImageSource) textureSource()   {}
func (ElementSource) textureSource() {}

func bytesPerPixel(f TextureFormat) int {
	switch f {
	case TextureFormatR8, TextureFormatLuminance, TextureFormatAlpha:
		return 1
	case TextureFormatRG8:
		return 2
	case TextureFormatRGB8:
		return 3
	case TextureFormatRGBA16F:
		return 8
	case TextureFormatRGBA32F:
		return 16
	default:
		return 4
	}
}

// rgbaPixels returns the pixels of img as tightly packed RGBA, scaled to
// size.
func rgbaPixels(img image.Image, size image.Point) []byte {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Size() == size && rgba.Stride == 4*size.X {
		start := rgba.PixOffset(b.Min.X, b.Min.Y)
		return rgba.Pix[start : start+4*size.X*size.Y]
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if b.Size() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return dst.Pix
}

func isPOT(v int) bool {
	return v > 0 && v&(v-1) == 0
}

func nextPOT(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// texImage is a resolved TextureSource.
type texImage struct {
	width, height int
	format        TextureFormat
	pixels        []byte
	el            gl.Element
}

func (r *Renderer) resolveSource(src TextureSource) (texImage, error) {
	switch src := src.(type) {
	case PixelSource:
		if src.Width < 0 || src.Height < 0 {
			return texImage{}, fmt.Errorf("glcache: texture size %dx%d", src.Width, src.Height)
		}
		if src.Pixels != nil {
			if n := src.Width * src.Height * bytesPerPixel(src.Format); len(src.Pixels) != n {
				return texImage{}, fmt.Errorf("glcache: %dx%d texture needs %d bytes, got %d", src.Width, src.Height, n, len(src.Pixels))
			}
		}
		return texImage{width: src.Width, height: src.Height, format: src.Format, pixels: src.Pixels}, nil
	case ImageSource:
		if src.Image == nil {
			return texImage{}, fmt.Errorf("glcache: nil image")
		}
		size := src.Image.Bounds().Size()
		if src.Mipmaps && !r.feats.Has(FeatureNPOTMipmaps) {
			size = image.Pt(nextPOT(size.X), nextPOT(size.Y))
		}
		format := TextureFormatRGBA8
		if src.SRGB {
			format = TextureFormatSRGBA
		}
		return texImage{width: size.X, height: size.Y, format: format, pixels: rgbaPixels(src.Image, size)}, nil
	case ElementSource:
		if !src.Element.Valid() {
			return texImage{}, fmt.Errorf("glcache: invalid texture element")
		}
		return texImage{width: src.Width, height: src.Height, format: src.Format, el: src.Element}, nil
	default:
		return texImage{}, fmt.Errorf("glcache: unknown texture source %T", src)
	}
}
