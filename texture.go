// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

type gpuTexture struct {
	obj gl.Texture
	// target is fixed by the first bind; zero before that.
	target        gl.Enum
	width, height int
	format        TextureFormat
	// pot reports that the parameters set on the texture need power of
	// two dimensions without FeatureNPOTMipmaps.
	pot bool
}

// CubeFace selects a face of a cube map texture.
type CubeFace uint8

const (
	CubeFacePositiveX CubeFace = iota
	CubeFaceNegativeX
	CubeFacePositiveY
	CubeFaceNegativeY
	CubeFacePositiveZ
	CubeFaceNegativeZ
)

// CreateTexture allocates a texture object without storage.
func (r *Renderer) CreateTexture() (Texture, error) {
	obj := r.funcs.CreateTexture()
	if !obj.Valid() {
		return Texture{}, fmt.Errorf("glcache: CreateTexture: %w", ErrCreateFailed)
	}
	return Texture{r.textures.Insert(&gpuTexture{obj: obj})}, nil
}

// DeleteTexture deletes t and drops it from every texture unit.
func (r *Renderer) DeleteTexture(t Texture) error {
	tex, ok := r.textures.Remove(t.h)
	if !ok {
		return missing("DeleteTexture", t)
	}
	r.funcs.DeleteTexture(tex.obj)
	r.state.forgetTexture(t)
	return nil
}

// bindForUpdate binds t to target on the active texture unit.
func (r *Renderer) bindForUpdate(op string, t Texture, target gl.Enum) (*gpuTexture, error) {
	tex, ok := r.textures.Get(t.h)
	if !ok {
		return nil, missing(op, t)
	}
	if target == 0 {
		target = tex.target
		if target == 0 {
			target = gl.TEXTURE_2D
		}
	}
	if tex.target != 0 && tex.target != target {
		return nil, fmt.Errorf("glcache: %s: %v is bound to target %#x, not %#x", op, t, tex.target, target)
	}
	unit := r.state.active
	if unit < 0 {
		unit = 0
	}
	if err := r.bindTexture(unit, target, t, tex.obj); err != nil {
		return nil, err
	}
	tex.target = target
	return tex, nil
}

// UploadTexture replaces the image of the 2D texture t.
func (r *Renderer) UploadTexture(t Texture, src TextureSource) error {
	return r.upload("UploadTexture", t, gl.TEXTURE_2D, gl.TEXTURE_2D, src)
}

// UploadCubeMapFace replaces the image of a face of the cube map t.
func (r *Renderer) UploadCubeMapFace(t Texture, face CubeFace, src TextureSource) error {
	if face > CubeFaceNegativeZ {
		return fmt.Errorf("glcache: UploadCubeMapFace: invalid face %d", face)
	}
	return r.upload("UploadCubeMapFace", t, gl.TEXTURE_CUBE_MAP, gl.TEXTURE_CUBE_MAP_POSITIVE_X+gl.Enum(face), src)
}

func (r *Renderer) upload(op string, t Texture, target, imageTarget gl.Enum, src TextureSource) error {
	img, err := r.resolveSource(src)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, op)
	}
	triple, err := r.backend.textureTriple(img.format)
	if err != nil {
		return err
	}
	tex, err := r.bindForUpdate(op, t, target)
	if err != nil {
		return err
	}
	if tex.pot && !r.feats.Has(FeatureNPOTMipmaps) && !(isPOT(img.width) && isPOT(img.height)) {
		return noCapability(fmt.Sprintf("%dx%d image for texture with mipmaps or repeat", img.width, img.height))
	}
	f := r.funcs
	// Errors left by earlier calls would be reported for this upload.
	glErr(f)
	if img.el.Valid() {
		f.TexImage2DElement(imageTarget, 0, triple.internalFormat, triple.format, triple.typ, img.el)
	} else {
		unaligned := img.width*bytesPerPixel(img.format)%4 != 0
		if unaligned {
			f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		}
		f.TexImage2D(imageTarget, 0, triple.internalFormat, img.width, img.height, triple.format, triple.typ, img.pixels)
		if unaligned {
			f.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
		}
	}
	if err := glErr(f); err != nil {
		return fmt.Errorf("glcache: %s %v: %v", op, t, err)
	}
	tex.width, tex.height, tex.format = img.width, img.height, img.format
	return nil
}

// SetTextureParameters sets the filters and wrap modes of t.
func (r *Renderer) SetTextureParameters(t Texture, p TextureParameters) error {
	tex, ok := r.textures.Get(t.h)
	if !ok {
		return missing("SetTextureParameters", t)
	}
	pot := p.MinFilter.mipmapped() || p.WrapS != WrapClampToEdge || p.WrapT != WrapClampToEdge
	// A texture without storage is checked when its image is uploaded.
	empty := tex.width == 0 && tex.height == 0
	if pot && !empty && !r.feats.Has(FeatureNPOTMipmaps) && !(isPOT(tex.width) && isPOT(tex.height)) {
		return noCapability(fmt.Sprintf("mipmaps or repeat for %dx%d texture", tex.width, tex.height))
	}
	if p.MagFilter.mipmapped() {
		return fmt.Errorf("glcache: SetTextureParameters: mipmap magnification filter")
	}
	if _, err := r.bindForUpdate("SetTextureParameters", t, 0); err != nil {
		return err
	}
	f := r.funcs
	f.TexParameteri(tex.target, gl.TEXTURE_MIN_FILTER, p.MinFilter.toGL())
	f.TexParameteri(tex.target, gl.TEXTURE_MAG_FILTER, p.MagFilter.toGL())
	f.TexParameteri(tex.target, gl.TEXTURE_WRAP_S, p.WrapS.toGL())
	f.TexParameteri(tex.target, gl.TEXTURE_WRAP_T, p.WrapT.toGL())
	tex.pot = pot
	return nil
}

// GenerateMipmap generates the mipmap chain of t from its image.
func (r *Renderer) GenerateMipmap(t Texture) error {
	tex, ok := r.textures.Get(t.h)
	if !ok {
		return missing("GenerateMipmap", t)
	}
	if !r.feats.Has(FeatureNPOTMipmaps) && !(isPOT(tex.width) && isPOT(tex.height)) {
		return noCapability(fmt.Sprintf("mipmaps for %dx%d texture", tex.width, tex.height))
	}
	if _, err := r.bindForUpdate("GenerateMipmap", t, 0); err != nil {
		return err
	}
	r.funcs.GenerateMipmap(tex.target)
	return nil
}

// TextureSize returns the dimensions of the last image uploaded to t.
func (r *Renderer) TextureSize(t Texture) (width, height int, err error) {
	tex, ok := r.textures.Get(t.h)
	if !ok {
		return 0, 0, missing("TextureSize", t)
	}
	return tex.width, tex.height, nil
}
