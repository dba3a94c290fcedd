// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"

	"gioui.org/glcache/gl"
)

// ActivateTexture binds t to target on texture unit unit. Nothing is
// done if t is already bound there. The zero Texture releases the unit.
func (r *Renderer) ActivateTexture(unit int, t Texture, target TextureTarget) error {
	tgt, err := r.backend.textureTarget(target)
	if err != nil {
		return err
	}
	if t.IsZero() {
		return r.bindTexture(unit, tgt, t, gl.Texture{})
	}
	tex, ok := r.textures.Get(t.h)
	if !ok {
		return missing("ActivateTexture", t)
	}
	if tex.target != 0 && tex.target != tgt {
		return fmt.Errorf("glcache: ActivateTexture: %v is bound to target %#x, not %#x", t, tex.target, tgt)
	}
	if err := r.bindTexture(unit, tgt, t, tex.obj); err != nil {
		return err
	}
	tex.target = tgt
	return nil
}

// ActivateTextureForSampler binds t to the texture unit of the sampler
// uniform name of the active program. The target must match the type of
// the sampler.
func (r *Renderer) ActivateTextureForSampler(name string, t Texture, target TextureTarget) error {
	p, err := r.currentProgram("ActivateTextureForSampler")
	if err != nil {
		return err
	}
	unit, want, err := samplerUnit(p.info, name)
	if err != nil {
		return err
	}
	tgt, err := r.backend.textureTarget(target)
	if err != nil {
		return err
	}
	if want != 0 && tgt != want {
		return fmt.Errorf("glcache: ActivateTextureForSampler: sampler %q samples target %#x, not %#x", name, want, tgt)
	}
	return r.ActivateTexture(unit, t, target)
}
