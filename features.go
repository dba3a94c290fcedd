// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import "strings"

// Features is the set of optional capabilities of a context.
type Features uint

const (
	// FeatureVertexArrays is set for WebGL 2, or WebGL 1 with
	// OES_vertex_array_object.
	FeatureVertexArrays Features = 1 << iota
	// FeatureInstancing is set for WebGL 2, or WebGL 1 with
	// ANGLE_instanced_arrays.
	FeatureInstancing
	FeatureUniformBuffers
	FeatureBufferReadback
	FeatureIntegerAttributes
	// FeatureTexture3D covers 3D and 2D array textures.
	FeatureTexture3D
	// FeatureNPOTMipmaps is set when mipmaps may be generated for
	// non-power-of-two textures.
	FeatureNPOTMipmaps
)

var featureNames = []string{
	"VertexArrays",
	"Instancing",
	"UniformBuffers",
	"BufferReadback",
	"IntegerAttributes",
	"Texture3D",
	"NPOTMipmaps",
}

func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

func (f Features) String() string {
	var names []string
	for i, n := range featureNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
