// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES                    = 0x8b89
	ACTIVE_TEXTURE                       = 0x84e0
	ACTIVE_UNIFORM_BLOCKS                = 0x8a36
	ACTIVE_UNIFORMS                      = 0x8b86
	ALPHA                                = 0x1906
	ARRAY_BUFFER                         = 0x8892
	ATTACHED_SHADERS                     = 0x8b85
	BOOL                                 = 0x8b56
	BOOL_VEC2                            = 0x8b57
	BOOL_VEC3                            = 0x8b58
	BOOL_VEC4                            = 0x8b59
	BYTE                                 = 0x1400
	CLAMP_TO_EDGE                        = 0x812f
	COMPILE_STATUS                       = 0x8b81
	CONTEXT_LOST_WEBGL                   = 0x9242
	COPY_READ_BUFFER                     = 0x8f36
	COPY_WRITE_BUFFER                    = 0x8f37
	DYNAMIC_DRAW                         = 0x88e8
	ELEMENT_ARRAY_BUFFER                 = 0x8893
	EXTENSIONS                           = 0x1f03
	FALSE                                = 0
	FLOAT                                = 0x1406
	FLOAT_MAT2                           = 0x8b5a
	FLOAT_MAT3                           = 0x8b5b
	FLOAT_MAT4                           = 0x8b5c
	FLOAT_VEC2                           = 0x8b50
	FLOAT_VEC3                           = 0x8b51
	FLOAT_VEC4                           = 0x8b52
	FRAGMENT_SHADER                      = 0x8b30
	HALF_FLOAT                           = 0x140b
	HALF_FLOAT_OES                       = 0x8d61
	INFO_LOG_LENGTH                      = 0x8b84
	INT                                  = 0x1404
	INT_SAMPLER_2D                       = 0x8dca
	INT_SAMPLER_2D_ARRAY                 = 0x8dcf
	INT_SAMPLER_3D                       = 0x8dcb
	INT_SAMPLER_CUBE                     = 0x8dcc
	INT_VEC2                             = 0x8b53
	INT_VEC3                             = 0x8b54
	INT_VEC4                             = 0x8b55
	INVALID_ENUM                         = 0x500
	INVALID_INDEX                        = ^uint(0)
	INVALID_OPERATION                    = 0x502
	INVALID_VALUE                        = 0x501
	LINEAR                               = 0x2601
	LINEAR_MIPMAP_LINEAR                 = 0x2703
	LINEAR_MIPMAP_NEAREST                = 0x2701
	LINE_LOOP                            = 0x2
	LINE_STRIP                           = 0x3
	LINES                                = 0x1
	LINK_STATUS                          = 0x8b82
	LUMINANCE                            = 0x1909
	LUMINANCE_ALPHA                      = 0x190a
	MAX_COMBINED_TEXTURE_IMAGE_UNITS     = 0x8b4d
	MAX_TEXTURE_SIZE                     = 0xd33
	MAX_UNIFORM_BUFFER_BINDINGS          = 0x8a2f
	MAX_VERTEX_ATTRIBS                   = 0x8869
	MIRRORED_REPEAT                      = 0x8370
	NEAREST                              = 0x2600
	NEAREST_MIPMAP_LINEAR                = 0x2702
	NEAREST_MIPMAP_NEAREST               = 0x2700
	NO_ERROR                             = 0x0
	POINTS                               = 0x0
	R8                                   = 0x8229
	RED                                  = 0x1903
	RENDERER                             = 0x1f01
	REPEAT                               = 0x2901
	RG                                   = 0x8227
	RG8                                  = 0x822b
	RGB                                  = 0x1907
	RGB8                                 = 0x8051
	RGBA                                 = 0x1908
	RGBA16F                              = 0x881a
	RGBA32F                              = 0x8814
	RGBA8                                = 0x8058
	SAMPLER_2D                           = 0x8b5e
	SAMPLER_2D_ARRAY                     = 0x8dc1
	SAMPLER_2D_ARRAY_SHADOW              = 0x8dc4
	SAMPLER_2D_SHADOW                    = 0x8b62
	SAMPLER_3D                           = 0x8b5f
	SAMPLER_CUBE                         = 0x8b60
	SAMPLER_CUBE_SHADOW                  = 0x8dc5
	SHADING_LANGUAGE_VERSION             = 0x8b8c
	SHORT                                = 0x1402
	SRGB8_ALPHA8                         = 0x8c43
	SRGB_ALPHA_EXT                       = 0x8c42
	STATIC_DRAW                          = 0x88e4
	STREAM_DRAW                          = 0x88e0
	TEXTURE0                             = 0x84c0
	TEXTURE_2D                           = 0xde1
	TEXTURE_2D_ARRAY                     = 0x8c1a
	TEXTURE_3D                           = 0x806f
	TEXTURE_CUBE_MAP                     = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X          = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X          = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y          = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y          = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z          = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z          = 0x851a
	TEXTURE_MAG_FILTER                   = 0x2800
	TEXTURE_MIN_FILTER                   = 0x2801
	TEXTURE_WRAP_R                       = 0x8072
	TEXTURE_WRAP_S                       = 0x2802
	TEXTURE_WRAP_T                       = 0x2803
	TRIANGLE_FAN                         = 0x6
	TRIANGLE_STRIP                       = 0x5
	TRIANGLES                            = 0x4
	TRUE                                 = 1
	UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES = 0x8a43
	UNIFORM_BLOCK_ACTIVE_UNIFORMS        = 0x8a42
	UNIFORM_BLOCK_DATA_SIZE              = 0x8a40
	UNIFORM_BUFFER                       = 0x8a11
	UNIFORM_OFFSET                       = 0x8a3b
	UNPACK_ALIGNMENT                     = 0xcf5
	UNPACK_FLIP_Y_WEBGL                  = 0x9240
	UNPACK_PREMULTIPLY_ALPHA_WEBGL       = 0x9241
	UNSIGNED_BYTE                        = 0x1401
	UNSIGNED_INT                         = 0x1405
	UNSIGNED_INT_SAMPLER_2D              = 0x8dd2
	UNSIGNED_INT_SAMPLER_2D_ARRAY        = 0x8dd7
	UNSIGNED_INT_SAMPLER_3D              = 0x8dd3
	UNSIGNED_INT_SAMPLER_CUBE            = 0x8dd4
	UNSIGNED_INT_VEC2                    = 0x8dc6
	UNSIGNED_INT_VEC3                    = 0x8dc7
	UNSIGNED_INT_VEC4                    = 0x8dc8
	UNSIGNED_SHORT                       = 0x1403
	VENDOR                               = 0x1f00
	VERSION                              = 0x1f02
	VERTEX_SHADER                        = 0x8b31
	ZERO                                 = 0x0
)

// IsSampler reports whether typ is one of the sampler uniform types.
func IsSampler(typ Enum) bool {
	switch typ {
	case SAMPLER_2D, SAMPLER_3D, SAMPLER_CUBE,
		SAMPLER_2D_SHADOW, SAMPLER_2D_ARRAY, SAMPLER_2D_ARRAY_SHADOW, SAMPLER_CUBE_SHADOW,
		INT_SAMPLER_2D, INT_SAMPLER_3D, INT_SAMPLER_CUBE, INT_SAMPLER_2D_ARRAY,
		UNSIGNED_INT_SAMPLER_2D, UNSIGNED_INT_SAMPLER_3D, UNSIGNED_INT_SAMPLER_CUBE, UNSIGNED_INT_SAMPLER_2D_ARRAY:
		return true
	default:
		return false
	}
}

// SamplerTarget returns the texture target a sampler of type typ samples
// from, or 0 if typ is not a sampler type.
func SamplerTarget(typ Enum) Enum {
	switch typ {
	case SAMPLER_2D, SAMPLER_2D_SHADOW, INT_SAMPLER_2D, UNSIGNED_INT_SAMPLER_2D:
		return TEXTURE_2D
	case SAMPLER_CUBE, SAMPLER_CUBE_SHADOW, INT_SAMPLER_CUBE, UNSIGNED_INT_SAMPLER_CUBE:
		return TEXTURE_CUBE_MAP
	case SAMPLER_3D, INT_SAMPLER_3D, UNSIGNED_INT_SAMPLER_3D:
		return TEXTURE_3D
	case SAMPLER_2D_ARRAY, SAMPLER_2D_ARRAY_SHADOW, INT_SAMPLER_2D_ARRAY, UNSIGNED_INT_SAMPLER_2D_ARRAY:
		return TEXTURE_2D_ARRAY
	default:
		return 0
	}
}
