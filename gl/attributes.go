// SPDX-License-Identifier: Unlicense OR MIT

package gl

// ContextAttributes are passed unmodified to getContext when a WebGL
// context is created. See the WebGLContextAttributes dictionary.
type ContextAttributes struct {
	Alpha                        bool   `toml:"alpha" yaml:"alpha"`
	Depth                        bool   `toml:"depth" yaml:"depth"`
	Stencil                      bool   `toml:"stencil" yaml:"stencil"`
	Antialias                    bool   `toml:"antialias" yaml:"antialias"`
	PremultipliedAlpha           bool   `toml:"premultiplied_alpha" yaml:"premultiplied_alpha"`
	PreserveDrawingBuffer        bool   `toml:"preserve_drawing_buffer" yaml:"preserve_drawing_buffer"`
	FailIfMajorPerformanceCaveat bool   `toml:"fail_if_major_performance_caveat" yaml:"fail_if_major_performance_caveat"`
	// PowerPreference is one of "default", "low-power" or
	// "high-performance". Empty means "default".
	PowerPreference string `toml:"power_preference" yaml:"power_preference"`
}

// DefaultContextAttributes returns the WebGL defaults.
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Alpha:              true,
		Depth:              true,
		Antialias:          true,
		PremultipliedAlpha: true,
		PowerPreference:    "default",
	}
}

// Map returns the attributes in the form expected by getContext.
func (a ContextAttributes) Map() map[string]interface{} {
	pref := a.PowerPreference
	if pref == "" {
		pref = "default"
	}
	return map[string]interface{}{
		"alpha":                        a.Alpha,
		"depth":                        a.Depth,
		"stencil":                      a.Stencil,
		"antialias":                    a.Antialias,
		"premultipliedAlpha":           a.PremultipliedAlpha,
		"preserveDrawingBuffer":        a.PreserveDrawingBuffer,
		"failIfMajorPerformanceCaveat": a.FailIfMajorPerformanceCaveat,
		"powerPreference":              pref,
	}
}
