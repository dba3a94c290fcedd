// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gioui.org/glcache/gl"
)

// Config holds the construction options of a Renderer.
type Config struct {
	// Context is passed to getContext by NewFromCanvas and not otherwise
	// interpreted.
	Context gl.ContextAttributes `toml:"context" yaml:"context"`
	// AlwaysRebind issues every bind call even when the binding is
	// already in place. It exists for tracking down driver problems.
	AlwaysRebind bool `toml:"always_rebind" yaml:"always_rebind"`
	// UniformBlocks are registered, in order, as global uniform blocks.
	// The n'th block is bound to point n.
	UniformBlocks []string `toml:"uniform_blocks" yaml:"uniform_blocks"`
}

// ConfigFormat is the encoding of a configuration file.
type ConfigFormat uint8

const (
	FormatTOML ConfigFormat = iota
	FormatYAML
)

// DefaultConfig returns the configuration used for missing fields.
func DefaultConfig() Config {
	return Config{Context: gl.DefaultContextAttributes()}
}

// LoadConfig reads a configuration file. The format is chosen by the
// file extension: .toml, .yaml or .yml.
func LoadConfig(path string) (Config, error) {
	var format ConfigFormat
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return Config{}, fmt.Errorf("glcache: config %s: unknown format %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("glcache: config: %w", err)
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

// ParseConfig decodes data on top of DefaultConfig.
func ParseConfig(data []byte, format ConfigFormat) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("glcache: unknown config format %d", format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("glcache: config: %w", err)
	}
	for i, name := range cfg.UniformBlocks {
		if name == "" {
			return Config{}, fmt.Errorf("glcache: config: uniform_blocks[%d] is empty", i)
		}
	}
	return cfg, nil
}
