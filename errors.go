// SPDX-License-Identifier: Unlicense OR MIT

package glcache

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a Renderer wraps exactly one of
// them; use errors.Is to tell them apart.
var (
	// ErrResourceMissing is returned for a stale or unknown buffer,
	// texture, program or vertex array handle.
	ErrResourceMissing = errors.New("resource missing")
	// ErrLocationMissing is returned when an attribute, uniform or
	// sampler name is not found on the active program.
	ErrLocationMissing = errors.New("location missing")
	// ErrUniformBufferMissing is returned for a uniform block name that
	// is neither registered nor declared by any compiled program.
	ErrUniformBufferMissing = errors.New("uniform buffer missing")
	// ErrUniformBufferOffsetMissing is returned for an unknown member of
	// a known uniform block.
	ErrUniformBufferOffsetMissing = errors.New("uniform buffer offset missing")
	// ErrCompileFailed is returned when a shader does not compile. The
	// info log is in the accompanying *ShaderError.
	ErrCompileFailed = errors.New("shader compilation failed")
	// ErrLinkFailed is returned when a program does not link. The info
	// log is in the accompanying *ShaderError.
	ErrLinkFailed = errors.New("program link failed")
	// ErrCreateFailed is returned when the context refuses to allocate an
	// object, typically because the context is lost.
	ErrCreateFailed = errors.New("object creation failed")
	// ErrCapabilityMissing is returned when an operation needs a feature
	// the context does not provide.
	ErrCapabilityMissing = errors.New("capability missing")
)

// ShaderError carries the compiler or linker log of a failed program
// build.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "link".
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("glcache: program link failed: %s", strings.TrimSpace(e.Log))
	}
	return fmt.Sprintf("glcache: %s shader compilation failed: %s", e.Stage, strings.TrimSpace(e.Log))
}

func (e *ShaderError) Unwrap() error {
	if e.Stage == "link" {
		return ErrLinkFailed
	}
	return ErrCompileFailed
}

func missing(kind string, h fmt.Stringer) error {
	return fmt.Errorf("glcache: %s %v: %w", kind, h, ErrResourceMissing)
}

func noLocation(kind, name string) error {
	return fmt.Errorf("glcache: %s %q: %w", kind, name, ErrLocationMissing)
}

func noCapability(what string) error {
	return fmt.Errorf("glcache: %s: %w", what, ErrCapabilityMissing)
}
