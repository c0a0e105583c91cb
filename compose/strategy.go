// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common errors returned by composition.
var (
	// ErrSurfaceNotReady is returned when a by-texture frame is composed
	// before the surface's texture handle has arrived. This is a caller
	// ordering bug, not a degraded frame: it is raised, never swallowed.
	ErrSurfaceNotReady = errors.New("compose: surface texture handle not ready")

	// ErrUnsupportedEnvironment is returned when the target environment
	// supports no embedding strategy.
	ErrUnsupportedEnvironment = errors.New("compose: no embedding strategy supported")

	// ErrSceneReleased is returned when a released scene is used.
	ErrSceneReleased = errors.New("compose: scene already released")
)

// Strategy selects how the external surface is embedded into the frame.
// It is resolved once at startup from environment capability, not branched
// on per call site.
type Strategy uint8

const (
	// StrategyNone is the zero value and is not a valid strategy.
	StrategyNone Strategy = iota

	// ByReference embeds the surface by its stable view identifier and
	// declared size. No texture handle is required; the platform
	// compositor places the surface itself.
	ByReference

	// ByTexture embeds the surface through a texture handle obtained
	// asynchronously from the platform side. The handle must be present
	// when the frame is composed.
	ByTexture
)

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case ByReference:
		return "ByReference"
	case ByTexture:
		return "ByTexture"
	default:
		return "None"
	}
}

// Capabilities describes what the target environment can composite.
type Capabilities struct {
	// ReferenceCompositing is true when the platform compositor can place
	// surfaces identified by reference.
	ReferenceCompositing bool

	// TextureCompositing is true when platform surfaces can be bound to
	// host-readable textures.
	TextureCompositing bool
}

// SelectStrategy resolves the embedding strategy from environment
// capability. Reference compositing is preferred when both are available
// because it avoids the texture copy. Returns ErrUnsupportedEnvironment
// when neither is available.
func SelectStrategy(c Capabilities) (Strategy, error) {
	switch {
	case c.ReferenceCompositing:
		return ByReference, nil
	case c.TextureCompositing:
		return ByTexture, nil
	default:
		return StrategyNone, ErrUnsupportedEnvironment
	}
}

// BoundTexture describes a platform surface texture bound for host
// compositing.
type BoundTexture struct {
	// Texture is the GPU texture shared by the platform side.
	Texture gpucontext.Texture

	// Format is the texture's pixel format.
	Format gputypes.TextureFormat

	// Width and Height are the texture dimensions in pixels.
	Width, Height int
}

// TextureRegistry maps surface texture handles to their bound textures.
//
// The platform side announces a handle through the creation-call response;
// the host's GPU integration binds the actual texture under that handle
// when it becomes available. Safe for concurrent use: the reply
// continuation and the frame loop may touch it from different goroutines.
type TextureRegistry struct {
	mu       sync.RWMutex
	textures map[int64]BoundTexture
}

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{textures: make(map[int64]BoundTexture)}
}

// Bind associates a texture with a handle, replacing any previous binding.
func (r *TextureRegistry) Bind(handle int64, t BoundTexture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures[handle] = t
}

// Resolve returns the texture bound under a handle.
func (r *TextureRegistry) Resolve(handle int64) (BoundTexture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.textures[handle]
	return t, ok
}

// Unbind removes the binding for a handle.
func (r *TextureRegistry) Unbind(handle int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.textures, handle)
}
