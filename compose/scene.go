// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"github.com/gogpu/platformview"
	"github.com/gogpu/platformview/record"
)

// Handle is the optional texture handle of an externally-rendered surface.
// The zero Handle is unset; it stays unset until the creation-call response
// arrives and is read-only afterwards.
type Handle struct {
	id  int64
	set bool
}

// HandleOf creates a set handle.
func HandleOf(id int64) Handle {
	return Handle{id: id, set: true}
}

// IsSet reports whether the handle has arrived.
func (h Handle) IsSet() bool { return h.set }

// ID returns the handle value. Only meaningful when IsSet is true.
func (h Handle) ID() int64 { return h.id }

// OpKind identifies one operation of a compiled scene.
type OpKind uint8

const (
	// OpPush opens a modifier scope.
	OpPush OpKind = iota

	// OpPop closes the innermost open modifier scope.
	OpPop

	// OpSurface inserts the externally-rendered surface.
	OpSurface

	// OpPicture inserts the locally-recorded picture.
	OpPicture
)

// opKindNames maps OpKind values to their string representation.
var opKindNames = [...]string{
	OpPush:    "Push",
	OpPop:     "Pop",
	OpSurface: "Surface",
	OpPicture: "Picture",
}

// String returns the string representation of an OpKind.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// SurfacePlacement describes where and how the external surface is embedded.
type SurfacePlacement struct {
	// ViewID is the stable identifier of the embedded view.
	ViewID int64

	// Rect is the placement rectangle in the current modifier space.
	Rect platformview.Rect

	// Strategy records how the surface is embedded.
	Strategy Strategy

	// Handle is the texture handle (ByTexture only).
	Handle int64

	// Texture is the resolved texture binding, when the registry has one.
	Texture BoundTexture

	// Bound reports whether Texture holds a live binding.
	Bound bool
}

// Op is one operation of a compiled scene's display list.
type Op struct {
	Kind OpKind

	// Modifier is the pushed modifier (OpPush).
	Modifier Modifier

	// Surface is the surface placement (OpSurface).
	Surface SurfacePlacement

	// Picture and Placement carry the picture insertion (OpPicture).
	Picture   *record.Picture
	Placement platformview.Point
}

// Scene is an immutable compiled display list for one frame.
//
// A scene is single-use: it is built by Composer.BuildFrame, handed to the
// render sink, and released. After Release the op log is gone and the scene
// reports ErrSceneReleased from Render.
type Scene struct {
	ops      []Op
	bounds   platformview.Rect
	released bool
}

// Ops returns the scene's operations in composition order.
// Returns nil once the scene has been released.
func (s *Scene) Ops() []Op {
	if s.released {
		return nil
	}
	return s.ops
}

// ContentBounds returns the root-space bounding box of the scene's visible
// content, after clipping.
func (s *Scene) ContentBounds() platformview.Rect {
	return s.bounds
}

// Released reports whether the scene has been released.
func (s *Scene) Released() bool {
	return s.released
}

// Release frees the scene. A second release returns ErrSceneReleased.
func (s *Scene) Release() error {
	if s.released {
		return ErrSceneReleased
	}
	s.released = true
	s.ops = nil
	return nil
}

// RenderSink consumes finished scenes, one per frame.
type RenderSink interface {
	RenderScene(*Scene) error
}

// Render hands the scene to the sink and releases it immediately after the
// handoff, enforcing the single-use contract. The sink's error is returned
// after the release.
func Render(sink RenderSink, s *Scene) error {
	if s.released {
		return ErrSceneReleased
	}
	err := sink.RenderScene(s)
	if relErr := s.Release(); err == nil {
		err = relErr
	}
	return err
}
