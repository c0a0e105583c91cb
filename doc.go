// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platformview embeds externally-rendered native surfaces into a
// host-composited frame graph.
//
// # Overview
//
// A platform view is a rendering surface produced outside the host's own
// rasterizer (a native text field, a video layer, a map widget). The host
// asks the platform side to create the surface over an asynchronous message
// channel, then composites it into each frame alongside locally-recorded
// vector content.
//
// The library is organized into:
//   - codec: the typed, length-prefixed binary envelope for method calls
//   - channel: the asynchronous request/reply messenger abstraction
//   - record: draw-command recording for locally-rendered picture content
//   - compose: modifier stacks, embedding strategies, and frame scenes
//   - view: the per-view controller tying creation and composition together
//
// # Quick Start
//
//	ctrl, err := view.NewController(messenger, view.Config{
//	    ViewID:   0,
//	    ViewType: "scenarios/textPlatformView",
//	    Params:   []byte("hello"),
//	    Size:     platformview.Sz(500, 500),
//	    Strategy: compose.ByReference,
//	})
//	if err != nil { ... }
//	if err := ctrl.Create(ctx); err != nil { ... }
//
//	// Per frame:
//	scene, err := ctrl.Frame(frame)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates: origin (0,0) at top-left,
// X increases right, Y increases down. All geometry is float64.
//
// # Concurrency
//
// Composition is single-threaded per frame; the channel reply continuation
// publishes the surface handle through an atomic cell so the next frame's
// read observes it without locking.
package platformview
