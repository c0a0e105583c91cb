// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compose builds per-frame display-list scenes that layer an
// externally-rendered surface and a locally-recorded picture under a stack
// of visual modifiers.
//
// A frame is composed in strict push/pop discipline: each modifier in the
// stack opens a scope that every later operation composes inside, the
// surface and picture are inserted exactly once, and every push is unwound
// by exactly one implicit pop before the scene is sealed. The resulting
// Scene is immutable, single-use, and must be released after it has been
// handed to the render sink.
//
// Two embedding strategies are supported. ByReference names the surface by
// its stable view identifier and declared size; ByTexture requires the
// asynchronously-obtained texture handle and fails with ErrSurfaceNotReady
// when composition runs before the handle has arrived.
package compose
