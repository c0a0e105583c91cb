// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/platformview"
	"github.com/gogpu/platformview/record"
)

// PictureContent records a frame's locally-rendered picture content.
// The composer runs it against an isolated recorder and inserts the
// finished picture into the scene.
type PictureContent func(*record.Recorder)

// Frame describes one frame's composition inputs.
type Frame struct {
	// Modifiers are applied in list order before the surface and picture
	// are inserted. Each entry composes inside the previous one's
	// coordinate space and clip region.
	Modifiers []Modifier

	// ViewID is the stable identifier of the embedded view.
	ViewID int64

	// Handle is the surface texture handle. Required under ByTexture;
	// ignored under ByReference.
	Handle Handle

	// SurfaceRect places the external surface, in modifier space.
	SurfaceRect platformview.Rect

	// Content records the picture inserted after the surface. A nil
	// content yields an empty picture; the insertion still happens.
	Content PictureContent

	// PicturePlacement positions the picture, in modifier space.
	PicturePlacement platformview.Point
}

// Composer builds one immutable Scene per frame.
//
// The embedding strategy is fixed at construction, resolved once from
// environment capability. A Composer must not compose two frames
// concurrently; the host frame scheduler serializes frame ticks.
type Composer struct {
	strategy Strategy
	registry *TextureRegistry
}

// ComposerOption configures a Composer during creation.
type ComposerOption func(*Composer)

// WithTextureRegistry attaches a registry used to resolve texture handles
// into bound textures under the ByTexture strategy.
func WithTextureRegistry(r *TextureRegistry) ComposerOption {
	return func(c *Composer) {
		c.registry = r
	}
}

// NewComposer creates a composer for the given strategy.
// Returns ErrUnsupportedEnvironment for StrategyNone or unknown values.
func NewComposer(strategy Strategy, opts ...ComposerOption) (*Composer, error) {
	if strategy != ByReference && strategy != ByTexture {
		return nil, fmt.Errorf("%w: strategy %s", ErrUnsupportedEnvironment, strategy)
	}
	c := &Composer{strategy: strategy}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Strategy returns the composer's embedding strategy.
func (c *Composer) Strategy() Strategy {
	return c.strategy
}

// BuildFrame composes one frame:
//
//  1. Open a composition context.
//  2. Push each modifier in list order.
//  3. Insert the external surface at its placement.
//  4. Record the picture content and insert the finished picture.
//  5. Unwind every push and seal the immutable scene.
//
// Under ByTexture an unset handle fails with ErrSurfaceNotReady; the
// missing surface is a caller ordering bug, not a skippable frame.
func (c *Composer) BuildFrame(f Frame) (*Scene, error) {
	placement, err := c.placeSurface(f)
	if err != nil {
		return nil, err
	}

	b := newFrameBuilder()
	for _, m := range f.Modifiers {
		b.push(m)
	}

	b.addSurface(placement)

	rec := record.NewRecorder()
	if f.Content != nil {
		f.Content(rec)
	}
	b.addPicture(rec.Finish(), f.PicturePlacement)

	scene := b.finish()
	platformview.Logger().Debug("frame composed",
		slog.Int64("viewID", f.ViewID),
		slog.Int("ops", len(scene.ops)),
		slog.String("strategy", c.strategy.String()))
	return scene, nil
}

// placeSurface resolves the frame's surface placement under the composer's
// strategy.
func (c *Composer) placeSurface(f Frame) (SurfacePlacement, error) {
	p := SurfacePlacement{
		ViewID:   f.ViewID,
		Rect:     f.SurfaceRect,
		Strategy: c.strategy,
	}
	if c.strategy == ByReference {
		return p, nil
	}

	if !f.Handle.IsSet() {
		return SurfacePlacement{}, fmt.Errorf("%w: view %d", ErrSurfaceNotReady, f.ViewID)
	}
	p.Handle = f.Handle.ID()
	if c.registry != nil {
		p.Texture, p.Bound = c.registry.Resolve(p.Handle)
	}
	return p, nil
}

// frameBuilder accumulates one frame's op log and tracks the coordinate
// space and clip region across modifier scopes.
type frameBuilder struct {
	ops []Op

	transform      f64.Mat4
	transformStack []f64.Mat4

	clip      platformview.Rect
	clipStack []platformview.Rect

	bounds platformview.Rect
	pushes int
}

func newFrameBuilder() *frameBuilder {
	return &frameBuilder{
		transform: Identity(),
		clip:      infiniteRect(),
		bounds:    platformview.EmptyRect(),
	}
}

// push opens a modifier scope. All six variants go through this single
// dispatch: the saved transform/clip pair is what the matching pop restores.
func (b *frameBuilder) push(m Modifier) {
	b.transformStack = append(b.transformStack, b.transform)
	b.clipStack = append(b.clipStack, b.clip)

	switch m.Kind {
	case ModOffset:
		b.transform = matMul(b.transform, Translation(m.Dx, m.Dy))
	case ModTransform:
		b.transform = matMul(b.transform, m.Matrix)
	case ModOpacity:
		m.Alpha = clampAlpha(m.Alpha)
	case ModClipRect, ModClipRRect, ModClipPath:
		if local, ok := m.clipBounds(); ok {
			b.clip = b.clip.Intersect(transformRect(b.transform, local))
		}
	}

	b.ops = append(b.ops, Op{Kind: OpPush, Modifier: m})
	b.pushes++
}

// addSurface inserts the surface op and grows the visible content bounds.
func (b *frameBuilder) addSurface(p SurfacePlacement) {
	b.ops = append(b.ops, Op{Kind: OpSurface, Surface: p})
	b.grow(p.Rect)
}

// addPicture inserts the picture op and grows the visible content bounds.
func (b *frameBuilder) addPicture(pic *record.Picture, at platformview.Point) {
	b.ops = append(b.ops, Op{Kind: OpPicture, Picture: pic, Placement: at})
	if !pic.IsEmpty() {
		b.grow(pic.Bounds().Translate(at.X, at.Y))
	}
}

// grow maps a modifier-space rectangle to root space, clips it, and unions
// it into the content bounds.
func (b *frameBuilder) grow(r platformview.Rect) {
	visible := transformRect(b.transform, r).Intersect(b.clip)
	if !visible.IsEmpty() {
		b.bounds = b.bounds.Union(visible)
	}
}

// finish unwinds every open scope in reverse order and seals the scene.
func (b *frameBuilder) finish() *Scene {
	for b.pushes > 0 {
		n := len(b.transformStack)
		b.transform = b.transformStack[n-1]
		b.transformStack = b.transformStack[:n-1]
		b.clip = b.clipStack[len(b.clipStack)-1]
		b.clipStack = b.clipStack[:len(b.clipStack)-1]

		b.ops = append(b.ops, Op{Kind: OpPop})
		b.pushes--
	}

	bounds := b.bounds
	if bounds.IsEmpty() {
		bounds = platformview.Rect{}
	}
	return &Scene{ops: b.ops, bounds: bounds}
}

// infiniteRect returns the clip region before any clip modifier applies.
func infiniteRect() platformview.Rect {
	return platformview.Rect{
		MinX: math.Inf(-1),
		MinY: math.Inf(-1),
		MaxX: math.Inf(1),
		MaxY: math.Inf(1),
	}
}

// clampAlpha constrains an opacity level to [0, 1].
func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
