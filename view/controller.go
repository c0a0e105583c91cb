// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view manages the lifecycle of one embedded platform view: the
// creation call over the message channel, the asynchronous texture-handle
// continuation, and per-frame scene composition.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/platformview"
	"github.com/gogpu/platformview/channel"
	"github.com/gogpu/platformview/codec"
	"github.com/gogpu/platformview/compose"
)

// Channel is the message channel the platform side listens on for view
// creation calls.
const Channel = "platform_views"

// createMethod is the method name of the creation call.
const createMethod = "create"

// TextDirection is the layout direction passed to the platform side.
type TextDirection int32

const (
	// DirectionLTR lays the view out leading-to-trailing.
	DirectionLTR TextDirection = 0

	// DirectionRTL lays the view out trailing-to-leading.
	DirectionRTL TextDirection = 1
)

// Common errors returned by the controller.
var (
	// ErrNotCreated is returned when composing a frame for a view whose
	// creation call was never sent.
	ErrNotCreated = errors.New("view: create has not been called")

	// ErrAlreadyCreated is returned when Create is called twice.
	ErrAlreadyCreated = errors.New("view: already created")
)

// Config describes one embedded platform view.
type Config struct {
	// ViewID is the stable identifier of this view instance.
	ViewID int32

	// ViewType names the platform-side provider of the view's content.
	ViewType string

	// Params is an opaque payload forwarded to the provider.
	Params []byte

	// Size is the declared view size, sent with by-texture creation calls.
	Size platformview.Size

	// Direction is the layout direction, sent with by-texture creation
	// calls.
	Direction TextDirection

	// Strategy selects the embedding strategy. Resolve it once at startup
	// with compose.SelectStrategy.
	Strategy compose.Strategy
}

// Controller owns one platform view for its lifetime.
//
// Create sends the creation call and installs a continuation that stores
// the decoded texture handle in an atomic cell; Frame reads the cell when
// composing. The store-then-load pair gives the required happens-before
// between handle arrival and the next frame that uses it, without a lock.
type Controller struct {
	cfg       Config
	messenger channel.Messenger
	composer  *compose.Composer

	created atomic.Bool

	// handle holds the texture handle once the creation reply arrives.
	// nil until then; written only by the reply continuation.
	handle atomic.Pointer[int64]
}

// NewController creates a controller for one view.
// Returns compose.ErrUnsupportedEnvironment for an invalid strategy.
func NewController(m channel.Messenger, cfg Config, opts ...compose.ComposerOption) (*Controller, error) {
	composer, err := compose.NewComposer(cfg.Strategy, opts...)
	if err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, messenger: m, composer: composer}, nil
}

// Create encodes and sends the view creation call.
//
// The call carries the view id, the view type, and the opaque params; under
// ByTexture it additionally declares the size and layout direction, and the
// reply's texture handle is stored for later frames. Create does not wait
// for the reply.
func (c *Controller) Create(ctx context.Context) error {
	if !c.created.CompareAndSwap(false, true) {
		return ErrAlreadyCreated
	}

	payload, err := codec.EncodeMethodCall(createMethod, c.createArgs())
	if err != nil {
		return fmt.Errorf("view: encoding creation call: %w", err)
	}

	reply, err := c.messenger.Send(ctx, Channel, payload)
	if err != nil {
		c.created.Store(false)
		return fmt.Errorf("view: sending creation call: %w", err)
	}

	platformview.Logger().Info("creation call sent",
		slog.Int("viewID", int(c.cfg.ViewID)),
		slog.String("viewType", c.cfg.ViewType),
		slog.String("strategy", c.cfg.Strategy.String()))

	if c.cfg.Strategy == compose.ByTexture {
		reply.Then(c.onCreateReply)
	}
	return nil
}

// createArgs builds the ordered argument map of the creation call.
// Entry order is part of the wire contract.
func (c *Controller) createArgs() []codec.Entry {
	args := []codec.Entry{
		{Key: "id", Value: codec.Int32Of(c.cfg.ViewID)},
		{Key: "viewType", Value: codec.StringOf(c.cfg.ViewType)},
	}
	if c.cfg.Strategy == compose.ByTexture {
		args = append(args,
			codec.Entry{Key: "width", Value: codec.Float64Of(c.cfg.Size.Width)},
			codec.Entry{Key: "height", Value: codec.Float64Of(c.cfg.Size.Height)},
			codec.Entry{Key: "direction", Value: codec.Int32Of(int32(c.cfg.Direction))},
		)
	}
	return append(args, codec.Entry{Key: "params", Value: codec.BytesOf(c.cfg.Params)})
}

// onCreateReply decodes the texture handle from the creation reply and
// publishes it for subsequent frames.
func (c *Controller) onCreateReply(data []byte, err error) {
	if err != nil {
		platformview.Logger().Warn("creation call failed",
			slog.Int("viewID", int(c.cfg.ViewID)),
			slog.Any("error", err))
		return
	}
	handle, err := codec.DecodeTextureHandle(data)
	if err != nil {
		platformview.Logger().Warn("creation reply malformed",
			slog.Int("viewID", int(c.cfg.ViewID)),
			slog.Any("error", err))
		return
	}
	c.handle.Store(&handle)
	platformview.Logger().Info("texture handle bound",
		slog.Int("viewID", int(c.cfg.ViewID)),
		slog.Int64("handle", handle))
}

// Handle returns the view's texture handle. It is unset until the creation
// reply has arrived.
func (c *Controller) Handle() compose.Handle {
	if p := c.handle.Load(); p != nil {
		return compose.HandleOf(*p)
	}
	return compose.Handle{}
}

// FrameSpec describes one frame of this view: the modifier stack, the
// surface placement, and the picture content.
type FrameSpec struct {
	Modifiers        []compose.Modifier
	SurfaceRect      platformview.Rect
	Content          compose.PictureContent
	PicturePlacement platformview.Point
}

// Frame composes one scene for this view. Under ByTexture, a frame
// composed before the creation reply arrives fails with
// compose.ErrSurfaceNotReady.
func (c *Controller) Frame(spec FrameSpec) (*compose.Scene, error) {
	if !c.created.Load() {
		return nil, ErrNotCreated
	}
	return c.composer.BuildFrame(compose.Frame{
		Modifiers:        spec.Modifiers,
		ViewID:           int64(c.cfg.ViewID),
		Handle:           c.Handle(),
		SurfaceRect:      spec.SurfaceRect,
		Content:          spec.Content,
		PicturePlacement: spec.PicturePlacement,
	})
}

// RenderFrame composes one scene, hands it to the sink, and releases it.
// One scene is produced and disposed per call, matching the host frame
// scheduler's one-scene-per-tick contract.
func (c *Controller) RenderFrame(sink compose.RenderSink, spec FrameSpec) error {
	scene, err := c.Frame(spec)
	if err != nil {
		return err
	}
	return compose.Render(sink, scene)
}
