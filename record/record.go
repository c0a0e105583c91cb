// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package record captures locally-rendered picture content as typed draw
// commands.
//
// A Recorder accumulates commands into an isolated recording; Finish seals
// it into an immutable Picture that can be placed into a frame scene and
// replayed to any Backend. Typed command structs (rather than a binary
// stream) keep recordings inspectable, which the composition tests rely on.
package record

import (
	"image/color"

	"github.com/gogpu/platformview"
)

// CommandType identifies the type of a draw command.
type CommandType uint8

const (
	// CmdFillRect fills an axis-aligned rectangle.
	CmdFillRect CommandType = iota

	// CmdStrokeRect strokes the outline of an axis-aligned rectangle.
	CmdStrokeRect

	// CmdFillPath fills a closed polygon given by its vertices.
	CmdFillPath
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdFillRect:   "FillRect",
	CmdStrokeRect: "StrokeRect",
	CmdFillPath:   "FillPath",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all draw command types.
type Command interface {
	// Type returns the command's type identifier.
	Type() CommandType

	// Bounds returns the command's bounding rectangle.
	Bounds() platformview.Rect

	// Replay issues the command to a backend.
	Replay(b Backend)
}

// FillRectCmd fills a rectangle with a solid color.
type FillRectCmd struct {
	Rect  platformview.Rect
	Color color.RGBA
}

// Type returns CmdFillRect.
func (c FillRectCmd) Type() CommandType { return CmdFillRect }

// Bounds returns the filled rectangle.
func (c FillRectCmd) Bounds() platformview.Rect { return c.Rect }

// Replay issues the command to a backend.
func (c FillRectCmd) Replay(b Backend) { b.FillRect(c.Rect, c.Color) }

// StrokeRectCmd strokes a rectangle outline with a solid color.
type StrokeRectCmd struct {
	Rect      platformview.Rect
	Color     color.RGBA
	LineWidth float64
}

// Type returns CmdStrokeRect.
func (c StrokeRectCmd) Type() CommandType { return CmdStrokeRect }

// Bounds returns the stroked rectangle expanded by half the line width.
func (c StrokeRectCmd) Bounds() platformview.Rect {
	half := c.LineWidth / 2
	return platformview.Rect{
		MinX: c.Rect.MinX - half,
		MinY: c.Rect.MinY - half,
		MaxX: c.Rect.MaxX + half,
		MaxY: c.Rect.MaxY + half,
	}
}

// Replay issues the command to a backend.
func (c StrokeRectCmd) Replay(b Backend) { b.StrokeRect(c.Rect, c.Color, c.LineWidth) }

// FillPathCmd fills a closed polygon with a solid color.
type FillPathCmd struct {
	Points []platformview.Point
	Color  color.RGBA
}

// Type returns CmdFillPath.
func (c FillPathCmd) Type() CommandType { return CmdFillPath }

// Bounds returns the bounding box of the polygon vertices.
func (c FillPathCmd) Bounds() platformview.Rect {
	if len(c.Points) == 0 {
		return platformview.Rect{}
	}
	bounds := platformview.EmptyRect()
	for _, p := range c.Points {
		bounds = bounds.UnionPoint(p.X, p.Y)
	}
	return bounds
}

// Replay issues the command to a backend.
func (c FillPathCmd) Replay(b Backend) { b.FillPath(c.Points, c.Color) }

// Backend receives replayed draw commands and translates them to an output
// format. Tests use a logging backend; renderers rasterize.
type Backend interface {
	// FillRect fills an axis-aligned rectangle.
	FillRect(rect platformview.Rect, c color.RGBA)

	// StrokeRect strokes a rectangle outline.
	StrokeRect(rect platformview.Rect, c color.RGBA, lineWidth float64)

	// FillPath fills a closed polygon.
	FillPath(points []platformview.Point, c color.RGBA)
}
