// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import (
	"image/color"

	"github.com/gogpu/platformview"
)

// Recorder accumulates draw commands into an isolated recording.
//
// A Recorder is single-use: Finish seals the recording into a Picture and
// leaves the recorder empty, ready for the next frame's content. Recorders
// are not safe for concurrent use.
type Recorder struct {
	cmds   []Command
	bounds platformview.Rect
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{bounds: platformview.EmptyRect()}
}

// FillRect records a solid rectangle fill.
func (r *Recorder) FillRect(rect platformview.Rect, c color.RGBA) *Recorder {
	return r.push(FillRectCmd{Rect: rect, Color: c})
}

// StrokeRect records a rectangle outline stroke.
func (r *Recorder) StrokeRect(rect platformview.Rect, c color.RGBA, lineWidth float64) *Recorder {
	return r.push(StrokeRectCmd{Rect: rect, Color: c, LineWidth: lineWidth})
}

// FillPath records a closed polygon fill.
func (r *Recorder) FillPath(points []platformview.Point, c color.RGBA) *Recorder {
	pts := make([]platformview.Point, len(points))
	copy(pts, points)
	return r.push(FillPathCmd{Points: pts, Color: c})
}

// push appends a command and grows the recording bounds.
func (r *Recorder) push(cmd Command) *Recorder {
	r.cmds = append(r.cmds, cmd)
	r.bounds = r.bounds.Union(cmd.Bounds())
	return r
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.cmds)
}

// Finish seals the recording into an immutable Picture and resets the
// recorder for reuse.
func (r *Recorder) Finish() *Picture {
	p := &Picture{cmds: r.cmds, bounds: r.bounds}
	r.cmds = nil
	r.bounds = platformview.EmptyRect()
	return p
}

// Picture is an immutable, finished recording of draw commands.
type Picture struct {
	cmds   []Command
	bounds platformview.Rect
}

// Commands returns the recorded commands in draw order.
// The returned slice must not be modified.
func (p *Picture) Commands() []Command {
	return p.cmds
}

// Bounds returns the union of all command bounds.
func (p *Picture) Bounds() platformview.Rect {
	if len(p.cmds) == 0 {
		return platformview.Rect{}
	}
	return p.bounds
}

// IsEmpty reports whether the picture has no commands.
func (p *Picture) IsEmpty() bool {
	return len(p.cmds) == 0
}

// Playback replays every command to the backend in draw order.
func (p *Picture) Playback(b Backend) {
	for _, cmd := range p.cmds {
		cmd.Replay(b)
	}
}
