// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view_test

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gogpu/platformview"
	"github.com/gogpu/platformview/channel"
	"github.com/gogpu/platformview/compose"
	"github.com/gogpu/platformview/record"
	"github.com/gogpu/platformview/view"
)

// printSink prints the op kinds of every scene it renders.
type printSink struct{}

func (printSink) RenderScene(scene *compose.Scene) error {
	for _, op := range scene.Ops() {
		fmt.Println(op.Kind)
	}
	return nil
}

func Example() {
	// The loopback messenger stands in for the real platform transport.
	loop := channel.NewLoopback()
	defer loop.Close()
	loop.Register(view.Channel, func([]byte) ([]byte, error) {
		return nil, nil
	})

	strategy, err := compose.SelectStrategy(compose.Capabilities{ReferenceCompositing: true})
	if err != nil {
		fmt.Println("unsupported:", err)
		return
	}

	ctrl, err := view.NewController(loop, view.Config{
		ViewID:   0,
		ViewType: "scenarios/textPlatformView",
		Params:   []byte("hello"),
		Size:     platformview.Sz(500, 500),
		Strategy: strategy,
	})
	if err != nil {
		fmt.Println("controller:", err)
		return
	}
	if err := ctrl.Create(context.Background()); err != nil {
		fmt.Println("create:", err)
		return
	}

	err = ctrl.RenderFrame(printSink{}, view.FrameSpec{
		Modifiers: []compose.Modifier{
			compose.Offset(0, 0),
			compose.ClipRect(platformview.RectXYWH(100, 100, 400, 400)),
		},
		SurfaceRect: platformview.RectXYWH(150, 300, 500, 500),
		Content: func(r *record.Recorder) {
			r.FillRect(platformview.RectXYWH(0, 0, 100, 100), color.RGBA{R: 255, A: 255})
		},
		PicturePlacement: platformview.Pt(300, 300),
	})
	if err != nil {
		fmt.Println("frame:", err)
		return
	}

	// Output:
	// Push
	// Push
	// Surface
	// Picture
	// Pop
	// Pop
}
