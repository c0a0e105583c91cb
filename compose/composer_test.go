// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/gogpu/platformview"
	"github.com/gogpu/platformview/record"
)

func TestBuildFrameByReferenceMinimal(t *testing.T) {
	c, err := NewComposer(ByReference)
	if err != nil {
		t.Fatalf("NewComposer() error: %v", err)
	}

	scene, err := c.BuildFrame(Frame{
		ViewID:      7,
		SurfaceRect: platformview.RectXYWH(0, 0, 500, 500),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	ops := scene.Ops()
	if len(ops) != 2 {
		t.Fatalf("scene has %d ops, want 2", len(ops))
	}
	if ops[0].Kind != OpSurface {
		t.Errorf("ops[0].Kind = %s, want Surface", ops[0].Kind)
	}
	if ops[1].Kind != OpPicture {
		t.Errorf("ops[1].Kind = %s, want Picture", ops[1].Kind)
	}
	if ops[0].Surface.ViewID != 7 {
		t.Errorf("surface viewID = %d, want 7", ops[0].Surface.ViewID)
	}
	if ops[0].Surface.Strategy != ByReference {
		t.Errorf("surface strategy = %s, want ByReference", ops[0].Surface.Strategy)
	}

	assertBalanced(t, ops)
}

func TestBuildFrameExactlyOneSurfaceOnePicture(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers: []Modifier{
			Offset(5, 5),
			Opacity(0.5),
			ClipRect(platformview.RectXYWH(0, 0, 100, 100)),
		},
		SurfaceRect: platformview.RectXYWH(0, 0, 50, 50),
		Content: func(r *record.Recorder) {
			r.FillRect(platformview.RectXYWH(0, 0, 10, 10), color.RGBA{A: 255})
		},
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	var surfaces, pictures int
	for _, op := range scene.Ops() {
		switch op.Kind {
		case OpSurface:
			surfaces++
		case OpPicture:
			pictures++
		}
	}
	if surfaces != 1 {
		t.Errorf("scene has %d surface insertions, want 1", surfaces)
	}
	if pictures != 1 {
		t.Errorf("scene has %d picture insertions, want 1", pictures)
	}
	assertBalanced(t, scene.Ops())
}

func TestBuildFrameByTextureWithoutHandle(t *testing.T) {
	c, err := NewComposer(ByTexture)
	if err != nil {
		t.Fatalf("NewComposer() error: %v", err)
	}

	_, err = c.BuildFrame(Frame{
		ViewID:      3,
		SurfaceRect: platformview.RectXYWH(0, 0, 100, 100),
	})
	if !errors.Is(err, ErrSurfaceNotReady) {
		t.Errorf("BuildFrame() error = %v, want ErrSurfaceNotReady", err)
	}
}

func TestBuildFrameByTextureResolvesBinding(t *testing.T) {
	reg := NewTextureRegistry()
	reg.Bind(42, BoundTexture{Width: 256, Height: 256})

	c, err := NewComposer(ByTexture, WithTextureRegistry(reg))
	if err != nil {
		t.Fatalf("NewComposer() error: %v", err)
	}

	scene, err := c.BuildFrame(Frame{
		Handle:      HandleOf(42),
		SurfaceRect: platformview.RectXYWH(0, 0, 256, 256),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	surface := scene.Ops()[0].Surface
	if surface.Handle != 42 {
		t.Errorf("surface handle = %d, want 42", surface.Handle)
	}
	if !surface.Bound {
		t.Error("surface should carry the resolved texture binding")
	}
	if surface.Texture.Width != 256 {
		t.Errorf("bound texture width = %d, want 256", surface.Texture.Width)
	}
}

func TestBuildFrameByTextureUnboundHandle(t *testing.T) {
	// A handle that arrived but has no registry binding still composes;
	// the placement just carries no resolved texture.
	c, _ := NewComposer(ByTexture, WithTextureRegistry(NewTextureRegistry()))
	scene, err := c.BuildFrame(Frame{Handle: HandleOf(9)})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	if scene.Ops()[0].Surface.Bound {
		t.Error("surface should not report a binding for an unbound handle")
	}
}

func TestNewComposerRejectsInvalidStrategy(t *testing.T) {
	if _, err := NewComposer(StrategyNone); !errors.Is(err, ErrUnsupportedEnvironment) {
		t.Errorf("NewComposer(StrategyNone) error = %v, want ErrUnsupportedEnvironment", err)
	}
	if _, err := NewComposer(Strategy(99)); !errors.Is(err, ErrUnsupportedEnvironment) {
		t.Errorf("NewComposer(99) error = %v, want ErrUnsupportedEnvironment", err)
	}
}

func TestSelectStrategy(t *testing.T) {
	cases := []struct {
		name string
		caps Capabilities
		want Strategy
		err  error
	}{
		{"both prefers reference", Capabilities{ReferenceCompositing: true, TextureCompositing: true}, ByReference, nil},
		{"reference only", Capabilities{ReferenceCompositing: true}, ByReference, nil},
		{"texture only", Capabilities{TextureCompositing: true}, ByTexture, nil},
		{"neither", Capabilities{}, StrategyNone, ErrUnsupportedEnvironment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectStrategy(tc.caps)
			if got != tc.want {
				t.Errorf("strategy = %s, want %s", got, tc.want)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("error = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestContentBoundsClippedByModifiers(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers: []Modifier{
			Offset(0, 0),
			ClipRect(platformview.RectXYWH(100, 100, 400, 400)),
		},
		SurfaceRect: platformview.RectXYWH(150, 300, 500, 500),
		Content: func(r *record.Recorder) {
			r.FillRect(platformview.RectXYWH(0, 0, 100, 100), color.RGBA{R: 255, A: 255})
		},
		PicturePlacement: platformview.Pt(300, 300),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	// The surface extends to (650, 800) but the clip rect caps visible
	// content at (500, 500); the picture lands fully inside the clip.
	want := platformview.Rect{MinX: 150, MinY: 300, MaxX: 500, MaxY: 500}
	if got := scene.ContentBounds(); got != want {
		t.Errorf("ContentBounds() = %+v, want %+v", got, want)
	}

	// The surface placement itself keeps the declared rectangle.
	var surface SurfacePlacement
	for _, op := range scene.Ops() {
		if op.Kind == OpSurface {
			surface = op.Surface
		}
	}
	if surface.Rect != platformview.RectXYWH(150, 300, 500, 500) {
		t.Errorf("surface rect = %+v, want declared placement", surface.Rect)
	}
	assertBalanced(t, scene.Ops())
}

func TestOffsetShiftsContent(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers:   []Modifier{Offset(10, 20)},
		SurfaceRect: platformview.RectXYWH(0, 0, 50, 50),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	want := platformview.Rect{MinX: 10, MinY: 20, MaxX: 60, MaxY: 70}
	if got := scene.ContentBounds(); got != want {
		t.Errorf("ContentBounds() = %+v, want %+v", got, want)
	}
}

func TestTransformScalesContent(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers:   []Modifier{Transform(Scaling(2, 3))},
		SurfaceRect: platformview.RectXYWH(0, 0, 50, 50),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	want := platformview.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 150}
	if got := scene.ContentBounds(); got != want {
		t.Errorf("ContentBounds() = %+v, want %+v", got, want)
	}
}

func TestNestedModifiersComposeInOrder(t *testing.T) {
	// The clip is declared inside the offset scope, so its rectangle is
	// translated along with the content.
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers: []Modifier{
			Offset(100, 0),
			ClipRect(platformview.RectXYWH(0, 0, 30, 30)),
		},
		SurfaceRect: platformview.RectXYWH(0, 0, 50, 50),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	want := platformview.Rect{MinX: 100, MinY: 0, MaxX: 130, MaxY: 30}
	if got := scene.ContentBounds(); got != want {
		t.Errorf("ContentBounds() = %+v, want %+v", got, want)
	}
}

func TestOpacityClamped(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers: []Modifier{Opacity(1.5), Opacity(-2)},
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	ops := scene.Ops()
	if got := ops[0].Modifier.Alpha; got != 1 {
		t.Errorf("first opacity = %g, want 1", got)
	}
	if got := ops[1].Modifier.Alpha; got != 0 {
		t.Errorf("second opacity = %g, want 0", got)
	}
}

func TestAllModifierKindsUniformDispatch(t *testing.T) {
	// All six variants travel through the same push path and unwind with
	// one pop each.
	mods := []Modifier{
		Offset(1, 1),
		ClipRect(platformview.RectXYWH(0, 0, 10, 10)),
		ClipRRect(platformview.RRectXYWH(0, 0, 10, 10, 2)),
		ClipPath([]platformview.Point{platformview.Pt(0, 0), platformview.Pt(10, 0), platformview.Pt(5, 10)}),
		Transform(Identity()),
		Opacity(0.5),
	}

	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{Modifiers: mods})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	ops := scene.Ops()
	for i, m := range mods {
		if ops[i].Kind != OpPush {
			t.Fatalf("ops[%d].Kind = %s, want Push", i, ops[i].Kind)
		}
		if ops[i].Modifier.Kind != m.Kind {
			t.Errorf("ops[%d] modifier = %s, want %s", i, ops[i].Modifier.Kind, m.Kind)
		}
	}
	assertBalanced(t, ops)
}

// assertBalanced checks the push/pop discipline: depth never goes negative,
// ends at zero, and nothing is pushed after content insertion.
func assertBalanced(t *testing.T, ops []Op) {
	t.Helper()
	depth := 0
	content := false
	for i, op := range ops {
		switch op.Kind {
		case OpPush:
			if content {
				t.Errorf("ops[%d]: push after content insertion", i)
			}
			depth++
		case OpPop:
			depth--
			if depth < 0 {
				t.Fatalf("ops[%d]: pop without matching push", i)
			}
		case OpSurface, OpPicture:
			content = true
		}
	}
	if depth != 0 {
		t.Errorf("scene ends with %d open push contexts, want 0", depth)
	}
}

// logSink records a one-line description of every scene handed to it.
type logSink struct {
	log []string
	err error
}

func (s *logSink) RenderScene(scene *Scene) error {
	for _, op := range scene.Ops() {
		switch op.Kind {
		case OpPush:
			s.log = append(s.log, "push:"+op.Modifier.Kind.String())
		case OpPop:
			s.log = append(s.log, "pop")
		case OpSurface:
			r := op.Surface.Rect
			s.log = append(s.log, fmt.Sprintf("surface(%g,%g,%g,%g)", r.MinX, r.MinY, r.Width(), r.Height()))
		case OpPicture:
			s.log = append(s.log, fmt.Sprintf("picture(%d cmds at %g,%g)", len(op.Picture.Commands()), op.Placement.X, op.Placement.Y))
		}
	}
	return s.err
}

func TestRenderReleasesScene(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, err := c.BuildFrame(Frame{
		Modifiers:   []Modifier{Offset(0, 0), ClipRect(platformview.RectXYWH(100, 100, 400, 400))},
		SurfaceRect: platformview.RectXYWH(150, 300, 500, 500),
		Content: func(r *record.Recorder) {
			r.FillRect(platformview.RectXYWH(0, 0, 100, 100), color.RGBA{B: 255, A: 255})
		},
		PicturePlacement: platformview.Pt(300, 300),
	})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	sink := &logSink{}
	if err := Render(sink, scene); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := []string{
		"push:Offset",
		"push:ClipRect",
		"surface(150,300,500,500)",
		"picture(1 cmds at 300,300)",
		"pop",
		"pop",
	}
	if len(sink.log) != len(want) {
		t.Fatalf("sink log = %v, want %v", sink.log, want)
	}
	for i := range want {
		if sink.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, sink.log[i], want[i])
		}
	}

	if !scene.Released() {
		t.Error("scene should be released after Render")
	}
	if scene.Ops() != nil {
		t.Error("Ops() should be nil after release")
	}
	if err := Render(sink, scene); !errors.Is(err, ErrSceneReleased) {
		t.Errorf("second Render() error = %v, want ErrSceneReleased", err)
	}
	if err := scene.Release(); !errors.Is(err, ErrSceneReleased) {
		t.Errorf("second Release() error = %v, want ErrSceneReleased", err)
	}
}

func TestRenderPropagatesSinkError(t *testing.T) {
	c, _ := NewComposer(ByReference)
	scene, _ := c.BuildFrame(Frame{})

	sinkErr := errors.New("device lost")
	sink := &logSink{err: sinkErr}
	if err := Render(sink, scene); !errors.Is(err, sinkErr) {
		t.Errorf("Render() error = %v, want sink error", err)
	}
	if !scene.Released() {
		t.Error("scene should be released even when the sink fails")
	}
}
