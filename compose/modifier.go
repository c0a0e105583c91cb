// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/platformview"
)

// ModifierKind identifies the variant of a Modifier.
type ModifierKind uint8

const (
	// ModOffset translates subsequent content.
	ModOffset ModifierKind = iota

	// ModClipRect clips subsequent content to a rectangle.
	ModClipRect

	// ModClipRRect clips subsequent content to a rounded rectangle.
	ModClipRRect

	// ModClipPath clips subsequent content to a closed polygon.
	ModClipPath

	// ModTransform applies a 4x4 matrix to subsequent content.
	ModTransform

	// ModOpacity scales the opacity of subsequent content.
	ModOpacity
)

// modifierKindNames maps ModifierKind values to their string representation.
var modifierKindNames = [...]string{
	ModOffset:    "Offset",
	ModClipRect:  "ClipRect",
	ModClipRRect: "ClipRRect",
	ModClipPath:  "ClipPath",
	ModTransform: "Transform",
	ModOpacity:   "Opacity",
}

// String returns the string representation of a ModifierKind.
func (k ModifierKind) String() string {
	if int(k) < len(modifierKindNames) {
		return modifierKindNames[k]
	}
	return "Unknown"
}

// Modifier is one entry of a modifier stack. The six variants share this
// single tagged type and differ only in payload; the composer applies them
// through one dispatch site.
type Modifier struct {
	Kind ModifierKind

	// Offset payload (ModOffset).
	Dx, Dy float64

	// Clip payloads (ModClipRect, ModClipRRect, ModClipPath).
	Rect   platformview.Rect
	RRect  platformview.RRect
	Points []platformview.Point

	// Matrix payload (ModTransform), row-major.
	Matrix f64.Mat4

	// Opacity payload (ModOpacity), in [0, 1].
	Alpha float64
}

// Offset creates a translation modifier.
func Offset(dx, dy float64) Modifier {
	return Modifier{Kind: ModOffset, Dx: dx, Dy: dy}
}

// ClipRect creates a rectangular clip modifier.
func ClipRect(r platformview.Rect) Modifier {
	return Modifier{Kind: ModClipRect, Rect: r}
}

// ClipRRect creates a rounded-rectangle clip modifier.
func ClipRRect(rr platformview.RRect) Modifier {
	return Modifier{Kind: ModClipRRect, RRect: rr}
}

// ClipPath creates a polygonal clip modifier. The point slice is referenced,
// not copied.
func ClipPath(points []platformview.Point) Modifier {
	return Modifier{Kind: ModClipPath, Points: points}
}

// Transform creates a matrix transform modifier.
func Transform(m f64.Mat4) Modifier {
	return Modifier{Kind: ModTransform, Matrix: m}
}

// Opacity creates an opacity modifier. Alpha is clamped to [0, 1] when the
// modifier is applied.
func Opacity(alpha float64) Modifier {
	return Modifier{Kind: ModOpacity, Alpha: alpha}
}

// clipBounds returns the clip region of a clip modifier in its local
// coordinate space, and whether the modifier clips at all.
func (m Modifier) clipBounds() (platformview.Rect, bool) {
	switch m.Kind {
	case ModClipRect:
		return m.Rect, true
	case ModClipRRect:
		return m.RRect.Rect, true
	case ModClipPath:
		bounds := platformview.EmptyRect()
		for _, p := range m.Points {
			bounds = bounds.UnionPoint(p.X, p.Y)
		}
		return bounds, len(m.Points) > 0
	default:
		return platformview.Rect{}, false
	}
}
