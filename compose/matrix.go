// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/platformview"
)

// Identity returns the 4x4 identity matrix.
func Identity() f64.Mat4 {
	return f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix translating by (dx, dy) in the plane.
func Translation(dx, dy float64) f64.Mat4 {
	return f64.Mat4{
		1, 0, 0, dx,
		0, 1, 0, dy,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scaling returns a matrix scaling by (sx, sy) in the plane.
func Scaling(sx, sy float64) f64.Mat4 {
	return f64.Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// matMul returns a*b in row-major order.
func matMul(a, b f64.Mat4) f64.Mat4 {
	var out f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// transformPoint maps a 2D point through m (z=0, w=1), with perspective
// division when the matrix has a projective bottom row.
func transformPoint(m f64.Mat4, p platformview.Point) platformview.Point {
	x := m[0]*p.X + m[1]*p.Y + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[7]
	w := m[12]*p.X + m[13]*p.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return platformview.Point{X: x, Y: y}
}

// transformRect maps a rectangle through m and returns the axis-aligned
// bounding box of the transformed corners.
func transformRect(m f64.Mat4, r platformview.Rect) platformview.Rect {
	if r.IsEmpty() {
		return r
	}
	corners := [4]platformview.Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	out := platformview.EmptyRect()
	for _, c := range corners {
		p := transformPoint(m, c)
		out = out.UnionPoint(p.X, p.Y)
	}
	return out
}
