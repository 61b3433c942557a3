// Package obb tests oriented vehicle rectangles for overlap.
package obb

import (
	"math"

	"github.com/paulmach/orb"
)

// DegenerateEpsilon is the heading magnitude below which a heading is
// considered undefined. Such headings point along +x.
const DegenerateEpsilon = 1e-6

// Normalize returns the unit vector of (dx, dy), or (1, 0) for a degenerate heading.
func Normalize(dx, dy float64) (float64, float64) {
	n := math.Hypot(dx, dy)
	if n < DegenerateEpsilon {
		return 1, 0
	}
	return dx / n, dy / n
}

// Corners returns the rectangle of the given length and width centered at pos,
// its long axis along heading. Corners wind front-left, front-right,
// rear-right, rear-left relative to the side vector (-hy, hx).
func Corners(pos, heading orb.Point, length, width float64) orb.Ring {
	fx, fy := Normalize(heading[0], heading[1])
	sx, sy := -fy, fx
	hl, hw := length/2, width/2
	x, y := pos[0], pos[1]
	return orb.Ring{
		{x + fx*hl + sx*hw, y + fy*hl + sy*hw},
		{x + fx*hl - sx*hw, y + fy*hl - sy*hw},
		{x - fx*hl - sx*hw, y - fy*hl - sy*hw},
		{x - fx*hl + sx*hw, y - fy*hl + sy*hw},
	}
}

// Intersects reports whether two 4-corner rectangles overlap, by the
// separating axis theorem over the 8 edge normals of both.
// Touching rectangles intersect.
func Intersects(a, b orb.Ring) bool {
	for _, r := range [2]orb.Ring{a, b} {
		for i := 0; i < 4; i++ {
			axis := edgeNormal(r[i], r[(i+1)%4])
			if !overlap(project(axis, a), project(axis, b)) {
				return false
			}
		}
	}
	return true
}

func edgeNormal(p, q orb.Point) orb.Point {
	ex, ey := q[0]-p[0], q[1]-p[1]
	nx, ny := -ey, ex
	n := math.Hypot(nx, ny)
	return orb.Point{nx / n, ny / n}
}

type interval struct {
	min, max float64
}

func project(axis orb.Point, r orb.Ring) interval {
	iv := interval{min: math.Inf(1), max: math.Inf(-1)}
	for i := 0; i < 4; i++ {
		d := axis[0]*r[i][0] + axis[1]*r[i][1]
		iv.min = math.Min(iv.min, d)
		iv.max = math.Max(iv.max, d)
	}
	return iv
}

func overlap(a, b interval) bool {
	return !(a.max < b.min || b.max < a.min)
}
