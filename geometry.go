package main

import "math"

// Point is a position in canvas or screen space.
type Point struct {
	X, Y float64
}

func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r grown by margin on every side.
func (r Rect) Contains(p Point, margin float64) bool {
	return p.X >= r.X-margin && p.X <= r.Right()+margin &&
		p.Y >= r.Y-margin && p.Y <= r.Bottom()+margin
}

func (r Rect) Inflate(d float64) Rect {
	return Rect{r.X - d, r.Y - d, r.Width + 2*d, r.Height + 2*d}
}

// Intersects reports whether the two boxes overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// PointToSegmentDistance returns the distance from p to the segment a-b.
// A degenerate segment measures the distance to a.
func PointToSegmentDistance(p, a, b Point) float64 {
	cx := b.X - a.X
	cy := b.Y - a.Y
	lenSq := cx*cx + cy*cy

	nearest := a
	if lenSq != 0 {
		t := ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
		switch {
		case t > 1:
			nearest = b
		case t > 0:
			nearest = Point{a.X + t*cx, a.Y + t*cy}
		}
	}
	return math.Hypot(p.X-nearest.X, p.Y-nearest.Y)
}

func boundsOfPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
