package geom

import (
	"fmt"
	"math"
)

// Point is a location on the grid.
type Point struct {
	X, Y int64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned rectangle. A Rect is well-formed when Lo <= Hi on
// both axes; malformed rectangles are representable so callers can report them.
type Rect struct {
	LX, LY int64
	HX, HY int64
}

// R builds a rectangle from its low and high corners without normalizing.
func R(lx, ly, hx, hy int64) Rect { return Rect{LX: lx, LY: ly, HX: hx, HY: hy} }

// String formats the rectangle as "[lx,ly..hx,hy]".
func (r Rect) String() string { return fmt.Sprintf("[%d,%d..%d,%d]", r.LX, r.LY, r.HX, r.HY) }

// Width returns the horizontal span.
func (r Rect) Width() int64 { return r.HX - r.LX }

// Height returns the vertical span.
func (r Rect) Height() int64 { return r.HY - r.LY }

// Malformed reports whether a low edge lies above its high edge.
func (r Rect) Malformed() bool { return r.LX > r.HX || r.LY > r.HY }

// Center returns the center, rounded half up on each axis.
func (r Rect) Center() Point {
	return Point{FloorDiv(r.LX+r.HX+1, 2), FloorDiv(r.LY+r.HY+1, 2)}
}

// Contains reports whether q lies inside or on the boundary of r.
func (r Rect) Contains(q Point) bool {
	return q.X >= r.LX && q.X <= r.HX && q.Y >= r.LY && q.Y <= r.HY
}

// Points returns the four corners counter-clockwise from the low corner.
func (r Rect) Points() []Point {
	return []Point{
		{r.LX, r.LY},
		{r.HX, r.LY},
		{r.HX, r.HY},
		{r.LX, r.HY},
	}
}

// Bounds returns the bounding rectangle of pts. It returns the zero Rect for
// an empty slice.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := Rect{LX: pts[0].X, LY: pts[0].Y, HX: pts[0].X, HY: pts[0].Y}
	for _, p := range pts[1:] {
		b.LX = min(b.LX, p.X)
		b.LY = min(b.LY, p.Y)
		b.HX = max(b.HX, p.X)
		b.HY = max(b.HY, p.Y)
	}
	return b
}

// Round converts a float grid value to int64, rounding half up.
// Half-up rounding keeps a span of odd length exact when it is centered on
// an integer: [-2.5, 2.5] becomes [-2, 3].
func Round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
