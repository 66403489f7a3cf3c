package geom

import "math"

// Full is one full turn in tenths of a degree.
const Full = 3600

// Right angles in tenths of a degree.
const (
	Deg0   = 0
	Deg90  = 900
	Deg180 = 1800
	Deg270 = 2700
)

// NormAngle folds a into [0, 3600).
func NormAngle(a int) int {
	a %= Full
	if a < 0 {
		a += Full
	}
	return a
}

// Cos returns the cosine of a tenth-degree angle, exact for Manhattan angles.
func Cos(a int) float64 {
	switch NormAngle(a) {
	case Deg0:
		return 1
	case Deg90, Deg270:
		return 0
	case Deg180:
		return -1
	}
	return math.Cos(float64(a) * math.Pi / 1800)
}

// Sin returns the sine of a tenth-degree angle, exact for Manhattan angles.
func Sin(a int) float64 {
	switch NormAngle(a) {
	case Deg0, Deg180:
		return 0
	case Deg90:
		return 1
	case Deg270:
		return -1
	}
	return math.Sin(float64(a) * math.Pi / 1800)
}

// Angle returns the direction from a to b in tenths of a degree.
// Coincident points yield 0.
func Angle(a, b Point) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dy == 0:
		if dx > 0 {
			return Deg0
		}
		return Deg180
	case dx == 0:
		if dy > 0 {
			return Deg90
		}
		return Deg270
	}
	return AngleF(float64(dx), float64(dy))
}

// AngleF returns the tenth-degree direction of the vector (dx, dy).
func AngleF(dx, dy float64) int {
	if dx == 0 && dy == 0 {
		return 0
	}
	a := int(math.Round(math.Atan2(dy, dx) * 1800 / math.Pi))
	return NormAngle(a)
}

// FPoint is a point in float grid space, used where intermediate values
// leave the integer grid (serpentine rails, off-Manhattan rotations).
type FPoint struct {
	X, Y float64
}

// F converts p to float grid space.
func F(p Point) FPoint { return FPoint{float64(p.X), float64(p.Y)} }

// Offset moves p by dist along the tenth-degree direction a.
func (p FPoint) Offset(a int, dist float64) FPoint {
	return FPoint{p.X + Cos(a)*dist, p.Y + Sin(a)*dist}
}

// Grid rounds p half up onto the grid.
func (p FPoint) Grid() Point { return Point{Round(p.X), Round(p.Y)} }

// Intersect returns the point where the line through p1 at angle a1 meets
// the line through p2 at angle a2. Parallel lines return p2 unchanged.
func Intersect(p1 FPoint, a1 int, p2 FPoint, a2 int) FPoint {
	c1, s1 := Cos(a1), Sin(a1)
	c2, s2 := Cos(a2), Sin(a2)
	den := c1*s2 - s1*c2
	if den == 0 {
		return p2
	}
	// Solve p1 + t*(c1,s1) == p2 + u*(c2,s2) for t.
	t := ((p2.X-p1.X)*s2 - (p2.Y-p1.Y)*c2) / den
	return FPoint{p1.X + t*c1, p1.Y + t*s1}
}
