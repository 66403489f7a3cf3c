package geom

import "fmt"

// Orientation mirrors and rotates geometry about the origin. Mirroring is
// applied first: MirrorX negates X, MirrorY negates Y. The rotation is
// counter-clockwise by Angle tenths of a degree.
type Orientation struct {
	Angle   int
	MirrorX bool
	MirrorY bool
}

// Identity is the zero orientation.
var Identity = Orientation{}

// IsIdentity reports whether o leaves points unchanged.
func (o Orientation) IsIdentity() bool {
	return NormAngle(o.Angle) == 0 && !o.MirrorX && !o.MirrorY
}

// Manhattan reports whether the rotation is a multiple of 90 degrees.
func (o Orientation) Manhattan() bool { return NormAngle(o.Angle)%Deg90 == 0 }

// Apply returns p oriented about the origin.
func (o Orientation) Apply(p Point) Point {
	if o.MirrorX {
		p.X = -p.X
	}
	if o.MirrorY {
		p.Y = -p.Y
	}
	switch NormAngle(o.Angle) {
	case Deg0:
		return p
	case Deg90:
		return Point{-p.Y, p.X}
	case Deg180:
		return Point{-p.X, -p.Y}
	case Deg270:
		return Point{p.Y, -p.X}
	}
	c, s := Cos(o.Angle), Sin(o.Angle)
	x, y := float64(p.X), float64(p.Y)
	return Point{Round(x*c - y*s), Round(x*s + y*c)}
}

// ApplyAngle maps a direction through o.
func (o Orientation) ApplyAngle(a int) int {
	if o.MirrorX {
		a = Deg180 - a
	}
	if o.MirrorY {
		a = -a
	}
	return NormAngle(a + o.Angle)
}

// Transform orients every point and then translates it by anchor.
// It returns a new slice.
func (o Orientation) Transform(pts []Point, anchor Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = o.Apply(p).Add(anchor)
	}
	return out
}

// String renders o in the CLI's "R90,MX" notation.
func (o Orientation) String() string {
	s := fmt.Sprintf("R%d", NormAngle(o.Angle)/10)
	if o.MirrorX {
		s += ",MX"
	}
	if o.MirrorY {
		s += ",MY"
	}
	return s
}
