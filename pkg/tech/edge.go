package tech

import (
	"fmt"

	"github.com/matzehuels/primgeom/pkg/geom"
)

// EdgeCoordinate maps an instance extent to an absolute offset along one
// axis. Multiplier is normally within [-0.5, 0.5]; larger magnitudes are only
// used by ratio-from-center edges.
type EdgeCoordinate struct {
	Multiplier float64 `json:"multiplier" toml:"multiplier"`
	Adder      int64   `json:"adder" toml:"adder"`
}

// NewEdge returns the general ratio-scaled edge.
func NewEdge(multiplier float64, adder int64) EdgeCoordinate {
	return EdgeCoordinate{Multiplier: multiplier, Adder: adder}
}

// FromLeftEdge is d grid units right of the low X edge.
func FromLeftEdge(d int64) EdgeCoordinate { return EdgeCoordinate{-0.5, d} }

// FromRightEdge is d grid units left of the high X edge.
func FromRightEdge(d int64) EdgeCoordinate { return EdgeCoordinate{0.5, -d} }

// FromBottomEdge is d grid units above the low Y edge.
func FromBottomEdge(d int64) EdgeCoordinate { return FromLeftEdge(d) }

// FromTopEdge is d grid units below the high Y edge.
func FromTopEdge(d int64) EdgeCoordinate { return FromRightEdge(d) }

// FromCenter is d grid units from the center, independent of size.
func FromCenter(d int64) EdgeCoordinate { return EdgeCoordinate{0, d} }

// AtCenter is the center itself.
func AtCenter() EdgeCoordinate { return EdgeCoordinate{} }

// Resolve returns center + Multiplier*extent + Adder, where extent is the
// instance's full size on this axis (twice its half-extent). The scaled term
// rounds half up.
func (e EdgeCoordinate) Resolve(center, extent int64) int64 {
	return center + geom.Round(e.Multiplier*float64(extent)) + e.Adder
}

func (e EdgeCoordinate) String() string {
	return fmt.Sprintf("%g*s%+d", e.Multiplier, e.Adder)
}

// TechPoint is a parametric 2-D point.
type TechPoint struct {
	X EdgeCoordinate `json:"x" toml:"x"`
	Y EdgeCoordinate `json:"y" toml:"y"`
}

// Resolve places the point for an instance of size sx by sy centered on the
// origin.
func (p TechPoint) Resolve(sx, sy int64) geom.Point {
	return geom.Point{X: p.X.Resolve(0, sx), Y: p.Y.Resolve(0, sy)}
}

// MakeFullBox covers the whole instance.
func MakeFullBox() []TechPoint {
	return MakeIndented(0)
}

// MakeIndented is the instance box shrunk by d on every side.
func MakeIndented(d int64) []TechPoint {
	return []TechPoint{
		{X: FromLeftEdge(d), Y: FromBottomEdge(d)},
		{X: FromRightEdge(d), Y: FromTopEdge(d)},
	}
}

// MakeCenterBox is a zero-size box at the center.
func MakeCenterBox() []TechPoint {
	return []TechPoint{
		{X: AtCenter(), Y: AtCenter()},
		{X: AtCenter(), Y: AtCenter()},
	}
}

// MakeIndentedXY indents the box by dx horizontally and dy vertically.
func MakeIndentedXY(dx, dy int64) []TechPoint {
	return []TechPoint{
		{X: FromLeftEdge(dx), Y: FromBottomEdge(dy)},
		{X: FromRightEdge(dx), Y: FromTopEdge(dy)},
	}
}
