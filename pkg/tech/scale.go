package tech

import "github.com/matzehuels/primgeom/pkg/geom"

// DefaultGridPerLambda is the grid resolution used when a technology does not
// set its own.
const DefaultGridPerLambda = 400

// Scale converts between lambda and grid units. It is the only place lambda
// values enter the engine.
type Scale struct {
	GridPerLambda int64 `json:"grid_per_lambda" toml:"grid_per_lambda"`
}

// DefaultScale returns the default 400 grid units per lambda.
func DefaultScale() Scale { return Scale{GridPerLambda: DefaultGridPerLambda} }

func (s Scale) factor() int64 {
	if s.GridPerLambda <= 0 {
		return DefaultGridPerLambda
	}
	return s.GridPerLambda
}

// ToGrid converts a lambda length to grid units, rounding half up.
func (s Scale) ToGrid(lambda float64) int64 {
	return geom.Round(lambda * float64(s.factor()))
}

// ToLambda converts a grid length to lambda.
func (s Scale) ToLambda(grid int64) float64 {
	return float64(grid) / float64(s.factor())
}

// Point converts a lambda coordinate pair to a grid point.
func (s Scale) Point(x, y float64) geom.Point {
	return geom.Point{X: s.ToGrid(x), Y: s.ToGrid(y)}
}

// Edge builds an edge coordinate whose adder is given in lambda.
func (s Scale) Edge(multiplier, adder float64) EdgeCoordinate {
	return EdgeCoordinate{Multiplier: multiplier, Adder: s.ToGrid(adder)}
}
