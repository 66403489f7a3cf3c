// Package geom provides the integer grid geometry shared by the primitive
// shape engine.
//
// # Grid Units
//
// Every coordinate is an int64 on the technology grid. Grid values are exact:
// two requests with the same inputs always produce bit-identical polygons.
// Conversion to the user-facing lambda unit happens elsewhere
// (see [github.com/matzehuels/primgeom/pkg/tech.Scale]).
//
// # Angles
//
// Angles are integers in tenths of a degree, counter-clockwise from the
// positive X axis, normalized to [0, 3600). [Cos] and [Sin] are exact for
// multiples of 900 so Manhattan geometry never picks up floating-point error.
//
// # Orientation
//
// An [Orientation] mirrors and then rotates points about the origin. Shapes
// are built around (0,0), oriented, and finally translated to the instance
// anchor.
package geom
