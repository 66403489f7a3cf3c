// Package multicut lays out the repeated cut rectangles of a contact whose
// size may vary.
//
// # Overview
//
// A multi-cut layer carries a fixed cut size and two minimum spacings: Sep1D
// for a single row or column of cuts, and Sep2D for arrays with two or more
// cuts in both directions. [New] counts how many cuts fit, picks the spacing
// and exposes each cut's rectangle.
//
// # Counting
//
// The template box bounds the region available to cut centers. Along each
// axis the count is
//
//	1 + floor(area / (size + sep))
//
// Counts start with Sep1D. When both axes hold more than one cut the layout
// is recounted with Sep2D; if that leaves either axis with a single cut, the
// contact is really linear and reverts to Sep1D along its wider axis (ties
// go to X) with one cut on the other axis.
//
// # Emission Order
//
// When both axes hold more than two cuts, the cut index is remapped so that
// emission walks the bottom row, the top row, the left column without
// corners, the right column without corners and finally the interior in
// row-major order. The first CutsReasonable indices are exactly the
// perimeter ring. Positions always come from the row-major index the remap
// produces, so every reasonable cut also appears, at the same coordinates,
// among the total cuts.
package multicut

import (
	"fmt"

	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Layout is the computed cut arrangement for one multi-cut layer of one
// instance.
type Layout struct {
	Area           geom.Rect // region available to cut centers
	SizeX, SizeY   int64     // cut size
	Sep            int64     // spacing in effect, Sep1D or Sep2D
	CutsX, CutsY   int
	CutsTotal      int
	CutsReasonable int
}

func count(area, size, sep int64) int {
	if area < 0 {
		return 1
	}
	return max(1, int(1+area/(size+sep)))
}

// New computes the layout of cuts whose centers lie in area.
func New(area geom.Rect, cut tech.CutExtra) Layout {
	l := Layout{Area: area, SizeX: cut.SizeX, SizeY: cut.SizeY, Sep: cut.Sep1D}

	w, h := area.Width(), area.Height()
	oneX := count(w, cut.SizeX, cut.Sep1D)
	oneY := count(h, cut.SizeY, cut.Sep1D)
	l.CutsX, l.CutsY = oneX, oneY

	if oneX > 1 && oneY > 1 {
		l.Sep = cut.Sep2D
		l.CutsX = count(w, cut.SizeX, cut.Sep2D)
		l.CutsY = count(h, cut.SizeY, cut.Sep2D)

		if l.CutsX == 1 || l.CutsY == 1 {
			l.Sep = cut.Sep1D
			if w >= h {
				l.CutsX, l.CutsY = oneX, 1
			} else {
				l.CutsX, l.CutsY = 1, oneY
			}
		}
	}

	l.CutsTotal = l.CutsX * l.CutsY
	if l.CutsTotal <= 0 {
		panic(fmt.Sprintf("multicut: %dx%d cuts in %v", l.CutsX, l.CutsY, area))
	}

	l.CutsReasonable = l.CutsTotal
	if l.perimeter() {
		l.CutsReasonable = l.CutsX*2 + (l.CutsY-2)*2
	}
	return l
}

func (l Layout) perimeter() bool { return l.CutsX > 2 && l.CutsY > 2 }

// Count returns how many cuts to emit.
func (l Layout) Count(reasonable bool) int {
	if reasonable {
		return l.CutsReasonable
	}
	return l.CutsTotal
}

// RowMajor maps an emission index to the row-major index of the cut it
// places.
func (l Layout) RowMajor(cut int) int {
	if !l.perimeter() {
		return cut
	}
	cx, cy := l.CutsX, l.CutsY
	topEdge := cx * 2
	leftEdge := topEdge + cy - 2
	rightEdge := topEdge + (cy-2)*2

	switch {
	case cut < cx:
		return cut
	case cut < topEdge:
		return cut + cx*(cy-2)
	case cut < leftEdge:
		return (cut-topEdge)*cx + cx
	case cut < rightEdge:
		return (cut-leftEdge)*cx + cx*2 - 1
	}
	c := cut - rightEdge
	return (c/(cx-2))*cx + c%(cx-2) + cx + 1
}

// CutRect returns the rectangle of the cut emitted at index cut. Every cut
// is exactly SizeX by SizeY; half-grid positions round toward negative
// infinity.
func (l Layout) CutRect(cut int) geom.Rect {
	if cut < 0 || cut >= l.CutsTotal {
		panic(fmt.Sprintf("multicut: cut %d out of range [0,%d)", cut, l.CutsTotal))
	}
	idx := l.RowMajor(cut)
	lx := place(l.Area.LX+l.Area.HX, idx%l.CutsX, l.CutsX, l.SizeX, l.Sep)
	ly := place(l.Area.LY+l.Area.HY, idx/l.CutsX, l.CutsY, l.SizeY, l.Sep)
	return geom.Rect{LX: lx, LY: ly, HX: lx + l.SizeX, HY: ly + l.SizeY}
}

// place returns the low edge of cut i of n along one axis; span is the sum
// of the area's low and high edges.
func place(span int64, i, n int, size, sep int64) int64 {
	return geom.FloorDiv(span+int64(2*i-(n-1))*(size+sep)-size, 2)
}

// Cuts returns every emitted cut rectangle in emission order.
func (l Layout) Cuts(reasonable bool) []geom.Rect {
	n := l.Count(reasonable)
	out := make([]geom.Rect, n)
	for i := range n {
		out[i] = l.CutRect(i)
	}
	return out
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d cuts (total %d, reasonable %d, sep %d)",
		l.CutsX, l.CutsY, l.CutsTotal, l.CutsReasonable, l.Sep)
}
