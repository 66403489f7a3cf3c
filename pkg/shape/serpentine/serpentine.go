// Package serpentine computes the geometry of transistors whose gate follows
// a polyline trace instead of a fixed rectangle.
//
// Each layer of the device is swept along the trace. For every segment the
// layer contributes one quadrilateral bounded by a left rail at LWidth and a
// right rail at RWidth from the centerline. Rails of adjacent segments are
// mitered at the joints, and the first and last segments are stretched by
// the layer's TopExtend and BottomExtend so the gate can overshoot the
// diffusion.
//
// Body polygons are numbered layer-major: polygon b belongs to layer
// b / segments and covers segment b % segments.
package serpentine

import (
	"fmt"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Port numbers of a serpentine transistor.
const (
	PortGateStart = 0 // poly end at the first trace point
	PortDiffLeft  = 1 // diffusion rail left of the trace
	PortGateEnd   = 2 // poly end at the last trace point
	PortDiffRight = 3 // diffusion rail right of the trace
	PortTrace     = 4 // the raw trace
)

// Transistor is a serpentine device ready to emit geometry. Coordinates are
// in the node's local frame, the same frame as the trace.
type Transistor struct {
	trace  []geom.FPoint
	angles []int // angle of each segment
	layers []tech.NodeLayer
	params tech.SerpentineParams
}

// New prepares a transistor. A trace with fewer than two points cannot
// describe a device and is rejected.
func New(trace []geom.Point, layers []tech.NodeLayer, params tech.SerpentineParams) (*Transistor, error) {
	if len(trace) < 2 {
		return nil, errors.New(errors.ErrCodeDegenerateTrace,
			"serpentine trace needs at least 2 points, got %d", len(trace))
	}
	t := &Transistor{
		trace:  make([]geom.FPoint, len(trace)),
		angles: make([]int, len(trace)-1),
		layers: layers,
		params: params,
	}
	for i, p := range trace {
		t.trace[i] = geom.F(p)
	}
	for i := range t.angles {
		t.angles[i] = geom.Angle(trace[i], trace[i+1])
	}
	return t, nil
}

// Segments returns the number of trace segments.
func (t *Transistor) Segments() int { return len(t.angles) }

// Count returns the number of body polygons: segments times layers.
func (t *Transistor) Count() int { return len(t.angles) * len(t.layers) }

// Layer returns the layer template that body polygon box is drawn on.
func (t *Transistor) Layer(box int) tech.NodeLayer {
	return t.layers[box/len(t.angles)]
}

// Polygons returns every body polygon in layer-major order.
func (t *Transistor) Polygons() [][]geom.Point {
	out := make([][]geom.Point, t.Count())
	for b := range out {
		out[b] = t.Polygon(b)
	}
	return out
}

// Polygon returns body polygon box as [thisLeft, thisRight, nextRight,
// nextLeft].
func (t *Transistor) Polygon(box int) []geom.Point {
	if box < 0 || box >= t.Count() {
		panic(fmt.Sprintf("serpentine: polygon %d out of range [0,%d)", box, t.Count()))
	}
	nseg := len(t.angles)
	layer := t.layers[box/nseg]
	seg := box % nseg
	serp := layer.Serpentine

	angle := t.angles[seg]
	thisPt, nextPt := t.trace[seg], t.trace[seg+1]
	if seg == 0 {
		thisPt = thisPt.Offset(angle+geom.Deg180, float64(serp.TopExtend))
	}
	if seg == nseg-1 {
		nextPt = nextPt.Offset(angle, float64(serp.BottomExtend))
	}

	lwid, rwid := float64(serp.LWidth), float64(serp.RWidth)
	thisL := thisPt.Offset(angle+geom.Deg90, lwid)
	thisR := thisPt.Offset(angle+geom.Deg270, rwid)
	nextL := nextPt.Offset(angle+geom.Deg90, lwid)
	nextR := nextPt.Offset(angle+geom.Deg270, rwid)

	if seg > 0 {
		thisL, thisR = t.miter(seg-1, seg, thisL, thisR, angle, lwid, rwid)
	}
	if seg < nseg-1 {
		nextL, nextR = t.miter(seg+1, seg+1, nextL, nextR, angle, lwid, rwid)
	}

	return []geom.Point{thisL.Grid(), thisR.Grid(), nextR.Grid(), nextL.Grid()}
}

// miter moves the rail points l and r, which lie on rails running at angle,
// onto the intersection with the rails of segment other. joint is the trace
// point shared by both segments.
func (t *Transistor) miter(other, joint int, l, r geom.FPoint, angle int, lwid, rwid float64) (geom.FPoint, geom.FPoint) {
	oa := t.angles[other]
	if oa == angle {
		return l, r
	}
	at := t.trace[joint]
	l = geom.Intersect(at.Offset(oa+geom.Deg90, lwid), oa, l, angle)
	r = geom.Intersect(at.Offset(oa+geom.Deg270, rwid), oa, r, angle)
	return l, r
}

// Port returns the geometry of port which: a two-point segment for the gate
// ends, a polyline for the diffusion rails and the trace itself for
// PortTrace.
func (t *Transistor) Port(which int) ([]geom.Point, error) {
	switch which {
	case PortGateStart, PortGateEnd:
		return t.gatePort(which == PortGateEnd), nil
	case PortDiffLeft:
		return t.diffPort(geom.Deg90), nil
	case PortDiffRight:
		return t.diffPort(geom.Deg270), nil
	case PortTrace:
		out := make([]geom.Point, len(t.trace))
		for i, p := range t.trace {
			out[i] = p.Grid()
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "serpentine transistor has no port %d", which)
}

// gatePort is a segment perpendicular to the end segment, pushed out past
// the trace end by PolyExtend.
func (t *Transistor) gatePort(end bool) []geom.Point {
	p := t.params
	pt, out := t.trace[0], t.angles[0]+geom.Deg180
	if end {
		last := len(t.angles) - 1
		pt, out = t.trace[last+1], t.angles[last]
	}
	pt = pt.Offset(out, p.PolyExtend)

	half := p.GateWidth/2 - p.PolyInset
	return []geom.Point{
		pt.Offset(out+geom.Deg90, half).Grid(),
		pt.Offset(out+geom.Deg270, half).Grid(),
	}
}

// diffPort follows the trace at GateWidth/2 + DiffusionExtend on the side
// given by side (Deg90 for left, Deg270 for right), trimmed by
// DiffusionInset at both ends.
func (t *Transistor) diffPort(side int) []geom.Point {
	p := t.params
	dist := p.GateWidth/2 + p.DiffusionExtend
	nseg := len(t.angles)

	out := make([]geom.Point, 0, nseg+1)
	for i, pt := range t.trace {
		var q geom.FPoint
		switch i {
		case 0:
			a := t.angles[0]
			q = pt.Offset(a, p.DiffusionInset).Offset(a+side, dist)
		case nseg:
			a := t.angles[nseg-1]
			q = pt.Offset(a+geom.Deg180, p.DiffusionInset).Offset(a+side, dist)
		default:
			prev, next := t.angles[i-1], t.angles[i]
			q = pt.Offset(next+side, dist)
			if prev != next {
				q = geom.Intersect(pt.Offset(prev+side, dist), prev, q, next)
			}
		}
		out = append(out, q.Grid())
	}
	return out
}
