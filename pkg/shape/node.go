package shape

import (
	"fmt"
	"time"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/shape/multicut"
	"github.com/matzehuels/primgeom/pkg/shape/serpentine"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// NodeShapes builds the polygons of one node instance.
func (b *Builder) NodeShapes(n *tech.PrimitiveNode, inst Instance) ([]Polygon, error) {
	start := time.Now()
	if err := errors.ValidateSize(n.Name, inst.SizeX, inst.SizeY); err != nil {
		return nil, err
	}
	if len(inst.Negated) > len(n.Ports) {
		return nil, errors.New(errors.ErrCodeInvalidInstance,
			"node %q: %d negation flags for %d ports", n.Name, len(inst.Negated), len(n.Ports))
	}
	layers := n.LayersFor(inst.Electrical)

	if n.Special == tech.Polygonal && inst.Trace != nil {
		nl := layers[0]
		polys := []Polygon{{
			Points: append([]geom.Point(nil), inst.Trace...),
			Style:  nl.Style,
			Layer:  nl.Layer,
			Port:   nl.Port,
			Text:   nl.Text,
		}}
		place(polys, inst.Orient, inst.Anchor)
		observability.Shapes().OnNodeShapes(n.Name, 1, time.Since(start))
		return polys, nil
	}

	if n.Wipable && inst.Wiped {
		observability.Shapes().OnNodeShapes(n.Name, 0, time.Since(start))
		return nil, nil
	}

	var (
		polys []Polygon
		serp  *serpentine.Transistor
		err   error
	)
	if n.Special == tech.Serpentine && inst.Trace != nil {
		serp, err = serpentine.New(inst.Trace, layers, n.SerpentineParams())
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		polys = serpentineShapes(serp)
	} else {
		polys, err = b.layerShapes(n, layers, inst)
		if err != nil {
			return nil, err
		}
	}

	for port, neg := range inst.Negated {
		if !neg {
			continue
		}
		c, err := portCenter(n, inst, serp, port)
		if err != nil {
			return nil, err
		}
		polys = append(polys, b.bubble(n, layers, port, c))
	}

	place(polys, inst.Orient, inst.Anchor)
	observability.Shapes().OnNodeShapes(n.Name, len(polys), time.Since(start))
	return polys, nil
}

// layerShapes resolves each layer template against the instance size.
func (b *Builder) layerShapes(n *tech.PrimitiveNode, layers []tech.NodeLayer, inst Instance) ([]Polygon, error) {
	polys := make([]Polygon, 0, len(layers))
	emit := func(nl tech.NodeLayer, pts []geom.Point) {
		polys = append(polys, Polygon{Points: pts, Style: nl.Style, Layer: nl.Layer, Port: nl.Port, Text: nl.Text})
	}

	for _, nl := range layers {
		switch nl.Representation {
		case tech.Box:
			r := nl.Box(inst.SizeX, inst.SizeY)
			if err := b.checkRect(n.Name, nl.LayerName(), r); err != nil {
				return nil, err
			}
			emit(nl, boxPoints(nl.Style, r))

		case tech.Points:
			emit(nl, nl.Resolve(inst.SizeX, inst.SizeY))

		case tech.MultiCutBox:
			area := nl.Box(inst.SizeX, inst.SizeY)
			if err := b.checkRect(n.Name, nl.LayerName(), area); err != nil {
				return nil, err
			}
			cuts := multicut.New(area, nl.Cut)
			for _, r := range cuts.Cuts(inst.ReasonableCutsOnly) {
				emit(nl, boxPoints(nl.Style, r))
			}
		}
	}
	return polys, nil
}

// boxPoints converts a rectangle to polygon points. Circular styles become
// a center and a rim point on the right edge.
func boxPoints(style tech.Style, r geom.Rect) []geom.Point {
	if style == tech.Circle || style == tech.Disc {
		c := r.Center()
		return []geom.Point{c, {X: r.HX, Y: c.Y}}
	}
	return r.Points()
}

func serpentineShapes(t *serpentine.Transistor) []Polygon {
	polys := make([]Polygon, t.Count())
	for i := range polys {
		nl := t.Layer(i)
		polys[i] = Polygon{Points: t.Polygon(i), Style: nl.Style, Layer: nl.Layer, Port: nl.Port, Text: nl.Text}
	}
	return polys
}

// bubble draws a negation bubble just outside port, on the port's layer.
func (b *Builder) bubble(n *tech.PrimitiveNode, layers []tech.NodeLayer, port int, at geom.Point) Polygon {
	size := b.bubbleSize()
	radius := float64(size) / 2
	center := geom.F(at).Offset(n.Ports[port].Angle, radius)
	return Polygon{
		Points: []geom.Point{center.Grid(), center.Offset(geom.Deg0, radius).Grid()},
		Style:  tech.Circle,
		Layer:  portLayer(layers, port),
		Port:   port,
	}
}

// portLayer returns the first layer carrying port, or the first layer.
func portLayer(layers []tech.NodeLayer, port int) *tech.Layer {
	for _, nl := range layers {
		if nl.Port == port {
			return nl.Layer
		}
	}
	return layers[0].Layer
}
