package shape

import (
	"fmt"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/shape/serpentine"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// PortShape returns the area of port on a node instance. Box ports give a
// closed rectangle; ports of serpentine instances follow the trace and are
// open polylines.
func (b *Builder) PortShape(n *tech.PrimitiveNode, inst Instance, port int) (Polygon, error) {
	if port < 0 || port >= len(n.Ports) {
		return Polygon{}, errors.New(errors.ErrCodeNotFound, "node %q has no port %d", n.Name, port)
	}
	if err := errors.ValidateSize(n.Name, inst.SizeX, inst.SizeY); err != nil {
		return Polygon{}, err
	}
	layers := n.LayersFor(inst.Electrical)

	var poly Polygon
	if n.Special == tech.Serpentine && inst.Trace != nil {
		t, err := serpentine.New(inst.Trace, layers, n.SerpentineParams())
		if err != nil {
			return Polygon{}, fmt.Errorf("node %q: %w", n.Name, err)
		}
		pts, err := t.Port(port)
		if err != nil {
			return Polygon{}, fmt.Errorf("node %q: %w", n.Name, err)
		}
		poly = Polygon{Points: pts, Style: tech.Opened, Layer: portLayer(layers, port), Port: port}
	} else {
		r := n.Ports[port].Box(inst.SizeX, inst.SizeY)
		if err := b.checkRect(n.Name, n.Ports[port].Name, r); err != nil {
			return Polygon{}, err
		}
		poly = Polygon{Points: r.Points(), Style: tech.Closed, Layer: portLayer(layers, port), Port: port}
	}

	polys := []Polygon{poly}
	place(polys, inst.Orient, inst.Anchor)
	return polys[0], nil
}

// portCenter locates port in the node's local frame. Serpentine ports past
// the transistor's own port set fall back to the template box.
func portCenter(n *tech.PrimitiveNode, inst Instance, t *serpentine.Transistor, port int) (geom.Point, error) {
	if t != nil {
		if pts, err := t.Port(port); err == nil {
			return geom.Bounds(pts).Center(), nil
		}
	}
	if port >= len(n.Ports) {
		return geom.Point{}, errors.New(errors.ErrCodeNotFound, "node %q has no port %d", n.Name, port)
	}
	return n.Ports[port].Box(inst.SizeX, inst.SizeY).Center(), nil
}
