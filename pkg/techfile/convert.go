package techfile

import (
	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// converter turns lambda values from the file into grid-unit templates.
type converter struct {
	s tech.Scale
}

func (c converter) g(lambda float64) int64 { return c.s.ToGrid(lambda) }

func (c converter) edge(what string, v []float64) (tech.EdgeCoordinate, error) {
	if len(v) != 2 {
		return tech.EdgeCoordinate{}, errors.New(errors.ErrCodeInvalidFormat,
			"%s: edge needs [multiplier, adder], got %d values", what, len(v))
	}
	return c.s.Edge(v[0], v[1]), nil
}

func (c converter) arc(t *tech.Technology, a arcT) (*tech.ArcProto, error) {
	proto := &tech.ArcProto{
		Name:         a.Name,
		DefaultWidth: c.g(a.Width),
		Extended:     a.Extended,
		Directional:  a.Directional,
	}
	for _, al := range a.Layers {
		l, err := t.Layer(al.Layer)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "arc %q", a.Name)
		}
		proto.Layers = append(proto.Layers, tech.ArcLayer{
			Layer:      l,
			GridOffset: c.g(al.Offset),
			Style:      styleOr(al.Style, tech.Filled),
		})
	}
	return proto, nil
}

func (c converter) node(t *tech.Technology, n nodeT) (*tech.PrimitiveNode, error) {
	proto := &tech.PrimitiveNode{
		Name:          n.Name,
		Function:      tech.Function(n.Function),
		DefaultWidth:  c.g(n.Width),
		DefaultHeight: c.g(n.Height),
		Special:       tech.Special(n.Special),
		Wipable:       n.Wipable,
	}
	if len(n.SpecialValues) > len(proto.SpecialValues) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"node %q: %d special values, at most %d", n.Name, len(n.SpecialValues), len(proto.SpecialValues))
	}
	for i, v := range n.SpecialValues {
		proto.SpecialValues[i] = float64(c.g(v))
	}

	for _, p := range n.Ports {
		port, err := c.port(n.Name, p)
		if err != nil {
			return nil, err
		}
		proto.Ports = append(proto.Ports, port)
	}

	var err error
	if proto.Layers, err = c.layers(t, proto, n.Layers); err != nil {
		return nil, err
	}
	if n.Electrical != nil {
		if proto.ElectricalLayers, err = c.layers(t, proto, n.Electrical); err != nil {
			return nil, err
		}
	}
	return proto, nil
}

func (c converter) port(node string, p portT) (tech.PortProto, error) {
	what := node + " port " + p.Name
	var port tech.PortProto
	switch {
	case p.Center:
		port = tech.CenterPort(p.Name, p.Arcs...)
	case p.Inset != nil:
		port = tech.IndentedPort(p.Name, c.g(*p.Inset), p.Arcs...)
	default:
		port = tech.PortProto{Name: p.Name, Arcs: p.Arcs}
		var err error
		if port.Left, err = c.edge(what+" left", p.Left); err != nil {
			return port, err
		}
		if port.Bottom, err = c.edge(what+" bottom", p.Bottom); err != nil {
			return port, err
		}
		if port.Right, err = c.edge(what+" right", p.Right); err != nil {
			return port, err
		}
		if port.Top, err = c.edge(what+" top", p.Top); err != nil {
			return port, err
		}
	}
	// Angles are written in degrees.
	port.Angle = int(p.Angle * 10)
	port.AngleRange = int(p.Range * 10)
	return port, nil
}

func (c converter) layers(t *tech.Technology, n *tech.PrimitiveNode, in []nodeLayerT) ([]tech.NodeLayer, error) {
	out := make([]tech.NodeLayer, 0, len(in))
	for _, nl := range in {
		layer, err := c.layer(t, n, nl)
		if err != nil {
			return nil, err
		}
		out = append(out, layer)
	}
	return out, nil
}

func (c converter) layer(t *tech.Technology, n *tech.PrimitiveNode, nl nodeLayerT) (tech.NodeLayer, error) {
	l, err := t.Layer(nl.Layer)
	if err != nil {
		return tech.NodeLayer{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "node %q", n.Name)
	}

	port := tech.NoPort
	if nl.Port != "" {
		if port = n.PortIndex(nl.Port); port < 0 {
			return tech.NodeLayer{}, errors.New(errors.ErrCodeInvalidTemplate,
				"node %q layer %q: unknown port %q", n.Name, nl.Layer, nl.Port)
		}
	}

	pts, repr, err := c.geometry(n.Name, nl)
	if err != nil {
		return tech.NodeLayer{}, err
	}
	out := tech.NodeLayer{
		Layer:          l,
		Port:           port,
		Style:          styleOr(nl.Style, tech.Filled),
		Representation: repr,
		Points:         pts,
	}

	if nl.Cut != nil {
		if len(nl.Cut.Size) != 2 {
			return out, errors.New(errors.ErrCodeInvalidFormat,
				"node %q layer %q: cut size needs [x, y]", n.Name, nl.Layer)
		}
		out.Representation = tech.MultiCutBox
		out.Cut = tech.CutExtra{
			SizeX: c.g(nl.Cut.Size[0]),
			SizeY: c.g(nl.Cut.Size[1]),
			Sep1D: c.g(nl.Cut.Sep1D),
			Sep2D: c.g(nl.Cut.Sep2D),
		}
	}
	if s := nl.Serpentine; s != nil {
		out.Serpentine = tech.SerpentineExtra{
			LWidth:       c.g(s.LWidth),
			RWidth:       c.g(s.RWidth),
			TopExtend:    c.g(s.TopExtend),
			BottomExtend: c.g(s.BottomExtend),
		}
	}
	if nl.Text != "" {
		out.Text = &tech.TextAttachment{
			Message:    nl.Text,
			Descriptor: tech.TextDescriptor{Size: c.g(nl.TextSize)},
		}
	}
	return out, nil
}

// geometry decodes the single geometry key of a layer.
func (c converter) geometry(node string, nl nodeLayerT) ([]tech.TechPoint, tech.Representation, error) {
	set := 0
	for _, ok := range []bool{nl.Box != "", nl.Inset != nil, nl.InsetXY != nil, nl.Points != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, "", errors.New(errors.ErrCodeInvalidFormat,
			"node %q layer %q: give exactly one of box, inset, inset_xy or points", node, nl.Layer)
	}

	switch {
	case nl.Box == "full":
		return tech.MakeFullBox(), tech.Box, nil
	case nl.Box == "center":
		return tech.MakeCenterBox(), tech.Box, nil
	case nl.Box != "":
		return nil, "", errors.New(errors.ErrCodeInvalidFormat,
			"node %q layer %q: unknown box %q", node, nl.Layer, nl.Box)
	case nl.Inset != nil:
		return tech.MakeIndented(c.g(*nl.Inset)), tech.Box, nil
	case nl.InsetXY != nil:
		if len(nl.InsetXY) != 2 {
			return nil, "", errors.New(errors.ErrCodeInvalidFormat,
				"node %q layer %q: inset_xy needs [x, y]", node, nl.Layer)
		}
		return tech.MakeIndentedXY(c.g(nl.InsetXY[0]), c.g(nl.InsetXY[1])), tech.Box, nil
	}

	pts := make([]tech.TechPoint, len(nl.Points))
	for i, p := range nl.Points {
		if len(p) != 4 {
			return nil, "", errors.New(errors.ErrCodeInvalidFormat,
				"node %q layer %q: point %d needs 4 values, got %d", node, nl.Layer, i, len(p))
		}
		pts[i] = tech.TechPoint{X: c.s.Edge(p[0], p[1]), Y: c.s.Edge(p[2], p[3])}
	}
	return pts, tech.Points, nil
}

func styleOr(s string, def tech.Style) tech.Style {
	if s == "" {
		return def
	}
	return tech.Style(s)
}
