package tech

import (
	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
)

// Special selects an alternative geometry mode for a primitive node.
type Special string

// Special geometry modes.
const (
	Normal     Special = ""
	Serpentine Special = "serpentine"
	Polygonal  Special = "polygonal"
)

// Function classifies what a primitive does. It is informational only.
type Function string

// Node functions.
const (
	FuncPin        Function = "pin"
	FuncContact    Function = "contact"
	FuncTransistor Function = "transistor"
	FuncNode       Function = "node"
	FuncConnect    Function = "connect"
)

// Indices into PrimitiveNode.SpecialValues for serpentine transistors.
const (
	SerpDiffusionInset = iota
	SerpDiffusionExtend
	SerpGateWidth
	SerpPolyInset
	SerpPolyExtend
)

// SerpentineParams are the decoded special values of a serpentine
// transistor, in grid units.
type SerpentineParams struct {
	DiffusionInset  float64
	DiffusionExtend float64
	GateWidth       float64
	PolyInset       float64
	PolyExtend      float64
}

// PortProto is a connection site on a primitive node. The four edges bound
// the port area; Angle and AngleRange (tenths of a degree) give the
// directions arcs may leave in.
type PortProto struct {
	Name       string         `json:"name"`
	Angle      int            `json:"angle"`
	AngleRange int            `json:"angle_range"`
	Left       EdgeCoordinate `json:"left"`
	Bottom     EdgeCoordinate `json:"bottom"`
	Right      EdgeCoordinate `json:"right"`
	Top        EdgeCoordinate `json:"top"`
	Arcs       []string       `json:"arcs,omitempty"`
}

// Box resolves the port area for an instance of size sx by sy centered on the
// origin.
func (p PortProto) Box(sx, sy int64) geom.Rect {
	return geom.Rect{
		LX: p.Left.Resolve(0, sx),
		LY: p.Bottom.Resolve(0, sy),
		HX: p.Right.Resolve(0, sx),
		HY: p.Top.Resolve(0, sy),
	}
}

// CenterPort is a port covering the center point of the node.
func CenterPort(name string, arcs ...string) PortProto {
	return PortProto{
		Name: name, AngleRange: 1800,
		Left: AtCenter(), Bottom: AtCenter(), Right: AtCenter(), Top: AtCenter(),
		Arcs: arcs,
	}
}

// IndentedPort is a port covering the node box shrunk by d on every side.
func IndentedPort(name string, d int64, arcs ...string) PortProto {
	return PortProto{
		Name: name, AngleRange: 1800,
		Left: FromLeftEdge(d), Bottom: FromBottomEdge(d), Right: FromRightEdge(d), Top: FromTopEdge(d),
		Arcs: arcs,
	}
}

// PrimitiveNode is the immutable template of a node primitive.
//
// Layers are drawn in order. ElectricalLayers, when set, replaces Layers for
// electrical (connectivity) requests. SpecialValues is interpreted by the
// Special mode; serpentine transistors decode it with [PrimitiveNode.SerpentineParams].
type PrimitiveNode struct {
	Name             string      `json:"name"`
	Function         Function    `json:"function,omitempty"`
	Layers           []NodeLayer `json:"layers"`
	ElectricalLayers []NodeLayer `json:"electrical_layers,omitempty"`
	Ports            []PortProto `json:"ports"`
	DefaultWidth     int64       `json:"default_width"`
	DefaultHeight    int64       `json:"default_height"`
	Special          Special     `json:"special,omitempty"`
	SpecialValues    [6]float64  `json:"special_values"`
	Wipable          bool        `json:"wipable,omitempty"`
	Index            int         `json:"index"`
}

// LayersFor returns the layer list for an electrical or visual request.
func (n *PrimitiveNode) LayersFor(electrical bool) []NodeLayer {
	if electrical && len(n.ElectricalLayers) > 0 {
		return n.ElectricalLayers
	}
	return n.Layers
}

// SerpentineParams decodes SpecialValues for serpentine transistors.
func (n *PrimitiveNode) SerpentineParams() SerpentineParams {
	v := n.SpecialValues
	return SerpentineParams{
		DiffusionInset:  v[SerpDiffusionInset],
		DiffusionExtend: v[SerpDiffusionExtend],
		GateWidth:       v[SerpGateWidth],
		PolyInset:       v[SerpPolyInset],
		PolyExtend:      v[SerpPolyExtend],
	}
}

// PortIndex returns the index of the named port, or -1.
func (n *PrimitiveNode) PortIndex(name string) int {
	for i, p := range n.Ports {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks the template for configuration errors.
func (n *PrimitiveNode) Validate() error {
	if err := errors.ValidateName("node", n.Name); err != nil {
		return err
	}
	if len(n.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q has no layers", n.Name)
	}
	if n.ElectricalLayers != nil && len(n.ElectricalLayers) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"node %q: electrical layer list is empty; omit it to reuse the layers", n.Name)
	}
	if n.DefaultWidth < 0 || n.DefaultHeight < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q: negative default size %dx%d",
			n.Name, n.DefaultWidth, n.DefaultHeight)
	}

	seen := make(map[string]bool, len(n.Ports))
	for _, p := range n.Ports {
		if err := errors.ValidateName("port", p.Name); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeDuplicateName, "node %q: duplicate port %q", n.Name, p.Name)
		}
		seen[p.Name] = true
	}

	for _, set := range [][]NodeLayer{n.Layers, n.ElectricalLayers} {
		for _, nl := range set {
			if err := n.validateLayer(nl); err != nil {
				return err
			}
		}
	}

	switch n.Special {
	case Normal, Polygonal:
	case Serpentine:
		if len(n.Ports) < 4 {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"serpentine node %q needs at least 4 ports, has %d", n.Name, len(n.Ports))
		}
		for i, v := range n.SpecialValues {
			if v < 0 {
				return errors.New(errors.ErrCodeInvalidTemplate,
					"serpentine node %q: special value %d is negative", n.Name, i)
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q: unknown special mode %q", n.Name, n.Special)
	}
	return nil
}

func (n *PrimitiveNode) validateLayer(nl NodeLayer) error {
	if nl.Layer == nil {
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q has a layer template without a layer", n.Name)
	}
	name := nl.Layer.Name
	if !nl.Style.Valid() {
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q layer %q: unknown style %q", n.Name, name, nl.Style)
	}
	if nl.Port != NoPort && (nl.Port < 0 || nl.Port >= len(n.Ports)) {
		return errors.New(errors.ErrCodeInvalidTemplate, "node %q layer %q: port %d out of range", n.Name, name, nl.Port)
	}

	switch nl.Representation {
	case Points:
		return errors.ValidatePointCount(n.Name, name, string(nl.Representation), len(nl.Points), 1, false)
	case Box:
		return errors.ValidatePointCount(n.Name, name, string(nl.Representation), len(nl.Points), 2, true)
	case MultiCutBox:
		if err := errors.ValidatePointCount(n.Name, name, string(nl.Representation), len(nl.Points), 2, true); err != nil {
			return err
		}
		c := nl.Cut
		if c.SizeX <= 0 || c.SizeY <= 0 {
			return errors.New(errors.ErrCodeInvalidTemplate, "node %q layer %q: cut size %dx%d must be positive",
				n.Name, name, c.SizeX, c.SizeY)
		}
		if c.Sep1D < 0 || c.Sep2D < 0 {
			return errors.New(errors.ErrCodeInvalidTemplate, "node %q layer %q: negative cut spacing", n.Name, name)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidTemplate, "node %q layer %q: unknown representation %q",
		n.Name, name, nl.Representation)
}

func (n *PrimitiveNode) clone() *PrimitiveNode {
	c := *n
	c.Layers = cloneLayers(n.Layers)
	c.ElectricalLayers = cloneLayers(n.ElectricalLayers)
	c.Ports = make([]PortProto, len(n.Ports))
	for i, p := range n.Ports {
		p.Arcs = append([]string(nil), p.Arcs...)
		c.Ports[i] = p
	}
	return &c
}

func cloneLayers(in []NodeLayer) []NodeLayer {
	if in == nil {
		return nil
	}
	out := make([]NodeLayer, len(in))
	for i, nl := range in {
		out[i] = nl.clone()
	}
	return out
}
