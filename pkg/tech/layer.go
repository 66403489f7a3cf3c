package tech

import "github.com/matzehuels/primgeom/pkg/geom"

// Style is the fill style of a layer template and of the polygons built
// from it.
type Style string

// Polygon styles.
const (
	Filled  Style = "filled"  // closed and filled polygon
	Closed  Style = "closed"  // closed outline
	Opened  Style = "opened"  // open polyline
	Vectors Style = "vectors" // independent segments, two points each
	Circle  Style = "circle"  // outline circle: center, then a rim point
	Disc    Style = "disc"    // filled circle: center, then a rim point
	Text    Style = "text"    // text anchored at the first point
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case Filled, Closed, Opened, Vectors, Circle, Disc, Text:
		return true
	}
	return false
}

// Representation says how a node layer's points are interpreted.
type Representation string

// Layer representations.
const (
	Points      Representation = "points"
	Box         Representation = "box"
	MultiCutBox Representation = "multicut"
)

// NoPort marks a node layer that carries no port.
const NoPort = -1

// Layer is a mask or drawing layer of a technology.
type Layer struct {
	Name     string `json:"name"`
	Function string `json:"function,omitempty"`
	Index    int    `json:"index"`
}

// SerpentineExtra holds the per-layer widths used when a transistor follows
// a trace. Widths are grid offsets from the centerline; the extensions push
// the first and last segment ends outward.
type SerpentineExtra struct {
	LWidth       int64 `json:"lwidth,omitempty" toml:"lwidth"`
	RWidth       int64 `json:"rwidth,omitempty" toml:"rwidth"`
	TopExtend    int64 `json:"top_extend,omitempty" toml:"top_extend"`
	BottomExtend int64 `json:"bottom_extend,omitempty" toml:"bottom_extend"`
}

// CutExtra holds the fixed cut size and minimum spacings of a multi-cut
// layer. Sep1D applies to a single row or column of cuts, Sep2D to arrays of
// two or more in both directions.
type CutExtra struct {
	SizeX int64 `json:"size_x" toml:"size_x"`
	SizeY int64 `json:"size_y" toml:"size_y"`
	Sep1D int64 `json:"sep_1d" toml:"sep_1d"`
	Sep2D int64 `json:"sep_2d" toml:"sep_2d"`
}

// TextDescriptor places and sizes a text attachment.
type TextDescriptor struct {
	Size   int64  `json:"size"`
	Anchor string `json:"anchor,omitempty"`
}

// TextAttachment is a message carried by a layer and copied onto its
// polygons.
type TextAttachment struct {
	Message    string         `json:"message"`
	Descriptor TextDescriptor `json:"descriptor"`
}

// NodeLayer is one layer's contribution to a primitive node.
type NodeLayer struct {
	Layer          *Layer          `json:"layer"`
	Port           int             `json:"port"`
	Style          Style           `json:"style"`
	Representation Representation  `json:"representation"`
	Points         []TechPoint     `json:"points"`
	Serpentine     SerpentineExtra `json:"serpentine,omitzero"`
	Cut            CutExtra        `json:"cut,omitzero"`
	Text           *TextAttachment `json:"text,omitempty"`
}

// NewBoxLayer is a box layer covering pts[0]..pts[1].
func NewBoxLayer(l *Layer, port int, style Style, pts []TechPoint) NodeLayer {
	return NodeLayer{Layer: l, Port: port, Style: style, Representation: Box, Points: pts}
}

// NewPointsLayer is an explicit polygon layer.
func NewPointsLayer(l *Layer, port int, style Style, pts []TechPoint) NodeLayer {
	return NodeLayer{Layer: l, Port: port, Style: style, Representation: Points, Points: pts}
}

// NewMultiCutLayer is a repeating cut layer whose cut centers stay inside
// pts[0]..pts[1].
func NewMultiCutLayer(l *Layer, port int, style Style, pts []TechPoint, cut CutExtra) NodeLayer {
	return NodeLayer{Layer: l, Port: port, Style: style, Representation: MultiCutBox, Points: pts, Cut: cut}
}

// NewSerpentineLayer is a box layer that also knows how to follow a trace.
func NewSerpentineLayer(l *Layer, port int, style Style, pts []TechPoint, serp SerpentineExtra) NodeLayer {
	return NodeLayer{Layer: l, Port: port, Style: style, Representation: Box, Points: pts, Serpentine: serp}
}

// Box resolves a two-point layer for an instance of size sx by sy centered
// on the origin. The result is not normalized.
func (nl NodeLayer) Box(sx, sy int64) geom.Rect {
	lo := nl.Points[0].Resolve(sx, sy)
	hi := nl.Points[1].Resolve(sx, sy)
	return geom.Rect{LX: lo.X, LY: lo.Y, HX: hi.X, HY: hi.Y}
}

// Resolve places every point for an instance of size sx by sy.
func (nl NodeLayer) Resolve(sx, sy int64) []geom.Point {
	out := make([]geom.Point, len(nl.Points))
	for i, p := range nl.Points {
		out[i] = p.Resolve(sx, sy)
	}
	return out
}

// LayerName returns the layer's name, or "" for an unset layer.
func (nl NodeLayer) LayerName() string {
	if nl.Layer == nil {
		return ""
	}
	return nl.Layer.Name
}

func (nl NodeLayer) clone() NodeLayer {
	c := nl
	c.Points = append([]TechPoint(nil), nl.Points...)
	if nl.Text != nil {
		t := *nl.Text
		c.Text = &t
	}
	return c
}

// ArcLayer is one layer of an arc. GridOffset is how far the layer is inset
// from the arc's full width, summed over both sides.
type ArcLayer struct {
	Layer      *Layer `json:"layer"`
	GridOffset int64  `json:"grid_offset"`
	Style      Style  `json:"style"`
}

// Width returns the rendered width for an arc of the given full width.
// A negative result means the layer vanishes at this width.
func (al ArcLayer) Width(fullWidth int64) int64 {
	return fullWidth - al.GridOffset
}
