package shape

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// NegatingBubbleSize is the diameter of a negation bubble in lambda.
const NegatingBubbleSize = 1.2

// Polygon is one piece of output geometry. Port is tech.NoPort when the
// polygon belongs to no port.
type Polygon struct {
	Points []geom.Point         `json:"points"`
	Style  tech.Style           `json:"style"`
	Layer  *tech.Layer          `json:"layer"`
	Port   int                  `json:"port"`
	Text   *tech.TextAttachment `json:"text,omitempty"`
}

// Bounds returns the bounding box of the polygon's points.
func (p Polygon) Bounds() geom.Rect { return geom.Bounds(p.Points) }

// LayerName returns the polygon's layer name, or "".
func (p Polygon) LayerName() string {
	if p.Layer == nil {
		return ""
	}
	return p.Layer.Name
}

// Instance holds the per-placement parameters of a node.
type Instance struct {
	Anchor geom.Point       `json:"anchor"`
	SizeX  int64            `json:"size_x"`
	SizeY  int64            `json:"size_y"`
	Orient geom.Orientation `json:"orient"`

	// Trace is a centerline or outline relative to the anchor. Nil means
	// the instance has none.
	Trace []geom.Point `json:"trace,omitempty"`

	Electrical         bool `json:"electrical,omitempty"`
	ReasonableCutsOnly bool `json:"reasonable_cuts_only,omitempty"`

	// Wiped is decided by the caller from the pin's connections. It only
	// has an effect on wipable nodes.
	Wiped bool `json:"wiped,omitempty"`

	// Negated flags ports, by index, that draw a negation bubble.
	Negated []bool `json:"negated,omitempty"`
}

// DefaultInstance places n at the origin with its default size.
func DefaultInstance(n *tech.PrimitiveNode) Instance {
	return Instance{SizeX: n.DefaultWidth, SizeY: n.DefaultHeight}
}

// ArcInstance holds the per-placement parameters of an arc. The arc runs
// from Tail to Head.
type ArcInstance struct {
	Head  geom.Point `json:"head"`
	Tail  geom.Point `json:"tail"`
	Width int64      `json:"width"`

	ExtendHead      bool `json:"extend_head,omitempty"`
	ExtendTail      bool `json:"extend_tail,omitempty"`
	NegatedHead     bool `json:"negated_head,omitempty"`
	NegatedTail     bool `json:"negated_tail,omitempty"`
	DirectionalHead bool `json:"directional_head,omitempty"`
	DirectionalTail bool `json:"directional_tail,omitempty"`
}

// DefaultArcInstance connects tail to head with a's default width and end
// extension. Directional arcs point at the head.
func DefaultArcInstance(a *tech.ArcProto, tail, head geom.Point) ArcInstance {
	return ArcInstance{
		Head:            head,
		Tail:            tail,
		Width:           a.DefaultWidth,
		ExtendHead:      a.Extended,
		ExtendTail:      a.Extended,
		DirectionalHead: a.Directional,
	}
}

// Builder is the default shape generator. It holds no per-request state;
// one Builder may serve any number of goroutines.
type Builder struct {
	// Scale converts the lambda constants (bubble and arrow sizes).
	Scale tech.Scale

	// Logger receives geometry warnings. Nil discards them.
	Logger *log.Logger

	// Strict turns malformed boxes into errors instead of warnings.
	Strict bool
}

// NewBuilder creates a permissive builder.
func NewBuilder(scale tech.Scale, logger *log.Logger) *Builder {
	return &Builder{Scale: scale, Logger: logger}
}

var discard = log.New(io.Discard)

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return discard
	}
	return b.Logger
}

func (b *Builder) bubbleSize() int64 { return b.Scale.ToGrid(NegatingBubbleSize) }

// checkRect reports a malformed rectangle. In strict mode it returns an
// error; otherwise it warns and lets the caller emit the polygon.
func (b *Builder) checkRect(primitive, layer string, r geom.Rect) error {
	if !r.Malformed() {
		return nil
	}
	anomaly := &errors.AnomalyError{
		Primitive: primitive, Layer: layer,
		LX: r.LX, LY: r.LY, HX: r.HX, HY: r.HY,
	}
	if b.Strict {
		return errors.Wrap(errors.ErrCodeGeometryAnomaly, anomaly, "%s", primitive)
	}
	b.logger().Warn("malformed polygon", "primitive", primitive, "layer", layer, "rect", r)
	observability.Shapes().OnGeometryWarning(primitive, layer)
	return nil
}

// place orients every polygon about the origin and moves it to anchor.
func place(polys []Polygon, o geom.Orientation, anchor geom.Point) {
	for i := range polys {
		polys[i].Points = o.Transform(polys[i].Points, anchor)
	}
}
