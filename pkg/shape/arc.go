package shape

import (
	"time"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// ArrowLength is the barb length of a directional arc's arrow in lambda.
const ArrowLength = 1.0

// arrowSpread is the angle between the shaft and each barb.
const arrowSpread = 300

// ArcShapes builds the polygons of one arc instance.
//
// Each layer is inset from the instance width by its grid offset; layers
// that vanish at this width are skipped. Zero-width layers and layers of
// negated arcs are drawn as open two-point paths. A negated end is pulled
// back by the bubble diameter and the gap is filled with a bubble.
func (b *Builder) ArcShapes(a *tech.ArcProto, inst ArcInstance) ([]Polygon, error) {
	start := time.Now()
	if inst.Width < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInstance, "arc %q: negative width %d", a.Name, inst.Width)
	}

	angle := geom.Angle(inst.Tail, inst.Head)
	bubble := float64(b.bubbleSize())
	var polys []Polygon

	for _, al := range a.Layers {
		w := al.Width(inst.Width)
		if w < 0 {
			continue
		}
		tail, head := geom.F(inst.Tail), geom.F(inst.Head)

		if w == 0 || inst.NegatedHead || inst.NegatedTail {
			if inst.NegatedTail {
				tail = tail.Offset(angle, bubble)
			}
			if inst.NegatedHead {
				head = head.Offset(angle+geom.Deg180, bubble)
			}
			polys = append(polys, Polygon{
				Points: []geom.Point{tail.Grid(), head.Grid()},
				Style:  tech.Opened,
				Layer:  al.Layer,
				Port:   tech.NoPort,
			})
			continue
		}

		half := float64(w) / 2
		if inst.ExtendTail {
			tail = tail.Offset(angle+geom.Deg180, half)
		}
		if inst.ExtendHead {
			head = head.Offset(angle, half)
		}
		polys = append(polys, Polygon{
			Points: []geom.Point{
				tail.Offset(angle+geom.Deg270, half).Grid(),
				head.Offset(angle+geom.Deg270, half).Grid(),
				head.Offset(angle+geom.Deg90, half).Grid(),
				tail.Offset(angle+geom.Deg90, half).Grid(),
			},
			Style: al.Style,
			Layer: al.Layer,
			Port:  tech.NoPort,
		})
	}

	first := a.Layers[0].Layer
	radius := bubble / 2
	if inst.NegatedTail {
		c := geom.F(inst.Tail).Offset(angle, radius)
		polys = append(polys, circle(c, radius, first))
	}
	if inst.NegatedHead {
		c := geom.F(inst.Head).Offset(angle+geom.Deg180, radius)
		polys = append(polys, circle(c, radius, first))
	}

	if inst.DirectionalHead {
		polys = append(polys, b.arrow(inst.Tail, inst.Head, first))
	}
	if inst.DirectionalTail {
		polys = append(polys, b.arrow(inst.Head, inst.Tail, first))
	}

	observability.Shapes().OnArcShapes(a.Name, len(polys), time.Since(start))
	return polys, nil
}

func circle(center geom.FPoint, radius float64, layer *tech.Layer) Polygon {
	return Polygon{
		Points: []geom.Point{center.Grid(), center.Offset(geom.Deg0, radius).Grid()},
		Style:  tech.Circle,
		Layer:  layer,
		Port:   tech.NoPort,
	}
}

// arrow draws a shaft from from to tip and two barbs at tip, as three
// independent segments.
func (b *Builder) arrow(from, tip geom.Point, layer *tech.Layer) Polygon {
	back := geom.Angle(tip, from)
	if from == tip {
		back = geom.Deg180
	}
	length := float64(b.Scale.ToGrid(ArrowLength))
	t := geom.F(tip)
	return Polygon{
		Points: []geom.Point{
			from, tip,
			tip, t.Offset(back+arrowSpread, length).Grid(),
			tip, t.Offset(back-arrowSpread, length).Grid(),
		},
		Style: tech.Vectors,
		Layer: layer,
		Port:  tech.NoPort,
	}
}
