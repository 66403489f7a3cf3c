// Package sample builds a small CMOS-like technology in code. It covers every
// geometry mode of the engine and is used by tests and as the CLI default.
//
// All dimensions are written in lambda and converted once through the
// technology scale.
package sample

import (
	"sync"

	"github.com/matzehuels/primgeom/pkg/tech"
)

// Name is the registered name of the sample technology.
const Name = "mocmos-sample"

// Layer names.
const (
	Metal1  = "metal-1"
	Metal2  = "metal-2"
	Poly    = "poly"
	Active  = "active"
	NSelect = "n-select"
	PSelect = "p-select"
	NWell   = "n-well"
	Contact = "contact"
	Via1    = "via-1"
	Artwork = "artwork"
)

var (
	once    sync.Once
	builtin *tech.Technology
)

// Technology returns the shared, sealed sample technology.
func Technology() *tech.Technology {
	once.Do(func() {
		t, err := Build()
		if err != nil {
			panic("sample: " + err.Error())
		}
		t.Seal()
		builtin = t
	})
	return builtin
}

// Build constructs a fresh, unsealed copy of the sample technology.
func Build() (*tech.Technology, error) {
	t := tech.New(Name)
	t.Description = "CMOS-like sample with contacts, serpentine transistors and schematic wires"
	b := &builder{t: t, s: t.Scale}

	for _, l := range []struct{ name, fn string }{
		{Metal1, "metal"}, {Metal2, "metal"}, {Poly, "gate"}, {Active, "diffusion"},
		{NSelect, "implant"}, {PSelect, "implant"}, {NWell, "well"},
		{Contact, "cut"}, {Via1, "cut"}, {Artwork, "art"},
	} {
		if _, err := t.AddLayer(l.name, l.fn); err != nil {
			return nil, err
		}
	}

	steps := []func() error{
		b.arcs,
		b.pins,
		b.contacts,
		func() error { return b.transistor("n-transistor", NSelect, "") },
		func() error { return b.transistor("p-transistor", PSelect, NWell) },
		b.pureNodes,
		b.schematic,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

type builder struct {
	t *tech.Technology
	s tech.Scale
}

func (b *builder) g(lambda float64) int64 { return b.s.ToGrid(lambda) }

func (b *builder) layer(name string) *tech.Layer {
	l, err := b.t.Layer(name)
	if err != nil {
		panic(err)
	}
	return l
}

func (b *builder) arcs() error {
	arcs := []*tech.ArcProto{
		{
			Name: Metal1, DefaultWidth: b.g(3), Extended: true,
			Layers: []tech.ArcLayer{{Layer: b.layer(Metal1), Style: tech.Filled}},
		},
		{
			Name: Metal2, DefaultWidth: b.g(3), Extended: true,
			Layers: []tech.ArcLayer{{Layer: b.layer(Metal2), Style: tech.Filled}},
		},
		{
			Name: Poly, DefaultWidth: b.g(2), Extended: true,
			Layers: []tech.ArcLayer{{Layer: b.layer(Poly), Style: tech.Filled}},
		},
		{
			Name: "n-active", DefaultWidth: b.g(7), Extended: true,
			Layers: []tech.ArcLayer{
				{Layer: b.layer(Active), GridOffset: b.g(4), Style: tech.Filled},
				{Layer: b.layer(NSelect), Style: tech.Filled},
			},
		},
		{
			Name: "wire", Directional: true,
			Layers: []tech.ArcLayer{{Layer: b.layer(Artwork), Style: tech.Filled}},
		},
	}
	for _, a := range arcs {
		if _, err := b.t.AddArc(a); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) pins() error {
	for _, p := range []struct {
		name, layer string
		size        float64
	}{
		{"metal-1-pin", Metal1, 3},
		{"metal-2-pin", Metal2, 3},
		{"poly-pin", Poly, 2},
	} {
		_, err := b.t.AddNode(&tech.PrimitiveNode{
			Name:          p.name,
			Function:      tech.FuncPin,
			DefaultWidth:  b.g(p.size),
			DefaultHeight: b.g(p.size),
			Wipable:       true,
			Layers: []tech.NodeLayer{
				tech.NewBoxLayer(b.layer(p.layer), 0, tech.Closed, tech.MakeFullBox()),
			},
			Ports: []tech.PortProto{tech.CenterPort(p.name[:len(p.name)-4], p.layer)},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) contacts() error {
	cut := tech.CutExtra{SizeX: b.g(2), SizeY: b.g(2), Sep1D: b.g(2), Sep2D: b.g(3)}

	contacts := []struct {
		name        string
		lower, cutL string
		arcs        []string
	}{
		{"metal-1-poly-contact", Poly, Contact, []string{Metal1, Poly}},
		{"metal-1-metal-2-contact", Metal2, Via1, []string{Metal1, Metal2}},
	}
	for _, c := range contacts {
		_, err := b.t.AddNode(&tech.PrimitiveNode{
			Name:          c.name,
			Function:      tech.FuncContact,
			DefaultWidth:  b.g(5),
			DefaultHeight: b.g(5),
			Layers: []tech.NodeLayer{
				tech.NewBoxLayer(b.layer(Metal1), 0, tech.Filled, tech.MakeIndented(b.g(0.5))),
				tech.NewBoxLayer(b.layer(c.lower), 0, tech.Filled, tech.MakeIndented(b.g(0.5))),
				tech.NewMultiCutLayer(b.layer(c.cutL), tech.NoPort, tech.Filled, tech.MakeIndented(b.g(2.5)), cut),
			},
			Ports: []tech.PortProto{tech.IndentedPort("center", b.g(1.5), c.arcs...)},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// transistor builds a serpentine MOS device. The gate runs along X; the trace
// of a serpentine instance is the gate centerline.
func (b *builder) transistor(name, sel, well string) error {
	g := b.g
	polyY := []tech.TechPoint{
		{X: tech.FromLeftEdge(0), Y: tech.FromCenter(-g(1))},
		{X: tech.FromRightEdge(0), Y: tech.FromCenter(g(1))},
	}
	half := func(lo, hi float64) []tech.TechPoint {
		return []tech.TechPoint{
			{X: tech.FromLeftEdge(g(2)), Y: tech.FromCenter(g(lo))},
			{X: tech.FromRightEdge(g(2)), Y: tech.FromCenter(g(hi))},
		}
	}

	active := tech.NewSerpentineLayer(b.layer(Active), tech.NoPort, tech.Filled,
		tech.MakeIndentedXY(g(2), g(1)),
		tech.SerpentineExtra{LWidth: g(4), RWidth: g(4)})
	poly := tech.NewSerpentineLayer(b.layer(Poly), tech.NoPort, tech.Filled, polyY,
		tech.SerpentineExtra{LWidth: g(1), RWidth: g(1), TopExtend: g(2), BottomExtend: g(2)})
	selLayer := tech.NewSerpentineLayer(b.layer(sel), tech.NoPort, tech.Filled,
		tech.MakeFullBox(),
		tech.SerpentineExtra{LWidth: g(5), RWidth: g(5), TopExtend: g(2), BottomExtend: g(2)})

	layers := []tech.NodeLayer{active, poly, selLayer}

	// Electrically the diffusion is split by the gate into source and drain.
	polyLeft := poly
	polyLeft.Port = 0
	top := tech.NewSerpentineLayer(b.layer(Active), 1, tech.Filled, half(1, 4),
		tech.SerpentineExtra{LWidth: g(4), RWidth: -g(1)})
	bottom := tech.NewSerpentineLayer(b.layer(Active), 3, tech.Filled, half(-4, -1),
		tech.SerpentineExtra{LWidth: -g(1), RWidth: g(4)})
	electrical := []tech.NodeLayer{top, bottom, polyLeft, selLayer}

	if well != "" {
		w := tech.NewSerpentineLayer(b.layer(well), tech.NoPort, tech.Filled,
			tech.MakeFullBox(),
			tech.SerpentineExtra{LWidth: g(5), RWidth: g(5), TopExtend: g(2), BottomExtend: g(2)})
		layers = append(layers, w)
		electrical = append(electrical, w)
	}

	polyPort := func(pname string, angle int, left bool) tech.PortProto {
		p := tech.PortProto{
			Name: pname, Angle: angle, AngleRange: 900,
			Bottom: tech.FromCenter(-g(1)), Top: tech.FromCenter(g(1)),
			Arcs: []string{Poly},
		}
		if left {
			p.Left, p.Right = tech.FromLeftEdge(0), tech.FromLeftEdge(g(2))
		} else {
			p.Left, p.Right = tech.FromRightEdge(g(2)), tech.FromRightEdge(0)
		}
		return p
	}
	diffPort := func(pname string, angle int, upper bool) tech.PortProto {
		p := tech.PortProto{
			Name: pname, Angle: angle, AngleRange: 900,
			Left: tech.FromLeftEdge(g(2)), Right: tech.FromRightEdge(g(2)),
			Arcs: []string{"n-active", Metal1},
		}
		if upper {
			p.Bottom, p.Top = tech.FromTopEdge(g(3)), tech.FromTopEdge(g(1))
		} else {
			p.Bottom, p.Top = tech.FromBottomEdge(g(1)), tech.FromBottomEdge(g(3))
		}
		return p
	}

	_, err := b.t.AddNode(&tech.PrimitiveNode{
		Name:             name,
		Function:         tech.FuncTransistor,
		DefaultWidth:     g(7),
		DefaultHeight:    g(10),
		Special:          tech.Serpentine,
		Layers:           layers,
		ElectricalLayers: electrical,
		Ports: []tech.PortProto{
			polyPort("poly-left", 1800, true),
			diffPort("diff-top", 900, true),
			polyPort("poly-right", 0, false),
			diffPort("diff-bottom", 2700, false),
		},
		SpecialValues: [6]float64{
			tech.SerpDiffusionInset:  float64(g(0.5)),
			tech.SerpDiffusionExtend: float64(g(1.5)),
			tech.SerpGateWidth:       float64(g(2)),
			tech.SerpPolyInset:       float64(g(0.5)),
			tech.SerpPolyExtend:      float64(g(1)),
		},
	})
	return err
}

// pureNodes adds a polygonal metal node whose outline may be given by a
// trace.
func (b *builder) pureNodes() error {
	_, err := b.t.AddNode(&tech.PrimitiveNode{
		Name:          "metal-1-node",
		Function:      tech.FuncNode,
		DefaultWidth:  b.g(3),
		DefaultHeight: b.g(3),
		Special:       tech.Polygonal,
		Layers: []tech.NodeLayer{
			tech.NewBoxLayer(b.layer(Metal1), 0, tech.Filled, tech.MakeFullBox()),
		},
		Ports: []tech.PortProto{tech.IndentedPort("metal-1", 0, Metal1)},
	})
	return err
}

// schematic adds a wire pin and a buffer symbol. Negating the buffer's output
// draws an inverter.
func (b *builder) schematic() error {
	g := b.g
	wirePin := &tech.PrimitiveNode{
		Name:     "wire-pin",
		Function: tech.FuncPin,
		Wipable:  true,
		Layers: []tech.NodeLayer{
			tech.NewPointsLayer(b.layer(Artwork), 0, tech.Disc, []tech.TechPoint{
				{X: tech.AtCenter(), Y: tech.AtCenter()},
				{X: tech.FromCenter(g(0.25)), Y: tech.AtCenter()},
			}),
		},
		Ports: []tech.PortProto{tech.CenterPort("wire", "wire")},
	}
	if _, err := b.t.AddNode(wirePin); err != nil {
		return err
	}

	label := tech.NewPointsLayer(b.layer(Artwork), tech.NoPort, tech.Text, []tech.TechPoint{
		{X: tech.FromCenter(-g(1)), Y: tech.AtCenter()},
	})
	label.Text = &tech.TextAttachment{
		Message:    "buf",
		Descriptor: tech.TextDescriptor{Size: g(1), Anchor: "center"},
	}

	sidePort := func(name string, angle int, x tech.EdgeCoordinate) tech.PortProto {
		return tech.PortProto{
			Name: name, Angle: angle, AngleRange: 0,
			Left: x, Right: x, Bottom: tech.AtCenter(), Top: tech.AtCenter(),
			Arcs: []string{"wire"},
		}
	}

	_, err := b.t.AddNode(&tech.PrimitiveNode{
		Name:          "buffer",
		Function:      tech.FuncConnect,
		DefaultWidth:  g(6),
		DefaultHeight: g(6),
		Layers: []tech.NodeLayer{
			tech.NewPointsLayer(b.layer(Artwork), tech.NoPort, tech.Closed, []tech.TechPoint{
				{X: tech.FromLeftEdge(0), Y: tech.FromBottomEdge(0)},
				{X: tech.FromRightEdge(0), Y: tech.AtCenter()},
				{X: tech.FromLeftEdge(0), Y: tech.FromTopEdge(0)},
			}),
			label,
		},
		Ports: []tech.PortProto{
			sidePort("a", 1800, tech.FromLeftEdge(0)),
			sidePort("y", 0, tech.FromRightEdge(0)),
		},
	})
	return err
}
