package tech

import (
	"testing"

	"github.com/matzehuels/primgeom/pkg/errors"
)

func testTech(t *testing.T) *Technology {
	t.Helper()
	tc := New("test")
	if _, err := tc.AddLayer("metal-1", "metal"); err != nil {
		t.Fatal(err)
	}
	if _, err := tc.AddLayer("via", "cut"); err != nil {
		t.Fatal(err)
	}
	if _, err := tc.AddArc(&ArcProto{
		Name:         "metal-1",
		DefaultWidth: 1200,
		Extended:     true,
		Layers:       []ArcLayer{{Layer: &Layer{Name: "metal-1"}, Style: Filled}},
	}); err != nil {
		t.Fatal(err)
	}
	return tc
}

func pinNode(name string) *PrimitiveNode {
	return &PrimitiveNode{
		Name:          name,
		Function:      FuncPin,
		DefaultWidth:  1200,
		DefaultHeight: 1200,
		Wipable:       true,
		Layers: []NodeLayer{
			NewBoxLayer(&Layer{Name: "metal-1"}, 0, Filled, MakeFullBox()),
		},
		Ports: []PortProto{CenterPort("p", "metal-1")},
	}
}

func TestAddNodeCopiesAndIndexes(t *testing.T) {
	tc := testTech(t)

	orig := pinNode("pin-a")
	got, err := tc.AddNode(orig)
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	second, err := tc.AddNode(pinNode("pin-b"))
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	if got.Index != 0 || second.Index != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", got.Index, second.Index)
	}
	if orig.Index != 0 || got == orig {
		t.Error("AddNode must register a copy")
	}

	orig.Layers[0].Points[0] = TechPoint{X: FromCenter(99), Y: FromCenter(99)}
	orig.Ports[0].Arcs[0] = "changed"
	if got.Layers[0].Points[0] == orig.Layers[0].Points[0] {
		t.Error("registered node shares points with caller")
	}
	if got.Ports[0].Arcs[0] != "metal-1" {
		t.Error("registered node shares port arcs with caller")
	}

	l, _ := tc.Layer("metal-1")
	if got.Layers[0].Layer != l {
		t.Error("layer reference not rebound to technology layer")
	}
	if l.Index != 0 {
		t.Errorf("layer index = %d", l.Index)
	}

	if n, err := tc.Node("pin-b"); err != nil || n != second {
		t.Errorf("Node(pin-b) = %v, %v", n, err)
	}
}

func TestAddNodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *PrimitiveNode)
		code   errors.Code
	}{
		{"empty name", func(n *PrimitiveNode) { n.Name = "" }, errors.ErrCodeInvalidTemplate},
		{"no layers", func(n *PrimitiveNode) { n.Layers = nil }, errors.ErrCodeInvalidTemplate},
		{"empty electrical layers", func(n *PrimitiveNode) { n.ElectricalLayers = []NodeLayer{} }, errors.ErrCodeInvalidTemplate},
		{"polygonal with empty electrical layers", func(n *PrimitiveNode) {
			n.Special = Polygonal
			n.ElectricalLayers = []NodeLayer{}
		}, errors.ErrCodeInvalidTemplate},
		{"box with 3 points", func(n *PrimitiveNode) {
			n.Layers[0].Points = append(n.Layers[0].Points, TechPoint{})
		}, errors.ErrCodeInvalidTemplate},
		{"points with none", func(n *PrimitiveNode) {
			n.Layers[0].Representation = Points
			n.Layers[0].Points = nil
		}, errors.ErrCodeInvalidTemplate},
		{"multicut zero size", func(n *PrimitiveNode) {
			n.Layers[0].Representation = MultiCutBox
		}, errors.ErrCodeInvalidTemplate},
		{"unknown layer", func(n *PrimitiveNode) { n.Layers[0].Layer = &Layer{Name: "poly"} }, errors.ErrCodeInvalidTemplate},
		{"missing layer", func(n *PrimitiveNode) { n.Layers[0].Layer = nil }, errors.ErrCodeInvalidTemplate},
		{"bad style", func(n *PrimitiveNode) { n.Layers[0].Style = "hatched" }, errors.ErrCodeInvalidTemplate},
		{"port out of range", func(n *PrimitiveNode) { n.Layers[0].Port = 3 }, errors.ErrCodeInvalidTemplate},
		{"duplicate port", func(n *PrimitiveNode) { n.Ports = append(n.Ports, n.Ports[0]) }, errors.ErrCodeDuplicateName},
		{"unknown arc", func(n *PrimitiveNode) { n.Ports[0].Arcs = []string{"poly"} }, errors.ErrCodeInvalidTemplate},
		{"serpentine without ports", func(n *PrimitiveNode) { n.Special = Serpentine }, errors.ErrCodeInvalidTemplate},
		{"unknown special", func(n *PrimitiveNode) { n.Special = "spiral" }, errors.ErrCodeInvalidTemplate},
		{"negative size", func(n *PrimitiveNode) { n.DefaultWidth = -1 }, errors.ErrCodeInvalidTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testTech(t)
			n := pinNode("pin")
			tt.mutate(n)
			_, err := tc.AddNode(n)
			if !errors.Is(err, tt.code) {
				t.Errorf("AddNode error = %v, want code %s", err, tt.code)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("%v is not a configuration error", err)
			}
		})
	}
}

func TestLayersFor(t *testing.T) {
	visual := []NodeLayer{NewBoxLayer(&Layer{Name: "metal-1"}, 0, Filled, MakeFullBox())}
	wire := []NodeLayer{NewBoxLayer(&Layer{Name: "via"}, 0, Filled, MakeCenterBox())}

	tests := []struct {
		name       string
		electrical []NodeLayer
		request    bool
		want       []NodeLayer
	}{
		{"visual request", wire, false, visual},
		{"electrical set", wire, true, wire},
		{"electrical unset", nil, true, visual},
		{"electrical empty", []NodeLayer{}, true, visual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &PrimitiveNode{Layers: visual, ElectricalLayers: tt.electrical}
			got := n.LayersFor(tt.request)
			if len(got) != len(tt.want) || &got[0] != &tt.want[0] {
				t.Errorf("LayersFor(%v) = %v, want %v", tt.request, got, tt.want)
			}
		})
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	tc := testTech(t)
	if _, err := tc.AddNode(pinNode("pin")); err != nil {
		t.Fatal(err)
	}
	if _, err := tc.AddNode(pinNode("pin")); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("duplicate node error = %v", err)
	}
	if _, err := tc.AddLayer("via", "cut"); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("duplicate layer error = %v", err)
	}
}

func TestAddArcErrors(t *testing.T) {
	tests := []struct {
		name   string
		offset int64
		layer  string
	}{
		{"negative offset", -2, "metal-1"},
		{"odd offset", 3, "metal-1"},
		{"unknown layer", 0, "poly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testTech(t)
			_, err := tc.AddArc(&ArcProto{
				Name:   "wire",
				Layers: []ArcLayer{{Layer: &Layer{Name: tt.layer}, GridOffset: tt.offset, Style: Filled}},
			})
			if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
				t.Errorf("AddArc error = %v", err)
			}
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	tc := testTech(t)
	if _, err := tc.Node("nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Node error = %v", err)
	}
	if _, err := tc.Arc("nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Arc error = %v", err)
	}
	if _, err := tc.Layer("nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Layer error = %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := testTech(t), testTech(t)
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical technologies have different fingerprints")
	}
	if _, err := b.AddNode(pinNode("pin")); err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprint ignores nodes")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("fingerprint length = %d", len(a.Fingerprint()))
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	a := testTech(t)
	if err := c.Register(a); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !a.Sealed() || a.Index != 0 {
		t.Errorf("sealed=%v index=%d", a.Sealed(), a.Index)
	}
	if _, err := a.AddNode(pinNode("late")); !errors.Is(err, errors.ErrCodeInvalidTechnology) {
		t.Errorf("add after seal error = %v", err)
	}
	if err := c.Register(testTech(t)); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("duplicate register error = %v", err)
	}
	if err := c.Register(New("empty")); !errors.Is(err, errors.ErrCodeInvalidTechnology) {
		t.Errorf("empty register error = %v", err)
	}

	b := testTech(t)
	b.Name = "other"
	if err := c.Register(b); err != nil {
		t.Fatal(err)
	}
	if b.Index != 1 {
		t.Errorf("second index = %d", b.Index)
	}
	if got, err := c.Lookup("other"); err != nil || got != b {
		t.Errorf("Lookup = %v, %v", got, err)
	}
	if _, err := c.Lookup("missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Lookup missing error = %v", err)
	}
	if names := c.Names(); len(names) != 2 || names[0] != "other" || names[1] != "test" {
		t.Errorf("Names = %v", names)
	}
}
