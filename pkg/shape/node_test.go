package shape

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/tech"
	"github.com/matzehuels/primgeom/pkg/tech/sample"
)

func node(t *testing.T, name string) *tech.PrimitiveNode {
	t.Helper()
	n, err := sample.Technology().Node(name)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func newBuilder() *Builder { return NewBuilder(sample.Technology().Scale, nil) }

func points(polys []Polygon) [][]geom.Point {
	out := make([][]geom.Point, len(polys))
	for i, p := range polys {
		out[i] = p.Points
	}
	return out
}

type warnRecorder struct {
	observability.NoopShapeHooks
	mu       sync.Mutex
	warnings []string
}

func (w *warnRecorder) OnGeometryWarning(primitive, layer string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warnings = append(w.warnings, primitive+"/"+layer)
}

func TestPinOrientation(t *testing.T) {
	pin := node(t, "metal-1-pin")
	inst := DefaultInstance(pin)
	inst.Anchor = geom.Pt(1000, 0)
	inst.Orient = geom.Orientation{Angle: geom.Deg90}

	polys, err := newBuilder().NodeShapes(pin, inst)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]geom.Point{{geom.Pt(1600, -600), geom.Pt(1600, 600), geom.Pt(400, 600), geom.Pt(400, -600)}}
	if diff := cmp.Diff(want, points(polys)); diff != "" {
		t.Errorf("pin mismatch (-want +got):\n%s", diff)
	}
	if polys[0].Style != tech.Closed || polys[0].LayerName() != sample.Metal1 || polys[0].Port != 0 {
		t.Errorf("pin polygon = %+v", polys[0])
	}
}

func TestWipedPin(t *testing.T) {
	b := newBuilder()

	pin := node(t, "metal-1-pin")
	inst := DefaultInstance(pin)
	inst.Wiped = true
	polys, err := b.NodeShapes(pin, inst)
	if err != nil || len(polys) != 0 {
		t.Errorf("wiped pin = %d polygons, %v; want none", len(polys), err)
	}

	contact := node(t, "metal-1-poly-contact")
	inst = DefaultInstance(contact)
	inst.Wiped = true
	polys, err = b.NodeShapes(contact, inst)
	if err != nil || len(polys) != 3 {
		t.Errorf("wiped flag on non-wipable node = %d polygons, %v; want 3", len(polys), err)
	}
}

func TestContactCuts(t *testing.T) {
	b := newBuilder()
	contact := node(t, "metal-1-poly-contact")

	tests := []struct {
		name       string
		size       int64
		reasonable bool
		cuts       []geom.Rect
		count      int
	}{
		{name: "default", size: 2000, cuts: []geom.Rect{geom.R(-400, -400, 400, 400)}, count: 1},
		{name: "2x2", size: 4000, cuts: []geom.Rect{
			geom.R(-1400, -1400, -600, -600), geom.R(600, -1400, 1400, -600),
			geom.R(-1400, 600, -600, 1400), geom.R(600, 600, 1400, 1400),
		}, count: 4},
		{name: "3x3 total", size: 6000, count: 9},
		{name: "3x3 reasonable", size: 6000, reasonable: true, count: 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := Instance{SizeX: tt.size, SizeY: tt.size, ReasonableCutsOnly: tt.reasonable}
			polys, err := b.NodeShapes(contact, inst)
			if err != nil {
				t.Fatal(err)
			}
			if len(polys) != 2+tt.count {
				t.Fatalf("%d polygons, want %d", len(polys), 2+tt.count)
			}
			edge := tt.size/2 - 200
			if got := polys[0].Bounds(); got != geom.R(-edge, -edge, edge, edge) {
				t.Errorf("metal bounds = %v", got)
			}
			for i, p := range polys[2:] {
				if p.LayerName() != sample.Contact || p.Port != tech.NoPort {
					t.Errorf("cut %d on %q port %d", i, p.LayerName(), p.Port)
				}
				if tt.cuts != nil && p.Bounds() != tt.cuts[i] {
					t.Errorf("cut %d = %v, want %v", i, p.Bounds(), tt.cuts[i])
				}
			}
		})
	}
}

func TestMalformedBoxPermissive(t *testing.T) {
	rec := &warnRecorder{}
	observability.SetShapeHooks(rec)
	defer observability.Reset()

	contact := node(t, "metal-1-poly-contact")
	polys, err := newBuilder().NodeShapes(contact, Instance{})
	if err != nil {
		t.Fatalf("permissive builder returned %v", err)
	}
	if len(polys) != 3 {
		t.Fatalf("%d polygons, want 3", len(polys))
	}
	if got := polys[0].Points[0]; got != geom.Pt(200, 200) {
		t.Errorf("malformed box emitted as %v", polys[0].Points)
	}
	want := []string{
		"metal-1-poly-contact/metal-1",
		"metal-1-poly-contact/poly",
		"metal-1-poly-contact/contact",
	}
	if diff := cmp.Diff(want, rec.warnings); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

func TestMalformedBoxStrict(t *testing.T) {
	b := newBuilder()
	b.Strict = true

	_, err := b.NodeShapes(node(t, "metal-1-poly-contact"), Instance{})
	if !errors.Is(err, errors.ErrCodeGeometryAnomaly) {
		t.Fatalf("strict error = %v, want GEOMETRY_ANOMALY", err)
	}
	var anomaly *errors.AnomalyError
	if !stderrors.As(err, &anomaly) {
		t.Fatalf("error %v does not carry an AnomalyError", err)
	}
	if anomaly.Layer != sample.Metal1 || anomaly.LX != 200 || anomaly.HX != -200 {
		t.Errorf("anomaly = %+v", anomaly)
	}
}

func TestNegativeSize(t *testing.T) {
	_, err := newBuilder().NodeShapes(node(t, "metal-1-pin"), Instance{SizeX: -1})
	if !errors.Is(err, errors.ErrCodeInvalidInstance) {
		t.Errorf("error = %v, want INVALID_INSTANCE", err)
	}
}

var bentTrace = []geom.Point{geom.Pt(0, 0), geom.Pt(4000, 0), geom.Pt(4000, 4000)}

func TestSerpentineTransistor(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name       string
		node       string
		electrical bool
		layers     int
	}{
		{"n visual", "n-transistor", false, 3},
		{"n electrical", "n-transistor", true, 4},
		{"p visual", "p-transistor", false, 4},
		{"p electrical", "p-transistor", true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := node(t, tt.node)
			polys, err := b.NodeShapes(n, Instance{Trace: bentTrace, Electrical: tt.electrical})
			if err != nil {
				t.Fatal(err)
			}
			if want := (len(bentTrace) - 1) * tt.layers; len(polys) != want {
				t.Errorf("%d polygons, want %d", len(polys), want)
			}
		})
	}

	polys, err := b.NodeShapes(node(t, "n-transistor"), Instance{Trace: bentTrace, Anchor: geom.Pt(10, 20)})
	if err != nil {
		t.Fatal(err)
	}
	// Layer-major: polygons 2 and 3 are the poly layer.
	if polys[2].LayerName() != sample.Poly {
		t.Fatalf("polygon 2 on %q, want poly", polys[2].LayerName())
	}
	want := []geom.Point{geom.Pt(-790, 420), geom.Pt(-790, -380), geom.Pt(4410, -380), geom.Pt(3610, 420)}
	if diff := cmp.Diff(want, polys[2].Points); diff != "" {
		t.Errorf("poly segment (-want +got):\n%s", diff)
	}
}

func TestSerpentineWithoutTrace(t *testing.T) {
	n := node(t, "n-transistor")
	polys, err := newBuilder().NodeShapes(n, DefaultInstance(n))
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 3 {
		t.Fatalf("%d polygons, want 3 boxes", len(polys))
	}
	if got := polys[0].Bounds(); got != geom.R(-600, -1600, 600, 1600) {
		t.Errorf("active = %v", got)
	}

	inst := DefaultInstance(n)
	inst.Electrical = true
	polys, err = newBuilder().NodeShapes(n, inst)
	if err != nil {
		t.Fatal(err)
	}
	if got := polys[0].Bounds(); got != geom.R(-600, 400, 600, 1600) || polys[0].Port != 1 {
		t.Errorf("electrical top diffusion = %v port %d", got, polys[0].Port)
	}
}

func TestSerpentineDegenerateTrace(t *testing.T) {
	n := node(t, "n-transistor")
	_, err := newBuilder().NodeShapes(n, Instance{Trace: []geom.Point{geom.Pt(0, 0)}})
	if !errors.Is(err, errors.ErrCodeDegenerateTrace) {
		t.Errorf("error = %v, want DEGENERATE_TRACE", err)
	}
	if !errors.IsConfiguration(err) {
		t.Error("degenerate trace should be a configuration error")
	}
}

func TestPolygonalTrace(t *testing.T) {
	n := node(t, "metal-1-node")
	trace := []geom.Point{geom.Pt(0, 0), geom.Pt(1000, 0), geom.Pt(0, 1000)}
	polys, err := newBuilder().NodeShapes(n, Instance{Anchor: geom.Pt(100, 100), Trace: trace})
	if err != nil {
		t.Fatal(err)
	}
	want := []Polygon{{
		Points: []geom.Point{geom.Pt(100, 100), geom.Pt(1100, 100), geom.Pt(100, 1100)},
		Style:  tech.Filled,
		Layer:  n.Layers[0].Layer,
		Port:   0,
	}}
	if diff := cmp.Diff(want, polys); diff != "" {
		t.Errorf("polygonal node (-want +got):\n%s", diff)
	}
	if trace[1] != geom.Pt(1000, 0) {
		t.Error("NodeShapes modified the caller's trace")
	}

	polys, err = newBuilder().NodeShapes(n, DefaultInstance(n))
	if err != nil || len(polys) != 1 || len(polys[0].Points) != 4 {
		t.Errorf("polygonal node without trace = %v, %v", polys, err)
	}
}

func TestEmptyElectricalLayers(t *testing.T) {
	trace := []geom.Point{geom.Pt(0, 0), geom.Pt(1000, 0), geom.Pt(0, 1000)}
	tests := []struct {
		name string
		node string
		inst func(n *tech.PrimitiveNode) Instance
	}{
		{"polygonal trace", "metal-1-node", func(*tech.PrimitiveNode) Instance {
			return Instance{Trace: trace}
		}},
		{"negated port", "buffer", func(n *tech.PrimitiveNode) Instance {
			inst := DefaultInstance(n)
			inst.Negated = []bool{false, true}
			return inst
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registered := node(t, tt.node)
			unchecked := *registered
			unchecked.ElectricalLayers = []tech.NodeLayer{}

			want, err := newBuilder().NodeShapes(registered, tt.inst(registered))
			if err != nil {
				t.Fatal(err)
			}
			inst := tt.inst(&unchecked)
			inst.Electrical = true
			got, err := newBuilder().NodeShapes(&unchecked, inst)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("empty electrical list should draw the visual layers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNegationBubble(t *testing.T) {
	buf := node(t, "buffer")
	inst := DefaultInstance(buf)
	inst.Negated = []bool{false, true}

	polys, err := newBuilder().NodeShapes(buf, inst)
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 3 {
		t.Fatalf("%d polygons, want triangle, label and bubble", len(polys))
	}
	if polys[1].Text == nil || polys[1].Text.Message != "buf" {
		t.Errorf("label polygon = %+v", polys[1])
	}

	bubble := polys[2]
	want := Polygon{
		Points: []geom.Point{geom.Pt(1440, 0), geom.Pt(1680, 0)},
		Style:  tech.Circle,
		Layer:  buf.Layers[0].Layer,
		Port:   1,
	}
	if diff := cmp.Diff(want, bubble); diff != "" {
		t.Errorf("bubble (-want +got):\n%s", diff)
	}

	inst.Negated = []bool{false, false, true}
	if _, err := newBuilder().NodeShapes(buf, inst); !errors.Is(err, errors.ErrCodeInvalidInstance) {
		t.Errorf("too many negation flags: error = %v", err)
	}
}

func TestMirror(t *testing.T) {
	buf := node(t, "buffer")
	inst := DefaultInstance(buf)
	inst.Orient = geom.Orientation{MirrorX: true}

	polys, err := newBuilder().NodeShapes(buf, inst)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Point{geom.Pt(1200, -1200), geom.Pt(-1200, 0), geom.Pt(1200, 1200)}
	if diff := cmp.Diff(want, polys[0].Points); diff != "" {
		t.Errorf("mirrored triangle (-want +got):\n%s", diff)
	}
}

func TestConcurrentRequests(t *testing.T) {
	b := newBuilder()
	n := node(t, "p-transistor")
	want, err := b.NodeShapes(n, Instance{Trace: bentTrace})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := b.NodeShapes(n, Instance{Trace: bentTrace})
			if err != nil {
				errs <- err.Error()
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
