package shape

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/primgeom/pkg/errors"
	"github.com/matzehuels/primgeom/pkg/geom"
	"github.com/matzehuels/primgeom/pkg/tech"
	"github.com/matzehuels/primgeom/pkg/tech/sample"
)

func arc(t *testing.T, name string) *tech.ArcProto {
	t.Helper()
	a, err := sample.Technology().Arc(name)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestArcFullWidth(t *testing.T) {
	a := arc(t, sample.Metal1)
	inst := DefaultArcInstance(a, geom.Pt(0, 0), geom.Pt(4000, 0))

	polys, err := newBuilder().ArcShapes(a, inst)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]geom.Point{{geom.Pt(-600, -600), geom.Pt(4600, -600), geom.Pt(4600, 600), geom.Pt(-600, 600)}}
	if diff := cmp.Diff(want, points(polys)); diff != "" {
		t.Errorf("metal arc (-want +got):\n%s", diff)
	}
	if h := polys[0].Bounds().Height(); h != a.DefaultWidth {
		t.Errorf("rendered width %d, want %d", h, a.DefaultWidth)
	}
}

func TestArcNotExtended(t *testing.T) {
	a := arc(t, sample.Metal1)
	polys, err := newBuilder().ArcShapes(a, ArcInstance{Tail: geom.Pt(0, 0), Head: geom.Pt(0, 3000), Width: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if got := polys[0].Bounds(); got != geom.R(-500, 0, 500, 3000) {
		t.Errorf("vertical arc bounds = %v", got)
	}
}

func TestArcGridOffset(t *testing.T) {
	a := arc(t, "n-active")
	b := newBuilder()

	polys, err := b.ArcShapes(a, DefaultArcInstance(a, geom.Pt(0, 0), geom.Pt(4000, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 2 {
		t.Fatalf("%d polygons, want active and select", len(polys))
	}
	if h := polys[0].Bounds().Height(); polys[0].LayerName() != sample.Active || h != 1200 {
		t.Errorf("active layer %q width %d, want 1200", polys[0].LayerName(), h)
	}
	if h := polys[1].Bounds().Height(); h != 2800 {
		t.Errorf("select width %d, want 2800", h)
	}

	// The active layer vanishes below its grid offset.
	polys, err = b.ArcShapes(a, ArcInstance{Tail: geom.Pt(0, 0), Head: geom.Pt(4000, 0), Width: 1200})
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 1 || polys[0].LayerName() != sample.NSelect {
		t.Errorf("narrow arc = %d polygons", len(polys))
	}
}

func TestDirectionalWire(t *testing.T) {
	a := arc(t, "wire")
	polys, err := newBuilder().ArcShapes(a, DefaultArcInstance(a, geom.Pt(0, 0), geom.Pt(4000, 0)))
	if err != nil {
		t.Fatal(err)
	}
	want := []Polygon{
		{
			Points: []geom.Point{geom.Pt(0, 0), geom.Pt(4000, 0)},
			Style:  tech.Opened, Layer: a.Layers[0].Layer, Port: tech.NoPort,
		},
		{
			Points: []geom.Point{
				geom.Pt(0, 0), geom.Pt(4000, 0),
				geom.Pt(4000, 0), geom.Pt(3654, -200),
				geom.Pt(4000, 0), geom.Pt(3654, 200),
			},
			Style: tech.Vectors, Layer: a.Layers[0].Layer, Port: tech.NoPort,
		},
	}
	if diff := cmp.Diff(want, polys); diff != "" {
		t.Errorf("directional wire (-want +got):\n%s", diff)
	}
}

func TestNegatedArc(t *testing.T) {
	a := arc(t, "wire")
	polys, err := newBuilder().ArcShapes(a, ArcInstance{
		Tail: geom.Pt(0, 0), Head: geom.Pt(4000, 0), NegatedHead: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]geom.Point{
		{geom.Pt(0, 0), geom.Pt(3520, 0)},
		{geom.Pt(3760, 0), geom.Pt(4000, 0)},
	}
	if diff := cmp.Diff(want, points(polys)); diff != "" {
		t.Errorf("negated wire (-want +got):\n%s", diff)
	}
	if polys[1].Style != tech.Circle {
		t.Errorf("bubble style = %s", polys[1].Style)
	}

	// A negated wide arc is also drawn as a path.
	m := arc(t, sample.Metal1)
	polys, err = newBuilder().ArcShapes(m, ArcInstance{
		Tail: geom.Pt(0, 0), Head: geom.Pt(0, 4000), Width: 1200, NegatedTail: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if polys[0].Style != tech.Opened || polys[0].Points[0] != geom.Pt(0, 480) {
		t.Errorf("negated metal arc = %+v", polys[0])
	}
}

func TestArcNegativeWidth(t *testing.T) {
	_, err := newBuilder().ArcShapes(arc(t, sample.Metal1), ArcInstance{Width: -2})
	if !errors.Is(err, errors.ErrCodeInvalidInstance) {
		t.Errorf("error = %v, want INVALID_INSTANCE", err)
	}
}
