package shape

import (
	"testing"

	"github.com/matzehuels/primgeom/pkg/tech/sample"
)

func TestProvidersFallback(t *testing.T) {
	def := newBuilder()
	p := NewProviders(def)
	if p.For("anything") != def {
		t.Error("unknown technology should use the default provider")
	}

	strict := &Builder{Strict: true}
	p.Register(sample.Name, strict)
	if p.For(sample.Name) != strict {
		t.Error("registered provider not returned")
	}
	if p.For("other") != def {
		t.Error("registration leaked to other technologies")
	}
}

func TestLayerFilter(t *testing.T) {
	f := LayerFilter{Base: newBuilder(), Hidden: map[string]bool{sample.NSelect: true}}
	n := node(t, "n-transistor")

	polys, err := f.NodeShapes(n, DefaultInstance(n))
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 2 {
		t.Fatalf("%d polygons, want select dropped", len(polys))
	}
	for _, p := range polys {
		if p.LayerName() == sample.NSelect {
			t.Error("hidden layer emitted")
		}
	}

	port, err := f.PortShape(n, DefaultInstance(n), 0)
	if err != nil || port.Port != 0 {
		t.Errorf("PortShape = %+v, %v", port, err)
	}
}

func TestScopeOf(t *testing.T) {
	plain := newBuilder()
	strict := &Builder{Strict: true}
	hide := map[string]bool{sample.NSelect: true, sample.Metal1: true, sample.Poly: false}

	tests := []struct {
		name string
		prov Provider
		want string
	}{
		{"permissive builder", plain, ""},
		{"strict builder", strict, "strict"},
		{"filter without hidden layers", LayerFilter{Base: plain}, ""},
		{"filter sorts hidden layers", LayerFilter{Base: plain, Hidden: hide}, "hide=" + sortedPair(sample.Metal1, sample.NSelect)},
		{"filter over strict", LayerFilter{Base: strict, Hidden: hide}, "strict;hide=" + sortedPair(sample.Metal1, sample.NSelect)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScopeOf(tt.prov); got != tt.want {
				t.Errorf("ScopeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func sortedPair(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "," + b
}
