package shape

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/primgeom/pkg/tech"
)

// Provider generates geometry for primitives. *Builder is the default
// implementation; technologies with special drawing rules can register
// their own.
type Provider interface {
	NodeShapes(n *tech.PrimitiveNode, inst Instance) ([]Polygon, error)
	ArcShapes(a *tech.ArcProto, inst ArcInstance) ([]Polygon, error)
	PortShape(n *tech.PrimitiveNode, inst Instance, port int) (Polygon, error)
}

var _ Provider = (*Builder)(nil)

// Scoped is implemented by providers whose settings change their output.
// Scope returns a stable description of those settings; results built with
// different scopes must not be shared.
type Scoped interface {
	Scope() string
}

// ScopeOf returns prov's scope, or "" when prov has no settings of note.
func ScopeOf(prov Provider) string {
	if s, ok := prov.(Scoped); ok {
		return s.Scope()
	}
	return ""
}

// Scope implements Scoped. A permissive builder has an empty scope.
func (b *Builder) Scope() string {
	if b.Strict {
		return "strict"
	}
	return ""
}

// Providers maps technology names to providers.
type Providers struct {
	mu       sync.RWMutex
	byTech   map[string]Provider
	fallback Provider
}

// NewProviders creates a lookup table that answers def for any technology
// without its own provider.
func NewProviders(def Provider) *Providers {
	return &Providers{byTech: make(map[string]Provider), fallback: def}
}

// Register sets the provider for a technology.
func (p *Providers) Register(techName string, prov Provider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byTech[techName] = prov
}

// For returns the provider for a technology.
func (p *Providers) For(techName string) Provider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if prov, ok := p.byTech[techName]; ok {
		return prov
	}
	return p.fallback
}

// LayerFilter wraps a provider and drops polygons on hidden layers. Ports
// are passed through unchanged.
type LayerFilter struct {
	Base   Provider
	Hidden map[string]bool
}

// NodeShapes implements Provider.
func (f LayerFilter) NodeShapes(n *tech.PrimitiveNode, inst Instance) ([]Polygon, error) {
	polys, err := f.Base.NodeShapes(n, inst)
	return f.filter(polys), err
}

// ArcShapes implements Provider.
func (f LayerFilter) ArcShapes(a *tech.ArcProto, inst ArcInstance) ([]Polygon, error) {
	polys, err := f.Base.ArcShapes(a, inst)
	return f.filter(polys), err
}

// PortShape implements Provider.
func (f LayerFilter) PortShape(n *tech.PrimitiveNode, inst Instance, port int) (Polygon, error) {
	return f.Base.PortShape(n, inst, port)
}

// Scope implements Scoped: the base scope plus the sorted hidden layers.
func (f LayerFilter) Scope() string {
	var hidden []string
	for name, on := range f.Hidden {
		if on {
			hidden = append(hidden, name)
		}
	}
	base := ScopeOf(f.Base)
	if len(hidden) == 0 {
		return base
	}
	slices.Sort(hidden)
	return strings.TrimPrefix(base+";hide="+strings.Join(hidden, ","), ";")
}

func (f LayerFilter) filter(polys []Polygon) []Polygon {
	if len(f.Hidden) == 0 {
		return polys
	}
	out := make([]Polygon, 0, len(polys))
	for _, p := range polys {
		if !f.Hidden[p.LayerName()] {
			out = append(out, p)
		}
	}
	return out
}
