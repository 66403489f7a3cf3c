package tech

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/primgeom/pkg/errors"
)

// Technology holds the layers, primitive nodes and arcs of one process.
//
// A technology is assembled with the Add methods and then sealed, either
// explicitly with [Technology.Seal] or by [Catalog.Register]. A sealed
// technology rejects further additions and is safe for concurrent reads.
type Technology struct {
	Name        string
	Description string
	Scale       Scale
	Index       int

	layers []*Layer
	nodes  []*PrimitiveNode
	arcs   []*ArcProto

	layerByName map[string]*Layer
	nodeByName  map[string]*PrimitiveNode
	arcByName   map[string]*ArcProto

	sealed bool
}

// New creates an empty technology using the default scale.
func New(name string) *Technology {
	return &Technology{
		Name:        name,
		Scale:       DefaultScale(),
		Index:       -1,
		layerByName: make(map[string]*Layer),
		nodeByName:  make(map[string]*PrimitiveNode),
		arcByName:   make(map[string]*ArcProto),
	}
}

func (t *Technology) checkOpen(kind, name string) error {
	if t.sealed {
		return errors.New(errors.ErrCodeInvalidTechnology, "technology %q is sealed: cannot add %s %q", t.Name, kind, name)
	}
	return nil
}

// AddLayer registers a layer and returns the technology's copy of it.
func (t *Technology) AddLayer(name, function string) (*Layer, error) {
	if err := t.checkOpen("layer", name); err != nil {
		return nil, err
	}
	if err := errors.ValidateName("layer", name); err != nil {
		return nil, err
	}
	if _, ok := t.layerByName[name]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateName, "technology %q: duplicate layer %q", t.Name, name)
	}
	l := &Layer{Name: name, Function: function, Index: len(t.layers)}
	t.layers = append(t.layers, l)
	t.layerByName[name] = l
	return l, nil
}

// AddNode validates n, stores a deep copy and assigns its index. Layer
// references are rebound to this technology's layers by name. The caller's
// template is left untouched.
func (t *Technology) AddNode(n *PrimitiveNode) (*PrimitiveNode, error) {
	if err := t.checkOpen("node", n.Name); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if _, ok := t.nodeByName[n.Name]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateName, "technology %q: duplicate node %q", t.Name, n.Name)
	}

	c := n.clone()
	for _, set := range [][]NodeLayer{c.Layers, c.ElectricalLayers} {
		for i := range set {
			l, err := t.bindLayer("node", n.Name, set[i].Layer)
			if err != nil {
				return nil, err
			}
			set[i].Layer = l
		}
	}
	for _, p := range c.Ports {
		for _, arc := range p.Arcs {
			if _, ok := t.arcByName[arc]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidTemplate,
					"node %q port %q: unknown arc %q", n.Name, p.Name, arc)
			}
		}
	}

	c.Index = len(t.nodes)
	t.nodes = append(t.nodes, c)
	t.nodeByName[c.Name] = c
	return c, nil
}

// AddArc validates a, stores a deep copy and assigns its index.
func (t *Technology) AddArc(a *ArcProto) (*ArcProto, error) {
	if err := t.checkOpen("arc", a.Name); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if _, ok := t.arcByName[a.Name]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateName, "technology %q: duplicate arc %q", t.Name, a.Name)
	}

	c := a.clone()
	for i := range c.Layers {
		l, err := t.bindLayer("arc", a.Name, c.Layers[i].Layer)
		if err != nil {
			return nil, err
		}
		c.Layers[i].Layer = l
	}

	c.Index = len(t.arcs)
	t.arcs = append(t.arcs, c)
	t.arcByName[c.Name] = c
	return c, nil
}

func (t *Technology) bindLayer(kind, owner string, l *Layer) (*Layer, error) {
	own, ok := t.layerByName[l.Name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTemplate,
			"%s %q uses layer %q, which technology %q does not define", kind, owner, l.Name, t.Name)
	}
	return own, nil
}

// Seal freezes the technology.
func (t *Technology) Seal() { t.sealed = true }

// Sealed reports whether the technology accepts no further additions.
func (t *Technology) Sealed() bool { return t.sealed }

// Layer looks up a layer by name.
func (t *Technology) Layer(name string) (*Layer, error) {
	if l, ok := t.layerByName[name]; ok {
		return l, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "technology %q has no layer %q", t.Name, name)
}

// Node looks up a primitive node by name.
func (t *Technology) Node(name string) (*PrimitiveNode, error) {
	if n, ok := t.nodeByName[name]; ok {
		return n, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "technology %q has no node %q", t.Name, name)
}

// Arc looks up an arc prototype by name.
func (t *Technology) Arc(name string) (*ArcProto, error) {
	if a, ok := t.arcByName[name]; ok {
		return a, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "technology %q has no arc %q", t.Name, name)
}

// Layers returns the layers in registration order.
func (t *Technology) Layers() []*Layer { return append([]*Layer(nil), t.layers...) }

// Nodes returns the primitive nodes in index order.
func (t *Technology) Nodes() []*PrimitiveNode { return append([]*PrimitiveNode(nil), t.nodes...) }

// Arcs returns the arc prototypes in index order.
func (t *Technology) Arcs() []*ArcProto { return append([]*ArcProto(nil), t.arcs...) }

type fingerprint struct {
	Name   string           `json:"name"`
	Scale  Scale            `json:"scale"`
	Layers []*Layer         `json:"layers"`
	Nodes  []*PrimitiveNode `json:"nodes"`
	Arcs   []*ArcProto      `json:"arcs"`
}

// Fingerprint returns a stable hash of the technology's full contents. Two
// technologies with the same fingerprint produce identical geometry, so the
// value is safe to use in cache keys.
func (t *Technology) Fingerprint() string {
	data, err := json.Marshal(fingerprint{
		Name: t.Name, Scale: t.Scale, Layers: t.layers, Nodes: t.nodes, Arcs: t.arcs,
	})
	if err != nil {
		// Every field is plain data; this cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
