package cache

// Keyer derives cache keys for shape requests. Keys hash the technology
// fingerprint and the request parameters, so changing either one misses.
type Keyer interface {
	// NodeKey generates a key for the polygons of a node instance.
	NodeKey(techHash, node string, params any) string

	// ArcKey generates a key for the polygons of an arc instance.
	ArcKey(techHash, arc string, params any) string
}

// DefaultKeyer generates keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NodeKey implements Keyer.
func (DefaultKeyer) NodeKey(techHash, node string, params any) string {
	return hashKey("node", techHash, node, params)
}

// ArcKey implements Keyer.
func (DefaultKeyer) ArcKey(techHash, arc string, params any) string {
	return hashKey("arc", techHash, arc, params)
}
