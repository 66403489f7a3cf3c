package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects or engine
// versions can share one backend without colliding.
//
// Example usage:
//
//	// Results of this build only
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "primgeom:"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NodeKey generates a prefixed key for node shapes.
func (k *ScopedKeyer) NodeKey(techHash, node string, params any) string {
	return k.prefix + k.inner.NodeKey(techHash, node, params)
}

// ArcKey generates a prefixed key for arc shapes.
func (k *ScopedKeyer) ArcKey(techHash, arc string, params any) string {
	return k.prefix + k.inner.ArcKey(techHash, arc, params)
}
