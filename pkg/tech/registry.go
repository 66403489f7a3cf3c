package tech

import (
	"sort"
	"sync"

	"github.com/matzehuels/primgeom/pkg/errors"
)

// Catalog is a set of sealed technologies keyed by name. Index allocation
// happens once, at registration.
type Catalog struct {
	mu    sync.RWMutex
	techs []*Technology
	byKey map[string]*Technology
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[string]*Technology)}
}

// Register seals t, assigns its index and adds it to the catalog.
func (c *Catalog) Register(t *Technology) error {
	if err := errors.ValidateName("technology", t.Name); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byKey[t.Name]; ok {
		return errors.New(errors.ErrCodeDuplicateName, "technology %q is already registered", t.Name)
	}
	if len(t.nodes) == 0 && len(t.arcs) == 0 {
		return errors.New(errors.ErrCodeInvalidTechnology, "technology %q defines no primitives", t.Name)
	}

	t.Seal()
	t.Index = len(c.techs)
	c.techs = append(c.techs, t)
	c.byKey[t.Name] = t
	return nil
}

// Lookup finds a registered technology.
func (c *Catalog) Lookup(name string) (*Technology, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, ok := c.byKey[name]; ok {
		return t, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown technology %q", name)
}

// Names returns the registered technology names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.techs))
	for _, t := range c.techs {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
