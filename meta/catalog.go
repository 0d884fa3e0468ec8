package meta

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownController is returned when a controller name cannot be
// resolved to a registered descriptor.
var ErrUnknownController = errors.New("meta: unknown controller")

// Catalog holds every declared controller and data-transfer type. It is
// populated at program start-up and only read during document generation.
type Catalog struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	types       map[string]*TypeDesc
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		controllers: make(map[string]*Controller),
		types:       make(map[string]*TypeDesc),
	}
}

// AddController registers a controller descriptor under its name,
// replacing any previous registration.
func (c *Catalog) AddController(ctrl *Controller) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controllers[ctrl.Name] = ctrl
	return c
}

// AddType registers a type descriptor under its fully-qualified name,
// replacing any previous registration.
func (c *Catalog) AddType(t *TypeDesc) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[t.Name] = t
	return c
}

// Controller returns the descriptor registered under name.
func (c *Catalog) Controller(name string) (*Controller, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ctrl, ok := c.controllers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownController, name)
	}
	return ctrl, nil
}

// Type returns the type descriptor registered under name. Builtin type
// names never resolve.
func (c *Catalog) Type(name string) (*TypeDesc, bool) {
	if name == "" || IsBuiltin(name) {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// Controllers returns the names of all registered controllers in
// lexicographic order.
func (c *Catalog) Controllers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.controllers))
	for name := range c.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the names of all registered types in lexicographic order.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
