// Package registry maps API version identifiers to their collection schemas.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/facette/natsort"

	"github.com/whatsinstandard/setcheck/schema"
)

var (
	// ErrDuplicateVersion is returned when a version id is registered twice.
	ErrDuplicateVersion = errors.New("registry: version already registered")
	// ErrUnknownVersion is returned by Lookup for an unregistered id.
	ErrUnknownVersion = errors.New("registry: unknown version")
)

// Registry is a set of independently authored version schemas. Entries are
// never replaced once registered; adding a version cannot alter another.
// A Registry is safe for concurrent use.
type Registry struct {
	mtx     sync.RWMutex
	schemas map[string]*schema.Collection
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{schemas: map[string]*schema.Collection{}}
}

// Register adds the schema for version.
func (r *Registry) Register(version string, c *schema.Collection) error {
	if version == "" {
		return errors.New("registry: empty version id")
	}
	if c == nil {
		return fmt.Errorf("registry: nil schema for %s", version)
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.schemas[version]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateVersion, version)
	}
	r.schemas[version] = c
	return nil
}

// MustRegister is Register that panics on error, for static tables.
func (r *Registry) MustRegister(version string, c *schema.Collection) {
	if err := r.Register(version, c); err != nil {
		panic(err)
	}
}

// Lookup returns the schema registered for version.
func (r *Registry) Lookup(version string) (*schema.Collection, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	c, ok := r.schemas[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	return c, nil
}

// Versions lists the registered ids in natural order (v2 before v10).
func (r *Registry) Versions() []string {
	r.mtx.RLock()
	out := make([]string, 0, len(r.schemas))
	for v := range r.schemas {
		out = append(out, v)
	}
	r.mtx.RUnlock()
	sort.Slice(out, func(i, j int) bool { return natsort.Compare(out[i], out[j]) })
	return out
}

// Default returns a registry with every published API version.
func Default() *Registry {
	r := New()
	r.MustRegister("v1", V1())
	r.MustRegister("v2", V2())
	r.MustRegister("v3", V3())
	r.MustRegister("v4", V4())
	return r
}
