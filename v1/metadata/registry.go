package metadata

import (
	"fmt"
	"reflect"
	"sync"
)

// typed is implemented by metadata bound to a single Go type.
type typed interface {
	Type() reflect.Type
}

// Registry maps entity names and Go types to their metadata.
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]EntityMetadata
	byType map[reflect.Type]EntityMetadata
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]EntityMetadata),
		byType: make(map[reflect.Type]EntityMetadata),
	}
}

// Register adds metadata to the registry. Entity names must be unique across
// the registry and within metas. The batch is all or nothing: on error the
// registry is left unchanged.
// Metadata implementing Type() reflect.Type is also indexed by Go type so
// that Of can resolve plain instances.
func (r *Registry) Register(metas ...EntityMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		name := meta.Entity()
		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateEntity, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q given twice", ErrDuplicateEntity, name)
		}
		seen[name] = struct{}{}
	}

	for _, meta := range metas {
		name := meta.Entity()
		r.byName[name] = meta
		r.order = append(r.order, name)

		if t, ok := meta.(typed); ok {
			r.byType[t.Type()] = meta
		}
	}
	return nil
}

// Lookup returns the metadata registered under name.
func (r *Registry) Lookup(name string) (EntityMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.byName[name]
	return meta, ok
}

// Of resolves the metadata of an instance from its runtime type.
// Records are resolved by their entity name.
func (r *Registry) Of(instance any) (EntityMetadata, bool) {
	switch v := instance.(type) {
	case Record:
		return r.Lookup(v.Entity)
	case *Record:
		if v == nil {
			return nil, false
		}
		return r.Lookup(v.Entity)
	case nil:
		return nil, false
	}

	t := reflect.TypeOf(instance)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.byType[t]
	return meta, ok
}

// Entities returns all registered metadata in registration order.
func (r *Registry) Entities() []EntityMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]EntityMetadata, 0, len(r.order))
	for _, name := range r.order {
		metas = append(metas, r.byName[name])
	}
	return metas
}
