package qbe

import (
	"fmt"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// Builder resolves entity metadata from a registry before building.
type Builder struct {
	registry *metadata.Registry
}

// NewBuilder creates a Builder over registry.
func NewBuilder(registry *metadata.Registry) *Builder {
	return &Builder{registry: registry}
}

// Registry returns the registry the builder resolves metadata from.
func (b *Builder) Registry() *metadata.Registry {
	return b.registry
}

// ByExample resolves the metadata of example from its runtime type and builds
// an example predicate.
func (b *Builder) ByExample(example any) (predicate.Predicate, error) {
	meta, err := b.Metadata(example)
	if err != nil {
		return nil, err
	}
	return ByExample(meta, example)
}

// ByPattern builds a pattern predicate for the named entity.
func (b *Builder) ByPattern(pattern, entity string) (predicate.Predicate, error) {
	meta, ok := b.registry.Lookup(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return ByPattern(meta, pattern)
}

// Metadata resolves the metadata of an example instance.
func (b *Builder) Metadata(example any) (metadata.EntityMetadata, error) {
	if isNil(example) {
		return nil, fmt.Errorf("%w: example is nil", ErrInvalidArgument)
	}
	meta, ok := b.registry.Of(example)
	if !ok {
		return nil, fmt.Errorf("%w: no metadata registered for %T", ErrUnknownEntity, example)
	}
	return meta, nil
}
