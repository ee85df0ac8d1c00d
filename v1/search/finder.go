package search

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// Finder loads the records of an entity matching a predicate.
// dest is a pointer to a slice; every Finder accepts *[]map[string]any.
//
//go:generate mockgen -source=finder.go -destination=mock_finder.go -package=search
type Finder interface {
	Find(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate, dest any, page qbe.Page) error
}

// Tracer is the subset of *tracer.Tracer the service needs.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}
