package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/metrics"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// Search modes, used as the mode label and in log fields.
const (
	ModeExample = "example"
	ModePattern = "pattern"
)

// Service builds predicates and runs them against a Finder.
// It is safe for concurrent use.
type Service struct {
	builder *qbe.Builder
	finder  Finder
	logger  Logger
	metrics metrics.Collector
	tracer  Tracer
}

// NewService creates a Service.
func NewService(builder *qbe.Builder, finder Finder, logger Logger, collector metrics.Collector, tracer Tracer) *Service {
	return &Service{
		builder: builder,
		finder:  finder,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
	}
}

// Builder returns the predicate builder the service resolves entities with.
func (s *Service) Builder() *qbe.Builder {
	return s.builder
}

// FindByExample loads the records resembling example into dest.
// The entity is resolved from example's runtime type.
//
// Parameters:
//   - example: a registered entity instance; populated searchable attributes
//     become conditions
//   - dest: a pointer to the slice the Finder fills, e.g. *[]map[string]any
//   - opts: paging options
//
// Example:
//
//	var rows []map[string]any
//	err := svc.FindByExample(ctx, &Widget{Name: "Foo"}, &rows, search.WithLimit(10))
func (s *Service) FindByExample(ctx context.Context, example any, dest any, opts ...Option) error {
	q := s.begin(ctx, "search.find_by_example", ModeExample)
	defer q.end()

	meta, err := s.builder.Metadata(example)
	if err != nil {
		return q.fail(err, "failed to resolve example entity")
	}
	q.entity = meta.Entity()

	p, err := qbe.ByExample(meta, example)
	if err != nil {
		return q.fail(err, "failed to build example predicate")
	}
	q.built(p)

	return q.find(meta, p, dest, newOptions(opts).page())
}

// Search loads the records of entity containing pattern in any text
// attribute into dest.
func (s *Service) Search(ctx context.Context, entity, pattern string, dest any, opts ...Option) error {
	q := s.begin(ctx, "search.search", ModePattern)
	defer q.end()
	q.entity = entity

	meta, ok := s.builder.Registry().Lookup(entity)
	if !ok {
		return q.fail(fmt.Errorf("%w: %q", qbe.ErrUnknownEntity, entity), "failed to resolve entity")
	}

	p, err := qbe.ByPattern(meta, pattern)
	if err != nil {
		return q.fail(err, "failed to build pattern predicate")
	}
	q.built(p)

	return q.find(meta, p, dest, newOptions(opts).page())
}

// SearchAll runs a pattern search over every registered entity concurrently
// and returns the rows keyed by entity name. Entities without a match map to
// an empty slice. The first failure cancels the remaining searches.
//
// Example:
//
//	results, err := svc.SearchAll(ctx, "foo", search.WithLimit(5), search.WithConcurrency(2))
//	if err != nil {
//		return err
//	}
//	for entity, rows := range results {
//		log.Info("matches", nil, map[string]interface{}{"entity": entity, "count": len(rows)})
//	}
func (s *Service) SearchAll(ctx context.Context, pattern string, opts ...Option) (map[string][]map[string]any, error) {
	o := newOptions(opts)
	entities := s.builder.Registry().Entities()

	ctx, span := s.tracer.StartSpan(ctx, "search.search_all")
	defer span.End()
	s.tracer.SetAttributes(span, map[string]interface{}{
		"pattern":  pattern,
		"entities": len(entities),
	})

	var mu sync.Mutex
	results := make(map[string][]map[string]any, len(entities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for _, meta := range entities {
		g.Go(func() error {
			var rows []map[string]any
			if err := s.Search(gctx, meta.Entity(), pattern, &rows, WithPage(o.page())); err != nil {
				return err
			}
			if rows == nil {
				rows = []map[string]any{}
			}
			mu.Lock()
			results[meta.Entity()] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		return nil, err
	}
	return results, nil
}

// query carries the per-request state shared by the search methods.
type query struct {
	s       *Service
	ctx     context.Context
	span    trace.Span
	id      string
	mode    string
	entity  string
	started time.Time
}

func (s *Service) begin(ctx context.Context, name, mode string) *query {
	ctx, span := s.tracer.StartSpan(ctx, name)
	q := &query{
		s:       s,
		ctx:     ctx,
		span:    span,
		id:      uuid.NewString(),
		mode:    mode,
		started: time.Now(),
	}
	s.tracer.SetAttributes(span, map[string]interface{}{
		"query_id": q.id,
		"mode":     mode,
	})
	return q
}

func (q *query) end() {
	q.span.End()
}

func (q *query) fields() map[string]interface{} {
	f := map[string]interface{}{
		"query_id": q.id,
		"mode":     q.mode,
	}
	if q.entity != "" {
		f["entity"] = q.entity
	}
	return f
}

// fail records a failure to build a predicate and returns err.
func (q *query) fail(err error, msg string) error {
	fields := q.fields()
	var attrErr *qbe.AttributeError
	if errors.As(err, &attrErr) {
		fields["entity"] = attrErr.Entity
		fields["attribute"] = attrErr.Attribute
	}

	q.s.metrics.RecordPredicate(q.mode, outcome(err), 0)
	q.s.tracer.RecordErrorOnSpan(q.span, err)
	q.s.logger.ErrorWithContext(q.ctx, msg, err, fields)
	return err
}

func (q *query) built(p predicate.Predicate) {
	conditions := predicate.Conditions(p)
	q.s.metrics.RecordPredicate(q.mode, metrics.OutcomeSuccess, conditions)
	q.s.tracer.SetAttributes(q.span, map[string]interface{}{
		"entity":     q.entity,
		"conditions": conditions,
		"fields":     predicate.Fields(p),
	})

	fields := q.fields()
	fields["predicate"] = p.String()
	q.s.logger.DebugWithContext(q.ctx, "built predicate", nil, fields)
}

func (q *query) find(meta metadata.EntityMetadata, p predicate.Predicate, dest any, page qbe.Page) error {
	err := q.s.finder.Find(q.ctx, meta, p, dest, page)
	if err != nil {
		q.s.metrics.RecordSearch(q.mode, metrics.OutcomeError, q.started)
		q.s.tracer.RecordErrorOnSpan(q.span, err)
		q.s.logger.ErrorWithContext(q.ctx, "search failed", err, q.fields())
		return err
	}

	q.s.metrics.RecordSearch(q.mode, metrics.OutcomeSuccess, q.started)
	fields := q.fields()
	fields["duration_ms"] = time.Since(q.started).Milliseconds()
	q.s.logger.InfoWithContext(q.ctx, "search completed", nil, fields)
	return nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, qbe.ErrInvalidArgument):
		return metrics.OutcomeInvalidArgument
	case errors.Is(err, qbe.ErrIllegalState):
		return metrics.OutcomeIllegalState
	default:
		return metrics.OutcomeError
	}
}
