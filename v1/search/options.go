package search

import "github.com/Aleph-Alpha/qbe/v1/qbe"

const defaultConcurrency = 4

// Options tune a single search.
type Options struct {
	Limit  int
	Offset int

	// Concurrency bounds the entities SearchAll queries at once.
	Concurrency int
}

// Option sets a field of Options.
type Option func(*Options)

// WithLimit caps the number of records returned per entity.
func WithLimit(limit int) Option {
	return func(o *Options) { o.Limit = limit }
}

// WithOffset skips the first offset records of each entity.
func WithOffset(offset int) Option {
	return func(o *Options) { o.Offset = offset }
}

// WithPage sets limit and offset together.
func WithPage(page qbe.Page) Option {
	return func(o *Options) {
		o.Limit = page.Limit
		o.Offset = page.Offset
	}
}

// WithConcurrency bounds the entities SearchAll queries at once.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

func newOptions(opts []Option) Options {
	o := Options{Concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}

func (o Options) page() qbe.Page {
	return qbe.Page{Limit: o.Limit, Offset: o.Offset}
}
