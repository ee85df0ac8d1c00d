package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// Client is the PostgreSQL client contract. *Postgres implements it.
type Client interface {
	// Find loads the rows of meta's table matching p into dest.
	Find(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate, dest any, page qbe.Page) error
	Count(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate) (int64, error)

	Create(ctx context.Context, value interface{}) error
	AutoMigrate(ctx context.Context, models ...interface{}) error
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)

	// Query builds custom queries; use Match to apply a predicate.
	Query(ctx context.Context) *QueryBuilder

	// DB gives raw GORM access.
	DB() *gorm.DB

	TranslateError(err error) error
	GracefulShutdown() error
}

var _ Client = (*Postgres)(nil)
