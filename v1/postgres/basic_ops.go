package postgres

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// Find loads the rows of meta's table matching p into dest, which is a pointer
// to a slice of models or to a []map[string]any.
func (p *Postgres) Find(ctx context.Context, meta metadata.EntityMetadata, pred predicate.Predicate, dest any, page qbe.Page) error {
	err := p.Query(ctx).
		Table(meta.Entity()).
		Match(pred, metadata.Columns(meta)).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(dest)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", meta.Entity(), err)
	}
	return nil
}

// Count counts the rows of meta's table matching p.
func (p *Postgres) Count(ctx context.Context, meta metadata.EntityMetadata, pred predicate.Predicate) (int64, error) {
	var count int64
	err := p.Query(ctx).
		Table(meta.Entity()).
		Match(pred, metadata.Columns(meta)).
		Count(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", meta.Entity(), err)
	}
	return count, nil
}

// Create inserts value.
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	return p.DB().WithContext(ctx).Create(value).Error
}

// AutoMigrate creates or updates the tables of models.
func (p *Postgres) AutoMigrate(ctx context.Context, models ...interface{}) error {
	return p.DB().WithContext(ctx).AutoMigrate(models...)
}

// Exec runs raw SQL and returns the number of affected rows.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Exec(sql, values...)
	return result.RowsAffected, result.Error
}
