package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// Query starts a fluent query on the current connection.
//
// Example:
//
//	var rows []map[string]any
//	err := pg.Query(ctx).
//	    Table("widgets").
//	    Match(p, nil).
//	    Order("id").
//	    Limit(10).
//	    Find(&rows)
func (p *Postgres) Query(ctx context.Context) *QueryBuilder {
	return &QueryBuilder{db: p.DB().WithContext(ctx)}
}

// QueryBuilder chains GORM query modifiers. Terminal methods execute the query.
// A builder is not safe for concurrent use.
type QueryBuilder struct {
	db *gorm.DB
}

// Table sets the table to query.
func (qb *QueryBuilder) Table(name string) *QueryBuilder {
	qb.db = qb.db.Table(name)
	return qb
}

// Model sets the model to query; GORM derives the table from it.
func (qb *QueryBuilder) Model(value interface{}) *QueryBuilder {
	qb.db = qb.db.Model(value)
	return qb
}

// Select restricts the selected columns.
func (qb *QueryBuilder) Select(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Select(query, args...)
	return qb
}

// Where adds a raw condition, ANDed with previous ones.
func (qb *QueryBuilder) Where(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Where(query, args...)
	return qb
}

// Match adds the predicate as a condition. A tautology adds nothing.
func (qb *QueryBuilder) Match(p predicate.Predicate, columns map[string]string) *QueryBuilder {
	qb.db = qb.db.Scopes(Where(p, columns))
	return qb
}

// Order adds an ORDER BY clause.
func (qb *QueryBuilder) Order(value interface{}) *QueryBuilder {
	qb.db = qb.db.Order(value)
	return qb
}

// Limit caps the number of rows. Non-positive values are ignored.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	if limit > 0 {
		qb.db = qb.db.Limit(limit)
	}
	return qb
}

// Offset skips rows. Non-positive values are ignored.
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	if offset > 0 {
		qb.db = qb.db.Offset(offset)
	}
	return qb
}

// Find executes the query and scans all rows into dest.
func (qb *QueryBuilder) Find(dest interface{}) error {
	return qb.db.Find(dest).Error
}

// Count executes a COUNT query.
func (qb *QueryBuilder) Count(count *int64) error {
	return qb.db.Count(count).Error
}

// ToSQL renders the SELECT the builder would run into dest, with bound values
// inlined, without executing it.
func (qb *QueryBuilder) ToSQL(dest interface{}) string {
	return qb.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Find(dest)
	})
}
