package postgres

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/qbe/v1/predicate"
)

// tautology renders as a condition every row satisfies.
var tautology = clause.Expr{SQL: "1 = 1"}

// Expression translates p into a GORM expression. columns maps attribute names
// to column names; attributes missing from it are used as column names.
// Columns are qualified with the statement's table.
func Expression(p predicate.Predicate, columns map[string]string) clause.Expression {
	switch v := p.(type) {
	case predicate.Equal:
		return clause.Eq{Column: column(v.Field, columns), Value: bindValue(v.Value)}
	case predicate.Contains:
		return clause.Like{Column: column(v.Field, columns), Value: v.Pattern()}
	case predicate.And:
		switch len(v.Predicates) {
		case 0:
			return tautology
		case 1:
			return Expression(v.Predicates[0], columns)
		}
		return clause.And(expressions(v.Predicates, columns)...)
	case predicate.Or:
		// GORM joins a single-operand OR group to its siblings with OR, so it is unwrapped.
		switch len(v.Predicates) {
		case 0:
			return tautology
		case 1:
			return Expression(v.Predicates[0], columns)
		}
		return clause.Or(expressions(v.Predicates, columns)...)
	default:
		return tautology
	}
}

// Where returns a scope filtering by p. A tautology adds no condition.
//
// Example:
//
//	db.Table("widgets").Scopes(postgres.Where(p, nil)).Find(&rows)
func Where(p predicate.Predicate, columns map[string]string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if predicate.IsTautology(p) {
			return db
		}
		return db.Where(Expression(p, columns))
	}
}

func expressions(predicates []predicate.Predicate, columns map[string]string) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(predicates))
	for _, p := range predicates {
		exprs = append(exprs, Expression(p, columns))
	}
	return exprs
}

func column(field string, columns map[string]string) clause.Column {
	name := field
	if c, ok := columns[field]; ok && c != "" {
		name = c
	}
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// bindValue binds json.Number as a number rather than as text.
func bindValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
