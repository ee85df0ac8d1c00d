package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// RenderSQL returns the SELECT that Find would run for meta and p, with
// values inlined. No server is contacted.
func RenderSQL(meta metadata.EntityMetadata, p predicate.Predicate, page qbe.Page) (string, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to open dry-run session: %w", err)
	}

	var rows []map[string]any
	return (&QueryBuilder{db: db}).
		Table(meta.Entity()).
		Match(p, metadata.Columns(meta)).
		Limit(page.Limit).
		Offset(page.Offset).
		ToSQL(&rows), nil
}
