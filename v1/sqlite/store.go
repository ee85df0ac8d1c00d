package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// ErrUnsupportedDestination is returned by Find when dest is not a *[]map[string]any.
var ErrUnsupportedDestination = errors.New("destination must be *[]map[string]any")

// Store is a SQLite database opened through database/sql.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and creates, unless read-only) the configured database.
func Open(cfg Config) (*Store, error) {
	path := cfg.path()

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: would see its own empty database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}

	return &Store{db: db, path: path}, nil
}

func dsn(cfg Config) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.busyTimeout().Milliseconds()))
	if cfg.ReadOnly {
		q.Add("mode", "ro")
	}
	return "file:" + cfg.path() + "?" + q.Encode()
}

// DB gives raw database/sql access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Exec runs a statement and returns the number of affected rows.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Find loads the rows of meta's table matching p into dest, which must be a
// *[]map[string]any keyed by column name.
func (s *Store) Find(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate, dest any, page qbe.Page) error {
	out, ok := dest.(*[]map[string]any)
	if !ok || out == nil {
		return ErrUnsupportedDestination
	}

	query, args := SelectSQL(meta, p, page)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", meta.Entity(), err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", meta.Entity(), err)
	}
	*out = result
	return nil
}

// Count counts the rows of meta's table matching p.
func (s *Store) Count(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate) (int64, error) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(quoteIdentifier(meta.Entity()))

	where, args := NewEncoder(metadata.Columns(meta)).Encode(p)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, b.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", meta.Entity(), err)
	}
	return count, nil
}

// SelectSQL returns the parameterised SELECT that Find runs.
func SelectSQL(meta metadata.EntityMetadata, p predicate.Predicate, page qbe.Page) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(quoteIdentifier(meta.Entity()))

	where, args := NewEncoder(metadata.Columns(meta)).Encode(p)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}

	// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
	if page.Limit > 0 || page.Offset > 0 {
		limit := page.Limit
		if limit <= 0 {
			limit = -1
		}
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
		if page.Offset > 0 {
			b.WriteString(" OFFSET ?")
			args = append(args, page.Offset)
		}
	}
	return b.String(), args
}

func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
