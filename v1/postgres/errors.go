package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by TranslateError.
var (
	// ErrRecordNotFound is returned when a query that expects a row finds none.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when a write violates a foreign key constraint.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when GORM rejects the data being written.
	ErrInvalidData = errors.New("invalid data")

	// ErrTimeout is returned when the context deadline expired during a query.
	ErrTimeout = errors.New("query timed out")
)

// TranslateError maps GORM errors to the sentinels above.
// Unknown errors are returned unchanged and nil stays nil.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}

	return err
}

// TranslateError is the method form of the package function, for callers
// holding a Client.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}
