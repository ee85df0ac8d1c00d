package qbe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for caller errors such as a nil example.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState is returned when metadata and values are inconsistent.
	// It points at a defect in metadata registration and is not retryable.
	ErrIllegalState = errors.New("illegal state")

	// ErrUnknownEntity is returned when no metadata is registered for an entity.
	// It matches ErrInvalidArgument.
	ErrUnknownEntity = fmt.Errorf("%w: unknown entity", ErrInvalidArgument)

	// ErrValueType is wrapped by AttributeError when a value's kind contradicts
	// the declared value type.
	ErrValueType = errors.New("value does not match declared type")
)

// AttributeError identifies the attribute whose metadata could not be used.
type AttributeError struct {
	Entity    string
	Attribute string
	Err       error
}

// Error reports the entity and attribute together with the underlying cause.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s: entity %q attribute %q: %v", ErrIllegalState, e.Entity, e.Attribute, e.Err)
}

// Unwrap returns the cause, such as ErrValueType or a metadata error.
func (e *AttributeError) Unwrap() error {
	return e.Err
}

// Is makes every AttributeError match ErrIllegalState.
func (e *AttributeError) Is(target error) bool {
	return target == ErrIllegalState
}
