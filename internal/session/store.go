package session

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an unknown session identifier.
	ErrNotFound = errors.New("session: not found")

	// ErrDuplicateID guards Create against id collisions. With
	// uuid-v4 identifiers it should never fire.
	ErrDuplicateID = errors.New("session: duplicate session id")
)

// ValidationError reports a missing or malformed required input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("session: missing required field %q", e.Field)
}

// Store defines how session records are stored and retrieved.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts a new record, failing with ErrDuplicateID when
	// the identifier already exists.
	Create(ctx context.Context, s Session) error

	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, sessionID string) (*Session, error)

	// FindAll returns every record matching the status filter,
	// order-irrelevant. StatusAny matches everything.
	FindAll(ctx context.Context, status Status) ([]Session, error)

	// Save upserts a full record.
	Save(ctx context.Context, s Session) error

	// DeleteAll removes every record and reports how many.
	DeleteAll(ctx context.Context) (int64, error)
}
