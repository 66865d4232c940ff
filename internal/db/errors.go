package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind groups storage failures by how callers should react to them.
type Kind int

const (
	// KindUnknown covers driver failures that fit no other bucket.
	KindUnknown Kind = iota
	// KindConnection marks transient failures: pool exhausted, store
	// unreachable, dial or deadline problems. Safe to retry upstream.
	KindConnection
	// KindDatabase marks statements the store rejected (constraint
	// violations, malformed SQL). Not retryable.
	KindDatabase
	// KindConversion marks a row column that could not be mapped onto the
	// expected Go type. Indicates a schema/code mismatch.
	KindConversion
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindDatabase:
		return "database"
	case KindConversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// Error is the storage error surfaced past the persistence boundary. Code
// carries the store-specific SQLSTATE when one is available.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("storage %s error [%s]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("storage %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Classify normalizes a driver-level failure into an *Error. A nil input
// stays nil; an already classified error passes through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Kind: KindDatabase, Code: pgErr.Code, Message: pgErr.Message, err: err}
	}

	var scanErr pgx.ScanArgError
	if errors.As(err, &scanErr) {
		return &Error{Kind: KindConversion, Message: err.Error(), err: err}
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return &Error{Kind: KindConnection, Message: err.Error(), err: err}
	}

	return &Error{Kind: KindUnknown, Message: err.Error(), err: err}
}

// IsKind reports whether err carries the given storage error kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
