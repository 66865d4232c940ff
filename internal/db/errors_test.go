package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassifyPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	err := Classify(fmt.Errorf("insert question: %w", pgErr))

	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, KindDatabase, e.Kind)
	assert.Equal(t, "23503", e.Code)
	assert.True(t, IsKind(err, KindDatabase))
}

func TestClassifyScanError(t *testing.T) {
	scanErr := pgx.ScanArgError{ColumnIndex: 2, Err: errors.New("cannot scan text into *bool")}
	err := Classify(scanErr)
	assert.True(t, IsKind(err, KindConversion))
}

func TestClassifyConnectionErrors(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.True(t, IsKind(Classify(opErr), KindConnection))
	assert.True(t, IsKind(Classify(context.DeadlineExceeded), KindConnection))
	assert.True(t, IsKind(Classify(fmt.Errorf("acquire: %w", context.Canceled)), KindConnection))
}

func TestClassifyUnknown(t *testing.T) {
	err := Classify(errors.New("something odd"))
	assert.True(t, IsKind(err, KindUnknown))
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	original := Classify(&pgconn.PgError{Code: "42601", Message: "syntax error"})
	again := Classify(fmt.Errorf("wrapped: %w", original))

	var e *Error
	assert.ErrorAs(t, again, &e)
	assert.Equal(t, "42601", e.Code)
}

func TestErrorStringIncludesKindAndCode(t *testing.T) {
	err := &Error{Kind: KindDatabase, Code: "23505", Message: "duplicate key"}
	assert.Contains(t, err.Error(), "database")
	assert.Contains(t, err.Error(), "23505")
}
