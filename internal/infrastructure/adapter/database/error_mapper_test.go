package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErr "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorMapperClassify(t *testing.T) {
	mapper := NewErrorMapper()

	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{name: "Postgres unique violation", err: &pgconn.PgError{Code: "23505"}, expected: DuplicateKeyError},
		{name: "Postgres check violation", err: &pgconn.PgError{Code: "23514"}, expected: ConstraintError},
		{name: "Postgres deadlock", err: &pgconn.PgError{Code: "40P01"}, expected: LockError},
		{name: "Postgres connection failure", err: &pgconn.PgError{Code: "08006"}, expected: ConnectionError},
		{name: "Postgres query canceled", err: &pgconn.PgError{Code: "57014"}, expected: TimeoutError},
		{name: "Wrapped postgres error", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), expected: DuplicateKeyError},
		{name: "Gorm check constraint", err: gorm.ErrCheckConstraintViolated, expected: ConstraintError},
		{name: "SQLite check constraint", err: errors.New("CHECK constraint failed: chk_transactions_amount_positive"), expected: ConstraintError},
		{name: "SQLite busy", err: errors.New("database is locked"), expected: LockError},
		{name: "SQLite closed", err: errors.New("sql: database is closed"), expected: ConnectionError},
		{name: "Context deadline", err: context.DeadlineExceeded, expected: TimeoutError},
		{name: "Anything else", err: errors.New("disk I/O error"), expected: UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.Classify(tt.err))
		})
	}
}

func TestErrorMapperMapError(t *testing.T) {
	mapper := NewErrorMapper()

	assert.NoError(t, mapper.MapError(nil, "append"))

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "Constraint", err: &pgconn.PgError{Code: "23514"}, expected: domainErr.ErrConstraintViolation},
		{name: "Connection", err: errors.New("dial tcp: connection refused"), expected: domainErr.ErrDatabaseConnection},
		{name: "Timeout", err: context.DeadlineExceeded, expected: domainErr.ErrDatabaseConnection},
		{name: "Unknown", err: errors.New("disk I/O error"), expected: domainErr.ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapper.MapError(tt.err, "append")

			assert.ErrorIs(t, mapped, domainErr.ErrStorageFailure)
			assert.ErrorIs(t, mapped, tt.expected)
			assert.ErrorIs(t, mapped, tt.err)

			var storageErr *domainErr.StorageError
			assert.ErrorAs(t, mapped, &storageErr)
			assert.Equal(t, "append", storageErr.Operation)
		})
	}
}
