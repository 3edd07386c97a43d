package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorType represents the kind of database failure that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	ConstraintError   ErrorType = "constraint"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	TimeoutError      ErrorType = "timeout"
	UnknownError      ErrorType = "unknown"
)

// PostgreSQL SQLSTATE codes the mapper distinguishes
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgQueryCanceled        = "57014"
	pgConnectionClass      = "08"
)

// ErrorMapper maps database errors to domain errors
// Every mapped error satisfies errors.Is(err, ErrStorageFailure)
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the kind of database error
func (m *ErrorMapper) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return DuplicateKeyError
		case pgErr.Code == pgCheckViolation || pgErr.Code == pgNotNullViolation:
			return ConstraintError
		case pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected:
			return LockError
		case pgErr.Code == pgQueryCanceled:
			return TimeoutError
		case strings.HasPrefix(pgErr.Code, pgConnectionClass):
			return ConnectionError
		}
		return UnknownError
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return DuplicateKeyError
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ConstraintError
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return TimeoutError
	}

	// SQLite and driver errors carry no structured code through gorm
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate key"):
		return DuplicateKeyError
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "not null constraint") ||
		strings.Contains(errMsg, "constraint failed"):
		return ConstraintError
	case strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "database table is locked") ||
		strings.Contains(errMsg, "deadlock"):
		return LockError
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "unable to open database"):
		return ConnectionError
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError
	}

	return UnknownError
}

// MapError maps a database error to a domain storage error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var cause error
	switch m.Classify(err) {
	case DuplicateKeyError, ConstraintError:
		cause = fmt.Errorf("%w: %w", domainErr.ErrConstraintViolation, err)
	case ConnectionError:
		cause = fmt.Errorf("%w: %w", domainErr.ErrDatabaseConnection, err)
	case TimeoutError:
		cause = fmt.Errorf("%w: %s operation timed out: %w", domainErr.ErrDatabaseConnection, operation, err)
	default:
		cause = err
	}

	return domainErr.NewStorageError(operation, cause)
}
