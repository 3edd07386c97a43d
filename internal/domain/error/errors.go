package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount       = 4001
	CodeSelfGive            = 4002
	CodeRecipientUnresolved = 4003
	CodeInvalidRequest      = 4004
	CodeConstraintViolation = 4005
	CodeQuotaExceeded       = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorageFailure     = 5001
	CodeDatabaseConnection = 5002
)

// Base error types
var (
	// ErrInvalidAmount is returned when the amount is not a positive integer
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrSelfGive is returned when the giver and the recipient are the same user
	ErrSelfGive = errors.New("cannot give to yourself")

	// ErrQuotaExceeded is returned when a give would exceed the giver's rolling daily limit
	ErrQuotaExceeded = errors.New("daily limit exceeded")

	// ErrRecipientUnresolved is returned when the recipient could not be determined
	ErrRecipientUnresolved = errors.New("recipient could not be resolved")

	// ErrStorageFailure is returned when the ledger could not be read or written
	ErrStorageFailure = errors.New("storage failure")

	// ErrQuotaLookup is returned when the rolling window sum could not be computed
	ErrQuotaLookup = fmt.Errorf("quota lookup failed: %w", ErrStorageFailure)

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrInvalidConfiguration is returned when a configuration value is out of range
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrSelfGive):
		return CodeSelfGive
	case errors.Is(err, ErrRecipientUnresolved):
		return CodeRecipientUnresolved
	case errors.Is(err, ErrQuotaExceeded):
		return CodeQuotaExceeded
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	// A constraint hit while writing the ledger is still a storage failure
	case errors.Is(err, ErrStorageFailure):
		return CodeStorageFailure
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// QuotaExceededError carries the giver's window state at the moment of rejection
type QuotaExceededError struct {
	GiverID   string
	Requested int64
	Given     int64
	Remaining int64
	Limit     int64
}

// Error implements the error interface
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit exceeded for %s: requested %d, given %d of %d, remaining %d",
		e.GiverID, e.Requested, e.Given, e.Limit, e.Remaining)
}

// Is checks if the target error is an ErrQuotaExceeded
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// LogFields returns a map of fields for structured logging
func (e *QuotaExceededError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "quota_exceeded",
		"giver_id":   e.GiverID,
		"requested":  e.Requested,
		"given":      e.Given,
		"remaining":  e.Remaining,
		"limit":      e.Limit,
		"error_code": CodeQuotaExceeded,
	}
}

// NewQuotaExceededError creates a new detailed quota error
func NewQuotaExceededError(giverID string, requested, given, remaining, limit int64) error {
	return &QuotaExceededError{
		GiverID:   giverID,
		Requested: requested,
		Given:     given,
		Remaining: remaining,
		Limit:     limit,
	}
}

// AdmissionError represents a rejected give together with the request that caused it
type AdmissionError struct {
	GiverID         string
	RecipientID     string
	Amount          int64
	SourceChannelID string
	Reason          string
	Err             error
}

// Error implements the error interface for AdmissionError
func (e *AdmissionError) Error() string {
	return fmt.Sprintf("give rejected (giver: %s, recipient: %s, amount: %d): %s - %v",
		e.GiverID, e.RecipientID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *AdmissionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *AdmissionError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":        "admission_error",
		"giver_id":          e.GiverID,
		"recipient_id":      e.RecipientID,
		"amount":            e.Amount,
		"source_channel_id": e.SourceChannelID,
		"reason":            e.Reason,
		"error":             e.Err.Error(),
		"error_code":        ErrorCode(e.Err),
	}

	var quotaErr *QuotaExceededError
	if errors.As(e.Err, &quotaErr) {
		fields["remaining"] = quotaErr.Remaining
		fields["limit"] = quotaErr.Limit
	}

	return fields
}

// NewAdmissionError creates a detailed admission error
func NewAdmissionError(giverID, recipientID string, amount int64, sourceChannelID, reason string, err error) error {
	return &AdmissionError{
		GiverID:         giverID,
		RecipientID:     recipientID,
		Amount:          amount,
		SourceChannelID: sourceChannelID,
		Reason:          reason,
		Err:             err,
	}
}

// StorageError wraps a failed ledger operation
type StorageError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports every StorageError as an ErrStorageFailure
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// LogFields returns a map of fields for structured logging
func (e *StorageError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "storage_error",
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e),
	}
}

// NewStorageError creates a storage error for the given operation
func NewStorageError(operation string, err error) error {
	return &StorageError{Operation: operation, Err: err}
}

// RemainingFrom extracts the remaining quota from a quota error
func RemainingFrom(err error) (int64, bool) {
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return quotaErr.Remaining, true
	}
	return 0, false
}

// IsQuotaExceededError checks if the error is a quota rejection
func IsQuotaExceededError(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsStorageFailure checks if the error originated from the ledger storage
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

// IsValidationError checks if the error is a terminal validation rejection
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrSelfGive) ||
		errors.Is(err, ErrRecipientUnresolved) ||
		errors.Is(err, ErrInvalidRequest)
}
