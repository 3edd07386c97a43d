package middleware

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and renders errors attached by handlers
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetString(RequestIDKey),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := NewErrorResponse(err)

		fields := map[string]any{
			"path":       c.Request.URL.Path,
			"status":     status,
			"code":       body.Code,
			"request_id": c.GetString(RequestIDKey),
			"error":      err.Error(),
		}
		var detailed interface{ LogFields() map[string]any }
		if errors.As(err, &detailed) {
			for k, v := range detailed.LogFields() {
				fields[k] = v
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", fields)
		} else {
			logger.Debug("Request rejected", fields)
		}

		c.JSON(status, body)
	}
}

// StatusCode maps a domain error to its HTTP status
func StatusCode(err error) int {
	switch {
	case domainerr.IsStorageFailure(err):
		return http.StatusInternalServerError
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrRecipientUnresolved),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrSelfGive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domainerr.ErrConstraintViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the status and body for a domain error
// Server-side failures never expose their cause
func NewErrorResponse(err error) (int, dto.ErrorResponse) {
	status := StatusCode(err)
	body := dto.ErrorResponse{Code: domainerr.ErrorCode(err)}

	switch {
	case errors.Is(err, domainerr.ErrQuotaExceeded):
		body.Message = domainerr.ErrQuotaExceeded.Error()
		if remaining, ok := domainerr.RemainingFrom(err); ok {
			body.Remaining = &remaining
		}
	case errors.Is(err, domainerr.ErrInvalidRequest):
		body.Message = err.Error()
	case status == http.StatusInternalServerError:
		if domainerr.IsStorageFailure(err) {
			body.Message = domainerr.ErrStorageFailure.Error()
		} else {
			body.Message = "Internal server error"
		}
	default:
		body.Message = sentinelMessage(err)
	}

	return status, body
}

func sentinelMessage(err error) string {
	for _, sentinel := range []error{
		domainerr.ErrInvalidAmount,
		domainerr.ErrRecipientUnresolved,
		domainerr.ErrSelfGive,
		domainerr.ErrConstraintViolation,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
