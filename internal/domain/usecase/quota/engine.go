package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
)

// Window is the sliding lookback used for the daily limit
const Window = 24 * time.Hour

// Engine answers rolling-window quota questions from the ledger
// Nothing is cached; every answer is recomputed from the log
type Engine struct {
	ledgerRepo   persistence.LedgerRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	dailyLimit   int64
}

// NewEngine creates a new quota engine
func NewEngine(
	ledgerRepo persistence.LedgerRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	dailyLimit int64,
) (*Engine, error) {
	if dailyLimit <= 0 {
		return nil, fmt.Errorf("%w: daily limit must be positive, got %d", errs.ErrInvalidConfiguration, dailyLimit)
	}

	return &Engine{
		ledgerRepo:   ledgerRepo,
		timeProvider: timeProvider,
		logger:       logger,
		dailyLimit:   dailyLimit,
	}, nil
}

// DailyLimit returns the configured limit
func (e *Engine) DailyLimit() int64 {
	return e.dailyLimit
}

// GivenLast24h returns how much the giver granted in the trailing window
func (e *Engine) GivenLast24h(ctx context.Context, giverID string) (int64, error) {
	since := e.timeProvider.Now().Add(-Window)

	given, err := e.ledgerRepo.SumGivenSince(ctx, giverID, since)
	if err != nil {
		e.logger.Error("Failed to compute rolling window sum", map[string]any{
			"giver_id": giverID,
			"since":    since,
			"error":    err.Error(),
		})
		return 0, fmt.Errorf("%w: %w", errs.ErrQuotaLookup, err)
	}

	if given < 0 {
		given = 0
	}
	return given, nil
}

// WouldExceed reports whether granting amount more would pass the daily limit
// The returned remaining is the quota left before this grant
// A lookup failure reports true so callers that ignore the error still deny
func (e *Engine) WouldExceed(ctx context.Context, giverID string, amount int64) (bool, int64, error) {
	given, err := e.GivenLast24h(ctx, giverID)
	if err != nil {
		return true, 0, err
	}

	remaining := e.remaining(given)
	exceeded := given+amount > e.dailyLimit

	e.logger.Debug("Quota checked", map[string]any{
		"giver_id":  giverID,
		"given":     given,
		"amount":    amount,
		"remaining": remaining,
		"exceeded":  exceeded,
	})

	return exceeded, remaining, nil
}

// Status returns the user's current window state
func (e *Engine) Status(ctx context.Context, userID string) (*entity.QuotaStatus, error) {
	given, err := e.GivenLast24h(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.QuotaStatus{
		UserID:       userID,
		GivenLast24h: given,
		Remaining:    e.remaining(given),
		DailyLimit:   e.dailyLimit,
	}, nil
}

func (e *Engine) remaining(given int64) int64 {
	return max(0, e.dailyLimit-given)
}
