package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
)

const (
	// MaxHistoryLines bounds a single history query
	MaxHistoryLines = 50
	// MaxLeaderboardLimit bounds a single leaderboard query
	MaxLeaderboardLimit = 100
)

// QuotaReader reports a user's rolling window state
type QuotaReader interface {
	Status(ctx context.Context, userID string) (*entity.QuotaStatus, error)
}

// Limits holds the defaults applied when a query leaves its limit unset
type Limits struct {
	DefaultHistoryLines int
	LeaderboardLimit    int
}

// QueryService implements the read-side operations
type QueryService struct {
	ledgerRepo persistence.LedgerRepository
	quota      QuotaReader
	limits     Limits
	logger     coreport.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	ledgerRepo persistence.LedgerRepository,
	quota QuotaReader,
	limits Limits,
	logger coreport.Logger,
) usecase.LedgerQueryUseCase {
	if limits.DefaultHistoryLines <= 0 {
		limits.DefaultHistoryLines = 10
	}
	if limits.LeaderboardLimit <= 0 {
		limits.LeaderboardLimit = 10
	}

	return &QueryService{
		ledgerRepo: ledgerRepo,
		quota:      quota,
		limits:     limits,
		logger:     logger,
	}
}

// Quota returns the user's given amount and remaining allowance for the window
func (s *QueryService) Quota(ctx context.Context, query usecase.QuotaQuery) (*entity.QuotaStatus, error) {
	if strings.TrimSpace(query.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}
	return s.quota.Status(ctx, query.UserID)
}

// History returns the most recent transactions, newest first
func (s *QueryService) History(ctx context.Context, query usecase.HistoryQuery) ([]entity.Transaction, error) {
	limit := clamp(query.Limit, s.limits.DefaultHistoryLines, MaxHistoryLines)

	filter := entity.HistoryFilter{
		GiverID:     strings.TrimSpace(query.GiverID),
		RecipientID: strings.TrimSpace(query.RecipientID),
	}
	if filter.RecipientID != "" {
		filter.GiverID = ""
	}

	txs, err := s.ledgerRepo.History(ctx, limit, filter)
	if err != nil {
		s.logger.Error("Failed to read history", map[string]any{
			"limit":        limit,
			"giver_id":     filter.GiverID,
			"recipient_id": filter.RecipientID,
			"error":        err.Error(),
		})
		return nil, s.storageErr("history", err)
	}

	return txs, nil
}

// Leaderboard returns recipients ranked by total received
func (s *QueryService) Leaderboard(ctx context.Context, query usecase.LeaderboardQuery) ([]entity.LeaderboardEntry, error) {
	limit := clamp(query.Limit, s.limits.LeaderboardLimit, MaxLeaderboardLimit)

	entries, err := s.ledgerRepo.Leaderboard(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to read leaderboard", map[string]any{"limit": limit, "error": err.Error()})
		return nil, s.storageErr("leaderboard", err)
	}

	return entries, nil
}

// EventLeaderboard returns the announcements that gathered the most reaction grants
func (s *QueryService) EventLeaderboard(ctx context.Context, query usecase.LeaderboardQuery) ([]entity.EventLeaderboardEntry, error) {
	limit := clamp(query.Limit, s.limits.LeaderboardLimit, MaxLeaderboardLimit)

	entries, err := s.ledgerRepo.EventLeaderboard(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to read event leaderboard", map[string]any{"limit": limit, "error": err.Error()})
		return nil, s.storageErr("event_leaderboard", err)
	}

	return entries, nil
}

func (s *QueryService) storageErr(operation string, err error) error {
	if errs.IsStorageFailure(err) {
		return err
	}
	return errs.NewStorageError(operation, err)
}

// clamp applies the default for an unset limit and bounds it to [1, upper]
func clamp(limit, fallback, upper int) int {
	if limit == 0 {
		limit = fallback
	}
	return max(1, min(limit, upper))
}
