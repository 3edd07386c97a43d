package usecase

import (
	"context"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
)

// QuotaQuery asks for a user's rolling window state
type QuotaQuery struct {
	UserID string
}

// HistoryQuery asks for recent transactions
// Limit 0 means the configured default; RecipientID wins over GiverID
type HistoryQuery struct {
	Limit       int
	GiverID     string
	RecipientID string
}

// LeaderboardQuery asks for the top recipients
// Limit 0 means the configured default
type LeaderboardQuery struct {
	Limit int
}

// LedgerQueryUseCase defines the read-side operations exposed to adapters
type LedgerQueryUseCase interface {
	Quota(ctx context.Context, query QuotaQuery) (*entity.QuotaStatus, error)
	History(ctx context.Context, query HistoryQuery) ([]entity.Transaction, error)
	Leaderboard(ctx context.Context, query LeaderboardQuery) ([]entity.LeaderboardEntry, error)
	EventLeaderboard(ctx context.Context, query LeaderboardQuery) ([]entity.EventLeaderboardEntry, error)
}
