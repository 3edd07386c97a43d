package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
)

// LedgerRepository is the append-only transaction log and the queries over it
type LedgerRepository interface {
	// Append inserts one transaction and returns its assigned ID
	// The store sets ID and CreatedAt on the passed transaction
	//
	// Possible errors:
	// - ErrStorageFailure: If the row could not be durably written
	Append(ctx context.Context, transaction *entity.Transaction) (uint64, error)

	// SumGivenSince returns the total amount given by the giver at or after since
	// Returns 0 when no rows match
	//
	// Possible errors:
	// - ErrStorageFailure: If the log could not be read
	SumGivenSince(ctx context.Context, giverID string, since time.Time) (int64, error)

	// Leaderboard returns recipients ordered by all-time total received, highest first
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)

	// History returns the newest transactions first, filtered by giver or recipient
	// The limit is applied as given; callers clamp it
	History(ctx context.Context, limit int, filter entity.HistoryFilter) ([]entity.Transaction, error)

	// EventLeaderboard aggregates reaction-driven transactions by the message they reference
	EventLeaderboard(ctx context.Context, limit int) ([]entity.EventLeaderboardEntry, error)

	// ReactionKeysSince returns the dedup keys of reaction-driven transactions created at or after since
	ReactionKeysSince(ctx context.Context, since time.Time) ([]entity.DedupKey, error)
}
