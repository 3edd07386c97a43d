package usecase

import (
	"context"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
)

// GiveResult contains the persisted transaction and what an adapter needs to announce it
type GiveResult struct {
	Transaction    *entity.Transaction
	Announcement   string
	DisplayEmoji   string
	RemainingAfter int64
	RemainingKnown bool // False when the post-give quota lookup failed
}

// ReactionResult is the outcome of a reaction event
// Give is nil when the reaction was ignored
type ReactionResult struct {
	Outcome *entity.ReactionOutcome
	Give    *GiveResult
}

// GiveUseCase defines the write-side operations exposed to adapters
type GiveUseCase interface {
	// Give admits an explicit grant of units from one user to another
	Give(ctx context.Context, req entity.GiveRequest) (*GiveResult, error)

	// React turns a reaction event into at most one admitted grant
	React(ctx context.Context, event entity.ReactionEvent) (*ReactionResult, error)
}
