package transaction

import (
	"context"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
)

// QuotaStatusReader reports a user's rolling window state
type QuotaStatusReader interface {
	Status(ctx context.Context, userID string) (*entity.QuotaStatus, error)
}

// Service ties admission and reaction processing together for adapters
type Service struct {
	admission *Admission
	reactions *ReactionProcessor
	quota     QuotaStatusReader
	emojis    *entity.EmojiTable
	unit      entity.UnitNaming
	logger    coreport.Logger
}

// NewService creates a new give service
func NewService(
	admission *Admission,
	reactions *ReactionProcessor,
	quota QuotaStatusReader,
	emojis *entity.EmojiTable,
	unit entity.UnitNaming,
	logger coreport.Logger,
) usecase.GiveUseCase {
	return &Service{
		admission: admission,
		reactions: reactions,
		quota:     quota,
		emojis:    emojis,
		unit:      unit,
		logger:    logger,
	}
}

// Give admits an explicit grant
func (s *Service) Give(ctx context.Context, req entity.GiveRequest) (*usecase.GiveResult, error) {
	tx, err := s.admission.Admit(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.buildResult(ctx, tx, s.emojis.PickDisplayEmoji()), nil
}

// React processes a reaction event
func (s *Service) React(ctx context.Context, event entity.ReactionEvent) (*usecase.ReactionResult, error) {
	outcome, err := s.reactions.Process(ctx, event)
	if err != nil {
		return nil, err
	}

	result := &usecase.ReactionResult{Outcome: outcome}
	if !outcome.IsIgnored() {
		result.Give = s.buildResult(ctx, outcome.Transaction, entity.NormalizeEmojiName(event.EmojiName))
	}
	return result, nil
}

// buildResult attaches the announcement and the giver's remaining quota
// A failed quota lookup here does not undo the grant; the result is marked unknown
func (s *Service) buildResult(ctx context.Context, tx *entity.Transaction, emoji string) *usecase.GiveResult {
	result := &usecase.GiveResult{
		Transaction:  tx,
		DisplayEmoji: emoji,
		Announcement: entity.FormatAnnouncement(emoji, tx, s.unit),
	}

	status, err := s.quota.Status(ctx, tx.GiverID)
	if err != nil {
		s.logger.Warn("Failed to read remaining quota after give", map[string]any{
			"transaction_id": tx.ID,
			"giver_id":       tx.GiverID,
			"error":          err.Error(),
		})
		return result
	}

	result.RemainingAfter = status.Remaining
	result.RemainingKnown = true
	return result
}
