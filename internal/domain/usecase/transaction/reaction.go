package transaction

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
)

// Admitter admits a give request
type Admitter interface {
	Admit(ctx context.Context, req entity.GiveRequest) (*entity.Transaction, error)
}

// ReactionProcessor turns reaction events into at most one admitted grant per dedup key
type ReactionProcessor struct {
	emojis       *entity.EmojiTable
	dedup        persistence.DedupStore
	admission    Admitter
	ledgerRepo   persistence.LedgerRepository
	validator    *GiveValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewReactionProcessor creates a new ReactionProcessor
func NewReactionProcessor(
	emojis *entity.EmojiTable,
	dedup persistence.DedupStore,
	admission Admitter,
	ledgerRepo persistence.LedgerRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ReactionProcessor {
	return &ReactionProcessor{
		emojis:       emojis,
		dedup:        dedup,
		admission:    admission,
		ledgerRepo:   ledgerRepo,
		validator:    NewGiveValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Process handles one reaction event
// The dedup key is marked before the announcement is resolved and stays marked
// even if admission later fails, so redeliveries never grant twice.
// Events for unreadable messages are answered before marking.
func (p *ReactionProcessor) Process(ctx context.Context, event entity.ReactionEvent) (*entity.ReactionOutcome, error) {
	if err := p.validator.ValidateReaction(event); err != nil {
		return nil, err
	}

	emoji := entity.NormalizeEmojiName(event.EmojiName)
	fields := map[string]any{
		"reactor_id": event.ReactorID,
		"channel_id": event.ChannelID,
		"message_ts": event.MessageTS,
		"emoji":      emoji,
	}

	value, ok := p.emojis.Value(emoji)
	if !ok {
		return p.ignore(entity.IgnoreEmojiNotEligible, fields), nil
	}

	key := entity.DedupKey{
		GiverID:   event.ReactorID,
		ChannelID: event.ChannelID,
		MessageTS: event.MessageTS,
		Emoji:     emoji,
	}

	// Nothing can be granted from an unreadable message, so the key stays free for a retry
	if event.MessageUnreadable {
		return p.ignore(entity.IgnoreMessageUnreadable, fields), nil
	}

	marked, err := p.dedup.MarkIfAbsent(ctx, key)
	if err != nil {
		fields["error"] = err.Error()
		p.logger.Error("Failed to mark reaction as processed", fields)
		return nil, errs.NewStorageError("dedup_mark", err)
	}
	if !marked {
		return p.ignore(entity.IgnoreDuplicate, fields), nil
	}

	announcement, ok := entity.ParseAnnouncement(event.AnnouncementText)
	if !ok {
		return p.ignore(entity.IgnoreNotAnnouncement, fields), nil
	}
	if announcement.RecipientID == event.ReactorID {
		return p.ignore(entity.IgnoreSelfReaction, fields), nil
	}

	note := announcement.Note
	if !announcement.HasNote {
		note = entity.FallbackNote(emoji)
	}

	tx, err := p.admission.Admit(ctx, entity.GiveRequest{
		GiverID:         event.ReactorID,
		RecipientID:     announcement.RecipientID,
		Amount:          value,
		Note:            note,
		SourceChannelID: event.ChannelID,
		Reaction: &entity.MessageRef{
			ChannelID: event.ChannelID,
			MessageTS: event.MessageTS,
			Emoji:     emoji,
		},
	})
	if err != nil {
		return nil, err
	}

	return entity.Admitted(tx), nil
}

// WarmUp seeds the dedup store with reactions persisted inside the window
func (p *ReactionProcessor) WarmUp(ctx context.Context, window time.Duration) (int, error) {
	since := p.timeProvider.Now().Add(-window)

	keys, err := p.ledgerRepo.ReactionKeysSince(ctx, since)
	if err != nil {
		return 0, err
	}

	if err := p.dedup.Seed(ctx, keys); err != nil {
		return 0, errs.NewStorageError("dedup_seed", err)
	}

	p.logger.Info("Reaction dedup store warmed up", map[string]any{
		"since": since,
		"keys":  len(keys),
		"size":  p.dedup.Len(),
	})

	return len(keys), nil
}

func (p *ReactionProcessor) ignore(reason entity.IgnoreReason, fields map[string]any) *entity.ReactionOutcome {
	fields["reason"] = string(reason)
	p.logger.Debug("Reaction ignored", fields)
	return entity.Ignored(reason)
}
