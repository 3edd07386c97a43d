package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// LedgerRepository implements the append-only ledger on GORM
type LedgerRepository struct {
	db           *gorm.DB
	errorMapper  *database.ErrorMapper
	metrics      *database.MetricsCollector
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(
	db *gorm.DB,
	errorMapper *database.ErrorMapper,
	metrics *database.MetricsCollector,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) persistence.LedgerRepository {
	return &LedgerRepository{
		db:           db,
		errorMapper:  errorMapper,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// entityToModel converts a transaction entity to a database model
func entityToModel(tx *entity.Transaction) model.Transaction {
	return model.Transaction{
		GiverID:           tx.GiverID,
		RecipientID:       tx.RecipientID,
		Amount:            tx.Amount,
		Note:              tx.Note,
		CreatedAt:         tx.CreatedAt,
		SourceChannelID:   tx.SourceChannelID,
		OriginalChannelID: tx.OriginalChannelID,
		OriginalMessageTS: tx.OriginalMessageTS,
		ReactionEmoji:     tx.ReactionEmoji,
	}
}

// modelToEntity converts a transaction model to an entity
func modelToEntity(m *model.Transaction) entity.Transaction {
	return entity.Transaction{
		ID:                m.ID,
		GiverID:           m.GiverID,
		RecipientID:       m.RecipientID,
		Amount:            m.Amount,
		Note:              m.Note,
		CreatedAt:         m.CreatedAt.UTC(),
		SourceChannelID:   m.SourceChannelID,
		OriginalChannelID: m.OriginalChannelID,
		OriginalMessageTS: m.OriginalMessageTS,
		ReactionEmoji:     m.ReactionEmoji,
	}
}

// Append inserts one transaction and stamps it with its ID and timestamp
func (r *LedgerRepository) Append(ctx context.Context, tx *entity.Transaction) (uint64, error) {
	row := entityToModel(tx)
	// Postgres keeps microseconds; truncating keeps the returned entity equal to what is read back
	row.CreatedAt = r.timeProvider.Now().UTC().Truncate(time.Microsecond)

	_, err := r.metrics.MeasureQuery(ctx, "append", func() (int64, error) {
		result := r.db.WithContext(ctx).Create(&row)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to append transaction", map[string]any{
			"giver_id":     tx.GiverID,
			"recipient_id": tx.RecipientID,
			"amount":       tx.Amount,
			"error":        err.Error(),
		})
		return 0, r.errorMapper.MapError(err, "append")
	}

	tx.ID = row.ID
	tx.CreatedAt = row.CreatedAt

	r.logger.Debug("Transaction appended", map[string]any{
		"transaction_id": row.ID,
		"giver_id":       row.GiverID,
		"recipient_id":   row.RecipientID,
		"amount":         row.Amount,
	})
	return row.ID, nil
}

// SumGivenSince returns the total granted by giverID at or after since
func (r *LedgerRepository) SumGivenSince(ctx context.Context, giverID string, since time.Time) (int64, error) {
	var total int64

	_, err := r.metrics.MeasureQuery(ctx, "sum_given_since", func() (int64, error) {
		result := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("giver_id = ? AND created_at >= ?", giverID, since.UTC()).
			Scan(&total)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to sum given amount", map[string]any{
			"giver_id": giverID,
			"since":    since,
			"error":    err.Error(),
		})
		return 0, r.errorMapper.MapError(err, "sum_given_since")
	}

	return total, nil
}

// Leaderboard returns recipients ordered by total received, ties broken by recipient id
func (r *LedgerRepository) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	var rows []model.LeaderboardRow

	_, err := r.metrics.MeasureQuery(ctx, "leaderboard", func() (int64, error) {
		result := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Select("recipient_id, SUM(amount) AS total").
			Group("recipient_id").
			Order("total DESC, recipient_id ASC").
			Limit(limit).
			Scan(&rows)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to query leaderboard", map[string]any{"limit": limit, "error": err.Error()})
		return nil, r.errorMapper.MapError(err, "leaderboard")
	}

	entries := make([]entity.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entity.LeaderboardEntry{UserID: row.RecipientID, Total: row.Total})
	}
	return entries, nil
}

// History returns the newest transactions first, optionally for one giver or one recipient
func (r *LedgerRepository) History(ctx context.Context, limit int, filter entity.HistoryFilter) ([]entity.Transaction, error) {
	var rows []model.Transaction

	_, err := r.metrics.MeasureQuery(ctx, "history", func() (int64, error) {
		query := r.db.WithContext(ctx).Model(&model.Transaction{})
		switch {
		case filter.RecipientID != "":
			query = query.Where("recipient_id = ?", filter.RecipientID)
		case filter.GiverID != "":
			query = query.Where("giver_id = ?", filter.GiverID)
		}

		result := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to query history", map[string]any{
			"limit":        limit,
			"giver_id":     filter.GiverID,
			"recipient_id": filter.RecipientID,
			"error":        err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "history")
	}

	txs := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		txs = append(txs, modelToEntity(&rows[i]))
	}
	return txs, nil
}

// EventLeaderboard groups reaction-driven transactions by the announcement they reacted to
func (r *LedgerRepository) EventLeaderboard(ctx context.Context, limit int) ([]entity.EventLeaderboardEntry, error) {
	var rows []model.EventRow

	_, err := r.metrics.MeasureQuery(ctx, "event_leaderboard", func() (int64, error) {
		result := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Select("original_channel_id, original_message_ts, COUNT(*) AS reaction_count, SUM(amount) AS total_amount").
			Where("original_channel_id IS NOT NULL AND original_message_ts IS NOT NULL").
			Group("original_channel_id, original_message_ts").
			Order("reaction_count DESC, original_channel_id ASC, original_message_ts ASC").
			Limit(limit).
			Scan(&rows)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to query event leaderboard", map[string]any{"limit": limit, "error": err.Error()})
		return nil, r.errorMapper.MapError(err, "event_leaderboard")
	}

	entries := make([]entity.EventLeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		var givers []string
		err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("original_channel_id = ? AND original_message_ts = ?", row.OriginalChannelID, row.OriginalMessageTS).
			Distinct().
			Order("giver_id").
			Pluck("giver_id", &givers).Error
		if err != nil {
			r.logger.Error("Failed to list event givers", map[string]any{
				"channel_id": row.OriginalChannelID,
				"message_ts": row.OriginalMessageTS,
				"error":      err.Error(),
			})
			return nil, r.errorMapper.MapError(err, "event_leaderboard")
		}

		entries = append(entries, entity.EventLeaderboardEntry{
			ChannelID:     row.OriginalChannelID,
			MessageTS:     row.OriginalMessageTS,
			ReactionCount: row.ReactionCount,
			TotalAmount:   row.TotalAmount,
			Givers:        givers,
		})
	}
	return entries, nil
}

// ReactionKeysSince returns the dedup keys of reaction transactions stored at or after since
func (r *LedgerRepository) ReactionKeysSince(ctx context.Context, since time.Time) ([]entity.DedupKey, error) {
	var rows []model.ReactionKeyRow

	_, err := r.metrics.MeasureQuery(ctx, "reaction_keys_since", func() (int64, error) {
		result := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Select("giver_id, original_channel_id, original_message_ts, reaction_emoji").
			Where("created_at >= ?", since.UTC()).
			Where("original_channel_id IS NOT NULL AND original_message_ts IS NOT NULL AND reaction_emoji IS NOT NULL").
			Order("id").
			Scan(&rows)
		return result.RowsAffected, result.Error
	})
	if err != nil {
		r.logger.Error("Failed to list reaction keys", map[string]any{"since": since, "error": err.Error()})
		return nil, r.errorMapper.MapError(err, "reaction_keys_since")
	}

	keys := make([]entity.DedupKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, entity.DedupKey{
			GiverID:   row.GiverID,
			ChannelID: row.OriginalChannelID,
			MessageTS: row.OriginalMessageTS,
			Emoji:     row.ReactionEmoji,
		})
	}
	return keys, nil
}
