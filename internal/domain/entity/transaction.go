package entity

import (
	"strings"
	"time"
)

// Transaction is one immutable grant of units from a giver to a recipient
type Transaction struct {
	ID                uint64    // Surrogate key assigned by the store on insertion
	GiverID           string    // User who granted the units
	RecipientID       string    // User who received the units
	Amount            int64     // Always positive
	Note              string    // Free-text reason, possibly empty
	CreatedAt         time.Time // Assigned by the store on insertion, UTC
	SourceChannelID   *string   // Channel the give originated from, if known
	OriginalMessageTS *string   // Set only for reaction-driven transactions
	OriginalChannelID *string   // Set only for reaction-driven transactions
	ReactionEmoji     *string   // Emoji that produced a reaction-driven transaction
}

// IsReaction returns true if the transaction was produced by an emoji reaction
func (t *Transaction) IsReaction() bool {
	return t.OriginalMessageTS != nil && t.OriginalChannelID != nil
}

// DedupKey returns the reaction dedup key of a reaction-driven transaction
func (t *Transaction) DedupKey() (DedupKey, bool) {
	if !t.IsReaction() || t.ReactionEmoji == nil {
		return DedupKey{}, false
	}
	return DedupKey{
		GiverID:   t.GiverID,
		ChannelID: *t.OriginalChannelID,
		MessageTS: *t.OriginalMessageTS,
		Emoji:     *t.ReactionEmoji,
	}, true
}

// MessageRef points at the chat message a reaction was added to
type MessageRef struct {
	ChannelID string
	MessageTS string
	Emoji     string
}

// GiveRequest is the normalized request for granting units
type GiveRequest struct {
	GiverID         string
	RecipientID     string
	Amount          int64
	Note            string
	SourceChannelID string
	Reaction        *MessageRef // nil for explicit gives
}

// ToTransaction builds the unsaved transaction described by the request
func (r GiveRequest) ToTransaction() *Transaction {
	tx := &Transaction{
		GiverID:     r.GiverID,
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
		Note:        strings.TrimSpace(r.Note),
	}

	if r.SourceChannelID != "" {
		tx.SourceChannelID = stringPtr(r.SourceChannelID)
	}

	if r.Reaction != nil {
		tx.OriginalChannelID = stringPtr(r.Reaction.ChannelID)
		tx.OriginalMessageTS = stringPtr(r.Reaction.MessageTS)
		tx.ReactionEmoji = stringPtr(r.Reaction.Emoji)
	}

	return tx
}

// HistoryFilter restricts history to one giver or one recipient
// When both are set the recipient filter wins
type HistoryFilter struct {
	GiverID     string
	RecipientID string
}

// LeaderboardEntry is one row of the all-time recipient leaderboard
type LeaderboardEntry struct {
	UserID string
	Total  int64
}

// EventLeaderboardEntry aggregates reaction-driven transactions on one message
type EventLeaderboardEntry struct {
	ChannelID     string
	MessageTS     string
	ReactionCount int64
	TotalAmount   int64
	Givers        []string
}

// QuotaStatus describes a user's rolling window state
type QuotaStatus struct {
	UserID       string
	GivenLast24h int64
	Remaining    int64
	DailyLimit   int64
}

func stringPtr(s string) *string {
	return &s
}
