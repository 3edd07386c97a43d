package model

import (
	"time"
)

// Transaction represents the database model for ledger rows
// Rows are only ever inserted
type Transaction struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	GiverID           string    `gorm:"not null;size:64"`
	RecipientID       string    `gorm:"not null;size:64"`
	Amount            int64     `gorm:"not null;check:chk_transactions_amount_positive,amount > 0"`
	Note              string    `gorm:"type:text;not null;default:''"`
	CreatedAt         time.Time `gorm:"not null"`
	SourceChannelID   *string   `gorm:"size:64"`
	OriginalChannelID *string   `gorm:"size:64"`
	OriginalMessageTS *string   `gorm:"column:original_message_ts;size:64"`
	ReactionEmoji     *string   `gorm:"size:128"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// LeaderboardRow is the scan target of the recipient leaderboard query
type LeaderboardRow struct {
	RecipientID string
	Total       int64
}

// EventRow is the scan target of the event leaderboard query
type EventRow struct {
	OriginalChannelID string
	OriginalMessageTS string `gorm:"column:original_message_ts"`
	ReactionCount     int64
	TotalAmount       int64
}

// ReactionKeyRow is the scan target of the reaction key query
type ReactionKeyRow struct {
	GiverID           string
	OriginalChannelID string
	OriginalMessageTS string `gorm:"column:original_message_ts"`
	ReactionEmoji     string
}
