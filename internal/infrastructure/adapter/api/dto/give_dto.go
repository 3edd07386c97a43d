package dto

import (
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
)

// GiveRequest represents the API request for an explicit grant
// Either recipientId or a previously seen recipientName identifies the recipient
type GiveRequest struct {
	GiverID       string `json:"giverId" binding:"required"`
	RecipientID   string `json:"recipientId"`
	RecipientName string `json:"recipientName"`
	Amount        int64  `json:"amount"`
	Note          string `json:"note" binding:"max=2000"`
	ChannelID     string `json:"channelId"`
}

// ReactionRequest represents a "reaction added" event forwarded by a chat adapter
type ReactionRequest struct {
	ReactorID         string `json:"reactorId" binding:"required"`
	ChannelID         string `json:"channelId" binding:"required"`
	MessageTS         string `json:"messageTs" binding:"required"`
	Emoji             string `json:"emoji" binding:"required"`
	AnnouncementText  string `json:"announcementText"`
	MessageUnreadable bool   `json:"messageUnreadable"`
}

// TransactionResponse represents one ledger row
type TransactionResponse struct {
	ID                uint64    `json:"id"`
	GiverID           string    `json:"giverId"`
	RecipientID       string    `json:"recipientId"`
	Amount            int64     `json:"amount"`
	Note              string    `json:"note"`
	CreatedAt         time.Time `json:"createdAt"`
	SourceChannelID   *string   `json:"sourceChannelId,omitempty"`
	OriginalChannelID *string   `json:"originalChannelId,omitempty"`
	OriginalMessageTS *string   `json:"originalMessageTs,omitempty"`
	ReactionEmoji     *string   `json:"reactionEmoji,omitempty"`
}

// GiveResponse represents an admitted grant and its announcement
type GiveResponse struct {
	Transaction  TransactionResponse `json:"transaction"`
	Announcement string              `json:"announcement"`
	DisplayEmoji string              `json:"displayEmoji"`
	Remaining    *int64              `json:"remaining,omitempty"` // Absent when the post-grant lookup failed
}

// ReactionResponse represents the outcome of a reaction event
type ReactionResponse struct {
	Admitted      bool          `json:"admitted"`
	Ignored       string        `json:"ignored,omitempty"`
	NotifyReactor bool          `json:"notifyReactor,omitempty"`
	Give          *GiveResponse `json:"give,omitempty"`
}

// NewTransactionResponse converts a transaction entity
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                tx.ID,
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

// NewGiveResponse converts a give result
func NewGiveResponse(result *usecase.GiveResult) *GiveResponse {
	resp := &GiveResponse{
		Transaction:  NewTransactionResponse(result.Transaction),
		Announcement: result.Announcement,
		DisplayEmoji: result.DisplayEmoji,
	}
	if result.RemainingKnown {
		remaining := result.RemainingAfter
		resp.Remaining = &remaining
	}
	return resp
}

// NewReactionResponse converts a reaction result
func NewReactionResponse(result *usecase.ReactionResult) ReactionResponse {
	if result.Outcome.IsIgnored() {
		return ReactionResponse{
			Ignored:       string(result.Outcome.Ignored),
			NotifyReactor: result.Outcome.NotifyReactor,
		}
	}
	return ReactionResponse{Admitted: true, Give: NewGiveResponse(result.Give)}
}
