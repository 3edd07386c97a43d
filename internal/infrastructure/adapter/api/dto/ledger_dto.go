package dto

import "github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"

// QuotaResponse represents a user's rolling window state
type QuotaResponse struct {
	UserID       string `json:"userId"`
	GivenLast24h int64  `json:"givenLast24h"`
	Remaining    int64  `json:"remaining"`
	DailyLimit   int64  `json:"dailyLimit"`
}

// HistoryResponse lists transactions newest first
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// LeaderboardEntryResponse is one recipient on the leaderboard
type LeaderboardEntryResponse struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Total  int64  `json:"total"`
}

// LeaderboardResponse lists the top recipients
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// EventEntryResponse is one reacted announcement on the event leaderboard
type EventEntryResponse struct {
	ChannelID     string   `json:"channelId"`
	MessageTS     string   `json:"messageTs"`
	ReactionCount int64    `json:"reactionCount"`
	TotalAmount   int64    `json:"totalAmount"`
	Givers        []string `json:"givers"`
}

// EventLeaderboardResponse lists the most reacted announcements
type EventLeaderboardResponse struct {
	Events []EventEntryResponse `json:"events"`
}

// UnitResponse names the granted unit
type UnitResponse struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// EmojiTableResponse describes the configured emoji values
type EmojiTableResponse struct {
	Primary    string           `json:"primary"`
	Alternates []string         `json:"alternates"`
	Values     map[string]int64 `json:"values"`
	Unit       UnitResponse     `json:"unit"`
}

// NewQuotaResponse converts a quota status
func NewQuotaResponse(status *entity.QuotaStatus) QuotaResponse {
	return QuotaResponse{
		UserID:       status.UserID,
		GivenLast24h: status.GivenLast24h,
		Remaining:    status.Remaining,
		DailyLimit:   status.DailyLimit,
	}
}

// NewHistoryResponse converts a list of transactions
func NewHistoryResponse(txs []entity.Transaction) HistoryResponse {
	resp := HistoryResponse{Transactions: make([]TransactionResponse, 0, len(txs))}
	for i := range txs {
		resp.Transactions = append(resp.Transactions, NewTransactionResponse(&txs[i]))
	}
	return resp
}

// NewLeaderboardResponse converts leaderboard entries, ranking from 1
func NewLeaderboardResponse(entries []entity.LeaderboardEntry) LeaderboardResponse {
	resp := LeaderboardResponse{Entries: make([]LeaderboardEntryResponse, 0, len(entries))}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, LeaderboardEntryResponse{Rank: i + 1, UserID: e.UserID, Total: e.Total})
	}
	return resp
}

// NewEventLeaderboardResponse converts event leaderboard entries
func NewEventLeaderboardResponse(entries []entity.EventLeaderboardEntry) EventLeaderboardResponse {
	resp := EventLeaderboardResponse{Events: make([]EventEntryResponse, 0, len(entries))}
	for _, e := range entries {
		givers := e.Givers
		if givers == nil {
			givers = []string{}
		}
		resp.Events = append(resp.Events, EventEntryResponse{
			ChannelID:     e.ChannelID,
			MessageTS:     e.MessageTS,
			ReactionCount: e.ReactionCount,
			TotalAmount:   e.TotalAmount,
			Givers:        givers,
		})
	}
	return resp
}

// NewEmojiTableResponse describes the emoji table and unit naming
func NewEmojiTableResponse(table *entity.EmojiTable, unit entity.UnitNaming) EmojiTableResponse {
	alternates := table.Alternates()
	if alternates == nil {
		alternates = []string{}
	}
	return EmojiTableResponse{
		Primary:    table.Primary(),
		Alternates: alternates,
		Values:     table.Values(),
		Unit:       UnitResponse{Singular: unit.Singular, Plural: unit.Plural},
	}
}
