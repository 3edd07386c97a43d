package entity

import (
	"strconv"
	"strings"
)

// IgnoreReason explains why a reaction event produced no transaction
type IgnoreReason string

// Ignore reasons
const (
	IgnoreEmojiNotEligible  IgnoreReason = "emoji_not_eligible"
	IgnoreDuplicate         IgnoreReason = "duplicate"
	IgnoreNotAnnouncement   IgnoreReason = "not_announcement"
	IgnoreSelfReaction      IgnoreReason = "self_reaction"
	IgnoreMessageUnreadable IgnoreReason = "message_unreadable"
)

// ReactionEvent is the normalized "reaction added" signal from a chat adapter
type ReactionEvent struct {
	ReactorID         string
	ChannelID         string
	MessageTS         string
	EmojiName         string
	AnnouncementText  string
	MessageUnreadable bool // The adapter could not fetch the reacted message
}

// DedupKey identifies one reaction by one user on one message
type DedupKey struct {
	GiverID   string
	ChannelID string
	MessageTS string
	Emoji     string
}

// String returns the canonical storage form of the key
// Each field is length prefixed, so distinct keys never share a form whatever the ids contain
func (k DedupKey) String() string {
	var b strings.Builder
	for _, part := range []string{k.GiverID, k.ChannelID, k.MessageTS, k.Emoji} {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// ReactionOutcome is the result of processing a reaction event
// Exactly one of Transaction or Ignored is set
type ReactionOutcome struct {
	Transaction   *Transaction
	Ignored       IgnoreReason
	NotifyReactor bool // The reactor should be told privately why nothing happened
}

// IsIgnored returns true if the reaction was a deliberate no-op
func (o *ReactionOutcome) IsIgnored() bool {
	return o.Ignored != ""
}

// Ignored builds an ignored outcome
func Ignored(reason IgnoreReason) *ReactionOutcome {
	return &ReactionOutcome{
		Ignored:       reason,
		NotifyReactor: reason == IgnoreMessageUnreadable,
	}
}

// Admitted builds a successful outcome
func Admitted(tx *Transaction) *ReactionOutcome {
	return &ReactionOutcome{Transaction: tx}
}
