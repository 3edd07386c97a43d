package entity

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	mentionPattern      = regexp.MustCompile(`<@([UW][A-Z0-9]+)(?:\|[^>]+)?>`)
	grantPattern        = regexp.MustCompile(`gave\s+\d+\s+.+?\s+to\s+<@([UW][A-Z0-9]+)(?:\|[^>]+)?>`)
	reasonClausePattern = regexp.MustCompile(`(?s)Reason:\s*(.*)$`)
)

// Announcement is what can be recovered from a grant announcement message
type Announcement struct {
	RecipientID string
	Note        string
	HasNote     bool
}

// UnitNaming holds the display names of the granted unit
type UnitNaming struct {
	Singular string
	Plural   string
}

// Word returns the unit name agreeing with the amount
func (u UnitNaming) Word(amount int64) string {
	if amount == 1 {
		return u.Singular
	}
	return u.Plural
}

// FormatAnnouncement renders the public announcement for a transaction
func FormatAnnouncement(emoji string, tx *Transaction, unit UnitNaming) string {
	return fmt.Sprintf(":%s: <@%s> gave %d %s to <@%s>! Reason: %s",
		NormalizeEmojiName(emoji), tx.GiverID, tx.Amount, unit.Word(tx.Amount), tx.RecipientID, tx.Note)
}

// ParseAnnouncement extracts the recipient and reason from a grant announcement
// It returns false if the text is not a grant announcement
func ParseAnnouncement(text string) (Announcement, bool) {
	match := grantPattern.FindStringSubmatch(text)
	if match == nil {
		return Announcement{}, false
	}

	announcement := Announcement{RecipientID: match[1]}

	if reason := reasonClausePattern.FindStringSubmatch(text); reason != nil {
		note := strings.TrimSpace(reason[1])
		if note != "" {
			announcement.Note = note
			announcement.HasNote = true
		}
	}

	return announcement, true
}

// ExtractMentionedUserID returns the first user mention in the text
func ExtractMentionedUserID(text string) (string, bool) {
	match := mentionPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}
