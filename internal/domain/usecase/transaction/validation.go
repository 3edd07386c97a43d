package transaction

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
)

// GiveValidator checks the request-level admission rules in their fixed order
type GiveValidator struct{}

// NewGiveValidator creates a new GiveValidator
func NewGiveValidator() *GiveValidator {
	return &GiveValidator{}
}

// ValidateGive validates a give request
// Order matters: amount, then giver, then recipient, then self-give
func (v *GiveValidator) ValidateGive(req entity.GiveRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidAmount, req.Amount)
	}

	if strings.TrimSpace(req.GiverID) == "" {
		return fmt.Errorf("%w: giver is required", errs.ErrInvalidRequest)
	}

	if strings.TrimSpace(req.RecipientID) == "" {
		return errs.ErrRecipientUnresolved
	}

	if req.GiverID == req.RecipientID {
		return errs.ErrSelfGive
	}

	if req.Reaction != nil {
		if err := v.validateMessageRef(req.Reaction); err != nil {
			return err
		}
	}

	return nil
}

// ValidateReaction validates the identifying fields of a reaction event
func (v *GiveValidator) ValidateReaction(event entity.ReactionEvent) error {
	if strings.TrimSpace(event.ReactorID) == "" {
		return fmt.Errorf("%w: reactor is required", errs.ErrInvalidRequest)
	}

	return v.validateMessageRef(&entity.MessageRef{
		ChannelID: event.ChannelID,
		MessageTS: event.MessageTS,
		Emoji:     event.EmojiName,
	})
}

// validateMessageRef checks that a reaction points at a concrete message
func (v *GiveValidator) validateMessageRef(ref *entity.MessageRef) error {
	if strings.TrimSpace(ref.ChannelID) == "" {
		return fmt.Errorf("%w: channel is required", errs.ErrInvalidRequest)
	}
	if strings.TrimSpace(ref.MessageTS) == "" {
		return fmt.Errorf("%w: message timestamp is required", errs.ErrInvalidRequest)
	}
	if entity.NormalizeEmojiName(ref.Emoji) == "" {
		return fmt.Errorf("%w: emoji is required", errs.ErrInvalidRequest)
	}
	return nil
}
