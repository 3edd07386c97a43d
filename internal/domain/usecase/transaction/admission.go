package transaction

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
)

// QuotaChecker answers whether a grant fits in the giver's rolling window
type QuotaChecker interface {
	WouldExceed(ctx context.Context, giverID string, amount int64) (bool, int64, error)
	DailyLimit() int64
}

// Admission is the single gate every grant passes before reaching the ledger
// It performs no retries and takes no locks; concurrent gives from one giver
// may overrun the limit by at most one in-flight grant
type Admission struct {
	ledgerRepo persistence.LedgerRepository
	quota      QuotaChecker
	validator  *GiveValidator
	logger     coreport.Logger
}

// NewAdmission creates a new Admission
func NewAdmission(
	ledgerRepo persistence.LedgerRepository,
	quota QuotaChecker,
	logger coreport.Logger,
) *Admission {
	return &Admission{
		ledgerRepo: ledgerRepo,
		quota:      quota,
		validator:  NewGiveValidator(),
		logger:     logger,
	}
}

// Admit validates the request, checks the quota and appends the transaction
// On success the returned transaction carries its assigned ID and timestamp
func (a *Admission) Admit(ctx context.Context, req entity.GiveRequest) (*entity.Transaction, error) {
	if err := a.validator.ValidateGive(req); err != nil {
		return nil, a.reject(req, "validation failed", err)
	}

	exceeded, remaining, err := a.quota.WouldExceed(ctx, req.GiverID, req.Amount)
	if err != nil {
		return nil, a.reject(req, "quota lookup failed", err)
	}
	if exceeded {
		limit := a.quota.DailyLimit()
		quotaErr := errs.NewQuotaExceededError(req.GiverID, req.Amount, limit-remaining, remaining, limit)
		return nil, a.reject(req, "daily limit exceeded", quotaErr)
	}

	tx := req.ToTransaction()
	if _, err := a.ledgerRepo.Append(ctx, tx); err != nil {
		if !errors.Is(err, errs.ErrStorageFailure) {
			err = errs.NewStorageError("append", err)
		}
		return nil, a.reject(req, "append failed", err)
	}

	a.logger.Info("Give admitted", map[string]any{
		"transaction_id": tx.ID,
		"giver_id":       tx.GiverID,
		"recipient_id":   tx.RecipientID,
		"amount":         tx.Amount,
		"reaction":       tx.IsReaction(),
	})

	return tx, nil
}

// reject wraps the cause in an AdmissionError and logs it at a level matching its kind
func (a *Admission) reject(req entity.GiveRequest, reason string, cause error) error {
	admissionErr := errs.NewAdmissionError(req.GiverID, req.RecipientID, req.Amount, req.SourceChannelID, reason, cause)
	fields := admissionErr.(*errs.AdmissionError).LogFields()

	switch {
	case errs.IsStorageFailure(cause):
		fields["note"] = req.Note
		if req.Reaction != nil {
			fields["original_channel_id"] = req.Reaction.ChannelID
			fields["original_message_ts"] = req.Reaction.MessageTS
			fields["reaction_emoji"] = req.Reaction.Emoji
		}
		a.logger.Error("Give rejected by storage failure", fields)
	case errs.IsQuotaExceededError(cause):
		a.logger.Info("Give rejected by daily limit", fields)
	case errs.IsValidationError(cause):
		a.logger.Debug("Give rejected", fields)
	default:
		a.logger.Warn("Give rejected", fields)
	}

	return admissionErr
}
