package handler

import (
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/cache"
	"github.com/gin-gonic/gin"
)

// GiveHandler handles grant and reaction HTTP requests
type GiveHandler struct {
	giveUseCase usecase.GiveUseCase
	names       *cache.NameCache
	logger      coreport.Logger
}

// NewGiveHandler creates a new give handler instance
func NewGiveHandler(giveUseCase usecase.GiveUseCase, names *cache.NameCache, logger coreport.Logger) *GiveHandler {
	return &GiveHandler{
		giveUseCase: giveUseCase,
		names:       names,
		logger:      logger,
	}
}

// Give handles the POST /api/v1/gives endpoint
func (h *GiveHandler) Give(c *gin.Context) {
	var req dto.GiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %s", domainerr.ErrInvalidRequest, err.Error()))
		return
	}

	recipientID := h.resolveRecipient(req)

	result, err := h.giveUseCase.Give(c.Request.Context(), entity.GiveRequest{
		GiverID:         req.GiverID,
		RecipientID:     recipientID,
		Amount:          req.Amount,
		Note:            req.Note,
		SourceChannelID: req.ChannelID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewGiveResponse(result))
}

// React handles the POST /api/v1/reactions endpoint
func (h *GiveHandler) React(c *gin.Context) {
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %s", domainerr.ErrInvalidRequest, err.Error()))
		return
	}

	result, err := h.giveUseCase.React(c.Request.Context(), entity.ReactionEvent{
		ReactorID:         req.ReactorID,
		ChannelID:         req.ChannelID,
		MessageTS:         req.MessageTS,
		EmojiName:         req.Emoji,
		AnnouncementText:  req.AnnouncementText,
		MessageUnreadable: req.MessageUnreadable,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if !result.Outcome.IsIgnored() {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewReactionResponse(result))
}

// resolveRecipient prefers an explicit id and falls back to a cached display name
// An empty result is left for admission to reject as unresolved
func (h *GiveHandler) resolveRecipient(req dto.GiveRequest) string {
	if req.RecipientID != "" {
		if req.RecipientName != "" {
			h.names.Remember(req.RecipientName, req.RecipientID)
		}
		return req.RecipientID
	}

	if req.RecipientName == "" {
		return ""
	}

	if id, ok := h.names.Resolve(req.RecipientName); ok {
		return id
	}

	h.logger.Debug("Recipient name not in cache", map[string]any{
		"recipient_name": req.RecipientName,
		"giver_id":       req.GiverID,
	})
	return ""
}
