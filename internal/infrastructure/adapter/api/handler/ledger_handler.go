package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles the read-side HTTP requests
type LedgerHandler struct {
	queryUseCase usecase.LedgerQueryUseCase
	emojis       *entity.EmojiTable
	unit         entity.UnitNaming
	logger       coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(
	queryUseCase usecase.LedgerQueryUseCase,
	emojis *entity.EmojiTable,
	unit entity.UnitNaming,
	logger coreport.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		queryUseCase: queryUseCase,
		emojis:       emojis,
		unit:         unit,
		logger:       logger,
	}
}

// Quota handles the GET /api/v1/users/:userId/quota endpoint
func (h *LedgerHandler) Quota(c *gin.Context) {
	status, err := h.queryUseCase.Quota(c.Request.Context(), usecase.QuotaQuery{UserID: userParam(c.Param("userId"))})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotaResponse(status))
}

// History handles the GET /api/v1/history endpoint
func (h *LedgerHandler) History(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	txs, err := h.queryUseCase.History(c.Request.Context(), usecase.HistoryQuery{
		Limit:       limit,
		GiverID:     userParam(c.Query("giver")),
		RecipientID: userParam(c.Query("recipient")),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(txs))
}

// Leaderboard handles the GET /api/v1/leaderboard endpoint
func (h *LedgerHandler) Leaderboard(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	entries, err := h.queryUseCase.Leaderboard(c.Request.Context(), usecase.LeaderboardQuery{Limit: limit})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(entries))
}

// EventLeaderboard handles the GET /api/v1/leaderboard/events endpoint
func (h *LedgerHandler) EventLeaderboard(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	entries, err := h.queryUseCase.EventLeaderboard(c.Request.Context(), usecase.LeaderboardQuery{Limit: limit})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEventLeaderboardResponse(entries))
}

// Emojis handles the GET /api/v1/emojis endpoint
func (h *LedgerHandler) Emojis(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewEmojiTableResponse(h.emojis, h.unit))
}

// limitParam reads the optional limit query parameter; absent means 0
func limitParam(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit must be an integer, got %q", domainerr.ErrInvalidRequest, raw)
	}
	return limit, nil
}

// userParam accepts either a bare user id or a chat mention such as <@U123>
func userParam(raw string) string {
	if id, ok := entity.ExtractMentionedUserID(raw); ok {
		return id
	}
	return strings.TrimSpace(raw)
}
