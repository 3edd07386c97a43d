package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerrs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/usecase/quota"
	mcore "github.com/amirhossein-jamali/kudos-ledger/mocks/port/core"
	mpers "github.com/amirhossein-jamali/kudos-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupQueryService(t *testing.T) (usecase.LedgerQueryUseCase, *mpers.MockLedgerRepository) {
	repo := mpers.NewMockLedgerRepository(t)
	logger := mcore.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	timeProvider := mcore.NewMockTimeProvider(t)
	timeProvider.EXPECT().Now().Return(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).Maybe()

	engine, err := quota.NewEngine(repo, timeProvider, logger, 5)
	require.NoError(t, err)

	return NewQueryService(repo, engine, Limits{DefaultHistoryLines: 10, LeaderboardLimit: 10}, logger), repo
}

func TestHistoryLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "Unset uses default", limit: 0, expectedLimit: 10},
		{name: "Within bounds", limit: 25, expectedLimit: 25},
		{name: "Clamped to max", limit: 500, expectedLimit: MaxHistoryLines},
		{name: "Negative clamped to one", limit: -3, expectedLimit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupQueryService(t)
			repo.On("History", mock.Anything, tt.expectedLimit, entity.HistoryFilter{}).Return([]entity.Transaction{}, nil)

			txs, err := service.History(context.Background(), usecase.HistoryQuery{Limit: tt.limit})

			require.NoError(t, err)
			assert.Empty(t, txs)
		})
	}
}

func TestHistoryRecipientFilterWins(t *testing.T) {
	service, repo := setupQueryService(t)
	repo.On("History", mock.Anything, 10, entity.HistoryFilter{RecipientID: "U2"}).
		Return([]entity.Transaction{{ID: 2, GiverID: "U1", RecipientID: "U2", Amount: 1}}, nil)

	txs, err := service.History(context.Background(), usecase.HistoryQuery{GiverID: "U1", RecipientID: "U2"})

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, uint64(2), txs[0].ID)
}

func TestHistoryStorageFailure(t *testing.T) {
	service, repo := setupQueryService(t)
	repo.On("History", mock.Anything, 10, entity.HistoryFilter{GiverID: "U1"}).Return(nil, errors.New("no such table"))

	txs, err := service.History(context.Background(), usecase.HistoryQuery{GiverID: "U1"})

	assert.Nil(t, txs)
	assert.ErrorIs(t, err, domainerrs.ErrStorageFailure)
}

func TestLeaderboard(t *testing.T) {
	service, repo := setupQueryService(t)
	expected := []entity.LeaderboardEntry{{UserID: "B", Total: 10}, {UserID: "A", Total: 8}}
	repo.On("Leaderboard", mock.Anything, MaxLeaderboardLimit).Return(expected, nil)

	entries, err := service.Leaderboard(context.Background(), usecase.LeaderboardQuery{Limit: 1000})

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
}

func TestEventLeaderboard(t *testing.T) {
	service, repo := setupQueryService(t)
	expected := []entity.EventLeaderboardEntry{{ChannelID: "C1", MessageTS: "1.0", ReactionCount: 2, TotalAmount: 3, Givers: []string{"U2", "U4"}}}
	repo.On("EventLeaderboard", mock.Anything, 10).Return(expected, nil)

	entries, err := service.EventLeaderboard(context.Background(), usecase.LeaderboardQuery{})

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
}

func TestQuota(t *testing.T) {
	service, repo := setupQueryService(t)
	repo.On("SumGivenSince", mock.Anything, "U1", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)).Return(int64(3), nil)

	status, err := service.Quota(context.Background(), usecase.QuotaQuery{UserID: "U1"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), status.GivenLast24h)
	assert.Equal(t, int64(2), status.Remaining)
	assert.Equal(t, int64(5), status.DailyLimit)
}

func TestQuotaRequiresUser(t *testing.T) {
	service, _ := setupQueryService(t)

	_, err := service.Quota(context.Background(), usecase.QuotaQuery{UserID: " "})

	assert.ErrorIs(t, err, domainerrs.ErrInvalidRequest)
}
