package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerrs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/usecase"
	mpers "github.com/amirhossein-jamali/kudos-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tacoUnit = entity.UnitNaming{Singular: "taco", Plural: "tacos"}

func newTestService(t *testing.T) (usecase.GiveUseCase, *mpers.MockLedgerRepository) {
	admission, repo, engine := newTestAdmission(t, 5)
	logger := newPermissiveLogger(t)

	emojis, _ := entity.NewEmojiTable("taco", []string{"burrito"}, map[string]int64{"fire": 2})
	emojis.WithRandom(func() float64 { return 0.1 }, func(int) int { return 0 })

	reactions := NewReactionProcessor(emojis, &memoryDedup{}, admission, repo, newFixedTimeProvider(t), logger)

	return NewService(admission, reactions, engine, emojis, tacoUnit, logger), repo
}

func TestServiceGive(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.On("SumGivenSince", mock.Anything, "U1", mock.AnythingOfType("time.Time")).Return(int64(1), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(stampAppend(7)).Return(uint64(7), nil).Once()
	repo.On("SumGivenSince", mock.Anything, "U1", mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	result, err := service.Give(ctx, entity.GiveRequest{
		GiverID:         "U1",
		RecipientID:     "U2",
		Amount:          2,
		Note:            "great demo",
		SourceChannelID: "C1",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(7), result.Transaction.ID)
	assert.Equal(t, "taco", result.DisplayEmoji)
	assert.Equal(t, ":taco: <@U1> gave 2 tacos to <@U2>! Reason: great demo", result.Announcement)
	assert.True(t, result.RemainingKnown)
	assert.Equal(t, int64(2), result.RemainingAfter)
}

func TestServiceGiveRemainingUnknown(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.On("SumGivenSince", mock.Anything, "U1", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(stampAppend(8)).Return(uint64(8), nil).Once()
	repo.On("SumGivenSince", mock.Anything, "U1", mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("database is locked")).Once()

	result, err := service.Give(ctx, entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 1})

	require.NoError(t, err)
	assert.Equal(t, uint64(8), result.Transaction.ID)
	assert.False(t, result.RemainingKnown)
}

func TestServiceGiveRejected(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.Give(context.Background(), entity.GiveRequest{GiverID: "U1", RecipientID: "U1", Amount: 1})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrs.ErrSelfGive)
}

func TestServiceReact(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(stampAppend(3)).Return(uint64(3), nil).Once()
	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()

	result, err := service.React(ctx, fireEvent())

	require.NoError(t, err)
	require.NotNil(t, result.Give)
	assert.False(t, result.Outcome.IsIgnored())
	assert.Equal(t, "fire", result.Give.DisplayEmoji)
	assert.Equal(t, ":fire: <@U2> gave 2 tacos to <@U3>! Reason: fixed the build", result.Give.Announcement)
	assert.Equal(t, int64(3), result.Give.RemainingAfter)

	result, err = service.React(ctx, fireEvent())

	require.NoError(t, err)
	assert.Nil(t, result.Give)
	assert.Equal(t, entity.IgnoreDuplicate, result.Outcome.Ignored)
}
