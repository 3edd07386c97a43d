package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerrs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/usecase/quota"
	mcore "github.com/amirhossein-jamali/kudos-ledger/mocks/port/core"
	mpers "github.com/amirhossein-jamali/kudos-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newPermissiveLogger(t *testing.T) *mcore.MockLogger {
	logger := mcore.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

func newFixedTimeProvider(t *testing.T) *mcore.MockTimeProvider {
	timeProvider := mcore.NewMockTimeProvider(t)
	timeProvider.EXPECT().Now().Return(fixedNow).Maybe()
	return timeProvider
}

func newTestAdmission(t *testing.T, limit int64) (*Admission, *mpers.MockLedgerRepository, *quota.Engine) {
	repo := mpers.NewMockLedgerRepository(t)
	logger := newPermissiveLogger(t)

	engine, err := quota.NewEngine(repo, newFixedTimeProvider(t), logger, limit)
	require.NoError(t, err)

	return NewAdmission(repo, engine, logger), repo, engine
}

// stampAppend makes the mocked Append behave like the store: assign ID and timestamp
func stampAppend(id uint64) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		tx := args.Get(1).(*entity.Transaction)
		tx.ID = id
		tx.CreatedAt = fixedNow
	}
}

func TestAdmit(t *testing.T) {
	ctx := context.Background()
	windowStart := fixedNow.Add(-quota.Window)

	tests := []struct {
		name          string
		req           entity.GiveRequest
		setupMocks    func(repo *mpers.MockLedgerRepository)
		expectedError error
	}{
		{
			name: "Successful give",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 2, Note: "thanks", SourceChannelID: "C1"},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(3), nil)
				repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
					Run(stampAppend(42)).Return(uint64(42), nil)
			},
		},
		{
			name:          "Invalid amount never touches the ledger",
			req:           entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 0},
			setupMocks:    func(repo *mpers.MockLedgerRepository) {},
			expectedError: domainerrs.ErrInvalidAmount,
		},
		{
			name:          "Self give is rejected before the quota check",
			req:           entity.GiveRequest{GiverID: "U1", RecipientID: "U1", Amount: 1},
			setupMocks:    func(repo *mpers.MockLedgerRepository) {},
			expectedError: domainerrs.ErrSelfGive,
		},
		{
			name:          "Unresolved recipient",
			req:           entity.GiveRequest{GiverID: "U1", Amount: 1},
			setupMocks:    func(repo *mpers.MockLedgerRepository) {},
			expectedError: domainerrs.ErrRecipientUnresolved,
		},
		{
			name: "Quota exceeded",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 4},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(3), nil)
			},
			expectedError: domainerrs.ErrQuotaExceeded,
		},
		{
			name: "Quota lookup failure fails closed",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 1},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(0), errors.New("database is locked"))
			},
			expectedError: domainerrs.ErrStorageFailure,
		},
		{
			name: "Append failure",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 1},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(0), nil)
				repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
					Return(uint64(0), errors.New("disk I/O error"))
			},
			expectedError: domainerrs.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admission, repo, _ := newTestAdmission(t, 5)
			tt.setupMocks(repo)

			tx, err := admission.Admit(ctx, tt.req)

			if tt.expectedError != nil {
				assert.Nil(t, tx)
				assert.ErrorIs(t, err, tt.expectedError)

				var admissionErr *domainerrs.AdmissionError
				assert.ErrorAs(t, err, &admissionErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, uint64(42), tx.ID)
			assert.Equal(t, fixedNow, tx.CreatedAt)
			assert.Equal(t, "U1", tx.GiverID)
			assert.Equal(t, "U2", tx.RecipientID)
			assert.Equal(t, int64(2), tx.Amount)
			assert.Equal(t, "thanks", tx.Note)
		})
	}
}

func TestAdmitQuotaExceededReportsRemaining(t *testing.T) {
	ctx := context.Background()
	admission, repo, _ := newTestAdmission(t, 5)

	repo.On("SumGivenSince", mock.Anything, "G", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(stampAppend(1)).Return(uint64(1), nil).Once()

	_, err := admission.Admit(ctx, entity.GiveRequest{GiverID: "G", RecipientID: "R", Amount: 3})
	require.NoError(t, err)

	repo.On("SumGivenSince", mock.Anything, "G", mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	_, err = admission.Admit(ctx, entity.GiveRequest{GiverID: "G", RecipientID: "R", Amount: 4})

	require.ErrorIs(t, err, domainerrs.ErrQuotaExceeded)
	remaining, ok := domainerrs.RemainingFrom(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), remaining)
	repo.AssertNumberOfCalls(t, "Append", 1)
}

func TestAdmitRejectionLogLevels(t *testing.T) {
	ctx := context.Background()
	windowStart := fixedNow.Add(-quota.Window)

	tests := []struct {
		name       string
		req        entity.GiveRequest
		setupMocks func(repo *mpers.MockLedgerRepository)
		level      string
		message    string
	}{
		{
			name:       "Validation rejection",
			req:        entity.GiveRequest{GiverID: "U1", RecipientID: "U1", Amount: 1},
			setupMocks: func(repo *mpers.MockLedgerRepository) {},
			level:      "Debug",
			message:    "Give rejected",
		},
		{
			name: "Daily limit",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 4},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(3), nil)
			},
			level:   "Info",
			message: "Give rejected by daily limit",
		},
		{
			name: "Storage failure",
			req:  entity.GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 1},
			setupMocks: func(repo *mpers.MockLedgerRepository) {
				repo.On("SumGivenSince", mock.Anything, "U1", windowStart).Return(int64(0), nil)
				repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
					Return(uint64(0), errors.New("disk I/O error"))
			},
			level:   "Error",
			message: "Give rejected by storage failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mpers.NewMockLedgerRepository(t)
			engine, err := quota.NewEngine(repo, newFixedTimeProvider(t), newPermissiveLogger(t), 5)
			require.NoError(t, err)

			logger := mcore.NewMockLogger(t)
			logger.On(tt.level, tt.message, mock.Anything).Once()

			tt.setupMocks(repo)

			_, err = NewAdmission(repo, engine, logger).Admit(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}
