package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	domainerrs "github.com/amirhossein-jamali/kudos-ledger/internal/domain/error"
	mpers "github.com/amirhossein-jamali/kudos-ledger/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryDedup is a minimal DedupStore for exercising the processor
type memoryDedup struct {
	keys sync.Map
}

func (d *memoryDedup) MarkIfAbsent(_ context.Context, key entity.DedupKey) (bool, error) {
	_, loaded := d.keys.LoadOrStore(key.String(), struct{}{})
	return !loaded, nil
}

func (d *memoryDedup) Seed(_ context.Context, keys []entity.DedupKey) error {
	for _, key := range keys {
		d.keys.Store(key.String(), struct{}{})
	}
	return nil
}

func (d *memoryDedup) Len() int {
	n := 0
	d.keys.Range(func(_, _ any) bool { n++; return true })
	return n
}

func (d *memoryDedup) Close() error { return nil }

const fireAnnouncement = ":taco: <@U1> gave 1 taco to <@U3>! Reason: fixed the build"

func newTestEmojiTable() *entity.EmojiTable {
	table, _ := entity.NewEmojiTable("taco", nil, map[string]int64{"fire": 2})
	return table
}

func newTestProcessor(t *testing.T) (*ReactionProcessor, *mpers.MockLedgerRepository, *memoryDedup) {
	admission, repo, _ := newTestAdmission(t, 5)
	dedup := &memoryDedup{}
	processor := NewReactionProcessor(newTestEmojiTable(), dedup, admission, repo, newFixedTimeProvider(t), newPermissiveLogger(t))
	return processor, repo, dedup
}

func fireEvent() entity.ReactionEvent {
	return entity.ReactionEvent{
		ReactorID:        "U2",
		ChannelID:        "C1",
		MessageTS:        "1700000000.000100",
		EmojiName:        "fire",
		AnnouncementText: fireAnnouncement,
	}
}

func TestProcessReactionGrantsOnceForDuplicateDelivery(t *testing.T) {
	ctx := context.Background()
	processor, repo, _ := newTestProcessor(t)

	var appended *entity.Transaction
	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*entity.Transaction)
			appended.ID = 9
		}).
		Return(uint64(9), nil).Once()

	outcome, err := processor.Process(ctx, fireEvent())
	require.NoError(t, err)
	require.False(t, outcome.IsIgnored())

	tx := outcome.Transaction
	assert.Equal(t, int64(2), tx.Amount)
	assert.Equal(t, "U2", tx.GiverID)
	assert.Equal(t, "U3", tx.RecipientID)
	assert.Equal(t, "fixed the build", tx.Note)
	require.NotNil(t, tx.OriginalMessageTS)
	assert.Equal(t, "1700000000.000100", *tx.OriginalMessageTS)
	require.NotNil(t, tx.ReactionEmoji)
	assert.Equal(t, "fire", *tx.ReactionEmoji)
	assert.Same(t, appended, tx)

	outcome, err = processor.Process(ctx, fireEvent())
	require.NoError(t, err)
	assert.Equal(t, entity.IgnoreDuplicate, outcome.Ignored)
	repo.AssertNumberOfCalls(t, "Append", 1)
}

func TestProcessReactionConcurrentDeliveries(t *testing.T) {
	ctx := context.Background()
	processor, repo, _ := newTestProcessor(t)

	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(uint64(1), nil).Once()

	const deliveries = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := processor.Process(ctx, fireEvent())
			if err == nil && !outcome.IsIgnored() {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
	repo.AssertNumberOfCalls(t, "Append", 1)
}

func TestProcessReactionIgnored(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		mutate         func(e *entity.ReactionEvent)
		expectedReason entity.IgnoreReason
		notify         bool
	}{
		{
			name:           "Emoji not in the table",
			mutate:         func(e *entity.ReactionEvent) { e.EmojiName = "thumbsup" },
			expectedReason: entity.IgnoreEmojiNotEligible,
		},
		{
			name:           "Plain message",
			mutate:         func(e *entity.ReactionEvent) { e.AnnouncementText = "lunch?" },
			expectedReason: entity.IgnoreNotAnnouncement,
		},
		{
			name:           "Recipient reacting to their own announcement",
			mutate:         func(e *entity.ReactionEvent) { e.ReactorID = "U3" },
			expectedReason: entity.IgnoreSelfReaction,
		},
		{
			name:           "Unreadable message",
			mutate:         func(e *entity.ReactionEvent) { e.MessageUnreadable = true; e.AnnouncementText = "" },
			expectedReason: entity.IgnoreMessageUnreadable,
			notify:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, _, _ := newTestProcessor(t)
			event := fireEvent()
			tt.mutate(&event)

			outcome, err := processor.Process(ctx, event)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedReason, outcome.Ignored)
			assert.Equal(t, tt.notify, outcome.NotifyReactor)
			assert.Nil(t, outcome.Transaction)
		})
	}
}

func TestProcessReactionMarksBeforeResolving(t *testing.T) {
	ctx := context.Background()
	processor, _, dedup := newTestProcessor(t)

	event := fireEvent()
	event.AnnouncementText = "not a grant"

	outcome, err := processor.Process(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, entity.IgnoreNotAnnouncement, outcome.Ignored)
	assert.Equal(t, 1, dedup.Len())

	event.AnnouncementText = fireAnnouncement
	outcome, err = processor.Process(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, entity.IgnoreDuplicate, outcome.Ignored)
}

func TestProcessReactionRetriesAfterUnreadableMessage(t *testing.T) {
	ctx := context.Background()
	processor, repo, dedup := newTestProcessor(t)

	unreadable := fireEvent()
	unreadable.MessageUnreadable = true
	unreadable.AnnouncementText = ""

	for i := 0; i < 2; i++ {
		outcome, err := processor.Process(ctx, unreadable)
		require.NoError(t, err)
		assert.Equal(t, entity.IgnoreMessageUnreadable, outcome.Ignored)
		assert.True(t, outcome.NotifyReactor)
	}
	assert.Equal(t, 0, dedup.Len())

	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(uint64(3), nil).Once()

	outcome, err := processor.Process(ctx, fireEvent())
	require.NoError(t, err)
	require.False(t, outcome.IsIgnored())
	assert.Equal(t, "U3", outcome.Transaction.RecipientID)
	assert.Equal(t, 1, dedup.Len())
}

func TestProcessReactionFallbackNote(t *testing.T) {
	ctx := context.Background()
	processor, repo, _ := newTestProcessor(t)

	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(uint64(1), nil)

	event := fireEvent()
	event.AnnouncementText = ":taco: <@U1> gave 1 taco to <@U3>!"

	outcome, err := processor.Process(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, "Reacted with :fire:", outcome.Transaction.Note)
}

func TestProcessReactionAdmissionFailureKeepsMark(t *testing.T) {
	ctx := context.Background()
	processor, repo, dedup := newTestProcessor(t)

	repo.On("SumGivenSince", mock.Anything, "U2", mock.AnythingOfType("time.Time")).Return(int64(5), nil).Once()

	outcome, err := processor.Process(ctx, fireEvent())

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domainerrs.ErrQuotaExceeded)
	assert.Equal(t, 1, dedup.Len())

	outcome, err = processor.Process(ctx, fireEvent())
	require.NoError(t, err)
	assert.Equal(t, entity.IgnoreDuplicate, outcome.Ignored)
}

func TestProcessReactionDedupFailure(t *testing.T) {
	ctx := context.Background()
	admission, repo, _ := newTestAdmission(t, 5)
	dedup := mpers.NewMockDedupStore(t)
	dedup.On("MarkIfAbsent", mock.Anything, mock.AnythingOfType("entity.DedupKey")).Return(false, errors.New("badger closed"))

	processor := NewReactionProcessor(newTestEmojiTable(), dedup, admission, repo, newFixedTimeProvider(t), newPermissiveLogger(t))

	outcome, err := processor.Process(ctx, fireEvent())

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domainerrs.ErrStorageFailure)
}

func TestProcessReactionInvalidEvent(t *testing.T) {
	processor, _, _ := newTestProcessor(t)
	event := fireEvent()
	event.MessageTS = ""

	_, err := processor.Process(context.Background(), event)

	assert.ErrorIs(t, err, domainerrs.ErrInvalidRequest)
}

func TestWarmUp(t *testing.T) {
	ctx := context.Background()
	processor, repo, dedup := newTestProcessor(t)

	keys := []entity.DedupKey{
		{GiverID: "U2", ChannelID: "C1", MessageTS: "1700000000.000100", Emoji: "fire"},
		{GiverID: "U4", ChannelID: "C1", MessageTS: "1700000000.000100", Emoji: "fire"},
	}
	repo.On("ReactionKeysSince", mock.Anything, fixedNow.Add(-72*time.Hour)).Return(keys, nil)

	seeded, err := processor.WarmUp(ctx, 72*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
	assert.Equal(t, 2, dedup.Len())

	outcome, err := processor.Process(ctx, fireEvent())
	require.NoError(t, err)
	assert.Equal(t, entity.IgnoreDuplicate, outcome.Ignored)
}
