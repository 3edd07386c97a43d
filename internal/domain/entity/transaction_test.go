package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveRequestToTransaction(t *testing.T) {
	t.Run("Explicit give", func(t *testing.T) {
		req := GiveRequest{
			GiverID:         "U1",
			RecipientID:     "U2",
			Amount:          3,
			Note:            "  great demo ",
			SourceChannelID: "C1",
		}

		tx := req.ToTransaction()

		assert.Equal(t, "U1", tx.GiverID)
		assert.Equal(t, "U2", tx.RecipientID)
		assert.Equal(t, int64(3), tx.Amount)
		assert.Equal(t, "great demo", tx.Note)
		require.NotNil(t, tx.SourceChannelID)
		assert.Equal(t, "C1", *tx.SourceChannelID)
		assert.Zero(t, tx.ID)
		assert.True(t, tx.CreatedAt.IsZero())
		assert.False(t, tx.IsReaction())

		_, ok := tx.DedupKey()
		assert.False(t, ok)
	})

	t.Run("Without source channel", func(t *testing.T) {
		tx := GiveRequest{GiverID: "U1", RecipientID: "U2", Amount: 1}.ToTransaction()
		assert.Nil(t, tx.SourceChannelID)
	})

	t.Run("Reaction give", func(t *testing.T) {
		req := GiveRequest{
			GiverID:         "U2",
			RecipientID:     "U3",
			Amount:          2,
			SourceChannelID: "C9",
			Reaction:        &MessageRef{ChannelID: "C9", MessageTS: "1700000000.000100", Emoji: "fire"},
		}

		tx := req.ToTransaction()

		assert.True(t, tx.IsReaction())
		key, ok := tx.DedupKey()
		require.True(t, ok)
		assert.Equal(t, DedupKey{GiverID: "U2", ChannelID: "C9", MessageTS: "1700000000.000100", Emoji: "fire"}, key)
	})
}

func TestDedupKeyString(t *testing.T) {
	key := DedupKey{GiverID: "U2", ChannelID: "C9", MessageTS: "1700000000.000100", Emoji: "fire"}
	assert.Equal(t, "2:U22:C917:1700000000.0001004:fire", key.String())
}

func TestDedupKeyStringDistinguishesFieldBoundaries(t *testing.T) {
	tests := []struct {
		name string
		a, b DedupKey
	}{
		{
			name: "Separator inside giver",
			a:    DedupKey{GiverID: "U9|C1", ChannelID: "2.2", MessageTS: "fire"},
			b:    DedupKey{GiverID: "U9", ChannelID: "C1|2.2", MessageTS: "fire"},
		},
		{
			name: "Shifted empty field",
			a:    DedupKey{GiverID: "U9", ChannelID: "", MessageTS: "C1", Emoji: "fire"},
			b:    DedupKey{GiverID: "U9", ChannelID: "C1", MessageTS: "", Emoji: "fire"},
		},
		{
			name: "Digits that look like a length",
			a:    DedupKey{GiverID: "1:a", ChannelID: "b"},
			b:    DedupKey{GiverID: "1", ChannelID: "a1:b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a.String(), tt.b.String())
		})
	}
}

func TestReactionOutcome(t *testing.T) {
	t.Run("Ignored outcomes", func(t *testing.T) {
		outcome := Ignored(IgnoreDuplicate)
		assert.True(t, outcome.IsIgnored())
		assert.False(t, outcome.NotifyReactor)
		assert.Nil(t, outcome.Transaction)
	})

	t.Run("Unreadable message notifies reactor", func(t *testing.T) {
		outcome := Ignored(IgnoreMessageUnreadable)
		assert.True(t, outcome.NotifyReactor)
	})

	t.Run("Admitted outcome", func(t *testing.T) {
		tx := &Transaction{ID: 7}
		outcome := Admitted(tx)
		assert.False(t, outcome.IsIgnored())
		assert.Same(t, tx, outcome.Transaction)
	})
}
