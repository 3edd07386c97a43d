package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmojiTable(t *testing.T) {
	table, dropped := NewEmojiTable(":Star-Struck:", []string{"taco", "star-struck", ""}, map[string]int64{
		"fire":   2,
		":TACO:": 1,
		"zero":   0,
		"minus":  -3,
		"  ":     4,
	})

	t.Run("Keeps positive entries and normalizes names", func(t *testing.T) {
		value, ok := table.Value("fire")
		require.True(t, ok)
		assert.Equal(t, int64(2), value)

		value, ok = table.Value(":taco:")
		require.True(t, ok)
		assert.Equal(t, int64(1), value)
	})

	t.Run("Primary defaults to one unit", func(t *testing.T) {
		assert.Equal(t, "star-struck", table.Primary())
		value, ok := table.Value("STAR-STRUCK")
		require.True(t, ok)
		assert.Equal(t, int64(1), value)
	})

	t.Run("Drops non-positive and unnamed entries", func(t *testing.T) {
		_, ok := table.Value("zero")
		assert.False(t, ok)
		_, ok = table.Value("minus")
		assert.False(t, ok)

		require.Len(t, dropped, 3)
		assert.Equal(t, "  ", dropped[0].Name)
		assert.Equal(t, "minus", dropped[1].Name)
		assert.Equal(t, "zero", dropped[2].Name)
		assert.Equal(t, 3, table.Len())
	})

	t.Run("Unknown emoji is not eligible", func(t *testing.T) {
		_, ok := table.Value("thumbsup")
		assert.False(t, ok)
	})

	t.Run("Alternates exclude primary and blanks", func(t *testing.T) {
		assert.Equal(t, []string{"taco"}, table.Alternates())
	})
}

func TestEmojiTablePrimaryValueOverride(t *testing.T) {
	table, dropped := NewEmojiTable("taco", nil, map[string]int64{"taco": 3})
	assert.Empty(t, dropped)

	value, ok := table.Value("taco")
	require.True(t, ok)
	assert.Equal(t, int64(3), value)
}

func TestPickDisplayEmoji(t *testing.T) {
	testCases := []struct {
		name     string
		roll     float64
		expected string
	}{
		{"Primary below threshold", 0.2, "star-struck"},
		{"Alternate above threshold", 0.9, "rocket"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, _ := NewEmojiTable("star-struck", []string{"taco", "rocket"}, nil)
			table.WithRandom(func() float64 { return tc.roll }, func(n int) int { return n - 1 })
			assert.Equal(t, tc.expected, table.PickDisplayEmoji())
		})
	}

	t.Run("No alternates", func(t *testing.T) {
		table, _ := NewEmojiTable("star-struck", nil, nil)
		table.WithRandom(func() float64 { return 0.99 }, func(n int) int { return 0 })
		assert.Equal(t, "star-struck", table.PickDisplayEmoji())
	})
}

func TestFallbackNote(t *testing.T) {
	assert.Equal(t, "Reacted with :fire:", FallbackNote(":FIRE:"))
}
