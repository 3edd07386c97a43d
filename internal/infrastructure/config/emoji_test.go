package config

import (
	"testing"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	mocks "github.com/amirhossein-jamali/kudos-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadEmojiTableFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "emojis.yaml", `
primary: taco
alternates: [burrito, hot_pepper]
values:
  taco: 1
  fire: 2
  ":raised_hands:": 3
  thumbsdown: 0
  "": 4
`)

	log := new(mocks.MockLogger)
	log.On("Warn", "Ignoring emoji table entry", mock.MatchedBy(func(f map[string]any) bool {
		return f["emoji"] == "thumbsdown" || f["emoji"] == ""
	})).Twice()
	log.On("Info", "Emoji table loaded", mock.Anything).Once()

	table, err := LoadEmojiTable(EmojiConfig{File: path, Values: map[string]int64{"fire": 5}}, log)
	require.NoError(t, err)

	assert.Equal(t, "taco", table.Primary())
	assert.Equal(t, []string{"burrito", "hot_pepper"}, table.Alternates())

	tests := []struct {
		emoji    string
		expected int64
		eligible bool
	}{
		{emoji: "taco", expected: 1, eligible: true},
		{emoji: "fire", expected: 5, eligible: true},
		{emoji: "raised_hands", expected: 3, eligible: true},
		{emoji: "thumbsdown", eligible: false},
		{emoji: "burrito", eligible: false},
	}
	for _, tt := range tests {
		value, ok := table.Value(tt.emoji)
		assert.Equal(t, tt.eligible, ok, tt.emoji)
		assert.Equal(t, tt.expected, value, tt.emoji)
	}

	log.AssertExpectations(t)
}

func TestLoadEmojiTableKeepsValidEntries(t *testing.T) {
	path := writeFile(t, t.TempDir(), "emojis.yaml", `
primary: taco
values:
  taco: 1
  fire: 2.5
  bad: two
  trophy: "3"
`)

	log := new(mocks.MockLogger)
	for _, name := range []string{"bad", "fire", "wave"} {
		name := name
		log.On("Warn", "Ignoring emoji table entry", mock.MatchedBy(func(f map[string]any) bool {
			return f["emoji"] == name
		})).Once()
	}
	log.On("Info", "Emoji table loaded", mock.Anything).Once()

	cfg := EmojiConfig{
		File:     path,
		Rejected: []entity.DroppedEmoji{{Name: "wave", Reason: "value many is not an integer"}},
	}
	table, err := LoadEmojiTable(cfg, log)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"taco": 1, "trophy": 3}, table.Values())
	_, ok := table.Value("fire")
	assert.False(t, ok)

	log.AssertExpectations(t)
}

func TestEmojiValues(t *testing.T) {
	values, dropped := EmojiValues(map[string]any{
		"taco":   1,
		"fire":   int64(2),
		"star":   float64(4),
		"trophy": " 3 ",
		"half":   2.5,
		"word":   "two",
		"list":   []any{1},
	})

	assert.Equal(t, map[string]int64{"taco": 1, "fire": 2, "star": 4, "trophy": 3}, values)
	names := make([]string, 0, len(dropped))
	for _, d := range dropped {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"half", "list", "word"}, names)
}

func TestLoadEmojiTableInlineOnly(t *testing.T) {
	log := new(mocks.MockLogger)
	log.On("Info", "Emoji table loaded", mock.Anything).Once()

	table, err := LoadEmojiTable(EmojiConfig{Primary: ":Star-Struck:"}, log)
	require.NoError(t, err)

	value, ok := table.Value("star-struck")
	assert.True(t, ok)
	assert.Equal(t, int64(1), value)
	assert.Equal(t, 1, table.Len())
}

func TestLoadEmojiTableErrors(t *testing.T) {
	log := new(mocks.MockLogger)
	log.On("Warn", mock.Anything, mock.Anything).Maybe()

	_, err := LoadEmojiTable(EmojiConfig{File: "does-not-exist.yaml", Primary: "taco"}, log)
	assert.Error(t, err)

	bad := writeFile(t, t.TempDir(), "emojis.yaml", "values: [not, a, map]")
	_, err = LoadEmojiTable(EmojiConfig{File: bad, Primary: "taco"}, log)
	assert.Error(t, err)

	_, err = LoadEmojiTable(EmojiConfig{}, log)
	assert.Error(t, err)
}
