package entity

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// primaryDisplayChance is the probability that the primary emoji is used for display
const primaryDisplayChance = 0.7

// DroppedEmoji records an emoji table entry that was rejected while loading
type DroppedEmoji struct {
	Name   string
	Value  int64
	Reason string
}

// EmojiTable maps reaction emoji names to the number of units they grant
type EmojiTable struct {
	primary    string
	alternates []string
	values     map[string]int64
	float64n   func() float64
	intn       func(n int) int
}

// NewEmojiTable builds a table from raw configuration values
// Entries with empty names or non-positive values are dropped and returned so the caller can warn
// The primary emoji is always eligible and defaults to a value of 1
func NewEmojiTable(primary string, alternates []string, values map[string]int64) (*EmojiTable, []DroppedEmoji) {
	table := &EmojiTable{
		primary:  NormalizeEmojiName(primary),
		values:   make(map[string]int64, len(values)+1),
		float64n: rand.Float64,
		intn:     rand.Intn,
	}

	var dropped []DroppedEmoji
	for name, value := range values {
		normalized := NormalizeEmojiName(name)
		switch {
		case normalized == "":
			dropped = append(dropped, DroppedEmoji{Name: name, Value: value, Reason: "empty emoji name"})
		case value <= 0:
			dropped = append(dropped, DroppedEmoji{Name: name, Value: value, Reason: "value must be a positive integer"})
		default:
			table.values[normalized] = value
		}
	}
	sort.Slice(dropped, func(i, j int) bool { return dropped[i].Name < dropped[j].Name })

	if table.primary != "" {
		if _, ok := table.values[table.primary]; !ok {
			table.values[table.primary] = 1
		}
	}

	for _, alt := range alternates {
		normalized := NormalizeEmojiName(alt)
		if normalized != "" && normalized != table.primary {
			table.alternates = append(table.alternates, normalized)
		}
	}

	return table, dropped
}

// WithRandom replaces the random sources used by PickDisplayEmoji
func (t *EmojiTable) WithRandom(float64n func() float64, intn func(n int) int) *EmojiTable {
	t.float64n = float64n
	t.intn = intn
	return t
}

// Value returns the number of units granted by the emoji
func (t *EmojiTable) Value(name string) (int64, bool) {
	value, ok := t.values[NormalizeEmojiName(name)]
	if !ok || value <= 0 {
		return 0, false
	}
	return value, true
}

// Primary returns the primary emoji name
func (t *EmojiTable) Primary() string {
	return t.primary
}

// Alternates returns the alternate display emoji names
func (t *EmojiTable) Alternates() []string {
	return append([]string(nil), t.alternates...)
}

// Values returns a copy of the eligible emoji values
func (t *EmojiTable) Values() map[string]int64 {
	out := make(map[string]int64, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Len returns the number of eligible emoji
func (t *EmojiTable) Len() int {
	return len(t.values)
}

// PickDisplayEmoji returns the primary emoji most of the time and an alternate otherwise
func (t *EmojiTable) PickDisplayEmoji() string {
	if len(t.alternates) == 0 || t.float64n() < primaryDisplayChance {
		return t.primary
	}
	return t.alternates[t.intn(len(t.alternates))]
}

// NormalizeEmojiName lower-cases the name and strips surrounding colons
func NormalizeEmojiName(name string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(name), ":"))
}

// FallbackNote is the note used when a reacted announcement carries no reason
func FallbackNote(emoji string) string {
	return fmt.Sprintf("Reacted with :%s:", NormalizeEmojiName(emoji))
}
