package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"gopkg.in/yaml.v3"
)

// emojiFile is the layout of the emoji table YAML file
type emojiFile struct {
	Primary    string         `yaml:"primary"`
	Alternates []string       `yaml:"alternates"`
	Values     map[string]any `yaml:"values"`
}

// LoadEmojiTable builds the emoji value table from the file and inline settings
// Inline settings win over the file; rejected entries are logged and skipped
func LoadEmojiTable(cfg EmojiConfig, logger coreport.Logger) (*entity.EmojiTable, error) {
	var file emojiFile

	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("read emoji file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse emoji file %s: %w", cfg.File, err)
		}
	}

	primary := file.Primary
	if cfg.Primary != "" {
		primary = cfg.Primary
	}

	alternates := file.Alternates
	if len(cfg.Alternates) > 0 {
		alternates = cfg.Alternates
	}

	fileValues, rejected := EmojiValues(file.Values)
	rejected = append(rejected, cfg.Rejected...)

	values := make(map[string]int64, len(fileValues)+len(cfg.Values))
	for name, value := range fileValues {
		values[name] = value
	}
	for name, value := range cfg.Values {
		values[name] = value
	}

	table, dropped := entity.NewEmojiTable(primary, alternates, values)
	for _, d := range append(rejected, dropped...) {
		logger.Warn("Ignoring emoji table entry", map[string]any{
			"emoji":  d.Name,
			"value":  d.Value,
			"reason": d.Reason,
		})
	}

	if table.Primary() == "" {
		return nil, fmt.Errorf("emoji table needs a primary emoji")
	}

	logger.Info("Emoji table loaded", map[string]any{
		"primary":    table.Primary(),
		"alternates": table.Alternates(),
		"eligible":   table.Len(),
	})

	return table, nil
}

// EmojiValues converts decoded emoji values one entry at a time
// Entries that are not whole numbers are returned as dropped; range checks are left to the table
func EmojiValues(raw map[string]any) (map[string]int64, []entity.DroppedEmoji) {
	values := make(map[string]int64, len(raw))
	var dropped []entity.DroppedEmoji

	for name, value := range raw {
		n, ok := emojiValue(value)
		if !ok {
			dropped = append(dropped, entity.DroppedEmoji{
				Name:   name,
				Reason: fmt.Sprintf("value %v is not an integer", value),
			})
			continue
		}
		values[name] = n
	}
	sort.Slice(dropped, func(i, j int) bool { return dropped[i].Name < dropped[j].Name })

	return values, dropped
}

func emojiValue(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
