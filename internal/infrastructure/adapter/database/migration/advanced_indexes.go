package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes and table settings
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates indexes only PostgreSQL understands
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	indexes := []struct {
		name string
		sql  string
	}{
		{
			// Rows arrive in time order, so a BRIN index stays tiny
			name: "idx_transactions_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
				ON transactions USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
		{
			name: "idx_transactions_reactions",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_reactions
				ON transactions (created_at)
				WHERE original_message_ts IS NOT NULL`,
		},
	}

	for _, idx := range indexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// ApplyPerformanceTweaks applies PostgreSQL table settings; failures are only logged
func (m *AdvancedIndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Rows are never updated, so pages can be packed full
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (fillfactor = 100)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions ALTER COLUMN giver_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for giver_id", map[string]any{
			"error": err.Error(),
		})
	}
}
