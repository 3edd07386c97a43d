package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// step is one versioned schema change
type step struct {
	version string
	details string
	run     func(ctx context.Context, db *gorm.DB) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	driver           string
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
	steps            []step
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, driver string, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		driver:           driver,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
		steps: []step{
			{version: "1.0.0", details: "Transactions table with quota and history indexes", run: createLedgerSchema},
			{version: "1.1.0", details: "Reaction emoji column and original message index", run: addReactionColumns},
		},
	}
}

// MigrateAll applies every step newer than the recorded version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
		"driver":         m.driver,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{"error": err.Error()})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{"error": err.Error()})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	start, err := m.firstPendingStep(currentVersion)
	if err != nil {
		m.logger.Error("Unknown schema version in database", map[string]any{"version": currentVersion})
		return err
	}

	applied := 0
	for _, s := range m.steps[start:] {
		m.logger.Info("Applying schema step", map[string]any{
			"from":    currentVersion,
			"version": s.version,
			"details": s.details,
		})

		if err := s.run(ctx, m.db.WithContext(ctx)); err != nil {
			m.logger.Error("Failed to apply schema step", map[string]any{
				"error":   err.Error(),
				"version": s.version,
			})
			return fmt.Errorf("schema step %s: %w", s.version, err)
		}

		if err := m.setVersion(ctx, s.version, s.details); err != nil {
			m.logger.Error("Failed to update schema version", map[string]any{
				"error":   err.Error(),
				"version": s.version,
			})
			return err
		}

		currentVersion = s.version
		applied++
	}

	if m.driver == "postgres" {
		if err := m.advancedIndexMgr.CreateAdvancedIndexes(ctx); err != nil {
			return err
		}
		m.advancedIndexMgr.ApplyPerformanceTweaks(ctx)
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": currentVersion,
		"applied": applied,
	})
	return nil
}

// GetCurrentVersion gets the most recently applied version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("id desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// firstPendingStep returns the index of the first step after currentVersion
func (m *MigrationManager) firstPendingStep(currentVersion string) (int, error) {
	if currentVersion == "" {
		return 0, nil
	}
	for i, s := range m.steps {
		if s.version == currentVersion {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("schema version %q is not known to this build", currentVersion)
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}

	return m.db.WithContext(ctx).Create(&migrationVersion).Error
}

// createLedgerSchema creates the append-only transactions table
func createLedgerSchema(_ context.Context, db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Transaction{}); err != nil {
		return err
	}

	// Quota window sums scan (giver_id, created_at); recipient history scans the other
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_giver_created_at ON transactions (giver_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_recipient_created_at ON transactions (recipient_id, created_at)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// addReactionColumns adds the reaction emoji column for databases created before it existed
func addReactionColumns(_ context.Context, db *gorm.DB) error {
	migrator := db.Migrator()
	if !migrator.HasColumn(&model.Transaction{}, "ReactionEmoji") {
		if err := migrator.AddColumn(&model.Transaction{}, "ReactionEmoji"); err != nil {
			return err
		}
	}

	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_transactions_original_message ON transactions (original_channel_id, original_message_ts)",
	).Error
}
