package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/usecase/quota"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/usecase/transaction"

	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/dedup"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(cfg.LoggerOptions())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx := context.Background()
	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(cfg.DatabaseManagerConfig(), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ledgerRepo := repository.NewLedgerRepository(dbManager.DB(), dbManager.ErrorMapper(), dbManager.Metrics(), tp, appLogger)

	quotaEngine, err := quota.NewEngine(ledgerRepo, tp, appLogger, cfg.Quota.DailyLimit)
	if err != nil {
		return err
	}

	emojis, err := config.LoadEmojiTable(cfg.Emoji, appLogger)
	if err != nil {
		return err
	}
	unit := entity.UnitNaming{Singular: cfg.Unit.Name, Plural: cfg.Unit.NamePlural}

	dedupStore, err := dedup.NewStore(cfg.DedupConfig(), appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := dedupStore.Close(); err != nil {
			appLogger.Error("Failed to close dedup store", map[string]any{"error": err.Error()})
		}
	}()

	admission := transaction.NewAdmission(ledgerRepo, quotaEngine, appLogger)
	reactions := transaction.NewReactionProcessor(emojis, dedupStore, admission, ledgerRepo, tp, appLogger)

	if cfg.Reaction.WarmupWindow > 0 {
		if _, err := reactions.WarmUp(ctx, cfg.Reaction.WarmupWindow); err != nil {
			appLogger.Warn("Failed to warm up reaction dedup store", map[string]any{"error": err.Error()})
		}
	}

	giveService := transaction.NewService(admission, reactions, quotaEngine, emojis, unit, appLogger)
	queryService := ledger.NewQueryService(ledgerRepo, quotaEngine, ledger.Limits{
		DefaultHistoryLines: cfg.Query.DefaultHistoryLines,
		LeaderboardLimit:    cfg.Query.LeaderboardLimit,
	}, appLogger)

	names, err := cache.NewNameCache(cfg.Reaction.NameCacheSize)
	if err != nil {
		return err
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router,
		handler.NewGiveHandler(giveService, names, appLogger),
		handler.NewLedgerHandler(queryService, emojis, unit, appLogger),
		handler.NewHealthHandler(dbManager, appLogger),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":        server.Addr,
			"env":         cfg.Environment,
			"daily_limit": cfg.Quota.DailyLimit,
			"db_driver":   cfg.Database.Driver,
			"log_level":   appLogger.GetLevel().String(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		appLogger.Info("Shutting down server...", map[string]any{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}
