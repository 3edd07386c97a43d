package routes

import (
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/kudos-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	giveHandler *handler.GiveHandler,
	ledgerHandler *handler.LedgerHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/healthz", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/gives", giveHandler.Give)
		v1.POST("/reactions", giveHandler.React)

		v1.GET("/users/:userId/quota", ledgerHandler.Quota)
		v1.GET("/history", ledgerHandler.History)
		v1.GET("/leaderboard", ledgerHandler.Leaderboard)
		v1.GET("/leaderboard/events", ledgerHandler.EventLeaderboard)
		v1.GET("/emojis", ledgerHandler.Emojis)
	}
}

// SetupMiddlewares configures global middlewares for the API
// The error handler runs innermost so the request logger sees the final status
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
}
