package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssahith07/Payment-Application/internal/api/handler"
	"github.com/ssahith07/Payment-Application/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transferHandler *handler.TransferHandler,
	auditHandler *handler.AuditHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.GET("/:id/balance", accountHandler.GetBalance)
			accounts.GET("/:id/transfers", transferHandler.GetByAccountID)
		}

		// Transfer operations. Executing a transfer requires a caller
		// identity; the sender is always the caller's own account.
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", middleware.CallerIdentity(), transferHandler.Create)
			transfers.GET("/:id", transferHandler.GetByID)
		}

		// Audit archive queries, served from the Mongo mirror
		if auditHandler != nil {
			audit := v1.Group("/audit")
			{
				audit.GET("/entries", auditHandler.GetByTimeRange)
				audit.GET("/accounts/:id/entries", auditHandler.GetByAccountID)
			}
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
