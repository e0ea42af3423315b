package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssahith07/Payment-Application/internal/api"
	"github.com/ssahith07/Payment-Application/internal/api/service"
	"github.com/ssahith07/Payment-Application/internal/config"
	"github.com/ssahith07/Payment-Application/internal/data/mongo"
	"github.com/ssahith07/Payment-Application/internal/data/postgres"
	"github.com/ssahith07/Payment-Application/internal/logger"
	"github.com/ssahith07/Payment-Application/internal/platform/persistence"
	"github.com/ssahith07/Payment-Application/internal/transfer"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting payment API",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize repositories and the transactional ledger store
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	ledgerStore := postgres.NewLedgerStore(log, postgresDB, accountRepo, ledgerRepo, outboxRepo)
	archiveRepo := mongo.NewArchiveRepository(log, mongoDB.Database())

	// Initialize the transfer engine behind a bounded worker pool
	engine := transfer.NewEngine(ledgerStore, log)
	pooledEngine, err := transfer.NewWorkerPoolEngine(engine, transfer.WorkerPoolConfig{Size: cfg.WorkerPool.Size}, log)
	if err != nil {
		log.Error("Failed to initialize transfer worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize services
	accountService := service.NewAccountService(accountRepo)
	balanceService := service.NewBalanceService(log, accountRepo, ledgerRepo)
	transferService := service.NewTransferService(log, ledgerRepo, pooledEngine)
	historyService := service.NewHistoryService(log, accountRepo, ledgerRepo)
	auditService := service.NewAuditService(log, archiveRepo)

	// Initialize REST server
	server := api.NewServer(log, cfg, accountService, balanceService, transferService, historyService, auditService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new transfers arrive
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain the transfer worker pool
	pooledEngine.Shutdown()

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Close MongoDB connection
	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
