package transfer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

// WorkerPoolEngine bounds the number of transfers executing at once while
// keeping each caller's request synchronous. Transfers that share no account
// still run fully concurrently inside the pool; serialization of transfers
// that share an account is the store's job, not the pool's.
type WorkerPoolEngine struct {
	baseEngine Engine
	pool       *ants.Pool
	logger     *slog.Logger
	// Protects the in-flight results map
	mu      sync.Mutex
	results map[string]chan transferResult
}

type transferResult struct {
	entry *ledger.Entry
	err   error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolEngine(
	baseEngine Engine,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolEngine, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolEngine{
		baseEngine: baseEngine,
		pool:       pool,
		logger:     logger,
		results:    make(map[string]chan transferResult),
	}, nil
}

// Transfer submits the request to the worker pool and waits for its result.
func (e *WorkerPoolEngine) Transfer(ctx context.Context, request *Request) (*ledger.Entry, error) {
	logger := e.logger
	if request.CorrelationID != "" {
		logger = e.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Debug("Submitting transfer to worker pool",
		"sender_id", request.SenderID.String(),
		"recipient_id", request.RecipientID.String(),
	)

	resultChan := make(chan transferResult, 1)

	taskID := uuid.New().String()
	e.mu.Lock()
	e.results[taskID] = resultChan
	e.mu.Unlock()

	// Copy the request to avoid data races with the caller
	requestCopy := *request

	err := e.pool.Submit(func() {
		entry, err := e.baseEngine.Transfer(ctx, &requestCopy)

		resultChan <- transferResult{entry: entry, err: err}

		e.mu.Lock()
		delete(e.results, taskID)
		close(resultChan)
		e.mu.Unlock()
	})

	if err != nil {
		e.mu.Lock()
		delete(e.results, taskID)
		close(resultChan)
		e.mu.Unlock()

		logger.Error("Failed to submit transfer to worker pool",
			"sender_id", request.SenderID.String(),
			"error", err,
		)
		return nil, err
	}

	result := <-resultChan
	return result.entry, result.err
}

// Shutdown gracefully shuts down the worker pool.
func (e *WorkerPoolEngine) Shutdown() {
	e.logger.Info("Shutting down worker pool", "running_workers", e.pool.Running())
	e.pool.Release()
}

// Running returns the number of running workers in the pool.
func (e *WorkerPoolEngine) Running() int {
	return e.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (e *WorkerPoolEngine) Capacity() int {
	return e.pool.Cap()
}
