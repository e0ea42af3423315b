package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ssahith07/Payment-Application/internal/config"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
	"github.com/ssahith07/Payment-Application/internal/platform/messaging/producers"
)

// Poller processes pending outbox messages
type Poller struct {
	outboxRepo       outbox.Repository
	archiver         Archiver
	dlqPublisher     producers.DeadLetterPublisher
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewPoller(
	cfg *config.OutboxConfig,
	outboxRepo outbox.Repository,
	archiver Archiver,
	dlqPublisher producers.DeadLetterPublisher,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		outboxRepo:       outboxRepo,
		archiver:         archiver,
		dlqPublisher:     dlqPublisher,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start begins polling until context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting outbox relay poller",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry_attempts", p.maxRetryAttempts,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Outbox relay poller stopping due to context cancellation.")
			return
		case <-ticker.C:
			p.logger.Debug("Outbox relay tick: processing pending messages")
			if err := p.processPendingMessages(ctx); err != nil {
				p.logger.Error("Error during batch processing of pending outbox messages", "error", err)
			}
		}
	}
}

func (p *Poller) processPendingMessages(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		p.logger.Debug("No pending outbox messages found.")
		return nil
	}

	p.logger.Info("Fetched pending outbox messages", "count", len(messages))

	for _, msg := range messages {
		err := p.archiver.ProcessMessage(ctx, msg)
		if err != nil {
			p.logger.Error("Failed to process outbox message",
				"outbox_id", msg.ID, "entry_id", msg.EntryID.String(), "current_attempts", msg.Attempts, "error", err,
			)

			// Increment attempt count
			if errInc := p.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
				p.logger.Error("Failed to increment attempts for outbox message", "outbox_id", msg.ID, "error", errInc)
				// Continue to next message if increment fails
				continue
			}

			if msg.Attempts+1 >= p.maxRetryAttempts {
				p.logger.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH",
					"outbox_id", msg.ID, "entry_id", msg.EntryID.String(), "attempts_made", msg.Attempts+1,
				)
				if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, outbox.StatusFailedToPublish); errUpdate != nil {
					p.logger.Error("Failed to update outbox status to FAILED_TO_PUBLISH after max retries", "outbox_id", msg.ID, "error", errUpdate)
					continue
				}
				p.sendToDLQ(ctx, msg, err.Error())
			}
			continue
		}
		p.logger.Info("Successfully processed outbox message", "outbox_id", msg.ID, "entry_id", msg.EntryID.String())
	}
	return nil
}

// sendToDLQ hands an exhausted message to the dead letter queue so operators
// can inspect and replay it. Best effort: the message already carries the
// FAILED_TO_PUBLISH status in the outbox table.
func (p *Poller) sendToDLQ(ctx context.Context, msg *outbox.Message, reason string) {
	if p.dlqPublisher == nil {
		p.logger.Warn("DLQ publisher not configured, skipping dead letter publish", "outbox_id", msg.ID)
		return
	}

	key := strconv.FormatInt(msg.ID, 10)
	if err := p.dlqPublisher.PublishToDLQ(ctx, key, msg.Payload, reason); err != nil {
		p.logger.Error("Failed to publish exhausted outbox message to DLQ", "outbox_id", msg.ID, "error", err)
	}
}
