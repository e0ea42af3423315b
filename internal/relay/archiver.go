// Package relay drains the transactional outbox after transfers commit. Each
// outbox message carries a committed ledger entry; the relay mirrors it into
// the MongoDB audit archive and announces it on the Kafka event stream.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
	"github.com/ssahith07/Payment-Application/internal/platform/messaging/producers"
)

// EntryArchiver mirrors a committed ledger entry into the audit archive
type EntryArchiver interface {
	Archive(ctx context.Context, entry *ledger.Entry) error
}

// Archiver processes a single outbox message end to end
type Archiver interface {
	ProcessMessage(ctx context.Context, message *outbox.Message) error
}

// ArchiverImpl implements Archiver
type ArchiverImpl struct {
	outboxRepo outbox.Repository
	archive    EntryArchiver
	publisher  producers.MessagePublisher
	logger     *slog.Logger
}

// NewArchiver creates a new outbox message archiver
func NewArchiver(
	outboxRepo outbox.Repository,
	archive EntryArchiver,
	publisher producers.MessagePublisher,
	logger *slog.Logger,
) Archiver {
	return &ArchiverImpl{
		outboxRepo: outboxRepo,
		archive:    archive,
		publisher:  publisher,
		logger:     logger,
	}
}

// ProcessMessage archives the entry, publishes it to the event stream, and
// marks the outbox message processed. Archiving is idempotent and events
// carry the entry id as key, so a crash between steps results in at-least-once
// delivery rather than loss.
func (a *ArchiverImpl) ProcessMessage(ctx context.Context, message *outbox.Message) error {
	var entry ledger.Entry
	if err := json.Unmarshal(message.Payload, &entry); err != nil {
		a.logger.Error("Failed to unmarshal ledger entry from outbox payload",
			"outbox_id", message.ID, "entry_id", message.EntryID.String(), "error", err,
		)
		if updateErr := a.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			a.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := a.logger
	if entry.CorrelationID != "" {
		logger = a.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Archiving outbox message", "outbox_id", message.ID, "entry_id", entry.ID.String())

	if err := a.archive.Archive(ctx, &entry); err != nil {
		logger.Error("Failed to archive ledger entry", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to archive ledger entry %s: %w", entry.ID, err)
	}

	if err := a.publisher.Publish(ctx, entry.ID.String(), &entry); err != nil {
		logger.Error("Failed to publish ledger event", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to publish ledger event for entry %s: %w", entry.ID, err)
	}

	if err := a.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "entry_id", entry.ID.String(), "error", err,
		)
		return fmt.Errorf("archive for %s OK, but failed to mark outbox %d as PROCESSED: %w", entry.ID, message.ID, err)
	}

	logger.Info("Outbox message successfully processed and marked as PROCESSED", "outbox_id", message.ID, "entry_id", entry.ID.String())
	return nil
}
