package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/transfer"
)

// TransferServiceImpl implements the TransferService interface
type TransferServiceImpl struct {
	ledgerRepo ledger.Repository
	engine     transfer.Engine
	logger     *slog.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(logger *slog.Logger, ledgerRepo ledger.Repository, engine transfer.Engine) TransferService {
	return &TransferServiceImpl{
		ledgerRepo: ledgerRepo,
		engine:     engine,
		logger:     logger,
	}
}

// CreateTransfer executes a transfer, replaying the recorded outcome when the
// idempotency key has been seen before. The replay check is advisory; the
// unique constraint on the key catches the race where two requests with the
// same key arrive concurrently.
func (s *TransferServiceImpl) CreateTransfer(ctx context.Context, req *transfer.Request) (*ledger.Entry, bool, error) {
	if req.IdempotencyKey != "" {
		existingEntry, err := s.ledgerRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			s.logger.Error("Failed to check for existing transfer with idempotency key",
				"idempotency_key", req.IdempotencyKey,
				"error", err,
			)
			return nil, false, err
		}

		if existingEntry != nil {
			s.logger.Info("Found existing transfer with idempotency key",
				"idempotency_key", req.IdempotencyKey,
				"entry_id", existingEntry.ID.String(),
			)
			return existingEntry, true, nil
		}
	}

	entry, err := s.engine.Transfer(ctx, req)
	if err != nil {
		// Two requests with the same key can race past the advisory check;
		// the losing one finds the winner's entry here.
		if req.IdempotencyKey != "" {
			replayed, lookupErr := s.ledgerRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
			if lookupErr == nil && replayed != nil {
				return replayed, true, nil
			}
		}
		return nil, false, err
	}

	s.logger.Info("Transfer completed",
		"entry_id", entry.ID.String(),
		"sender_id", req.SenderID.String(),
		"recipient_id", req.RecipientID.String(),
		"amount", req.Amount,
	)

	return entry, false, nil
}

// GetTransferByID retrieves a ledger entry by its ID. Returns nil if not found
func (s *TransferServiceImpl) GetTransferByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		var errEntryNotFound ledger.ErrEntryNotFound
		if errors.As(err, &errEntryNotFound) {
			s.logger.Info("Ledger entry not found", "entry_id", id.String())
			return nil, nil
		}
		s.logger.Error("Failed to get ledger entry by ID", "entry_id", id.String(), "error", err)
		return nil, err
	}
	return entry, nil
}
