package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
)

// EngineImpl orchestrates validation, balance mutation, and ledger-entry
// creation as one atomic unit against the store.
type EngineImpl struct {
	store  Store
	logger *slog.Logger
}

func NewEngine(store Store, logger *slog.Logger) Engine {
	return &EngineImpl{
		store:  store,
		logger: logger,
	}
}

// Transfer debits the sender, credits the recipient, and appends exactly one
// completed ledger entry, all inside a single unit of work. On any failure
// nothing is persisted. The sum of all balances is invariant across the call.
func (e *EngineImpl) Transfer(ctx context.Context, request *Request) (*ledger.Entry, error) {
	logger := e.logger
	if request.CorrelationID != "" {
		logger = e.logger.With("correlation_id", request.CorrelationID)
	}

	if request.Amount <= 0 {
		logger.Warn("Rejected transfer with non-positive amount", "amount", request.Amount)
		return nil, ErrInvalidAmount
	}
	if request.SenderID == request.RecipientID {
		logger.Warn("Rejected self-transfer", "account_id", request.SenderID.String())
		return nil, ErrInvalidRecipient
	}

	var entry *ledger.Entry
	err := e.store.WithAccountsLocked(ctx, []uuid.UUID{request.SenderID, request.RecipientID}, func(u *UnitOfWork) error {
		sender, ok := u.Locked[request.SenderID]
		if !ok {
			// The caller is authenticated, so a missing sender means the
			// store and the identity layer disagree. Treat as a fault.
			return fmt.Errorf("sender account %s not found", request.SenderID.String())
		}

		if sender.Balance < request.Amount {
			logger.Warn("Insufficient balance for transfer",
				"sender_id", sender.ID.String(),
				"balance", sender.Balance,
				"amount", request.Amount,
			)
			return ErrInsufficientBalance
		}

		recipient, ok := u.Locked[request.RecipientID]
		if !ok {
			logger.Warn("Recipient not found for transfer", "recipient_id", request.RecipientID.String())
			return ErrRecipientNotFound
		}

		if err := sender.Debit(request.Amount); err != nil {
			return err
		}
		if err := recipient.Credit(request.Amount); err != nil {
			return err
		}

		if err := u.Accounts.Update(ctx, sender); err != nil {
			return err
		}
		if err := u.Accounts.Update(ctx, recipient); err != nil {
			return err
		}

		entry = ledger.NewEntry(
			request.SenderID,
			request.RecipientID,
			request.Amount,
			request.Note,
			request.IdempotencyKey,
			request.CorrelationID,
		)
		if err := u.Entries.Create(ctx, entry); err != nil {
			return err
		}

		message, err := outbox.NewMessage(entry)
		if err != nil {
			return fmt.Errorf("failed to build outbox message for entry %s: %w", entry.ID.String(), err)
		}
		if err := u.Outbox.Create(ctx, message); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrRecipientNotFound) {
			return nil, err
		}
		logger.Error("Transfer aborted, unit of work discarded",
			"sender_id", request.SenderID.String(),
			"recipient_id", request.RecipientID.String(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	logger.Info("Transfer committed",
		"entry_id", entry.ID.String(),
		"sender_id", request.SenderID.String(),
		"recipient_id", request.RecipientID.String(),
		"amount", request.Amount,
	)
	return entry, nil
}
