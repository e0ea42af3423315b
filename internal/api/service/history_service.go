package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

// HistoryServiceImpl implements the HistoryService interface
type HistoryServiceImpl struct {
	accountRepo account.Repository
	ledgerRepo  ledger.Repository
	logger      *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(logger *slog.Logger, accountRepo account.Repository, ledgerRepo ledger.Repository) HistoryService {
	return &HistoryServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

// GetHistory retrieves a page of the account's transfer history, newest first.
// Each entry is labeled debit or credit from the account's perspective and
// carries the other party's display name when their account still exists.
func (s *HistoryServiceImpl) GetHistory(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*HistoryItem, int64, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	entries, err := s.ledgerRepo.ListByAccount(ctx, accountID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	// One lookup per distinct counterparty on the page
	names := make(map[uuid.UUID]string)
	items := make([]*HistoryItem, 0, len(entries))
	for _, entry := range entries {
		view, ok := entry.ViewFor(accountID)
		if !ok {
			s.logger.Warn("Ledger entry listed for account it does not touch",
				"entry_id", entry.ID.String(), "account_id", accountID.String())
			continue
		}

		name, seen := names[view.OtherPartyID]
		if !seen {
			name = s.resolveOwnerName(ctx, view.OtherPartyID)
			names[view.OtherPartyID] = name
		}

		items = append(items, &HistoryItem{
			View:           view,
			OtherPartyName: name,
		})
	}

	return items, total, nil
}

func (s *HistoryServiceImpl) resolveOwnerName(ctx context.Context, accountID uuid.UUID) string {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, account.ErrAccountNotFound{}) {
			s.logger.Error("Failed to resolve counterparty name", "account_id", accountID.String(), "error", err)
		}
		return ""
	}
	return acc.OwnerName
}
