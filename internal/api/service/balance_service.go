package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

// BalanceServiceImpl implements the BalanceService interface
type BalanceServiceImpl struct {
	accountRepo account.Repository
	ledgerRepo  ledger.Repository
	logger      *slog.Logger
}

// NewBalanceService creates a new balance service
func NewBalanceService(logger *slog.Logger, accountRepo account.Repository, ledgerRepo ledger.Repository) BalanceService {
	return &BalanceServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

// GetBalances reports the account's available balance along with the total of
// staged incoming entries. Transfers settle atomically so the pending figure
// is zero until staged settlement states are in use.
func (s *BalanceServiceImpl) GetBalances(ctx context.Context, accountID uuid.UUID) (*Balances, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	pending, err := s.ledgerRepo.SumPendingForRecipient(ctx, accountID)
	if err != nil {
		s.logger.Error("Failed to sum pending incoming entries", "account_id", accountID.String(), "error", err)
		return nil, err
	}

	return &Balances{
		AccountID: acc.ID,
		Available: acc.Balance,
		Pending:   pending,
	}, nil
}
