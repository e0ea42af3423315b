package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

// CreateAccount opens a new account. Account numbers are generated until one
// is free; collisions are unlikely but the unique constraint is authoritative.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, ownerName string, openingBalance int64) (*account.Account, error) {
	acc, err := account.NewAccount(ownerName, openingBalance)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByAccountNumber(ctx, acc.AccountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, account.ErrDuplicateAccountNumber{AccountNumber: acc.AccountNumber}
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}
