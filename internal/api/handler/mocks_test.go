package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/api/service"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/transfer"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerName string, openingBalance int64) (*account.Account, error) {
	args := m.Called(ctx, ownerName, openingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetBalances(ctx context.Context, accountID uuid.UUID) (*service.Balances, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Balances), args.Error(1)
}

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) CreateTransfer(ctx context.Context, req *transfer.Request) (*ledger.Entry, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*ledger.Entry), args.Bool(1), args.Error(2)
}

func (m *MockTransferService) GetTransferByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) GetHistory(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*service.HistoryItem, int64, error) {
	args := m.Called(ctx, accountID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*service.HistoryItem), args.Get(1).(int64), args.Error(2)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetArchivedByAccount(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, accountID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockAuditService) GetArchivedByTimeRange(ctx context.Context, startTime, endTime time.Time, page, perPage int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, startTime, endTime, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

var (
	_ service.AccountService  = (*MockAccountService)(nil)
	_ service.BalanceService  = (*MockBalanceService)(nil)
	_ service.TransferService = (*MockTransferService)(nil)
	_ service.HistoryService  = (*MockHistoryService)(nil)
	_ service.AuditService    = (*MockAuditService)(nil)
)
