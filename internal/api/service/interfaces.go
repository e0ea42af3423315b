package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/transfer"
)

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount opens a new account with the given owner and opening balance
	CreateAccount(ctx context.Context, ownerName string, openingBalance int64) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// TransferService defines the interface for transfer operations
type TransferService interface {
	// CreateTransfer executes a transfer with idempotency support.
	// The returned bool is true when an existing entry was replayed for the
	// request's idempotency key instead of executing a new transfer.
	CreateTransfer(ctx context.Context, req *transfer.Request) (*ledger.Entry, bool, error)

	// GetTransferByID retrieves a ledger entry by its ID
	// Returns nil if the entry is not found
	GetTransferByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)
}

// Balances reports the committed and staged funds of an account
type Balances struct {
	AccountID uuid.UUID `json:"account_id"`
	Available int64     `json:"available"`
	Pending   int64     `json:"pending"`
}

// BalanceService defines the interface for balance queries
type BalanceService interface {
	// GetBalances retrieves the available and pending balances of an account
	// Returns ErrAccountNotFound if the account doesn't exist
	GetBalances(ctx context.Context, accountID uuid.UUID) (*Balances, error)
}

// HistoryItem is one ledger entry seen from a single account's perspective
type HistoryItem struct {
	View           *ledger.ViewEntry
	OtherPartyName string
}

// HistoryService defines the interface for per-account transfer history
type HistoryService interface {
	// GetHistory retrieves a paginated history for the account, newest first.
	// Returns items, total count of entries touching the account, and any error.
	GetHistory(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*HistoryItem, int64, error)
}

// ArchiveReader reads mirrored ledger entries from the audit archive
type ArchiveReader interface {
	GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*ledger.Entry, error)
	GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*ledger.Entry, error)
}

// AuditService defines the interface for archive queries. The archive trails
// the primary ledger by up to one relay polling interval, so it serves audit
// tooling, not balance-affecting reads.
type AuditService interface {
	// GetArchivedByAccount retrieves archived entries touching the account,
	// newest first
	GetArchivedByAccount(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*ledger.Entry, error)

	// GetArchivedByTimeRange retrieves archived entries within the window,
	// newest first. Returns ErrInvalidTimeRange when the window is inverted.
	GetArchivedByTimeRange(ctx context.Context, startTime, endTime time.Time, page, perPage int) ([]*ledger.Entry, error)
}
