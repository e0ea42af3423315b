package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
)

// Request carries one transfer order from the boundary into the engine.
// SenderID is the authenticated caller's account; the boundary is responsible
// for that binding and the engine does not re-derive it.
type Request struct {
	SenderID       uuid.UUID `json:"sender_id"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	Amount         int64     `json:"amount"` // Stored in cents/minor units
	Note           string    `json:"note,omitempty"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Engine moves funds between two accounts and records the movement exactly
// once, or changes nothing at all.
type Engine interface {
	Transfer(ctx context.Context, request *Request) (*ledger.Entry, error)
}

// UnitOfWork exposes the repositories bound to one atomic unit of work,
// together with the accounts locked for it. Locked holds only the requested
// ids that exist; absent accounts are simply missing from the map.
type UnitOfWork struct {
	Accounts account.Repository
	Entries  ledger.Repository
	Outbox   outbox.Repository
	Locked   map[uuid.UUID]*account.Account
}

// Store is the ledger store the engine runs against. WithAccountsLocked
// acquires exclusive access to the named accounts in a fixed global order,
// executes fn against a consistent snapshot, and applies or discards its
// effects atomically.
type Store interface {
	WithAccountsLocked(ctx context.Context, ids []uuid.UUID, fn func(u *UnitOfWork) error) error
}
