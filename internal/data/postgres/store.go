package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
	"github.com/ssahith07/Payment-Application/internal/platform/persistence"
	"github.com/ssahith07/Payment-Application/internal/transfer"
)

// LedgerStore implements the transfer.Store interface on top of the
// PostgreSQL repositories. It owns the locking discipline: accounts are
// always locked in ascending id order regardless of sender/recipient role, so
// two transfers that reference the same pair of accounts in opposite
// directions can never deadlock.
type LedgerStore struct {
	db       persistence.TxRunner
	accounts account.Repository
	entries  ledger.Repository
	outbox   outbox.Repository
	logger   *slog.Logger
}

func NewLedgerStore(
	logger *slog.Logger,
	db persistence.TxRunner,
	accounts account.Repository,
	entries ledger.Repository,
	outboxRepo outbox.Repository,
) *LedgerStore {
	return &LedgerStore{
		db:       db,
		accounts: accounts,
		entries:  entries,
		outbox:   outboxRepo,
		logger:   logger,
	}
}

var _ transfer.Store = (*LedgerStore)(nil)

// WithAccountsLocked begins one database transaction, locks the named
// accounts with SELECT ... FOR UPDATE in ascending id order, and runs fn
// against repositories bound to that transaction. fn's effects commit
// together or not at all; any error from fn rolls the whole unit back.
// Accounts that do not exist are left out of the unit's Locked map rather
// than aborting, so fn can apply its own precedence when reporting absence.
func (s *LedgerStore) WithAccountsLocked(ctx context.Context, ids []uuid.UUID, fn func(u *transfer.UnitOfWork) error) error {
	ordered := lockOrder(ids)

	return s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		unit := &transfer.UnitOfWork{
			Accounts: s.accounts.WithTx(tx),
			Entries:  s.entries.WithTx(tx),
			Outbox:   s.outbox.WithTx(tx),
			Locked:   make(map[uuid.UUID]*account.Account, len(ordered)),
		}

		for _, id := range ordered {
			acc, err := unit.Accounts.LockForUpdate(ctx, id)
			if err != nil {
				if errors.Is(err, account.ErrAccountNotFound{}) {
					continue
				}
				return err
			}
			unit.Locked[acc.ID] = acc
		}

		return fn(unit)
	})
}

// lockOrder returns the ids deduplicated and sorted ascending by byte value.
// The fixed global order is what prevents deadlock between transfers that
// touch the same accounts in opposite roles.
func lockOrder(ids []uuid.UUID) []uuid.UUID {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return slices.Compact(ordered)
}
