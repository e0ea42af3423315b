package postgres

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
	"github.com/ssahith07/Payment-Application/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxRunner runs the transactional closure directly, with no database
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

// recordingAccountRepo serves accounts from memory and records lock order
type recordingAccountRepo struct {
	accounts  map[uuid.UUID]*account.Account
	lockOrder []uuid.UUID
}

func (r *recordingAccountRepo) Create(ctx context.Context, acc *account.Account) error {
	r.accounts[acc.ID] = acc
	return nil
}

func (r *recordingAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound{AccountID: id}
	}
	return acc, nil
}

func (r *recordingAccountRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	return nil, nil
}

func (r *recordingAccountRepo) Update(ctx context.Context, acc *account.Account) error {
	r.accounts[acc.ID] = acc
	return nil
}

func (r *recordingAccountRepo) LockForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.GetByID(ctx, id)
}

func (r *recordingAccountRepo) WithTx(tx pgx.Tx) account.Repository { return r }

type noopLedgerRepo struct{}

func (noopLedgerRepo) Create(ctx context.Context, entry *ledger.Entry) error { return nil }
func (noopLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	return nil, ledger.ErrEntryNotFound{EntryID: id}
}
func (noopLedgerRepo) GetByIdempotencyKey(ctx context.Context, key string) (*ledger.Entry, error) {
	return nil, nil
}
func (noopLedgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	return nil, nil
}
func (noopLedgerRepo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}
func (noopLedgerRepo) SumPendingForRecipient(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}
func (noopLedgerRepo) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*ledger.Entry, error) {
	return nil, nil
}
func (n noopLedgerRepo) WithTx(tx pgx.Tx) ledger.Repository { return n }

type noopOutboxRepo struct{}

func (noopOutboxRepo) Create(ctx context.Context, message *outbox.Message) error { return nil }
func (noopOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	return nil, nil
}
func (noopOutboxRepo) UpdateStatus(ctx context.Context, id int64, status outbox.Status) error {
	return nil
}
func (noopOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error { return nil }
func (noopOutboxRepo) Delete(ctx context.Context, id int64) error            { return nil }
func (noopOutboxRepo) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*outbox.Message, error) {
	return nil, outbox.ErrMessageNotFound{}
}
func (n noopOutboxRepo) WithTx(tx pgx.Tx) outbox.Repository { return n }

func newStoreUnderTest(accounts ...*account.Account) (*LedgerStore, *recordingAccountRepo, *fakeTxRunner) {
	repo := &recordingAccountRepo{accounts: make(map[uuid.UUID]*account.Account)}
	for _, acc := range accounts {
		repo.accounts[acc.ID] = acc
	}
	runner := &fakeTxRunner{}
	store := NewLedgerStore(newTestLogger(), runner, repo, noopLedgerRepo{}, noopOutboxRepo{})
	return store, repo, runner
}

func newStoreAccount(t *testing.T, balance int64) *account.Account {
	t.Helper()
	acc, err := account.NewAccount("Holder", balance)
	require.NoError(t, err)
	return acc
}

func TestLedgerStore_WithAccountsLocked_Ordering(t *testing.T) {
	ctx := context.Background()
	a := newStoreAccount(t, 100)
	b := newStoreAccount(t, 100)

	lower, higher := a, b
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		lower, higher = b, a
	}

	t.Run("locks ascending regardless of request order", func(t *testing.T) {
		store, repo, runner := newStoreUnderTest(a, b)

		err := store.WithAccountsLocked(ctx, []uuid.UUID{higher.ID, lower.ID}, func(u *transfer.UnitOfWork) error {
			assert.Len(t, u.Locked, 2)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{lower.ID, higher.ID}, repo.lockOrder)
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("duplicate ids locked once", func(t *testing.T) {
		store, repo, _ := newStoreUnderTest(a, b)

		err := store.WithAccountsLocked(ctx, []uuid.UUID{a.ID, a.ID, b.ID}, func(u *transfer.UnitOfWork) error {
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, repo.lockOrder, 2)
	})
}

func TestLedgerStore_WithAccountsLocked_MissingAccounts(t *testing.T) {
	ctx := context.Background()
	existing := newStoreAccount(t, 100)
	missingID := uuid.New()

	store, _, _ := newStoreUnderTest(existing)

	var locked map[uuid.UUID]*account.Account
	err := store.WithAccountsLocked(ctx, []uuid.UUID{existing.ID, missingID}, func(u *transfer.UnitOfWork) error {
		locked = u.Locked
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, locked, existing.ID)
	assert.NotContains(t, locked, missingID, "absent accounts are omitted, not an error")
}

func TestLedgerStore_WithAccountsLocked_PropagatesFnError(t *testing.T) {
	ctx := context.Background()
	acc := newStoreAccount(t, 100)
	store, _, _ := newStoreUnderTest(acc)

	sentinel := errors.New("abort")
	err := store.WithAccountsLocked(ctx, []uuid.UUID{acc.ID}, func(u *transfer.UnitOfWork) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestLockOrder(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	c := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	ordered := lockOrder([]uuid.UUID{c, b, a, b})
	assert.Equal(t, []uuid.UUID{a, b, c}, ordered)
}
