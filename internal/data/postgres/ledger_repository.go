package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL.
// The ledger_entries table is append-only; this repository issues no UPDATE
// or DELETE statements.
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so entry creation commits
// atomically with the balance mutations of the same transfer.
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create appends a new entry and fills in its Position from the sequence
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, sender_id, recipient_id, amount, note, idempotency_key, correlation_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING position
	`

	err := r.querier.QueryRow(ctx, query,
		entry.ID,
		entry.SenderID,
		entry.RecipientID,
		entry.Amount,
		nullableText(entry.Note),
		nullableText(entry.IdempotencyKey),
		nullableText(entry.CorrelationID),
		entry.Status,
		entry.CreatedAt,
	).Scan(&entry.Position)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ledger.ErrDuplicateEntry{EntryID: entry.ID}
		}
		r.logger.Error("Failed to create ledger entry", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry by its ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := selectEntryColumns + `
		WHERE id = $1
	`

	entry, err := r.scanEntry(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry", "entry_id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// GetByIdempotencyKey retrieves a ledger entry using its idempotency key.
// Returns nil, nil when no entry carries the key.
func (r *LedgerRepository) GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*ledger.Entry, error) {
	if idempotencyKey == "" {
		return nil, errors.New("idempotency key cannot be empty")
	}

	query := selectEntryColumns + `
		WHERE idempotency_key = $1
	`

	entry, err := r.scanEntry(r.querier.QueryRow(ctx, query, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get ledger entry by idempotency key", "idempotency_key", idempotencyKey, "error", err)
		return nil, fmt.Errorf("failed to get ledger entry by idempotency key: %w", err)
	}

	return entry, nil
}

// ListByAccount retrieves paginated entries where the account is sender or
// recipient, newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	query := selectEntryColumns + `
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC, position DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list ledger entries", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	return r.collectEntries(rows)
}

// CountByAccount counts the total number of entries touching an account
func (r *LedgerRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE sender_id = $1 OR recipient_id = $1
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		r.logger.Error("Failed to count ledger entries", "account_id", accountID.String(), "error", err)
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}

// SumPendingForRecipient totals pending-status amounts credited to the
// account. Under the all-or-nothing commit design this is always zero; the
// query exists for the reserved staged-settlement states.
func (r *LedgerRepository) SumPendingForRecipient(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE recipient_id = $1 AND status = $2
	`

	var sum int64
	if err := r.querier.QueryRow(ctx, query, accountID, ledger.StatusPending).Scan(&sum); err != nil {
		r.logger.Error("Failed to sum pending entries", "account_id", accountID.String(), "error", err)
		return 0, fmt.Errorf("failed to sum pending entries: %w", err)
	}

	return sum, nil
}

// GetByTimeRange retrieves paginated entries within the time window, newest first
func (r *LedgerRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*ledger.Entry, error) {
	query := selectEntryColumns + `
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC, position DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.querier.Query(ctx, query, startTime, endTime, limit, offset)
	if err != nil {
		r.logger.Error("Failed to get ledger entries by time range", "start_time", startTime, "end_time", endTime, "error", err)
		return nil, fmt.Errorf("failed to get ledger entries by time range: %w", err)
	}
	defer rows.Close()

	return r.collectEntries(rows)
}

const selectEntryColumns = `
		SELECT id, position, sender_id, recipient_id, amount, note, idempotency_key, correlation_id, status, created_at
		FROM ledger_entries`

func (r *LedgerRepository) scanEntry(row pgx.Row) (*ledger.Entry, error) {
	var entry ledger.Entry
	var note, idempotencyKey, correlationID *string
	err := row.Scan(
		&entry.ID,
		&entry.Position,
		&entry.SenderID,
		&entry.RecipientID,
		&entry.Amount,
		&note,
		&idempotencyKey,
		&correlationID,
		&entry.Status,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Note = derefText(note)
	entry.IdempotencyKey = derefText(idempotencyKey)
	entry.CorrelationID = derefText(correlationID)
	return &entry, nil
}

func (r *LedgerRepository) collectEntries(rows pgx.Rows) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan ledger entry", "error", err)
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over ledger entries", "error", err)
		return nil, fmt.Errorf("error iterating over ledger entries: %w", err)
	}

	return entries, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
