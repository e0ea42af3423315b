// Package mongo provides the MongoDB audit archive. Committed ledger entries
// are mirrored here by the outbox relay so audit tooling can query them
// without touching the primary store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

const (
	// ArchiveCollectionName is the name of the archive collection in MongoDB
	ArchiveCollectionName = "ledger_archive"
)

// ErrEntryNotArchived indicates the entry has not reached the archive yet
type ErrEntryNotArchived struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotArchived) Error() string {
	return "ledger entry not archived: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrEntryNotArchived
func (e ErrEntryNotArchived) Is(target error) bool {
	t, ok := target.(ErrEntryNotArchived)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}

// ArchiveRepository stores mirrored ledger entries in MongoDB
type ArchiveRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewArchiveRepository creates a new MongoDB archive repository
func NewArchiveRepository(logger *slog.Logger, db *mongo.Database) *ArchiveRepository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

// Archive mirrors a committed ledger entry into the archive. Archiving is
// idempotent: an entry already present is left untouched, since ledger
// entries never change after commit.
func (r *ArchiveRepository) Archive(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(ArchiveCollectionName)

	existing, err := r.GetByEntryID(ctx, entry.ID)
	if err != nil && !errors.Is(err, ErrEntryNotArchived{}) {
		r.logger.Error("Failed to check for archived ledger entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to check for archived ledger entry: %w", err)
	}

	if existing != nil {
		r.logger.Debug("Ledger entry already archived", "entry_id", entry.ID.String())
		return nil
	}

	if _, err := collection.InsertOne(ctx, entry); err != nil {
		r.logger.Error("Failed to archive ledger entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to archive ledger entry: %w", err)
	}

	return nil
}

// GetByEntryID retrieves an archived entry by its ledger entry ID.
// Returns ErrEntryNotArchived if the entry has not been mirrored yet.
func (r *ArchiveRepository) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*ledger.Entry, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"entry_id": entryID}
	var entry ledger.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEntryNotArchived{EntryID: entryID}
		}
		r.logger.Error("Failed to get archived ledger entry",
			"entry_id", entryID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archived ledger entry: %w", err)
	}

	return &entry, nil
}

// GetByAccountID retrieves paginated archived entries touching an account.
// Results are sorted by creation time in descending order (newest first).
func (r *ArchiveRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"$or": []bson.M{
		{"sender_id": accountID},
		{"recipient_id": accountID},
	}}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}). // Sort by created_at in descending order
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get archived ledger entries",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archived ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode archived ledger entries",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode archived ledger entries: %w", err)
	}

	return entries, nil
}

// GetByTimeRange retrieves paginated archived entries within the specified
// time window for audit exports, newest first.
func (r *ArchiveRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{
		"created_at": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get archived ledger entries by time range",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to get archived ledger entries by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*ledger.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode archived ledger entries",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to decode archived ledger entries: %w", err)
	}

	return entries, nil
}
