package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Status defines ledger entry states. Every entry this system commits is
// created already StatusCompleted; pending and failed are reserved for a
// future staged-settlement flow and never reach the store today.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry is one immutable record of funds moved between two accounts.
// No field is ever mutated after the entry is persisted.
type Entry struct {
	ID             uuid.UUID `json:"id" bson:"entry_id"`
	Position       int64     `json:"position" bson:"position"` // Monotonic append order, assigned by the store
	SenderID       uuid.UUID `json:"sender_id" bson:"sender_id"`
	RecipientID    uuid.UUID `json:"recipient_id" bson:"recipient_id"`
	Amount         int64     `json:"amount" bson:"amount"` // Stored in cents/minor units
	Note           string    `json:"note,omitempty" bson:"note,omitempty"`
	IdempotencyKey string    `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CorrelationID  string    `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	Status         Status    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// NewEntry builds a completed ledger entry for a transfer at commit time
func NewEntry(senderID, recipientID uuid.UUID, amount int64, note, idempotencyKey, correlationID string) *Entry {
	return &Entry{
		ID:             uuid.New(),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Amount:         amount,
		Note:           note,
		IdempotencyKey: idempotencyKey,
		CorrelationID:  correlationID,
		Status:         StatusCompleted,
		CreatedAt:      time.Now(),
	}
}
