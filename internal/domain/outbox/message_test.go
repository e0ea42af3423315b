package outbox

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	entry := ledger.NewEntry(uuid.New(), uuid.New(), 750, "lunch", "", "corr-7")

	msg, err := NewMessage(entry)
	require.NoError(t, err)

	assert.Equal(t, entry.ID, msg.EntryID)
	assert.Equal(t, entry.SenderID, msg.SenderID)
	assert.Equal(t, StatusPending, msg.Status)
	assert.Equal(t, 0, msg.Attempts)
	assert.Nil(t, msg.LastAttemptAt)

	decoded, err := msg.GetLedgerEntry()
	require.NoError(t, err)
	assert.Equal(t, entry.ID, decoded.ID)
	assert.Equal(t, entry.Amount, decoded.Amount)
	assert.Equal(t, entry.CorrelationID, decoded.CorrelationID)
	assert.Equal(t, entry.Status, decoded.Status)
}

func TestMessage_StateTransitions(t *testing.T) {
	entry := ledger.NewEntry(uuid.New(), uuid.New(), 100, "", "", "")
	msg, err := NewMessage(entry)
	require.NoError(t, err)

	msg.IncrementAttempts()
	assert.Equal(t, 1, msg.Attempts)
	require.NotNil(t, msg.LastAttemptAt)

	msg.MarkAsProcessed()
	assert.Equal(t, StatusProcessed, msg.Status)

	msg.MarkAsFailed()
	assert.Equal(t, StatusFailedToPublish, msg.Status)
}

func TestMessage_GetLedgerEntry_BadPayload(t *testing.T) {
	msg := &Message{Payload: []byte("not json")}
	entry, err := msg.GetLedgerEntry()
	assert.Error(t, err)
	assert.Nil(t, entry)
}
