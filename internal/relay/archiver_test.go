package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/domain/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status outbox.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) WithTx(tx pgx.Tx) outbox.Repository { return m }

type MockEntryArchiver struct {
	mock.Mock
}

func (m *MockEntryArchiver) Archive(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockDeadLetterPublisher struct {
	mock.Mock
}

func (m *MockDeadLetterPublisher) PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error {
	args := m.Called(ctx, key, originalMessageValue, reason)
	return args.Error(0)
}

func (m *MockDeadLetterPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newRelayMessage(t *testing.T) (*outbox.Message, *ledger.Entry) {
	t.Helper()
	entry := ledger.NewEntry(uuid.New(), uuid.New(), 500, "invoice 42", "", "corr-1")
	msg, err := outbox.NewMessage(entry)
	require.NoError(t, err)
	msg.ID = 7
	return msg, entry
}

func TestArchiver_ProcessMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("archives, publishes and marks processed", func(t *testing.T) {
		mockOutboxRepo := new(MockOutboxRepository)
		mockArchive := new(MockEntryArchiver)
		mockPublisher := new(MockMessagePublisher)
		archiver := NewArchiver(mockOutboxRepo, mockArchive, mockPublisher, newTestLogger())

		msg, entry := newRelayMessage(t)
		mockArchive.On("Archive", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)
		mockPublisher.On("Publish", ctx, entry.ID.String(), mock.AnythingOfType("*ledger.Entry")).Return(nil)
		mockOutboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusProcessed).Return(nil)

		err := archiver.ProcessMessage(ctx, msg)
		assert.NoError(t, err)
		mockArchive.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
		mockOutboxRepo.AssertExpectations(t)
	})

	t.Run("corrupt payload marked failed", func(t *testing.T) {
		mockOutboxRepo := new(MockOutboxRepository)
		mockArchive := new(MockEntryArchiver)
		mockPublisher := new(MockMessagePublisher)
		archiver := NewArchiver(mockOutboxRepo, mockArchive, mockPublisher, newTestLogger())

		msg, _ := newRelayMessage(t)
		msg.Payload = []byte("{not json")
		mockOutboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusFailedToPublish).Return(nil)

		err := archiver.ProcessMessage(ctx, msg)
		assert.Error(t, err)
		mockArchive.AssertNotCalled(t, "Archive")
		mockPublisher.AssertNotCalled(t, "Publish")
		mockOutboxRepo.AssertExpectations(t)
	})

	t.Run("archive failure leaves message pending", func(t *testing.T) {
		mockOutboxRepo := new(MockOutboxRepository)
		mockArchive := new(MockEntryArchiver)
		mockPublisher := new(MockMessagePublisher)
		archiver := NewArchiver(mockOutboxRepo, mockArchive, mockPublisher, newTestLogger())

		msg, _ := newRelayMessage(t)
		mockArchive.On("Archive", ctx, mock.AnythingOfType("*ledger.Entry")).Return(errors.New("mongo down"))

		err := archiver.ProcessMessage(ctx, msg)
		assert.Error(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
		mockOutboxRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("publish failure leaves message pending", func(t *testing.T) {
		mockOutboxRepo := new(MockOutboxRepository)
		mockArchive := new(MockEntryArchiver)
		mockPublisher := new(MockMessagePublisher)
		archiver := NewArchiver(mockOutboxRepo, mockArchive, mockPublisher, newTestLogger())

		msg, entry := newRelayMessage(t)
		mockArchive.On("Archive", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)
		mockPublisher.On("Publish", ctx, entry.ID.String(), mock.AnythingOfType("*ledger.Entry")).Return(errors.New("kafka down"))

		err := archiver.ProcessMessage(ctx, msg)
		assert.Error(t, err)
		mockOutboxRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("mark processed failure surfaces", func(t *testing.T) {
		mockOutboxRepo := new(MockOutboxRepository)
		mockArchive := new(MockEntryArchiver)
		mockPublisher := new(MockMessagePublisher)
		archiver := NewArchiver(mockOutboxRepo, mockArchive, mockPublisher, newTestLogger())

		msg, entry := newRelayMessage(t)
		mockArchive.On("Archive", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)
		mockPublisher.On("Publish", ctx, entry.ID.String(), mock.AnythingOfType("*ledger.Entry")).Return(nil)
		mockOutboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusProcessed).Return(errors.New("db down"))

		err := archiver.ProcessMessage(ctx, msg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PROCESSED")
	})
}
