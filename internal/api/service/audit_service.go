package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

// ErrInvalidTimeRange indicates an audit window whose end precedes its start
var ErrInvalidTimeRange = errors.New("time range end must not precede start")

// AuditServiceImpl implements the AuditService interface
type AuditServiceImpl struct {
	archive ArchiveReader
	logger  *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(logger *slog.Logger, archive ArchiveReader) AuditService {
	return &AuditServiceImpl{
		archive: archive,
		logger:  logger,
	}
}

// GetArchivedByAccount retrieves a page of archived entries touching the
// account, newest first
func (s *AuditServiceImpl) GetArchivedByAccount(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*ledger.Entry, error) {
	offset := (page - 1) * perPage

	entries, err := s.archive.GetByAccountID(ctx, accountID, perPage, offset)
	if err != nil {
		s.logger.Error("Failed to read archive by account", "account_id", accountID.String(), "error", err)
		return nil, err
	}
	return entries, nil
}

// GetArchivedByTimeRange retrieves a page of archived entries within the
// window, newest first
func (s *AuditServiceImpl) GetArchivedByTimeRange(ctx context.Context, startTime, endTime time.Time, page, perPage int) ([]*ledger.Entry, error) {
	if endTime.Before(startTime) {
		return nil, ErrInvalidTimeRange
	}

	offset := (page - 1) * perPage

	entries, err := s.archive.GetByTimeRange(ctx, startTime, endTime, perPage, offset)
	if err != nil {
		s.logger.Error("Failed to read archive by time range",
			"start_time", startTime, "end_time", endTime, "error", err)
		return nil, err
	}
	return entries, nil
}
