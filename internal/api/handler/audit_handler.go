package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/api/service"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
)

// AuditHandler handles HTTP requests for audit archive queries. The archive
// is mirrored asynchronously by the outbox relay, so responses may trail the
// primary ledger by up to one polling interval.
type AuditHandler struct {
	auditService service.AuditService
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logger *slog.Logger, auditService service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// GetByAccountID retrieves archived entries touching an account
func (h *AuditHandler) GetByAccountID(c *gin.Context) {
	accountIDParam := c.Param("id")
	accountID, err := uuid.Parse(accountIDParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "account_id", accountIDParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, err := h.auditService.GetArchivedByAccount(c.Request.Context(), accountID, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to query archive by account", "account_id", accountIDParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapArchivedEntries(entries))
}

// GetByTimeRange retrieves archived entries within a time window. The start
// parameter is required; end defaults to now.
func (h *AuditHandler) GetByTimeRange(c *gin.Context) {
	startParam := c.Query("start")
	if startParam == "" {
		RespondBadRequest(c, "Missing start parameter")
		return
	}
	startTime, err := time.Parse(time.RFC3339, startParam)
	if err != nil {
		h.logger.Error("Invalid start parameter", "start", startParam, "error", err)
		RespondBadRequest(c, "Invalid start parameter, expected RFC3339")
		return
	}

	endTime := time.Now()
	if endParam := c.Query("end"); endParam != "" {
		endTime, err = time.Parse(time.RFC3339, endParam)
		if err != nil {
			h.logger.Error("Invalid end parameter", "end", endParam, "error", err)
			RespondBadRequest(c, "Invalid end parameter, expected RFC3339")
			return
		}
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, err := h.auditService.GetArchivedByTimeRange(c.Request.Context(), startTime, endTime, pagination.Page, pagination.PerPage)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			RespondBadRequest(c, "Time range end must not precede start")
			return
		}
		h.logger.Error("Failed to query archive by time range", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapArchivedEntries(entries))
}

func mapArchivedEntries(entries []*ledger.Entry) AuditListResponse {
	mapped := make([]TransferResponse, 0, len(entries))
	for _, entry := range entries {
		mapped = append(mapped, mapLedgerEntryToResponse(entry))
	}
	return AuditListResponse{Entries: mapped}
}
