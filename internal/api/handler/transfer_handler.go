package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ssahith07/Payment-Application/internal/api/middleware"
	"github.com/ssahith07/Payment-Application/internal/api/service"
	"github.com/ssahith07/Payment-Application/internal/domain/account"
	"github.com/ssahith07/Payment-Application/internal/domain/ledger"
	"github.com/ssahith07/Payment-Application/internal/transfer"
)

// TransferHandler handles HTTP requests for transfer operations
type TransferHandler struct {
	transferService service.TransferService
	historyService  service.HistoryService
	logger          *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, transferService service.TransferService, historyService service.HistoryService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		historyService:  historyService,
		logger:          logger,
	}
}

// Create executes a transfer from the authenticated caller to the recipient.
// A replayed idempotency key returns the recorded outcome with 200 instead of
// executing again.
func (h *TransferHandler) Create(c *gin.Context) {
	callerID, ok := middleware.GetCallerAccountID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		h.logger.Error("Invalid recipient ID", "recipient_id", req.RecipientID, "error", err)
		RespondBadRequest(c, "Invalid recipient ID")
		return
	}

	transferRequest := &transfer.Request{
		SenderID:       callerID,
		RecipientID:    recipientID,
		Amount:         req.Amount,
		Note:           req.Note,
		IdempotencyKey: req.IdempotencyKey,
		CorrelationID:  middleware.GetCorrelationID(c),
		Timestamp:      time.Now(),
	}

	entry, replayed, err := h.transferService.CreateTransfer(c.Request.Context(), transferRequest)
	if err != nil {
		h.respondTransferError(c, err)
		return
	}

	response := mapLedgerEntryToResponse(entry)
	if replayed {
		RespondOK(c, response)
		return
	}
	RespondCreated(c, response)
}

// GetByID retrieves a ledger entry by its ID, returns 404 if not found
func (h *TransferHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transfer ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transfer ID")
		return
	}

	entry, err := h.transferService.GetTransferByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transfer", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if entry == nil {
		RespondNotFound(c, "Transfer not found")
		return
	}

	response := mapLedgerEntryToResponse(entry)
	RespondOK(c, response)
}

// GetByAccountID retrieves paginated transfer history for an account
func (h *TransferHandler) GetByAccountID(c *gin.Context) {
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

	items, total, err := h.historyService.GetHistory(
		c.Request.Context(),
		accountID,
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get transfer history", "account_id", accountIDParam, "error", err)
		RespondInternalError(c)
		return
	}

	transfers := make([]HistoryEntryResponse, 0, len(items))
	for _, item := range items {
		transfers = append(transfers, mapHistoryItemToResponse(item))
	}

	RespondWithPaginatedData(c, http.StatusOK, HistoryListResponse{Transfers: transfers}, pagination.Page, pagination.PerPage, int(total))
}

// respondTransferError maps engine errors to HTTP status codes. Insufficient
// balance is reported before recipient existence, so a failed transfer leaks
// nothing about accounts the caller cannot afford to reach.
func (h *TransferHandler) respondTransferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, transfer.ErrInvalidAmount):
		RespondBadRequest(c, "Transfer amount must be positive")
	case errors.Is(err, transfer.ErrInvalidRecipient):
		RespondBadRequest(c, "Cannot transfer to the sending account")
	case errors.Is(err, transfer.ErrInsufficientBalance):
		RespondUnprocessable(c, "INSUFFICIENT_BALANCE", "Insufficient balance for transfer")
	case errors.Is(err, transfer.ErrRecipientNotFound):
		RespondNotFound(c, "Recipient account not found")
	default:
		h.logger.Error("Transfer failed", "error", err)
		RespondInternalError(c)
	}
}

// mapLedgerEntryToResponse maps a ledger entry to a transfer response DTO
func mapLedgerEntryToResponse(entry *ledger.Entry) TransferResponse {
	return TransferResponse{
		ID:          entry.ID.String(),
		SenderID:    entry.SenderID.String(),
		RecipientID: entry.RecipientID.String(),
		Amount:      entry.Amount,
		Note:        entry.Note,
		Status:      string(entry.Status),
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}

// mapHistoryItemToResponse maps a history item to its response DTO
func mapHistoryItemToResponse(item *service.HistoryItem) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:             item.View.Entry.ID.String(),
		Direction:      string(item.View.Direction),
		OtherPartyID:   item.View.OtherPartyID.String(),
		OtherPartyName: item.OtherPartyName,
		Amount:         item.View.Entry.Amount,
		Note:           item.View.Entry.Note,
		Status:         string(item.View.Entry.Status),
		CreatedAt:      item.View.Entry.CreatedAt.Format(time.RFC3339),
	}
}
