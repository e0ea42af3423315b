package handler

// CreateAccountRequest represents a request to open a new account
type CreateAccountRequest struct {
	OwnerName      string `json:"owner_name" binding:"required"`
	OpeningBalance int64  `json:"opening_balance" binding:"min=0"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID            string `json:"id"`
	OwnerName     string `json:"owner_name"`
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// BalanceResponse represents an account's balances in API responses
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Available int64  `json:"available"`
	Pending   int64  `json:"pending"`
}

// CreateTransferRequest represents a request to move money to another account.
// The sender is always the authenticated caller.
type CreateTransferRequest struct {
	RecipientID    string `json:"recipient_id" binding:"required"`
	Amount         int64  `json:"amount" binding:"required"`
	Note           string `json:"note,omitempty" binding:"max=200"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// TransferResponse represents a ledger entry in API responses
type TransferResponse struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// HistoryEntryResponse represents one history row seen from the queried
// account's side
type HistoryEntryResponse struct {
	ID             string `json:"id"`
	Direction      string `json:"direction"`
	OtherPartyID   string `json:"other_party_id"`
	OtherPartyName string `json:"other_party_name,omitempty"`
	Amount         int64  `json:"amount"`
	Note           string `json:"note,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// HistoryListResponse represents a page of account history in API responses
type HistoryListResponse struct {
	Transfers []HistoryEntryResponse `json:"transfers"`
}

// AuditListResponse represents a page of archived entries in API responses
type AuditListResponse struct {
	Entries []TransferResponse `json:"entries"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
