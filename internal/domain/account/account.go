package account

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds for debit")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyOwnerName    = errors.New("owner name cannot be empty")
	ErrNegativeBalance   = errors.New("opening balance cannot be negative")
)

// Account holds a monetary balance for one registered party
type Account struct {
	ID            uuid.UUID `json:"id"`
	OwnerName     string    `json:"owner_name"`
	AccountNumber string    `json:"account_number"`
	Balance       int64     `json:"balance"` // Stored in cents/minor units
	Version       int       `json:"version"` // For optimistic locking
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAccount creates a new account with the given owner and opening balance
func NewAccount(ownerName string, openingBalance int64) (*Account, error) {
	if ownerName == "" {
		return nil, ErrEmptyOwnerName
	}
	if openingBalance < 0 {
		return nil, ErrNegativeBalance
	}

	return &Account{
		ID:            uuid.New(),
		OwnerName:     ownerName,
		AccountNumber: newAccountNumber(),
		Balance:       openingBalance,
		Version:       1,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

// newAccountNumber generates a 9-digit display number for the account
func newAccountNumber() string {
	return strconv.FormatInt(100000000+rand.Int63n(900000000), 10)
}

// Credit adds the specified amount to the account balance
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	a.Balance += amount
	a.UpdatedAt = time.Now()
	a.Version++
	return nil
}

// Debit subtracts the specified amount from the account balance
func (a *Account) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if a.Balance < amount {
		return ErrInsufficientFunds
	}

	a.Balance -= amount
	a.UpdatedAt = time.Now()
	a.Version++
	return nil
}

// CanDebit checks if the account has sufficient funds for a debit
func (a *Account) CanDebit(amount int64) bool {
	return a.Balance >= amount
}
