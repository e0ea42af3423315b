package transfer

import "errors"

// Transfer error taxonomy. The first four are validation-class failures,
// detected before any mutation and safe to report directly to the caller.
// ErrTransferFailed wraps infrastructure faults; the engine never retries,
// since retrying without an idempotency key risks a double-spend.
var (
	ErrInvalidAmount       = errors.New("transfer amount must be positive")
	ErrInvalidRecipient    = errors.New("recipient must differ from sender")
	ErrRecipientNotFound   = errors.New("recipient account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTransferFailed      = errors.New("transfer failed")
)
