package bank

import "errors"

// The closed set of business-rule failures a transfer can produce. Handlers
// translate these to HTTP statuses in one place; nothing else inspects them.
var (
	ErrBadAmount               = errors.New("transfer amount must be positive")
	ErrInsufficientFunds       = errors.New("insufficient balance")
	ErrInvalidDestination      = errors.New("invalid to card selected for self-transfer")
	ErrRecipientUnavailable    = errors.New("recipient does not have an active card to receive funds")
	ErrMissingRecipientDetails = errors.New("recipient account number and short code are required for external transfer")
	ErrInvalidTransferType     = errors.New("invalid transfer type")
)
