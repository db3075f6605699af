package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates a malformed amount string.
	ErrInvalidAmount = errors.New("invalid amount format (no leading zeros, up to 2 decimal places)")
	// ErrAmountTooSmall indicates an amount below the funding minimum.
	ErrAmountTooSmall = errors.New("amount must be at least 0.01")
	// ErrAmountTooLarge indicates an amount above the configured funding ceiling.
	ErrAmountTooLarge = errors.New("amount exceeds the maximum funding amount")
	// ErrInvalidCardNumber indicates a card number that failed the Luhn check or length rules.
	ErrInvalidCardNumber = errors.New("invalid card number (failed Luhn check)")
	// ErrInvalidBankAccountNumber indicates a non-numeric bank account number.
	ErrInvalidBankAccountNumber = errors.New("invalid bank account number")
	// ErrInvalidRoutingNumber indicates a missing or malformed routing number.
	ErrInvalidRoutingNumber = errors.New("routing number is required and must be exactly 9 digits")
	// ErrInvalidInstrumentType indicates an unsupported funding instrument.
	ErrInvalidInstrumentType = errors.New("unsupported funding instrument type")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Transaction types.
const (
	Deposit = "deposit"
)

// Transaction statuses.
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Funding instrument types.
const (
	InstrumentCard = "card"
	InstrumentBank = "bank"
)

// Transaction is an immutable audit record of a single balance movement.
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"` // must be positive
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ProcessedAt time.Time `json:"processed_at"`
}

// FundingInstrument identifies the external source of a deposit.
type FundingInstrument struct {
	Type          string `json:"type"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`
}

// FundParams is the input data for the funding transaction.
type FundParams struct {
	AccountID   int64  `json:"account_id"`
	Owner       string `json:"owner"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// FundResult is the result of the funding transaction.
type FundResult struct {
	Transaction Transaction `json:"transaction"`
	Balance     string      `json:"balance"`
}
