// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found for the given owner.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountTypeAlreadyExists indicates that the owner already has an account of the given type.
	ErrAccountTypeAlreadyExists = errors.New("account of this type already exists")
	// ErrAccountNumberTaken indicates a collision on the generated account number.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrAccountNotActive indicates that the account status forbids funding.
	ErrAccountNotActive = errors.New("account is not active")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrInvalidAccountType indicates an unsupported account type.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account types supported by the bank.
const (
	Checking = "checking"
	Savings  = "savings"
)

// AccountTypes holds all supported account types.
var AccountTypes = []string{Checking, Savings}

// IsSupportedAccountType returns true if the account type is supported.
func IsSupportedAccountType(accountType string) bool {
	for _, t := range AccountTypes {
		if t == accountType {
			return true
		}
	}

	return false
}

// Account statuses.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusClosed  = "closed"
)

// Account holds balance data for a single account of an owner.
//
// Balance always equals the rounded sum of all completed transaction
// amounts for the account.
type Account struct {
	ID            int64     `json:"id"`
	AccountNumber string    `json:"account_number"`
	Owner         string    `json:"owner"`
	Type          string    `json:"account_type"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
