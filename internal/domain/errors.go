package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateAccountID = errors.New("account id already exists")
	ErrBlankAccountID     = errors.New("account id must not be blank")
	ErrNegativeBalance    = errors.New("balance must not be negative")
	ErrInsufficientFunds  = errors.New("insufficient funds")

	// Transfer errors
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrDestinationCredit  = errors.New("destination credit failed")
	ErrCompensationFailed = errors.New("compensation credit failed, balances may be inconsistent")
)

// AccountNotFoundError reports which account id was missing from the store.
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %q was not found", e.AccountID)
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// DuplicateAccountError reports an attempt to create an account with an id
// that is already taken.
type DuplicateAccountError struct {
	AccountID string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("account %q already exists", e.AccountID)
}

func (e *DuplicateAccountError) Is(target error) bool {
	return target == ErrDuplicateAccountID
}

// InsufficientFundsError reports a debit that would overdraw the account,
// carrying the balance and the requested amount.
type InsufficientFundsError struct {
	AccountID string
	Balance   decimal.Decimal
	Amount    decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"current balance is less than the amount to be debited: balance %s, amount %s, account %q",
		e.Balance, e.Amount, e.AccountID,
	)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// DestinationCreditError reports a failed credit of the destination account
// after the source was debited. The orchestrator compensates before
// surfacing it.
type DestinationCreditError struct {
	AccountID string
	Err       error
}

func (e *DestinationCreditError) Error() string {
	return fmt.Sprintf("failed to credit destination account %q: %v", e.AccountID, e.Err)
}

func (e *DestinationCreditError) Unwrap() error {
	return e.Err
}

func (e *DestinationCreditError) Is(target error) bool {
	return target == ErrDestinationCredit
}

// CompensationError signals that the compensating credit back to the source
// failed. No further recovery is possible, so it is surfaced distinct from
// ordinary transfer failures and never wrapped in a TransferError.
type CompensationError struct {
	AccountID string
	Amount    decimal.Decimal
	Err       error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf(
		"failed to compensate account %q with amount %s: %v",
		e.AccountID, e.Amount, e.Err,
	)
}

func (e *CompensationError) Unwrap() error {
	return e.Err
}

func (e *CompensationError) Is(target error) bool {
	return target == ErrCompensationFailed
}

// TransferError is the uniform failure shape for a transfer. It carries the
// amount, both account ids and the underlying cause, so callers get one
// error kind regardless of which step failed.
type TransferError struct {
	SourceID      string
	DestinationID string
	Amount        decimal.Decimal
	Err           error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf(
		"failed to transfer amount %s from account %q to account %q: %v",
		e.Amount, e.SourceID, e.DestinationID, e.Err,
	)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
