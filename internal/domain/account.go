package domain

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Account holds an identifier and a mutable monetary balance. All balance
// mutations go through Credit and Debit, which serialize on the account's
// own mutex, so operations on a single account are linearizable and the
// balance never observably drops below zero.
type Account struct {
	id string

	mu      sync.Mutex
	balance decimal.Decimal
}

// NewAccount creates an account with a zero balance.
func NewAccount(id string) (*Account, error) {
	return NewAccountWithBalance(id, decimal.Zero)
}

// NewAccountWithBalance creates an account with an initial balance.
func NewAccountWithBalance(id string, balance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrBlankAccountID
	}

	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}

	return &Account{id: id, balance: balance}, nil
}

// ID returns the account identifier.
func (a *Account) ID() string {
	return a.id
}

// Balance returns the current balance. It takes the account lock so the
// value is never an intermediate state of an in-flight mutation.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// Credit adds amount to the balance and returns the new balance. It fails
// only if the resulting balance would be negative, which cannot happen for
// the positive amounts the transfer path uses; a failure here signals a
// broken invariant rather than a business condition.
func (a *Account) Credit(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	newBalance := a.balance.Add(amount)
	if newBalance.IsNegative() {
		return decimal.Decimal{}, ErrNegativeBalance
	}

	a.balance = newBalance

	log.Debug().
		Str("account_id", a.id).
		Str("operation", "credit").
		Str("amount", amount.String()).
		Str("balance", newBalance.String()).
		Msg("account credited")

	return newBalance, nil
}

// Debit subtracts amount from the balance and returns the new balance. If
// the current balance is less than amount the balance is left unchanged and
// an InsufficientFundsError carrying both values is returned.
func (a *Account) Debit(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(amount) {
		return decimal.Decimal{}, &InsufficientFundsError{
			AccountID: a.id,
			Balance:   a.balance,
			Amount:    amount,
		}
	}

	newBalance := a.balance.Sub(amount)
	a.balance = newBalance

	log.Debug().
		Str("account_id", a.id).
		Str("operation", "debit").
		Str("amount", amount.String()).
		Str("balance", newBalance.String()).
		Msg("account debited")

	return newBalance, nil
}
