package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}

	return d
}

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		balance     string
		expectError error
	}{
		{
			name:    "zero balance",
			id:      "acc-1",
			balance: "0",
		},
		{
			name:    "positive balance",
			id:      "acc-1",
			balance: "4.536",
		},
		{
			name:        "blank id",
			id:          "",
			balance:     "0",
			expectError: ErrBlankAccountID,
		},
		{
			name:        "whitespace id",
			id:          "   ",
			balance:     "0",
			expectError: ErrBlankAccountID,
		},
		{
			name:        "negative balance",
			id:          "acc-1",
			balance:     "-0.01",
			expectError: ErrNegativeBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := NewAccountWithBalance(tt.id, mustDecimal(t, tt.balance))

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if acc.ID() != tt.id {
				t.Errorf("expected id %q, got %q", tt.id, acc.ID())
			}

			if !acc.Balance().Equal(mustDecimal(t, tt.balance)) {
				t.Errorf("expected balance %s, got %s", tt.balance, acc.Balance())
			}
		})
	}
}

func TestAccount_Debit(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		amount      string
		wantBalance string
		expectError bool
	}{
		{
			name:        "debit less than balance",
			balance:     "4.536",
			amount:      "2.4214",
			wantBalance: "2.1146",
		},
		{
			name:        "debit exact balance",
			balance:     "4.536",
			amount:      "4.536",
			wantBalance: "0",
		},
		{
			name:        "debit exceeding balance",
			balance:     "4.536",
			amount:      "4.5361",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := NewAccountWithBalance("acc-1", mustDecimal(t, tt.balance))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			newBalance, err := acc.Debit(mustDecimal(t, tt.amount))

			if tt.expectError {
				if !errors.Is(err, ErrInsufficientFunds) {
					t.Fatalf("expected ErrInsufficientFunds, got %v", err)
				}

				var ife *InsufficientFundsError
				if !errors.As(err, &ife) {
					t.Fatalf("expected *InsufficientFundsError, got %T", err)
				}

				if !ife.Balance.Equal(mustDecimal(t, tt.balance)) {
					t.Errorf("expected error balance %s, got %s", tt.balance, ife.Balance)
				}

				if !ife.Amount.Equal(mustDecimal(t, tt.amount)) {
					t.Errorf("expected error amount %s, got %s", tt.amount, ife.Amount)
				}

				// Balance must be unchanged after a failed debit.
				if !acc.Balance().Equal(mustDecimal(t, tt.balance)) {
					t.Errorf("expected balance unchanged at %s, got %s", tt.balance, acc.Balance())
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !newBalance.Equal(mustDecimal(t, tt.wantBalance)) {
				t.Errorf("expected new balance %s, got %s", tt.wantBalance, newBalance)
			}

			if !acc.Balance().Equal(newBalance) {
				t.Errorf("Balance() %s does not match returned balance %s", acc.Balance(), newBalance)
			}
		})
	}
}

func TestAccount_Credit(t *testing.T) {
	acc, err := NewAccountWithBalance("acc-1", mustDecimal(t, "2.1146"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newBalance, err := acc.Credit(mustDecimal(t, "2.4214"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !newBalance.Equal(mustDecimal(t, "4.536")) {
		t.Errorf("expected balance 4.536, got %s", newBalance)
	}
}

func TestAccount_CreditRejectsNegativeResult(t *testing.T) {
	acc, err := NewAccountWithBalance("acc-1", mustDecimal(t, "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := acc.Credit(mustDecimal(t, "-1.5")); !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}

	if !acc.Balance().Equal(mustDecimal(t, "1")) {
		t.Errorf("expected balance unchanged at 1, got %s", acc.Balance())
	}
}

func TestAccount_ConcurrentMutations(t *testing.T) {
	const iterations = 1000

	acc, err := NewAccountWithBalance("acc-1", decimal.NewFromInt(iterations))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	amount := decimal.NewFromInt(1)

	var wg sync.WaitGroup
	wg.Add(2 * iterations)

	for j := 0; j < iterations; j++ {
		go func() {
			defer wg.Done()

			if _, err := acc.Debit(amount); err != nil {
				t.Errorf("unexpected debit error: %v", err)
			}
		}()

		go func() {
			defer wg.Done()

			if _, err := acc.Credit(amount); err != nil {
				t.Errorf("unexpected credit error: %v", err)
			}
		}()
	}

	wg.Wait()

	// Equal numbers of unit debits and credits must cancel out exactly.
	if !acc.Balance().Equal(decimal.NewFromInt(iterations)) {
		t.Errorf("expected balance %d, got %s", iterations, acc.Balance())
	}
}
