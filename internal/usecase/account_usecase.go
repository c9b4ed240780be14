package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle.
type AccountUseCase struct {
	store   AccountStore
	metrics *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. Metrics may be nil.
func NewAccountUseCase(store AccountStore, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		store:   store,
		metrics: m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ID      string
	Balance decimal.Decimal
}

// CreateAccount creates a new account with the given id and initial balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account, err := domain.NewAccountWithBalance(input.ID, input.Balance)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount resolves an account by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.store.Get(ctx, id)
}

// ResetAccounts removes every account from the store. Administrative
// operation, used for dev and test isolation only.
func (uc *AccountUseCase) ResetAccounts(ctx context.Context) error {
	return uc.store.Clear(ctx)
}
