package memory

import (
	"context"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// AccountStore implements usecase.AccountStore with a mutex-guarded map.
// The store hands out the account instances themselves, so every caller
// mutating a given account goes through that account's own lock.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// Create stores a new account, failing if the id is already taken.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID()]; ok {
		return &domain.DuplicateAccountError{AccountID: account.ID()}
	}

	s.accounts[account.ID()] = account

	return nil
}

// Get resolves an account by id.
func (s *AccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, &domain.AccountNotFoundError{AccountID: id}
	}

	return account, nil
}

// Clear removes all accounts.
func (s *AccountStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*domain.Account)

	return nil
}
