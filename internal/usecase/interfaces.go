package usecase

import (
	"context"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// AccountStore is the keyed container mapping account id to Account. Once
// Create returns, Get from any goroutine observes the account.
type AccountStore interface {
	// Create stores a new account, failing with a DuplicateAccountError
	// if the id is already taken.
	Create(ctx context.Context, account *domain.Account) error
	// Get resolves an account by id, failing with an AccountNotFoundError
	// on a miss.
	Get(ctx context.Context, id string) (*domain.Account, error)
	// Clear removes all accounts. Administrative reset only.
	Clear(ctx context.Context) error
}

// Notifier delivers post-transfer notifications to account holders.
// Delivery is fire-and-forget: implementations must swallow their own
// failures, the core never observes them.
type Notifier interface {
	Notify(ctx context.Context, account *domain.Account, message string)
}

// TransferLog records completed transfers for audit and listing. Recording
// is best-effort and happens after the transfer already succeeded.
type TransferLog interface {
	Record(ctx context.Context, result *domain.TransferResult) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferResult, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore deduplicates replayed requests by idempotency key.
// CheckAndSet claims the key if unseen and returns any stored response.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
