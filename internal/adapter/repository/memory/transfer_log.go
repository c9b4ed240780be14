package memory

import (
	"context"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// TransferLog implements usecase.TransferLog in memory. It backs the list
// endpoint when no database is configured.
type TransferLog struct {
	mu      sync.RWMutex
	results []*domain.TransferResult
}

// NewTransferLog creates an empty TransferLog.
func NewTransferLog() *TransferLog {
	return &TransferLog{}
}

// Record appends a completed transfer.
func (l *TransferLog) Record(ctx context.Context, result *domain.TransferResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, result)

	return nil
}

// ListByAccount lists recorded transfers touching the account, newest first.
func (l *TransferLog) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []*domain.TransferResult
	for i := len(l.results) - 1; i >= 0; i-- {
		r := l.results[i]
		if r.SourceAccountID == accountID || r.DestinationAccountID == accountID {
			matched = append(matched, r)
		}
	}

	if offset >= len(matched) {
		return nil, nil
	}

	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}
