package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

const insertTransferSQL = `
INSERT INTO transfer_log (
	id, source_account_id, destination_account_id,
	amount, source_balance, destination_balance, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listTransfersSQL = `
SELECT id, source_account_id, destination_account_id,
	amount, source_balance, destination_balance, created_at
FROM transfer_log
WHERE source_account_id = $1 OR destination_account_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

// TransferLog implements usecase.TransferLog on PostgreSQL. Writes go
// through the retrier so transient deadlocks and serialization failures are
// retried with backoff.
type TransferLog struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransferLog creates a new TransferLog.
func NewTransferLog(pool *pgxpool.Pool) *TransferLog {
	return &TransferLog{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Record appends a completed transfer.
func (l *TransferLog) Record(ctx context.Context, result *domain.TransferResult) error {
	return l.retrier.Retry(ctx, func() error {
		_, err := l.pool.Exec(ctx, insertTransferSQL,
			result.ID,
			result.SourceAccountID,
			result.DestinationAccountID,
			result.Amount,
			result.SourceBalance,
			result.DestinationBalance,
			result.CreatedAt,
		)

		return err
	})
}

// ListByAccount lists recorded transfers touching the account, newest first.
func (l *TransferLog) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferResult, error) {
	rows, err := l.pool.Query(ctx, listTransfersSQL, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.TransferResult
	for rows.Next() {
		r, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

func scanTransfer(row pgx.Row) (*domain.TransferResult, error) {
	var r domain.TransferResult

	err := row.Scan(
		&r.ID,
		&r.SourceAccountID,
		&r.DestinationAccountID,
		&r.Amount,
		&r.SourceBalance,
		&r.DestinationBalance,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}
