package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// TransferUseCase coordinates a two-account transfer: resolve both
// accounts, debit the source, credit the destination, and credit the
// source back if the destination credit fails. It owns no state beyond the
// collaborators it was configured with; accounts are resolved fresh from
// the store on every call.
type TransferUseCase struct {
	store       AccountStore
	notifier    Notifier
	transferLog TransferLog
	idGen       IDGenerator
	metrics     *metrics.Metrics

	// creditDestination is a field rather than a direct method call so
	// tests can force the destination credit step to fail.
	creditDestination func(dst *domain.Account, amount decimal.Decimal) (decimal.Decimal, error)
}

// NewTransferUseCase creates a new TransferUseCase. TransferLog and metrics
// may be nil.
func NewTransferUseCase(
	store AccountStore,
	notifier Notifier,
	transferLog TransferLog,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		store:       store,
		notifier:    notifier,
		transferLog: transferLog,
		idGen:       idGen,
		metrics:     m,
		creditDestination: func(dst *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
			return dst.Credit(amount)
		},
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
}

// Transfer moves amount from the source account to the destination
// account. On success it returns a TransferResult with both new balances
// as observed at the debit and credit steps. Any failure before or during
// the account mutations comes back as a *domain.TransferError wrapping the
// cause, with both balances exactly as they were before the call. The only
// exception is a failed compensation, surfaced as a *domain.CompensationError.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransferResult, error) {
	log.Info().
		Str("source_account_id", input.SourceAccountID).
		Str("destination_account_id", input.DestinationAccountID).
		Str("amount", input.Amount.String()).
		Msg("transferring amount")

	start := time.Now()

	result, err := uc.transfer(ctx, input)

	if uc.metrics != nil {
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		log.Error().
			Err(err).
			Str("source_account_id", input.SourceAccountID).
			Str("destination_account_id", input.DestinationAccountID).
			Str("amount", input.Amount.String()).
			Msg("transfer failed")

		uc.countError(err)

		return nil, err
	}

	log.Info().
		Str("transfer_id", result.ID).
		Str("source_account_id", input.SourceAccountID).
		Str("destination_account_id", input.DestinationAccountID).
		Str("amount", input.Amount.String()).
		Msg("transferred amount")

	if uc.metrics != nil {
		uc.metrics.TransfersCompleted.Inc()
	}

	uc.record(ctx, result)
	uc.notify(ctx, input)

	return result, nil
}

func (uc *TransferUseCase) transfer(ctx context.Context, input TransferInput) (*domain.TransferResult, error) {
	if err := domain.ValidateTransfer(input.SourceAccountID, input.DestinationAccountID, input.Amount); err != nil {
		return nil, uc.wrap(input, err)
	}

	src, err := uc.store.Get(ctx, input.SourceAccountID)
	if err != nil {
		return nil, uc.wrap(input, err)
	}

	dst, err := uc.store.Get(ctx, input.DestinationAccountID)
	if err != nil {
		return nil, uc.wrap(input, err)
	}

	// Debit is a no-op on failure, so nothing to undo here.
	srcBalance, err := src.Debit(input.Amount)
	if err != nil {
		return nil, uc.wrap(input, err)
	}

	dstBalance, err := uc.creditDestination(dst, input.Amount)
	if err != nil {
		// Undo the debit. The compensating credit restores a prior
		// non-negative balance, so it cannot ordinarily fail; if it
		// does, no further recovery is possible.
		if _, cerr := src.Credit(input.Amount); cerr != nil {
			return nil, &domain.CompensationError{
				AccountID: src.ID(),
				Amount:    input.Amount,
				Err:       cerr,
			}
		}

		return nil, uc.wrap(input, &domain.DestinationCreditError{
			AccountID: dst.ID(),
			Err:       err,
		})
	}

	return &domain.TransferResult{
		ID:                   uc.idGen.Generate(),
		SourceAccountID:      input.SourceAccountID,
		DestinationAccountID: input.DestinationAccountID,
		Amount:               input.Amount,
		SourceBalance:        srcBalance,
		DestinationBalance:   dstBalance,
		CreatedAt:            time.Now().UTC(),
	}, nil
}

// ListTransfersByAccountInput represents input for listing recorded transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists recorded transfers touching an account.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.TransferResult, error) {
	if uc.transferLog == nil {
		return nil, nil
	}

	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.transferLog.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *TransferUseCase) wrap(input TransferInput, err error) error {
	return &domain.TransferError{
		SourceID:      input.SourceAccountID,
		DestinationID: input.DestinationAccountID,
		Amount:        input.Amount,
		Err:           err,
	}
}

// record appends the result to the transfer log. The transfer already
// succeeded, so a log failure is reported but not propagated.
func (uc *TransferUseCase) record(ctx context.Context, result *domain.TransferResult) {
	if uc.transferLog == nil {
		return
	}

	if err := uc.transferLog.Record(ctx, result); err != nil {
		log.Error().Err(err).Str("transfer_id", result.ID).Msg("failed to record transfer")
	}
}

// notify tells both account holders about the transfer. Accounts are
// re-resolved so a holder deleted by an administrative reset in the
// meantime is simply skipped.
func (uc *TransferUseCase) notify(ctx context.Context, input TransferInput) {
	src, err := uc.store.Get(ctx, input.SourceAccountID)
	if err == nil {
		uc.notifier.Notify(ctx, src, fmt.Sprintf(
			"Amount %s was transferred from your account to account %s.",
			input.Amount, input.DestinationAccountID,
		))
	}

	dst, err := uc.store.Get(ctx, input.DestinationAccountID)
	if err == nil {
		uc.notifier.Notify(ctx, dst, fmt.Sprintf(
			"Amount %s was transferred from account %s to your account.",
			input.Amount, input.SourceAccountID,
		))
	}

	if uc.metrics != nil {
		uc.metrics.NotificationsSent.Add(2)
	}
}

func (uc *TransferUseCase) countError(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		uc.metrics.TransferErrors.WithLabelValues("insufficient_funds").Inc()
	case errors.Is(err, domain.ErrAccountNotFound):
		uc.metrics.TransferErrors.WithLabelValues("account_not_found").Inc()
	case errors.Is(err, domain.ErrCompensationFailed):
		uc.metrics.TransferErrors.WithLabelValues("compensation_failed").Inc()
	case errors.Is(err, domain.ErrDestinationCredit):
		uc.metrics.TransferErrors.WithLabelValues("destination_credit").Inc()
	default:
		uc.metrics.TransferErrors.WithLabelValues("validation").Inc()
	}
}
