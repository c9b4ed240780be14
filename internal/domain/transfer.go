package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransferResult is the immutable record of a completed transfer. The
// balances are the ones observed at the debit and credit steps, not
// re-read afterwards, so a concurrent transfer cannot leak into the report.
type TransferResult struct {
	ID                   string
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	SourceBalance        decimal.Decimal
	DestinationBalance   decimal.Decimal
	CreatedAt            time.Time
}

// ValidateTransfer checks transfer preconditions before any mutation.
func ValidateTransfer(sourceID, destinationID string, amount decimal.Decimal) error {
	if strings.TrimSpace(sourceID) == "" || strings.TrimSpace(destinationID) == "" {
		return ErrBlankAccountID
	}

	if sourceID == destinationID {
		return ErrSameAccount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
