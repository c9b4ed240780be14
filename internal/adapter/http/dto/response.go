package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountFromDomain converts a domain account to a response. The balance is
// a locked snapshot taken at conversion time.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:      a.ID(),
		Balance: a.Balance(),
	}
}

// TransferResponse represents a completed transfer in API responses.
type TransferResponse struct {
	ID                   string          `json:"id"`
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	SourceBalance        decimal.Decimal `json:"source_balance"`
	DestinationBalance   decimal.Decimal `json:"destination_balance"`
	CreatedAt            time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer result to a response.
func TransferFromDomain(r *domain.TransferResult) *TransferResponse {
	return &TransferResponse{
		ID:                   r.ID,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		SourceBalance:        r.SourceBalance,
		DestinationBalance:   r.DestinationBalance,
		CreatedAt:            r.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfer results to responses.
func TransfersFromDomain(results []*domain.TransferResult) []*TransferResponse {
	out := make([]*TransferResponse, len(results))
	for i, r := range results {
		out[i] = TransferFromDomain(r)
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
