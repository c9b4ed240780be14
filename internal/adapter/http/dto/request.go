package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:      r.ID,
		Balance: r.Balance,
	}
}

// CreateTransferRequest represents a request to transfer money between two
// accounts.
type CreateTransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
	}
}
