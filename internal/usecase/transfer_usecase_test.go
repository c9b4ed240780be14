package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

type nopNotifier struct{}

func (nopNotifier) Notify(ctx context.Context, account *domain.Account, message string) {}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}

	return d
}

func newStore(t *testing.T, balances map[string]string) *memory.AccountStore {
	t.Helper()

	store := memory.NewAccountStore()
	for id, balance := range balances {
		account, err := domain.NewAccountWithBalance(id, mustDecimal(t, balance))
		if err != nil {
			t.Fatalf("failed to build account %s: %v", id, err)
		}

		if err := store.Create(context.Background(), account); err != nil {
			t.Fatalf("failed to store account %s: %v", id, err)
		}
	}

	return store
}

func balanceOf(t *testing.T, store *memory.AccountStore, id string) decimal.Decimal {
	t.Helper()

	account, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get account %s: %v", id, err)
	}

	return account.Balance()
}

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name            string
		balances        map[string]string
		input           usecase.TransferInput
		wantSrcBalance  string
		wantDestBalance string
		errorType       error
	}{
		{
			name:     "successful transfer",
			balances: map[string]string{"source": "4.536", "destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "2.4214"),
			},
			wantSrcBalance:  "2.1146",
			wantDestBalance: "2.4214",
		},
		{
			name:     "transfer of entire balance",
			balances: map[string]string{"source": "4.536", "destination": "1"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "4.536"),
			},
			wantSrcBalance:  "0",
			wantDestBalance: "5.536",
		},
		{
			name:     "amount exceeding balance by a fraction",
			balances: map[string]string{"source": "4.536", "destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "4.5361"),
			},
			wantSrcBalance:  "4.536",
			wantDestBalance: "0",
			errorType:       domain.ErrInsufficientFunds,
		},
		{
			name:     "missing source account",
			balances: map[string]string{"destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "1"),
			},
			wantDestBalance: "0",
			errorType:       domain.ErrAccountNotFound,
		},
		{
			name:     "missing destination account",
			balances: map[string]string{"source": "10"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "1"),
			},
			wantSrcBalance: "10",
			errorType:      domain.ErrAccountNotFound,
		},
		{
			name:     "blank source id",
			balances: map[string]string{"destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "1"),
			},
			wantDestBalance: "0",
			errorType:       domain.ErrBlankAccountID,
		},
		{
			name:     "blank destination id",
			balances: map[string]string{"source": "10"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "   ",
				Amount:               mustDecimal(t, "1"),
			},
			wantSrcBalance: "10",
			errorType:      domain.ErrBlankAccountID,
		},
		{
			name:     "same account",
			balances: map[string]string{"source": "10"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "source",
				Amount:               mustDecimal(t, "1"),
			},
			wantSrcBalance: "10",
			errorType:      domain.ErrSameAccount,
		},
		{
			name:     "zero amount",
			balances: map[string]string{"source": "10", "destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               decimal.Zero,
			},
			wantSrcBalance:  "10",
			wantDestBalance: "0",
			errorType:       domain.ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			balances: map[string]string{"source": "10", "destination": "0"},
			input: usecase.TransferInput{
				SourceAccountID:      "source",
				DestinationAccountID: "destination",
				Amount:               mustDecimal(t, "-3"),
			},
			wantSrcBalance:  "10",
			wantDestBalance: "0",
			errorType:       domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, tt.balances)
			uc := usecase.NewTransferUseCase(store, nopNotifier{}, memory.NewTransferLog(), memory.NewULIDGenerator(), nil)

			result, err := uc.Transfer(context.Background(), tt.input)

			if tt.errorType != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}

				// Every failure comes back in the uniform transfer error shape.
				var te *domain.TransferError
				if !errors.As(err, &te) {
					t.Fatalf("expected *domain.TransferError, got %T", err)
				}

				if te.SourceID != tt.input.SourceAccountID || te.DestinationID != tt.input.DestinationAccountID {
					t.Errorf("transfer error carries wrong ids: %q -> %q", te.SourceID, te.DestinationID)
				}

				if !te.Amount.Equal(tt.input.Amount) {
					t.Errorf("transfer error carries wrong amount: %s", te.Amount)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if result.ID == "" {
					t.Error("expected result id to be set")
				}

				if !result.SourceBalance.Equal(mustDecimal(t, tt.wantSrcBalance)) {
					t.Errorf("expected result source balance %s, got %s", tt.wantSrcBalance, result.SourceBalance)
				}

				if !result.DestinationBalance.Equal(mustDecimal(t, tt.wantDestBalance)) {
					t.Errorf("expected result destination balance %s, got %s", tt.wantDestBalance, result.DestinationBalance)
				}
			}

			// Stored balances match expectations whether or not the
			// transfer succeeded.
			if tt.wantSrcBalance != "" {
				if got := balanceOf(t, store, "source"); !got.Equal(mustDecimal(t, tt.wantSrcBalance)) {
					t.Errorf("expected source balance %s, got %s", tt.wantSrcBalance, got)
				}
			}

			if tt.wantDestBalance != "" {
				if got := balanceOf(t, store, "destination"); !got.Equal(mustDecimal(t, tt.wantDestBalance)) {
					t.Errorf("expected destination balance %s, got %s", tt.wantDestBalance, got)
				}
			}
		})
	}
}

func TestTransferUseCase_NotifiesBothAccountHolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newStore(t, map[string]string{"alice": "100", "bob": "0"})

	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(),
		"Amount 25 was transferred from your account to account bob.")
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(),
		"Amount 25 was transferred from account alice to your account.")

	uc := usecase.NewTransferUseCase(store, notifier, nil, memory.NewULIDGenerator(), nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      "alice",
		DestinationAccountID: "bob",
		Amount:               decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransferUseCase_DoesNotNotifyOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newStore(t, map[string]string{"alice": "10", "bob": "0"})

	// No Notify expectations: any call fails the test.
	notifier := mocks.NewMockNotifier(ctrl)

	uc := usecase.NewTransferUseCase(store, notifier, nil, memory.NewULIDGenerator(), nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      "alice",
		DestinationAccountID: "bob",
		Amount:               decimal.NewFromInt(100),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
}

func TestTransferUseCase_RecordsSuccessfulTransfer(t *testing.T) {
	store := newStore(t, map[string]string{"alice": "100", "bob": "0"})
	transferLog := memory.NewTransferLog()

	uc := usecase.NewTransferUseCase(store, nopNotifier{}, transferLog, memory.NewULIDGenerator(), nil)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      "alice",
		DestinationAccountID: "bob",
		Amount:               decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorded, err := uc.ListTransfersByAccount(context.Background(), usecase.ListTransfersByAccountInput{AccountID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recorded) != 1 {
		t.Fatalf("expected 1 recorded transfer, got %d", len(recorded))
	}

	if recorded[0].ID != result.ID {
		t.Errorf("expected recorded transfer %s, got %s", result.ID, recorded[0].ID)
	}
}

func TestTransferUseCase_RecordFailureDoesNotFailTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newStore(t, map[string]string{"alice": "100", "bob": "0"})

	transferLog := mocks.NewMockTransferLog(ctrl)
	transferLog.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("log unavailable"))

	uc := usecase.NewTransferUseCase(store, nopNotifier{}, transferLog, memory.NewULIDGenerator(), nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      "alice",
		DestinationAccountID: "bob",
		Amount:               decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("expected transfer to succeed despite log failure, got %v", err)
	}

	if got := balanceOf(t, store, "bob"); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected bob balance 25, got %s", got)
	}
}

func TestTransferUseCase_ListClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferLog := mocks.NewMockTransferLog(ctrl)
	transferLog.EXPECT().ListByAccount(gomock.Any(), "alice", 20, 0).Return(nil, nil)
	transferLog.EXPECT().ListByAccount(gomock.Any(), "alice", 100, 5).Return(nil, nil)

	uc := usecase.NewTransferUseCase(nil, nopNotifier{}, transferLog, memory.NewULIDGenerator(), nil)

	if _, err := uc.ListTransfersByAccount(context.Background(), usecase.ListTransfersByAccountInput{AccountID: "alice"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.ListTransfersByAccount(context.Background(), usecase.ListTransfersByAccountInput{AccountID: "alice", Limit: 500, Offset: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
