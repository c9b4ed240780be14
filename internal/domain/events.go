package domain

import "time"

// Event types
const (
	EventTypeTransferNotification = "transfer.notification"
)

// AccountNotification is the payload delivered to account holders after a
// successful transfer. Balance is a string so the decimal value round-trips
// without precision loss.
type AccountNotification struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	AccountID  string    `json:"account_id"`
	Message    string    `json:"message"`
	Balance    string    `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}
