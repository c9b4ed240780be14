package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
)

// LogNotifier writes notifications to the service log. It stands in for a
// real delivery channel (email, push) in development and tests.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(ctx context.Context, account *domain.Account, message string) {
	n.logger.Info().
		Str("account_id", account.ID()).
		Str("message", message).
		Msg("notifying account holder")
}
