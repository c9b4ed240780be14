package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// RedisNotifier publishes notifications to a Redis pub/sub channel so a
// separate delivery service can fan them out. Publish failures are logged
// and dropped: notification delivery never affects a transfer's outcome.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	idGen   usecase.IDGenerator
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(client *redis.Client, channel string, idGen usecase.IDGenerator) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		idGen:   idGen,
	}
}

// Notify publishes an AccountNotification event for the account.
func (n *RedisNotifier) Notify(ctx context.Context, account *domain.Account, message string) {
	event := domain.AccountNotification{
		EventID:    n.idGen.Generate(),
		EventType:  domain.EventTypeTransferNotification,
		AccountID:  account.ID(),
		Message:    message,
		Balance:    account.Balance().String(),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID()).Msg("failed to marshal notification")
		return
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		log.Error().
			Err(err).
			Str("account_id", account.ID()).
			Str("channel", n.channel).
			Msg("failed to publish notification")
	}
}
