// Package events moves wallet events between the service that produced
// them and the push channel of the affected user, with redis pub/sub as
// the transport so every API replica sees every event.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/redis/go-redis/v9"
)

const WalletEventsChannel = "wallet_events"

// envelope wraps the event payload with its addressee for transport.
type envelope struct {
	UserID  int             `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, UID int, event models.WalletEvent) error {
	payload, err := models.EncodeEvent(event)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{UserID: UID, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := p.rdb.Publish(ctx, WalletEventsChannel, data).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}
