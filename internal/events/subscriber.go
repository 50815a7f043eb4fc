package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Subscriber forwards wallet events from redis to connected push clients.
type Subscriber struct {
	rdb *redis.Client
	hub *stream.Hub
}

func NewSubscriber(rdb *redis.Client, hub *stream.Hub) *Subscriber {
	return &Subscriber{rdb: rdb, hub: hub}
}

// Run blocks until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.rdb.Subscribe(ctx, WalletEventsChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", WalletEventsChannel, err)
	}
	logger.Log.Info("subscribed to event channel",
		zap.String("channel", WalletEventsChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.dispatch(msg.Payload)
		}
	}
}

func (s *Subscriber) dispatch(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		logger.Log.Warn("malformed event envelope", zap.Error(err))
		return
	}
	event, err := models.DecodeEvent(env.Payload)
	if err != nil {
		logger.Log.Warn("malformed event payload", zap.Error(err))
		return
	}
	s.hub.Publish(env.UserID, event)
}
