package stream_test

import (
	"testing"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEveryConnection(t *testing.T) {
	hub := stream.NewHub()
	first := hub.Subscribe(7)
	second := hub.Subscribe(7)
	other := hub.Subscribe(8)

	hub.Publish(7, models.DepositEvent{Amount: decimal.NewFromInt(5)})

	for _, sub := range []*stream.Subscriber{first, second} {
		select {
		case event := <-sub.C:
			assert.Equal(t, "deposit", event.EventType())
		default:
			t.Fatal("subscriber missed event")
		}
	}
	select {
	case <-other.C:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := stream.NewHub()
	sub := hub.Subscribe(7)

	hub.Unsubscribe(sub)

	_, ok := <-sub.C
	assert.False(t, ok, "channel must be closed")
	assert.False(t, hub.Connected(7))

	// double unsubscribe must not panic
	hub.Unsubscribe(sub)
}

func TestHub_Connected(t *testing.T) {
	hub := stream.NewHub()
	require.False(t, hub.Connected(7))

	sub := hub.Subscribe(7)
	assert.True(t, hub.Connected(7))

	hub.Unsubscribe(sub)
	assert.False(t, hub.Connected(7))
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := stream.NewHub()
	sub := hub.Subscribe(7)

	// overflow the buffer; Publish must never block
	for i := 0; i < 40; i++ {
		hub.Publish(7, models.DepositEvent{Amount: decimal.NewFromInt(int64(i))})
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	assert.Greater(t, received, 0)
	assert.Less(t, received, 40)
}
