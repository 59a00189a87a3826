package feed

import (
	"context"
	"encoding/json"
	"laporantdx/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Source is where feed events are received from.
type Source interface {
	SubscribeToFeed(ctx context.Context) *redis.PubSub
}

// StartPubSubListener subscribes to the feed channel and forwards every event
// to the hub until ctx is done.
func (h *Hub) StartPubSubListener(ctx context.Context, src Source) {
	go func() {
		pubsub := src.SubscribeToFeed(ctx)
		defer pubsub.Close()
		h.Forward(ctx, pubsub.Channel())
	}()
}

// Forward decodes Redis messages into events for the hub.
func (h *Hub) Forward(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev models.FeedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("feed: undecodable message", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case h.EventsCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
