package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

// Frame is the wire format pushed to realtime clients.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Broadcaster turns domain events into wire frames. With Redis configured,
// frames travel through a pub/sub channel so every API instance's hub sees
// them; otherwise they go straight to the local hub. Either way the
// originating request is never blocked and delivery is at-most-once.
type Broadcaster struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

// NewBroadcaster builds a broadcaster. rdb may be nil for single-instance
// deployments; frames then bypass Redis entirely.
func NewBroadcaster(hub *Hub, rdb *redis.Client, channel string, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, rdb: rdb, channel: channel, logger: logger}
}

// RegisterHandlers subscribes to every ticket mutation event.
func (b *Broadcaster) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketCreated, b.handleEvent)
	dispatcher.Subscribe(events.EventTicketUpdated, b.handleEvent)
	dispatcher.Subscribe(events.EventTicketDeleted, b.handleEvent)
}

func (b *Broadcaster) handleEvent(ctx context.Context, event events.Event) error {
	frame, err := json.Marshal(Frame{Event: string(event.Type), Data: event.Payload})
	if err != nil {
		b.logger.Error("marshal realtime frame", zap.Error(err))
		return err
	}

	if b.rdb == nil {
		b.hub.Broadcast(frame)
		return nil
	}

	// Fire and forget: a failed publish means the event is simply not
	// delivered. The HTTP caller already has its authoritative response.
	go func() {
		if err := b.rdb.Publish(context.Background(), b.channel, frame).Err(); err != nil {
			b.logger.Warn("realtime publish failed", zap.Error(err))
		}
	}()
	return nil
}

// RunRelay subscribes to the Redis channel and feeds received frames to the
// local hub. Self-published frames arrive here too, which is how local
// clients are served. Returns when the context is cancelled.
func (b *Broadcaster) RunRelay(ctx context.Context) {
	if b.rdb == nil {
		return
	}
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.Broadcast([]byte(msg.Payload))
		}
	}
}
