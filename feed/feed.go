// Package feed bridges the in-process notification bus onto the pub/sub
// layer so HTTP clients can stream events over SSE.
package feed

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"socialnet/cache"
	"socialnet/event"
)

// Channel is the pub/sub channel events are bridged onto.
const Channel = "feed"

// envelope is the wire format published to the feed channel.
type envelope struct {
	Event   string      `json:"event"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

// Bridge forwards every bus event to a pub/sub channel.
type Bridge struct {
	ps     cache.PubSub
	logger *zap.Logger
}

func NewBridge(ps cache.PubSub, logger *zap.Logger) *Bridge {
	return &Bridge{ps: ps, logger: logger}
}

// Update implements event.Observer.
func (b *Bridge) Update(e event.Event) {
	data, err := json.Marshal(envelope{
		Event:   e.Name(),
		At:      time.Now(),
		Payload: e,
	})
	if err != nil {
		b.logger.Warn("feed event not serializable",
			zap.String("event", e.Name()), zap.Error(err))
		return
	}
	if err := b.ps.Publish(context.Background(), Channel, string(data)); err != nil {
		b.logger.Warn("feed publish failed",
			zap.String("event", e.Name()), zap.Error(err))
	}
}
