package local

import (
	"context"
	"sync"
)

// LocalMessage is a message delivered through the in-process pub/sub.
type LocalMessage struct {
	Channel string
	Payload string
}

// LocalPubSub fans published messages out to every subscriber of a
// channel. Delivery is best-effort: a subscriber whose buffer is full
// misses the message rather than blocking the publisher, so the event
// feed can never stall a mutation.
type LocalPubSub struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscription
	bufSize     int
}

type subscription struct {
	ch chan *LocalMessage
}

// NewPubSub creates a LocalPubSub whose subscribers each get a buffered
// channel of the given size.
func NewPubSub(bufSize int) *LocalPubSub {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &LocalPubSub{
		subscribers: make(map[string][]*subscription),
		bufSize:     bufSize,
	}
}

// Publish delivers the message to every current subscriber of channel.
func (ps *LocalPubSub) Publish(_ context.Context, channel, message string) error {
	ps.mu.RLock()
	subs := ps.subscribers[channel]
	ps.mu.RUnlock()

	msg := &LocalMessage{Channel: channel, Payload: message}
	for _, sub := range subs {
		select {
		case sub.ch <- msg:
		default:
			// Slow subscriber, skip.
		}
	}
	return nil
}

// Subscribe registers for the given channels. The returned cancel removes
// the registrations and closes the message channel.
func (ps *LocalPubSub) Subscribe(_ context.Context, channels ...string) (<-chan *LocalMessage, func(), error) {
	ch := make(chan *LocalMessage, ps.bufSize)
	subs := make([]*subscription, len(channels))

	ps.mu.Lock()
	for i, name := range channels {
		subs[i] = &subscription{ch: ch}
		ps.subscribers[name] = append(ps.subscribers[name], subs[i])
	}
	ps.mu.Unlock()

	cancel := func() {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		for i, name := range channels {
			registered := ps.subscribers[name]
			for j, sub := range registered {
				if sub == subs[i] {
					ps.subscribers[name] = append(registered[:j], registered[j+1:]...)
					break
				}
			}
		}
		close(ch)
	}

	return ch, cancel, nil
}
