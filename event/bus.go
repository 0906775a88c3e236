package event

import "sync"

// Observer receives domain events. Update runs on the publisher's
// goroutine, before the mutating call returns.
type Observer interface {
	Update(Event)
}

// Bus is a synchronous fan-out registry of observers. Each instance owns
// its own subscriber set; nothing here is global.
type Bus struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers o. Subscribing the same observer twice is a no-op.
func (b *Bus) Subscribe(o Observer) {
	if o == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.observers {
		if existing == o {
			return
		}
	}
	b.observers = append(b.observers, o)
}

// Unsubscribe removes o. Removing an unknown observer is a no-op; domain
// data is never touched.
func (b *Bus) Unsubscribe(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.observers {
		if existing == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Publish invokes Update(e) once on every observer registered at publish
// time, synchronously, in registration order. The registry is copied first
// so observers may subscribe or unsubscribe from inside Update.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.RUnlock()

	for _, o := range observers {
		o.Update(e)
	}
}
