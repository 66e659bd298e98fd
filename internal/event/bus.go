// Package event provides a small in-process publish/subscribe bus used to
// fan theme changes out to live consumers such as websocket clients.
package event

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is a message published on the bus.
type Event struct {
	Topic     string
	Source    string
	Timestamp time.Time
	Payload   any // type depends on Topic
}

// Handler receives events. Handlers run in the publisher's goroutine.
type Handler func(ctx context.Context, e Event)

// Publisher is the narrow interface producers depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Compile-time interface guard.
var _ Publisher = (*Bus)(nil)

// Bus is a synchronous in-memory event bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	all      []subscription
	nextID   uint64
	logger   *zap.Logger
}

type subscription struct {
	id uint64
	fn Handler
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]subscription),
		logger:   logger,
	}
}

// Publish delivers e to topic subscribers and then to catch-all subscribers.
// A panicking handler is logged and does not stop delivery to the others.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.RLock()
	subs := make([]subscription, 0, len(b.handlers[e.Topic])+len(b.all))
	subs = append(subs, b.handlers[e.Topic]...)
	subs = append(subs, b.all...)
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(ctx, s.fn, e)
	}
}

// Subscribe registers fn for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[topic] = without(b.handlers[topic], id)
	}
}

// SubscribeAll registers fn for every topic.
func (b *Bus) SubscribeAll(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.all = append(b.all, subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = without(b.all, id)
	}
}

func without(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

func (b *Bus) deliver(ctx context.Context, fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("topic", e.Topic),
				zap.String("source", e.Source),
				zap.Any("panic", r),
			)
		}
	}()
	fn(ctx, e)
}
