// Package pubsub provides a generic publish/subscribe broker for dashboard
// refreshes. Subscribers always see the most recent events: when a
// subscriber falls behind, its oldest pending event is dropped.
package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 4

// EventType represents the type of event being published.
type EventType string

const (
	// RefreshedEvent carries a freshly built payload.
	RefreshedEvent EventType = "refreshed"

	// FailedEvent reports that building the payload failed; Err is set.
	FailedEvent EventType = "failed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Err       error
	Timestamp time.Time
}

// Broker fans events out to subscribers without ever blocking the publisher.
type Broker[T any] struct {
	mu         sync.Mutex
	subs       map[chan Event[T]]struct{}
	closed     bool
	bufferSize int
	now        func() time.Time
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker with a custom per-subscriber buffer.
// Sizes below 1 are raised to 1.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 1 {
		size = 1
	}
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		bufferSize: size,
		now:        time.Now,
	}
}

// Subscribe creates a subscription channel that is closed when ctx is
// cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], b.bufferSize)
	if b.closed {
		close(sub)
		return sub
	}
	b.subs[sub] = struct{}{}

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	})
	return sub
}

// Publish delivers a payload to every subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.send(Event[T]{Type: eventType, Payload: payload})
}

// PublishError delivers a FailedEvent carrying err.
func (b *Broker[T]) PublishError(err error) {
	b.send(Event[T]{Type: FailedEvent, Err: err})
}

func (b *Broker[T]) send(event Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	event.Timestamp = b.now()

	for sub := range b.subs {
		select {
		case sub <- event:
			continue
		default:
		}
		// Full: drop the oldest pending event to make room
		select {
		case <-sub:
		default:
		}
		select {
		case sub <- event:
		default:
		}
	}
}

// Close shuts down the broker and closes all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
