package events

import (
	"context"
	"log/slog"
	"sync"
)

type subscription struct {
	topic string // "" matches every event
	ch    chan Event
}

func (s subscription) matches(e Event) bool {
	if s.topic == "" {
		return true
	}
	return s.topic == e.EventType() || s.topic == Topic(e.EventType())
}

// Bus is an in-process pub/sub hub.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // SQLite persistence (may be nil)
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		log:    log,
		logger: logger,
	}
}

// Publish persists e (when an EventLog is set) and delivers it to every
// matching subscriber without blocking. Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	var targets []chan Event
	for _, s := range b.subs {
		if s.matches(e) {
			targets = append(targets, s.ch)
		}
	}

	// Deliver under the read lock so Close cannot close a channel mid-send.
	defer b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
			// delivery continues without the log
		}
	}

	for _, ch := range targets {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}

	return nil
}

// Subscribe returns a channel receiving events whose type equals topic or
// whose topic prefix equals topic ("favorites" matches "favorites.added").
func (b *Bus) Subscribe(topic string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, subscription{topic: topic, ch: ch})
	return ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.Subscribe("", bufferSize)
}

// Unsubscribe removes a subscription channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil

	return nil
}
