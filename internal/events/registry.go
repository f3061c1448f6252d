package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownEventType is returned by Unmarshal for an unregistered type.
var ErrUnknownEventType = errors.New("unknown event type")

// EventFactory returns a fresh pointer for one event type to decode into.
type EventFactory func() Event

// Registry turns logged RawEvents back into typed events.
type Registry struct {
	factories map[string]EventFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]EventFactory),
	}
}

// Register binds eventType to factory. Registering a type twice is a
// programming error and panics.
func (r *Registry) Register(eventType string, factory EventFactory) {
	if _, dup := r.factories[eventType]; dup {
		panic("events: duplicate registration for " + eventType)
	}
	r.factories[eventType] = factory
}

// Types returns the registered event types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Unmarshal decodes raw into its registered type. Envelope fields the
// payload omits are filled from the log row, so older rows still report
// their type, entity and time.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, raw.EventType)
	}

	event := factory()
	if err := json.Unmarshal([]byte(raw.Payload), event); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}
	if b, ok := event.(interface{ base() *BaseEvent }); ok {
		b.base().fillFrom(raw)
	}
	return event, nil
}

// Decode unmarshals raw and asserts it to T.
func Decode[T Event](r *Registry, raw RawEvent) (T, error) {
	var zero T
	ev, err := r.Unmarshal(raw)
	if err != nil {
		return zero, err
	}
	typed, ok := ev.(T)
	if !ok {
		return zero, fmt.Errorf("event %d is %T, not %T", raw.ID, ev, zero)
	}
	return typed, nil
}

// DefaultRegistry knows every collection event type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []string{EventFavoriteAdded, EventFavoriteRemoved, EventWatchlistAdded, EventWatchlistRemoved} {
		r.Register(t, func() Event { return &CollectionChanged{} })
	}
	return r
}
