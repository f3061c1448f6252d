// Package events carries collection change notifications between the store
// and its observers, with optional persistence to SQLite.
package events

import (
	"strings"
	"time"
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string  // "<topic>.<action>", e.g. "favorites.added"
	EntityType() string // "movie"
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

func (e *BaseEvent) base() *BaseEvent { return e }

// fillFrom copies envelope fields the payload left zero from the log row.
func (e *BaseEvent) fillFrom(raw RawEvent) {
	if e.Type == "" {
		e.Type = raw.EventType
	}
	if e.Entity == "" {
		e.Entity = raw.EntityType
	}
	if e.ID == 0 {
		e.ID = raw.EntityID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = raw.OccurredAt
	}
}

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}

// Topic returns the part of an event type before the first dot.
func Topic(eventType string) string {
	topic, _, _ := strings.Cut(eventType, ".")
	return topic
}
