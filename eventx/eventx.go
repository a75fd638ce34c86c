package eventx

import (
	"time"

	"github.com/google/uuid"
)

// Event is the base interface for all events
type Event interface {
	ID() string
	Type() string
	Timestamp() time.Time
	Source() string
	Payload() any
}

// TypedEvent provides type-safe access to event data
type TypedEvent[T any] interface {
	Event
	Data() T
}

// BaseEvent implements the Event interface with generic data support
type BaseEvent[T any] struct {
	id        string
	eventType string
	timestamp time.Time
	source    string
	data      T
}

// NewEvent creates a new typed event stamped with a fresh UUID
func NewEvent[T any](eventType, source string, data T) TypedEvent[T] {
	return &BaseEvent[T]{
		id:        uuid.New().String(),
		eventType: eventType,
		timestamp: time.Now(),
		source:    source,
		data:      data,
	}
}

func (e *BaseEvent[T]) ID() string           { return e.id }
func (e *BaseEvent[T]) Type() string         { return e.eventType }
func (e *BaseEvent[T]) Timestamp() time.Time { return e.timestamp }
func (e *BaseEvent[T]) Source() string       { return e.source }
func (e *BaseEvent[T]) Payload() any         { return e.data }
func (e *BaseEvent[T]) Data() T              { return e.data }
