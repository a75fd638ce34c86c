package eventx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"

	"github.com/Abraxas-365/pesantren-notify/errx"
)

var ErrorRegistry = errx.NewRegistry("EVENT")

var (
	ErrInvalidEventType = ErrorRegistry.Register("INVALID_TYPE", errx.TypeInternal, http.StatusInternalServerError, "event payload has unexpected type")
	ErrHandlerFailed    = ErrorRegistry.Register("HANDLER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "event handler failed")
)

// EventHandler is a function that processes events
type EventHandler func(ctx context.Context, e Event) error

// TypedEventHandler provides type-safe event handling
type TypedEventHandler[T any] func(ctx context.Context, e TypedEvent[T]) error

// Publisher is the side of the bus producers depend on
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventBus defines the interface for event bus implementations
type EventBus interface {
	Publisher

	// Subscribe registers an event handler for a specific event type
	Subscribe(eventType string, handler EventHandler)

	// HandlerCount returns the number of handlers for an event type
	HandlerCount(eventType string) int
}

// MemoryBus delivers events synchronously to in-process handlers in
// subscription order. Every handler runs even if an earlier one fails.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

// NewMemoryBus creates an empty in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]EventHandler)}
}

func (b *MemoryBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func (b *MemoryBus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish runs the handlers for event.Type(). Handler errors and panics are
// collected into a single HANDLER_FAILED error.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := safeCall(ctx, h, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return ErrorRegistry.NewWithCause(ErrHandlerFailed, errors.Join(errs...)).
		WithDetail("event_type", event.Type()).
		WithDetail("event_id", event.ID()).
		WithDetail("failed_handlers", len(errs))
}

func safeCall(ctx context.Context, h EventHandler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, e)
}

// SubscribeTyped registers a typed event handler
func SubscribeTyped[T any](bus EventBus, eventType string, handler TypedEventHandler[T]) {
	bus.Subscribe(eventType, func(ctx context.Context, e Event) error {
		if typedEvent, ok := e.(TypedEvent[T]); ok {
			return handler(ctx, typedEvent)
		}
		return ErrorRegistry.New(ErrInvalidEventType).
			WithDetail("expected_type", reflect.TypeOf((*T)(nil)).Elem().String()).
			WithDetail("actual_type", fmt.Sprintf("%T", e.Payload()))
	})
}
