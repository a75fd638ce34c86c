package eventx

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct{ Name string }

func TestNewEvent(t *testing.T) {
	a := NewEvent("greeted", "test", greeting{Name: "Ahmad"})
	b := NewEvent("greeted", "test", greeting{Name: "Fatimah"})

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "greeted", a.Type())
	assert.Equal(t, "test", a.Source())
	assert.Equal(t, "Ahmad", a.Data().Name)
	assert.False(t, a.Timestamp().IsZero())
}

func TestMemoryBus_PublishInOrder(t *testing.T) {
	bus := NewMemoryBus()
	var seen []string

	SubscribeTyped(bus, "greeted", func(_ context.Context, e TypedEvent[greeting]) error {
		seen = append(seen, "first:"+e.Data().Name)
		return nil
	})
	bus.Subscribe("greeted", func(_ context.Context, e Event) error {
		seen = append(seen, "second")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewEvent("greeted", "test", greeting{Name: "Ali"})))
	assert.Equal(t, []string{"first:Ali", "second"}, seen)
	assert.Equal(t, 2, bus.HandlerCount("greeted"))
	assert.Equal(t, 0, bus.HandlerCount("other"))
}

func TestMemoryBus_NoHandlers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), NewEvent("nobody", "test", 1)))
}

func TestMemoryBus_FailuresDoNotStopOtherHandlers(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0

	bus.Subscribe("x", func(context.Context, Event) error { calls++; return errors.New("boom") })
	bus.Subscribe("x", func(context.Context, Event) error { calls++; panic("kaboom") })
	bus.Subscribe("x", func(context.Context, Event) error { calls++; return nil })

	err := bus.Publish(context.Background(), NewEvent("x", "test", 1))
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, errx.IsCode(err, ErrHandlerFailed))
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestSubscribeTyped_WrongPayload(t *testing.T) {
	bus := NewMemoryBus()
	SubscribeTyped(bus, "greeted", func(context.Context, TypedEvent[greeting]) error { return nil })

	err := bus.Publish(context.Background(), NewEvent("greeted", "test", "not a greeting"))
	assert.True(t, errx.IsCode(err, ErrHandlerFailed))
	assert.ErrorIs(t, err, ErrorRegistry.New(ErrInvalidEventType))
}
