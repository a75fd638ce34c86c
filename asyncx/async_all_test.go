package asyncx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncAll_PreservesOrder(t *testing.T) {
	items := []int{3, 1, 2}
	out, err := AsyncAll(context.Background(), items, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 20}, out)
}

func TestAsyncAll_Error(t *testing.T) {
	_, err := AsyncAll(context.Background(), []int{1, 2}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("boom")
		}
		return n, nil
	})
	assert.EqualError(t, err, "boom")
}

func TestMapLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	out := MapLimit(context.Background(), items, 3, func(_ context.Context, n int) int {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return n * n
	})

	require.Len(t, out, 20)
	assert.Equal(t, 361, out[19])
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestMapLimit_Empty(t *testing.T) {
	assert.Empty(t, MapLimit(context.Background(), []string{}, 0, func(context.Context, string) int { return 1 }))
}
