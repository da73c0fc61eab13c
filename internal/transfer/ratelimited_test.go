package transfer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *recordingSender) Transfer(ctx context.Context, toAccount string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func TestRateLimitedDelegates(t *testing.T) {
	next := &recordingSender{}
	rl := NewRateLimited(next, 100, 10)

	for i := 0; i < 5; i++ {
		require.NoError(t, rl.Transfer(context.Background(), "bob", 100))
	}
	assert.Equal(t, 5, next.calls)
}

func TestRateLimitedPropagatesErrors(t *testing.T) {
	next := &recordingSender{err: errors.New("gateway down")}
	rl := NewRateLimited(next, 100, 10)

	err := rl.Transfer(context.Background(), "bob", 100)
	assert.ErrorContains(t, err, "gateway down")
}

func TestRateLimitedHonorsCancelledContext(t *testing.T) {
	next := &recordingSender{}
	// Zero tokens available: the wait must fail on the cancelled context
	// before the sender is ever reached.
	rl := NewRateLimited(next, 0.001, 1)
	require.NoError(t, rl.Transfer(context.Background(), "bob", 100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Transfer(ctx, "bob", 100)
	assert.Error(t, err)
	assert.Equal(t, 1, next.calls)
}
