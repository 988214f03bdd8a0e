//go:build unit

package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (l *keyLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestKeyLocks(t *testing.T) {
	ctx := context.Background()

	t.Run("entry is dropped after release", func(t *testing.T) {
		l := newKeyLocks()
		require.NoError(t, l.acquire(ctx, "session:1"))
		assert.Equal(t, 1, l.size())

		l.release("session:1")
		assert.Equal(t, 0, l.size())
	})

	t.Run("entry survives while a waiter is queued", func(t *testing.T) {
		l := newKeyLocks()
		require.NoError(t, l.acquire(ctx, "booking:1"))

		acquired := make(chan struct{})
		go func() {
			if err := l.acquire(ctx, "booking:1"); err == nil {
				close(acquired)
			}
		}()
		require.Eventually(t, func() bool {
			l.mu.Lock()
			defer l.mu.Unlock()
			return l.locks["booking:1"].refs == 2
		}, time.Second, time.Millisecond)

		l.release("booking:1")
		<-acquired
		assert.Equal(t, 1, l.size())

		l.release("booking:1")
		assert.Equal(t, 0, l.size())
	})

	t.Run("cancelled waiter gives its reference back", func(t *testing.T) {
		l := newKeyLocks()
		require.NoError(t, l.acquire(ctx, "user:1"))

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, l.acquire(waitCtx, "user:1"), context.DeadlineExceeded)
		assert.Equal(t, 1, l.size())

		l.release("user:1")
		assert.Equal(t, 0, l.size())
	})
}

func TestUnitOfWorkLeavesNoLocksBehind(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UnitOfWork().Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				_, err := tx.Sessions().LockByID(ctx, uuid.New())
				return err
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.locks.size())
}
