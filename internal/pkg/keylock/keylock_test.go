//go:build unit

package keylock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"store-pickup/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex(t *testing.T) {
	t.Run("same key is serialized", func(t *testing.T) {
		m := keylock.New[string]()
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := m.Lock(context.Background(), "cart")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("different keys do not block", func(t *testing.T) {
		m := keylock.New[int]()
		unlockA, err := m.Lock(context.Background(), 1)
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		unlockB, err := m.Lock(ctx, 2)
		require.NoError(t, err)
		unlockB()
	})

	t.Run("waiting respects context", func(t *testing.T) {
		m := keylock.New[int]()
		unlock, err := m.Lock(context.Background(), 1)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err = m.Lock(ctx, 1)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()
		assert.Equal(t, 0, m.Len())
	})
}
