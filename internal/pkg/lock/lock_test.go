package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLock_MutualExclusion(t *testing.T) {
	ul := NewUserLock()
	const userID = int64(1)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ul.Lock(userID)
			counter++
			ul.Unlock(userID)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestUserLock_TryLock(t *testing.T) {
	ul := NewUserLock()
	const userID = int64(1)

	require.True(t, ul.TryLock(userID))
	assert.False(t, ul.TryLock(userID), "held lock must not be re-acquired")
	ul.Unlock(userID)
	assert.True(t, ul.TryLock(userID))
	ul.Unlock(userID)
}

func TestUserLock_DifferentUsersIndependent(t *testing.T) {
	ul := NewUserLock()

	ul.Lock(1)
	defer ul.Unlock(1)

	assert.True(t, ul.TryLock(2), "another user's lock must be free")
	ul.Unlock(2)
}

func TestUserLock_WithLock(t *testing.T) {
	ul := NewUserLock()
	const userID = int64(1)

	called := false
	err := ul.WithLock(userID, func() error {
		called = true
		assert.False(t, ul.TryLock(userID), "lock must be held inside fn")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, ul.TryLock(userID), "lock must be released after fn")
	ul.Unlock(userID)
}
