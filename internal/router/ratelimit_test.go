package router

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowLimiter_Reserve(t *testing.T) {
	l := newWindowLimiter(3)

	assert.True(t, l.reserve())
	assert.True(t, l.reserve())
	assert.True(t, l.reserve())
	assert.False(t, l.reserve(), "fourth reserve within the window must fail")
	assert.Equal(t, 3, l.count())
}

func TestWindowLimiter_SlidingWindow(t *testing.T) {
	now := time.Now()
	l := newWindowLimiter(2)
	l.nowFunc = func() time.Time { return now }

	assert.True(t, l.reserve())
	assert.True(t, l.reserve())
	assert.False(t, l.reserve())

	// 61 seconds later both stamps have aged out.
	now = now.Add(61 * time.Second)
	assert.Equal(t, 0, l.count())
	assert.True(t, l.reserve())
}

func TestWindowLimiter_PartialExpiry(t *testing.T) {
	now := time.Now()
	l := newWindowLimiter(2)
	l.nowFunc = func() time.Time { return now }

	assert.True(t, l.reserve())
	now = now.Add(30 * time.Second)
	assert.True(t, l.reserve())
	assert.False(t, l.reserve())

	// First stamp expires, second is still live.
	now = now.Add(31 * time.Second)
	assert.Equal(t, 1, l.count())
	assert.True(t, l.reserve())
	assert.False(t, l.reserve())
}

func TestWindowLimiter_UnlimitedWhenZero(t *testing.T) {
	l := newWindowLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.reserve())
	}
}

func TestWindowLimiter_ConcurrentReserve(t *testing.T) {
	const limit = 50
	l := newWindowLimiter(limit)

	var granted int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.reserve() {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// The check and the record are one critical section, so exactly the
	// ceiling is granted regardless of interleaving.
	assert.EqualValues(t, limit, granted)
	assert.Equal(t, limit, l.count())
}
