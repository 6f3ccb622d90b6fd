package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"groundrelay/internal/queue"
)

func TestFIFOAndDrop(t *testing.T) {
	const capacity = 4
	q := queue.New(capacity)

	for i := 0; i < capacity; i++ {
		accepted := q.Offer([]byte{byte(i)})
		assert.True(t, accepted)
	}

	// spec.md §8 property 7: the (C+1)th offer must report drop.
	accepted := q.Offer([]byte{0xFF})
	assert.False(t, accepted)
	assert.Equal(t, capacity, q.Len())

	for i := 0; i < capacity; i++ {
		item, ok := q.Take(10 * time.Millisecond)
		assert.True(t, ok)
		assert.Equal(t, []byte{byte(i)}, item)
	}
}

func TestTake_TimesOutOnEmpty(t *testing.T) {
	q := queue.New(1)
	start := time.Now()
	_, ok := q.Take(20 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestOccupancyWithinBounds(t *testing.T) {
	q := queue.New(4)
	for i := 0; i < 10; i++ {
		q.Offer([]byte{byte(i)})
	}
	assert.GreaterOrEqual(t, q.Len(), 0)
	assert.LessOrEqual(t, q.Len(), q.Cap())
}
