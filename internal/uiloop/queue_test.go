package uiloop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainRunsInPostOrder(t *testing.T) {
	q := New(nil)
	var got []int

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			i := i
			q.Post(func() { got = append(got, i) })
		}
	}()
	<-done

	require.Equal(t, 500, q.Drain())
	for i, v := range got {
		require.Equal(t, i, v)
	}
	assert.Zero(t, q.Len())
}

func TestPerProducerOrderWithConcurrentPosters(t *testing.T) {
	q := New(nil)
	seen := map[int][]int{}

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				i := i
				q.Post(func() { seen[p] = append(seen[p], i) })
			}
		}(p)
	}
	wg.Wait()
	q.Drain()

	for p := 0; p < 4; p++ {
		require.Len(t, seen[p], 100)
		for i, v := range seen[p] {
			require.Equal(t, i, v)
		}
	}
}

func TestPostDuringDrainWaitsForNextDrain(t *testing.T) {
	q := New(nil)
	var order []string
	q.Post(func() {
		order = append(order, "first")
		q.Post(func() { order = append(order, "nested") })
	})

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"first"}, order)
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"first", "nested"}, order)
}

func TestWakeIsAskedToScheduleDrain(t *testing.T) {
	var scheduled []func() int
	q := New(func(drain func()) {
		scheduled = append(scheduled, func() int { drain(); return 0 })
	})
	ran := 0
	q.Post(func() { ran++ })
	q.Post(func() { ran++ })
	require.Len(t, scheduled, 2)
	assert.Zero(t, ran, "Post must not run the message itself")

	scheduled[0]()
	assert.Equal(t, 2, ran)
	scheduled[1]()
	assert.Equal(t, 2, ran)
}

func TestNilMessageIgnored(t *testing.T) {
	q := New(nil)
	q.Post(nil)
	assert.Zero(t, q.Len())
}

func TestWakeDrainsOnConsumerGoroutine(t *testing.T) {
	ui := make(chan func(), 8)
	q := New(func(drain func()) { ui <- drain })

	var got []string
	go func() {
		q.Post(func() { got = append(got, "a") })
		q.Post(func() { got = append(got, "b") })
	}()

	// Only the consumer runs messages; the first scheduled drain picks up
	// whatever is queued by then, later ones may find nothing.
	for len(got) < 2 {
		drain := <-ui
		drain()
	}
	assert.Equal(t, []string{"a", "b"}, got)
}
