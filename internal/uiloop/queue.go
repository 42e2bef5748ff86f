// Package uiloop marshals work from background goroutines onto the UI
// goroutine.
//
// The UI toolkit owns one goroutine. Workers call Post from anywhere; the
// queue then asks the toolkit (through the wake function) to run Drain on its
// own goroutine, where queued messages run in the order they were posted.
package uiloop

import "sync"

// Poster is the worker-facing side of a Queue.
type Poster interface {
	Post(fn func())
}

// Queue is a FIFO of UI messages with a single consumer.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    func(drain func())
}

// New returns a queue. wake is called after every Post with the drain
// function and must arrange for it to run on the UI goroutine, e.g.
// fyne.Do. A nil wake means the owner drains on its own schedule.
func New(wake func(drain func())) *Queue {
	return &Queue{wake: wake}
}

// Post appends fn. It never blocks on the UI and never runs fn itself.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	if q.wake != nil {
		q.wake(q.drainAll)
	}
}

// Drain runs every message queued before the call, oldest first, and returns
// how many ran. It must only be called on the UI goroutine. Messages posted
// while draining are left for the next drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (q *Queue) drainAll() {
	q.Drain()
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
