// Package loop carries callbacks from background goroutines onto the single
// goroutine that owns application state.
package loop

import "sync"

// Queue is a channel of callbacks. Producers Post, the owning goroutine
// receives from Next and runs each function.
type Queue struct {
	ch        chan func()
	closed    chan struct{}
	closeOnce sync.Once
}

func NewQueue(size int) *Queue {
	return &Queue{
		ch:     make(chan func(), size),
		closed: make(chan struct{}),
	}
}

// Post blocks until fn is accepted, cancel is closed, or the queue is closed.
// It reports whether fn was enqueued. A nil cancel never fires.
func (q *Queue) Post(fn func(), cancel <-chan struct{}) bool {
	select {
	case <-q.closed:
		return false
	case <-cancel:
		return false
	default:
	}

	select {
	case q.ch <- fn:
		return true
	case <-cancel:
		return false
	case <-q.closed:
		return false
	}
}

// Next is the receive side for the owning goroutine
func (q *Queue) Next() <-chan func() {
	return q.ch
}

// Done is closed once Close has been called
func (q *Queue) Done() <-chan struct{} {
	return q.closed
}

// Close releases blocked producers. Pending callbacks are left unread.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.closed) })
}

// Drain runs every callback currently buffered without blocking and reports how many ran
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}
