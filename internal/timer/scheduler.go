package timer

import (
	"sync"
	"time"

	"github.com/julianstephens/pausa/internal/loop"
)

// Handle cancels a recurring task. Cancel is idempotent and synchronous:
// once it returns the task's function is never called again.
type Handle interface {
	Cancel()
}

// Scheduler runs fn every interval until the returned handle is cancelled
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// TickerScheduler drives tasks from a time.Ticker and delivers each tick
// through a loop.Queue so fn runs on the queue's owning goroutine.
type TickerScheduler struct {
	queue *loop.Queue
}

func NewTickerScheduler(queue *loop.Queue) *TickerScheduler {
	return &TickerScheduler{queue: queue}
}

func (s *TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go h.run(s.queue, fn)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(queue *loop.Queue, fn func()) {
	defer close(h.exited)
	for {
		select {
		case <-h.ticker.C:
			if !queue.Post(h.guard(fn), h.done) {
				return
			}
		case <-h.done:
			return
		case <-queue.Done():
			return
		}
	}
}

// guard drops a tick that was queued before Cancel but runs after it
func (h *tickerHandle) guard(fn func()) func() {
	return func() {
		select {
		case <-h.done:
		default:
			fn()
		}
	}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
		<-h.exited
	})
}
