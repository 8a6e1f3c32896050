// Package timer implements a single-slot countdown that reports one event
// per elapsed second.
package timer

import (
	"fmt"
	"time"

	"github.com/julianstephens/pausa/internal/logger"
)

type EventKind int

const (
	Started EventKind = iota
	Tick
	Expired
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Tick:
		return "tick"
	case Expired:
		return "expired"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

type Event struct {
	Kind      EventKind
	Total     int
	Remaining int
	Label     string
}

// Session is a snapshot of the countdown. 0 <= RemainingSeconds <= TotalSeconds.
type Session struct {
	TotalSeconds     int
	RemainingSeconds int
	Label            string
	Running          bool
}

type Listener func(Event)

// Service is not safe for concurrent use. With a TickerScheduler all calls
// must happen on the goroutine that drains the scheduler's queue.
type Service struct {
	scheduler Scheduler
	interval  time.Duration
	listener  Listener

	session    Session
	handle     Handle
	generation uint64
}

func NewService(scheduler Scheduler) *Service {
	return &Service{
		scheduler: scheduler,
		interval:  time.Second,
	}
}

// SetListener replaces the event listener. A nil listener drops events.
func (s *Service) SetListener(l Listener) {
	s.listener = l
}

// Start replaces any active session and emits Started synchronously
func (s *Service) Start(totalSeconds int, label string) error {
	if totalSeconds <= 0 {
		return fmt.Errorf("invalid timer duration %d: must be positive", totalSeconds)
	}

	s.Stop()
	s.generation++
	gen := s.generation
	s.session = Session{
		TotalSeconds:     totalSeconds,
		RemainingSeconds: totalSeconds,
		Label:            label,
		Running:          true,
	}
	s.handle = s.scheduler.Every(s.interval, func() { s.tick(gen) })

	logger.Debug("timer started", "seconds", totalSeconds, "generation", gen)
	s.emit(Started)
	return nil
}

// Stop cancels the active session, if any. It is idempotent and emits nothing.
func (s *Service) Stop() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	if s.session.Running {
		logger.Debug("timer stopped", "remaining", s.session.RemainingSeconds, "generation", s.generation)
	}
	s.session.Running = false
	s.generation++
}

// Session returns a copy of the current session
func (s *Service) Session() Session {
	return s.session
}

func (s *Service) Running() bool {
	return s.session.Running
}

func (s *Service) tick(gen uint64) {
	if gen != s.generation || !s.session.Running {
		logger.Debug("stale timer tick dropped", "generation", gen, "current", s.generation)
		return
	}

	s.session.RemainingSeconds--
	if s.session.RemainingSeconds > 0 {
		s.emit(Tick)
		return
	}

	s.session.RemainingSeconds = 0
	s.Stop()
	s.emit(Expired)
}

func (s *Service) emit(kind EventKind) {
	if s.listener == nil {
		return
	}
	s.listener(Event{
		Kind:      kind,
		Total:     s.session.TotalSeconds,
		Remaining: s.session.RemainingSeconds,
		Label:     s.session.Label,
	})
}
