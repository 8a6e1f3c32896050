package timer

import "time"

// ManualScheduler never fires on its own. Tests call Fire to simulate one
// interval elapsing for every active task.
type ManualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) Handle {
	task := &manualTask{interval: interval, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Fire runs each task that is active at the time of the call, once
func (s *ManualScheduler) Fire() {
	snapshot := s.active()
	for _, task := range snapshot {
		if !task.cancelled {
			task.fn()
		}
	}
}

// FireN calls Fire n times
func (s *ManualScheduler) FireN(n int) {
	for i := 0; i < n; i++ {
		s.Fire()
	}
}

// Active returns the number of tasks that have not been cancelled
func (s *ManualScheduler) Active() int {
	return len(s.active())
}

func (s *ManualScheduler) active() []*manualTask {
	live := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.cancelled {
			live = append(live, task)
		}
	}
	s.tasks = live
	return append([]*manualTask(nil), live...)
}
