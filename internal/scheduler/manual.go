package scheduler

import "time"

type manualTask struct {
	at time.Duration
	fn func()
}

// Manual is a Scheduler on a virtual clock. Tasks run only inside Advance,
// on the caller's goroutine.
type Manual struct {
	now   time.Duration
	next  Handle
	tasks map[Handle]manualTask
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{tasks: make(map[Handle]manualTask)}
}

func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	m.next++
	m.tasks[m.next] = manualTask{at: m.now + delay, fn: fn}
	return m.next
}

func (m *Manual) Cancel(h Handle) {
	delete(m.tasks, h)
}

// Advance moves the clock forward by d and runs every task that falls due,
// earliest first. Tasks scheduled by a running task are eligible too.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		h, task, ok := m.earliest()
		if !ok || task.at > target {
			break
		}
		delete(m.tasks, h)
		m.now = task.at
		task.fn()
	}
	m.now = target
}

// Now returns the virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled tasks.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

func (m *Manual) earliest() (Handle, manualTask, bool) {
	var (
		best  Handle
		bestT manualTask
		found bool
	)
	for h, t := range m.tasks {
		if !found || t.at < bestT.at || (t.at == bestT.at && h < best) {
			best, bestT, found = h, t, true
		}
	}
	return best, bestT, found
}
