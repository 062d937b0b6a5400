package scheduler

import (
	"sync"
	"time"
)

// Fired tells the owning loop that a scheduled task is due.
type Fired struct {
	Handle Handle
}

type loopTask struct {
	timer *time.Timer
	fn    func()
}

// Loop delivers due tasks to an event loop instead of running them on the
// timer goroutine. post is called from the timer goroutine and must not
// block; the loop then calls Fire on its own goroutine.
type Loop struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]*loopTask
	post    func(Fired)
	closed  bool
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a Loop that announces due tasks through post.
func NewLoop(post func(Fired)) *Loop {
	return &Loop{
		pending: make(map[Handle]*loopTask),
		post:    post,
	}
}

// Schedule arranges for fn to run on the loop after delay.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := l.next
	if l.closed {
		return h
	}
	task := &loopTask{fn: fn}
	task.timer = time.AfterFunc(delay, func() {
		l.mu.Lock()
		_, ok := l.pending[h]
		closed := l.closed
		l.mu.Unlock()
		if ok && !closed {
			l.post(Fired{Handle: h})
		}
	})
	l.pending[h] = task
	return h
}

// Cancel forgets h. A Fired token already in flight for h is ignored by Fire.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if task, ok := l.pending[h]; ok {
		task.timer.Stop()
		delete(l.pending, h)
	}
}

// Fire runs the task named by f if it is still pending. It reports whether
// a task ran. Call it from the loop goroutine.
func (l *Loop) Fire(f Fired) bool {
	l.mu.Lock()
	task, ok := l.pending[f.Handle]
	delete(l.pending, f.Handle)
	l.mu.Unlock()

	if !ok {
		return false
	}
	task.fn()
	return true
}

// Pending returns the number of tasks that have not run or been cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Close cancels every pending task and rejects new ones.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	for h, task := range l.pending {
		task.timer.Stop()
		delete(l.pending, h)
	}
}
