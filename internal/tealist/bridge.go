package tealist

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/scheduler"
)

// firedQueue carries scheduler tokens from timer goroutines into the
// program, where Update hands them back to the loop.
type firedQueue struct {
	ch       chan scheduler.Fired
	done     chan struct{}
	stopOnce sync.Once
}

func newFiredQueue() *firedQueue {
	return &firedQueue{
		ch:   make(chan scheduler.Fired, 16),
		done: make(chan struct{}),
	}
}

func newLoop() (*scheduler.Loop, *firedQueue) {
	q := newFiredQueue()
	return scheduler.NewLoop(q.post), q
}

// post never blocks the timer goroutine. When the buffer is full the send
// moves to its own goroutine, which gives up once the queue is stopped.
func (q *firedQueue) post(f scheduler.Fired) {
	select {
	case q.ch <- f:
	default:
		go func() {
			select {
			case q.ch <- f:
			case <-q.done:
			}
		}()
	}
}

// wait returns a command that delivers the next fired token.
func (q *firedQueue) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-q.ch:
			return f
		case <-q.done:
			return nil
		}
	}
}

func (q *firedQueue) stop() {
	q.stopOnce.Do(func() { close(q.done) })
}

// configMsg carries a hot-reloaded configuration.
type configMsg config.Update

func waitConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return configMsg(u)
	}
}
