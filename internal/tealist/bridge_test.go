package tealist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wilbur182/vlist/internal/scheduler"
	"go.uber.org/goleak"
)

func TestFiredQueue_DeliversInOrder(t *testing.T) {
	q := newFiredQueue()
	defer q.stop()

	q.post(scheduler.Fired{Handle: 1})
	q.post(scheduler.Fired{Handle: 2})
	assert.Equal(t, scheduler.Fired{Handle: 1}, q.wait()())
	assert.Equal(t, scheduler.Fired{Handle: 2}, q.wait()())
}

func TestFiredQueue_StopReleasesOverflowSends(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	q := newFiredQueue()
	for i := 1; i <= cap(q.ch)+4; i++ {
		q.post(scheduler.Fired{Handle: scheduler.Handle(i)})
	}
	q.stop()
	q.stop()
}

func TestFiredQueue_WaitReturnsNilAfterStop(t *testing.T) {
	q := newFiredQueue()
	q.stop()
	assert.Nil(t, q.wait()())
}
