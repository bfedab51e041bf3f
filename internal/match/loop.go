package match

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrLoopStopped is returned when work is posted after the loop exits.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop serialises all room mutations on one goroutine. Handlers, timers and
// HTTP reads post closures into its inbox.
type Loop struct {
	inbox chan func()
	done  chan struct{}
}

// NewLoop creates a loop with the given inbox capacity. Call Run to start it.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 256
	}
	return &Loop{
		inbox: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run processes posted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.inbox:
			fn()
		}
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Post queues fn. It blocks while the inbox is full and returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.inbox <- fn:
		return true
	case <-l.done:
		return false
	}
}

const (
	jobPending int32 = iota
	jobRunning
	jobAbandoned
)

// Do runs fn on the loop and waits for it to finish. If ctx ends before fn
// starts, fn is dropped; once fn has started, Do waits for it. fn therefore
// never runs after Do returns.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		if !state.CompareAndSwap(jobPending, jobRunning) {
			return
		}
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(jobPending, jobAbandoned) {
			return ctx.Err()
		}
		<-finished
		return nil
	case <-l.done:
		if state.CompareAndSwap(jobPending, jobAbandoned) {
			return ErrLoopStopped
		}
		<-finished
		return nil
	}
}
