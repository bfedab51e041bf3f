package match

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Cancel stops a repeating timer. Calling it more than once is harmless.
type Cancel func()

// Scheduler runs fn every interval until cancelled. Callbacks must run on the
// event loop so they never race with message handling.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Cancel
}

// LoopScheduler fires real tickers and hands each tick to the loop.
type LoopScheduler struct {
	loop *Loop
}

// NewLoopScheduler creates a scheduler that posts ticks onto loop.
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

func (s *LoopScheduler) Every(interval time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var stopped atomic.Bool
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-s.loop.Done():
				return
			case <-ticker.C:
				s.loop.Post(func() {
					// a tick already queued when cancel ran must not fire
					if !stopped.Load() {
						fn()
					}
				})
			}
		}
	}()

	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(stop)
		})
	}
}

// ManualScheduler is a virtual clock for tests. Timers fire only when Advance is called.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	id        int
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler creates a virtual clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Every(interval time.Duration, fn func()) Cancel {
	m.seq++
	t := &manualTimer{id: m.seq, interval: interval, next: m.now + interval, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward by d, firing due timers in time order.
// Timers scheduled or cancelled by a callback take effect immediately.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.interval
		t.fn()
	}
	m.now = target
	m.compact()
}

// Active reports how many timers are still running.
func (m *ManualScheduler) Active() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.cancelled && t.next <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
}
