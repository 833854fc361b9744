// Package dispatch provides the serial run loop that owns all SDK state.
//
// Surface notifications and web-auth completions can arrive on arbitrary
// goroutines; they are re-posted onto a single loop before any state is
// touched, mirroring a UI toolkit's main-thread affinity.
package dispatch

import "sync"

// Poster schedules work onto a serial execution context.
type Poster interface {
	Post(fn func())
}

// Loop executes posted functions one at a time, in order, on a dedicated
// goroutine. Stop is idempotent; posts after Stop are dropped.
type Loop struct {
	tasks    chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

var _ Poster = (*Loop)(nil)

// NewLoop starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			// Drain anything already queued before exiting.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post schedules fn on the loop. Dropped if the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.quit:
	case l.tasks <- fn:
	}
}

// Stop shuts the loop down after draining queued work. Safe to call from a
// posted task; it does not wait for the loop goroutine to exit.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.quit) })
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Immediate runs posted functions inline on the calling goroutine. Used in
// tests and by hosts that already serialize onto their own main thread.
type Immediate struct{}

var _ Poster = Immediate{}

func (Immediate) Post(fn func()) { fn() }
