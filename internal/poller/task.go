package poller

import (
	"sync"
	"time"
)

// Task is a cancellable recurring job. Ticks fire at fixed intervals from
// the moment the task was scheduled; a slow fn does not shift later ticks
// because fn is expected to hand work off rather than block.
type Task struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Every schedules fn to run every interval until the returned Task is
// cancelled. The first run happens one interval after scheduling.
func Every(interval time.Duration, fn func()) *Task {
	t := &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// Prefer stopping over a tick that raced with Cancel.
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

// Cancel stops the task and waits for its goroutine to exit. After Cancel
// returns fn is not invoked again. Cancel is idempotent and safe on nil.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
