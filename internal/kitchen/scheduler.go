package kitchen

import "time"

// CancelFunc stops a scheduled task. Calling it more than once is harmless.
type CancelFunc func()

// Scheduler runs callbacks later on the caller's goroutine.
type Scheduler interface {
	// Every runs fn every interval until cancelled.
	Every(interval time.Duration, fn func()) CancelFunc
	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) CancelFunc
}

type task struct {
	seq       uint64
	due       time.Duration
	every     time.Duration // Zero for one-shot tasks
	fn        func()
	cancelled bool
}

// Clock is a frame-driven Scheduler. Nothing runs until Advance is called,
// so all callbacks execute on the goroutine that drives the clock (the UI
// update loop in the game, the test body in tests).
type Clock struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed clock time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Every implements Scheduler. Non-positive intervals schedule nothing.
func (c *Clock) Every(interval time.Duration, fn func()) CancelFunc {
	if interval <= 0 || fn == nil {
		return func() {}
	}
	return c.add(interval, interval, fn)
}

// After implements Scheduler. A non-positive delay fires on the next Advance.
func (c *Clock) After(delay time.Duration, fn func()) CancelFunc {
	if fn == nil {
		return func() {}
	}
	return c.add(max(delay, 0), 0, fn)
}

func (c *Clock) add(delay, every time.Duration, fn func()) CancelFunc {
	c.seq++
	t := &task{seq: c.seq, due: c.now + delay, every: every, fn: fn}
	c.tasks = append(c.tasks, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward by dt and runs every task that falls due,
// in due order. Periodic tasks fire once per elapsed interval. A task
// cancelled by an earlier callback in the same Advance does not run.
func (c *Clock) Advance(dt time.Duration) {
	target := c.now + max(dt, 0)
	for {
		t := c.next(target)
		if t == nil {
			break
		}
		c.now = t.due
		if t.every > 0 {
			t.due += t.every
		} else {
			t.cancelled = true
		}
		t.fn()
	}
	c.now = target
	c.compact()
}

// Pending returns the number of live tasks.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (c *Clock) next(target time.Duration) *task {
	var best *task
	for _, t := range c.tasks {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) compact() {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = live
}
