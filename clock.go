package deepsea

import "container/heap"

// Timer is a single-shot callback registered on a Clock.
type Timer struct {
	at      float64
	seq     uint64
	fn      func()
	index   int // heap index, -1 once fired or stopped
	stopped bool
}

// At returns the clock time the timer fires at.
func (t *Timer) At() float64 {
	return t.at
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running; stopping a fired or already stopped timer returns false.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	return true
}

// timerQueue is a min-heap ordered by fire time, then registration order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Clock is the shared animation clock. Time only moves through Advance, and
// deferred callbacks run inside Advance on the caller's goroutine.
type Clock struct {
	now   float64
	seq   uint64
	queue timerQueue
}

// NewClock returns a clock at time zero with no pending timers.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current clock time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// After schedules fn to run once the clock has advanced by delay seconds.
// A non-positive delay fires on the next Advance.
func (c *Clock) After(delay float64, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	t := &Timer{at: c.now + delay, seq: c.seq, fn: fn}
	heap.Push(&c.queue, t)
	return t
}

// Advance moves the clock forward by dt and runs every due timer in
// (fire time, registration) order. Timers scheduled by a callback that are
// already due run in the same call.
func (c *Clock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
	for len(c.queue) > 0 && c.queue[0].at <= c.now {
		t := heap.Pop(&c.queue).(*Timer)
		if t.stopped {
			continue
		}
		t.stopped = true
		if t.fn != nil {
			t.fn()
		}
	}
}

// Pending returns the number of scheduled timers that have not been stopped.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.queue {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Reset discards every pending timer. The current time is kept.
func (c *Clock) Reset() {
	for _, t := range c.queue {
		t.stopped = true
		t.index = -1
	}
	clear(c.queue)
	c.queue = c.queue[:0]
}
