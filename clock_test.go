package deepsea

import "testing"

func TestClockFiresInOrder(t *testing.T) {
	c := NewClock()
	var got []string
	c.After(0.5, func() { got = append(got, "b") })
	c.After(0.2, func() { got = append(got, "a") })
	c.After(0.5, func() { got = append(got, "c") })
	c.After(2, func() { got = append(got, "late") })

	c.Advance(0.1)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	c.Advance(0.5)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if c.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", c.Pending())
	}
}

func TestClockStopPreventsFire(t *testing.T) {
	c := NewClock()
	fired := false
	tm := c.After(1, func() { fired = true })
	if !tm.Stop() {
		t.Error("Stop on pending timer should return true")
	}
	if tm.Stop() {
		t.Error("second Stop should return false")
	}
	c.Advance(2)
	if fired {
		t.Error("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestClockStopAfterFire(t *testing.T) {
	c := NewClock()
	tm := c.After(0, func() {})
	c.Advance(0)
	if tm.Stop() {
		t.Error("Stop after fire should return false")
	}
	var nilTimer *Timer
	if nilTimer.Stop() {
		t.Error("Stop on nil timer should return false")
	}
}

func TestClockNestedScheduleDue(t *testing.T) {
	c := NewClock()
	var order []int
	c.After(0.1, func() {
		order = append(order, 1)
		c.After(0, func() { order = append(order, 2) })
		c.After(5, func() { order = append(order, 3) })
	})
	c.Advance(0.2)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestClockNegativeDelay(t *testing.T) {
	c := NewClock()
	c.Advance(1)
	tm := c.After(-4, func() {})
	if tm.At() != 1 {
		t.Errorf("At = %f, want 1", tm.At())
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock()
	fired := false
	c.After(0.1, func() { fired = true })
	c.Advance(0.05)
	c.Reset()
	c.Advance(1)
	if fired {
		t.Error("timer fired after Reset")
	}
	if !approxEqual(c.Now(), 1.05, 1e-12) {
		t.Errorf("Now = %f, want 1.05", c.Now())
	}
}

func TestClockIgnoresNegativeAdvance(t *testing.T) {
	c := NewClock()
	c.Advance(1)
	c.Advance(-1)
	if c.Now() != 1 {
		t.Errorf("Now = %f, want 1", c.Now())
	}
}
