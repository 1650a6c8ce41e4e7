package core

import (
	"testing"
	"time"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestInterval(period time.Duration) (*Interval, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	iv := NewInterval(period)
	iv.now = clock.now
	iv.sleep = clock.sleep
	return iv, clock
}

func TestIntervalFirstTickImmediate(t *testing.T) {
	iv, clock := newTestInterval(100 * time.Millisecond)
	iv.Wait()
	if len(clock.slept) != 0 {
		t.Fatalf("first Wait slept %v", clock.slept)
	}
	iv.Wait()
	if len(clock.slept) != 1 || clock.slept[0] != 100*time.Millisecond {
		t.Fatalf("second Wait slept %v, want [100ms]", clock.slept)
	}
}

func TestIntervalAccountsForWork(t *testing.T) {
	iv, clock := newTestInterval(100 * time.Millisecond)
	iv.Wait()
	clock.t = clock.t.Add(30 * time.Millisecond)
	iv.Wait()
	if clock.slept[0] != 70*time.Millisecond {
		t.Fatalf("slept %v, want 70ms", clock.slept[0])
	}
}

func TestIntervalSkipsMissedTicks(t *testing.T) {
	iv, clock := newTestInterval(100 * time.Millisecond)
	iv.Wait()
	clock.t = clock.t.Add(350 * time.Millisecond)

	iv.Wait()
	if len(clock.slept) != 0 {
		t.Fatalf("late Wait should not sleep, slept %v", clock.slept)
	}
	iv.Wait()
	if len(clock.slept) != 1 || clock.slept[0] != 50*time.Millisecond {
		t.Fatalf("slept %v, want [50ms] to the next boundary", clock.slept)
	}
}

func TestIntervalUncapped(t *testing.T) {
	iv, clock := newTestInterval(0)
	for i := 0; i < 10; i++ {
		iv.Wait()
	}
	if len(clock.slept) != 0 {
		t.Fatalf("zero period slept %v", clock.slept)
	}
}

func TestIntervalSetPeriod(t *testing.T) {
	iv, clock := newTestInterval(time.Second)
	iv.Wait()
	iv.SetPeriod(10 * time.Millisecond)
	if iv.Period() != 10*time.Millisecond {
		t.Fatalf("period = %v", iv.Period())
	}
	iv.Reset()
	iv.Wait()
	iv.Wait()
	if len(clock.slept) != 1 || clock.slept[0] != 10*time.Millisecond {
		t.Fatalf("slept %v, want [10ms]", clock.slept)
	}
}
