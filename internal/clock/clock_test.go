package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFake_AfterFiresOnce(t *testing.T) {
	f := NewFake()
	calls := 0
	f.After(time.Second, func() { calls++ })

	f.Advance(999 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("Expected no call before deadline, got %d", calls)
	}
	f.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("Expected 1 call at deadline, got %d", calls)
	}
	f.Advance(10 * time.Second)
	if calls != 1 {
		t.Errorf("One-shot timer fired again: %d calls", calls)
	}
	if f.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", f.Pending())
	}
}

func TestFake_EveryRepeats(t *testing.T) {
	f := NewFake()
	calls := 0
	tm := f.Every(time.Second, func() { calls++ })

	f.Advance(5 * time.Second)
	if calls != 5 {
		t.Errorf("Expected 5 ticks, got %d", calls)
	}

	if !tm.Stop() {
		t.Error("First Stop should report true")
	}
	if tm.Stop() {
		t.Error("Second Stop should report false")
	}
	f.Advance(5 * time.Second)
	if calls != 5 {
		t.Errorf("Stopped ticker kept firing: %d", calls)
	}
}

func TestFake_StopBeforeDeadline(t *testing.T) {
	f := NewFake()
	fired := false
	tm := f.After(time.Second, func() { fired = true })
	tm.Stop()
	f.Advance(2 * time.Second)
	if fired {
		t.Error("Stopped timer fired")
	}
}

func TestFake_OrderingAndReentrancy(t *testing.T) {
	f := NewFake()
	var order []string
	var tick Timer
	tick = f.Every(time.Second, func() {
		order = append(order, "tick")
		if len(order) >= 3 {
			tick.Stop()
		}
	})
	f.After(1500*time.Millisecond, func() {
		order = append(order, "after")
		f.After(100*time.Millisecond, func() { order = append(order, "nested") })
	})

	f.Advance(10 * time.Second)

	want := []string{"tick", "after", "nested", "tick"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: expected %s, got %s", i, want[i], order[i])
		}
	}
	if f.Elapsed() != 10*time.Second {
		t.Errorf("Expected 10s elapsed, got %s", f.Elapsed())
	}
}

func TestReal_AfterAndStop(t *testing.T) {
	r := NewReal()
	var fired atomic.Int32
	done := make(chan struct{})
	r.After(10*time.Millisecond, func() {
		fired.Add(1)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Real.After never fired")
	}

	stopped := r.After(time.Hour, func() { fired.Add(1) })
	if !stopped.Stop() {
		t.Error("Expected Stop to cancel pending timer")
	}
	if fired.Load() != 1 {
		t.Errorf("Expected exactly 1 call, got %d", fired.Load())
	}
}

func TestReal_Every(t *testing.T) {
	r := NewReal()
	var ticks atomic.Int32
	tm := r.Every(5*time.Millisecond, func() { ticks.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	tm.Stop()
	if ticks.Load() < 3 {
		t.Fatalf("Expected at least 3 ticks, got %d", ticks.Load())
	}
}
