package realtime

import (
	"testing"
	"time"
)

func TestTimeline_NextWake_Empty(t *testing.T) {
	var tl Timeline
	next, ok := tl.NextWake()
	if ok {
		t.Error("NextWake should return false when nothing is scheduled")
	}
	if !next.IsZero() {
		t.Error("next should be zero")
	}
}

func TestTimeline_FiresInTimeThenInsertionOrder(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	var got []string
	record := func(name string) Action {
		return func(time.Time) { got = append(got, name) }
	}
	tl.Schedule(now.Add(300*time.Millisecond), record("c"))
	tl.Schedule(now.Add(100*time.Millisecond), record("a"))
	tl.Schedule(now.Add(300*time.Millisecond), record("d"))
	tl.Schedule(now.Add(200*time.Millisecond), record("b"))

	next, ok := tl.NextWake()
	if !ok || !next.Equal(now.Add(100*time.Millisecond)) {
		t.Errorf("NextWake %v, want %v", next, now.Add(100*time.Millisecond))
	}

	if n := tl.Advance(now.Add(50 * time.Millisecond)); n != 0 {
		t.Errorf("fired %d before anything was due", n)
	}
	if n := tl.Advance(now.Add(300 * time.Millisecond)); n != 4 {
		t.Errorf("fired %d, want 4", n)
	}
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestTimeline_ActionReceivesNominalTime(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	var at time.Time
	tl.Schedule(now.Add(time.Second), func(fireAt time.Time) { at = fireAt })
	tl.Advance(now.Add(5 * time.Second))
	if !at.Equal(now.Add(time.Second)) {
		t.Errorf("action got %v, want nominal %v", at, now.Add(time.Second))
	}
}

func TestTimeline_ChainedEntriesFireInSameAdvance(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	count := 0
	tl.Schedule(now.Add(10*time.Millisecond), func(at time.Time) {
		count++
		tl.Schedule(at.Add(10*time.Millisecond), func(time.Time) { count++ })
	})
	if n := tl.Advance(now.Add(time.Second)); n != 2 {
		t.Errorf("fired %d, want 2", n)
	}
	if count != 2 {
		t.Errorf("count %d, want 2", count)
	}
}

func TestTimeline_CancelDropsPending(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	fired := false
	tl.Schedule(now.Add(time.Millisecond), func(time.Time) { fired = true })
	gen := tl.Generation()
	tl.Cancel()
	if tl.Generation() == gen {
		t.Error("Cancel should bump the generation")
	}
	if tl.Pending() != 0 {
		t.Errorf("Pending %d, want 0", tl.Pending())
	}
	tl.Advance(now.Add(time.Hour))
	if fired {
		t.Error("cancelled entry fired")
	}
}

func TestTimeline_CancelInsideActionStopsSweep(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	second := false
	tl.Schedule(now.Add(time.Millisecond), func(time.Time) { tl.Cancel() })
	tl.Schedule(now.Add(2*time.Millisecond), func(time.Time) { second = true })
	tl.Advance(now.Add(time.Second))
	if second {
		t.Error("entry scheduled before Cancel should not fire")
	}
}

func TestTimeline_Stop(t *testing.T) {
	now := time.Now().UTC()
	var tl Timeline
	fired := false
	tok := tl.Schedule(now, func(time.Time) { fired = true })
	if !tl.Stop(tok) {
		t.Error("Stop should report a pending entry")
	}
	if tl.Stop(tok) {
		t.Error("second Stop should report false")
	}
	tl.Advance(now)
	if fired {
		t.Error("stopped entry fired")
	}
}
