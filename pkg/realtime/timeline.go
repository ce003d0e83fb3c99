package realtime

import (
	"sort"
	"time"
)

// Action is the work attached to a scheduled entry. It receives the nominal
// fire time, not the wall-clock time at which Advance observed it.
type Action func(at time.Time)

// Token identifies one scheduled entry. A token from an earlier generation
// never matches a live entry.
type Token struct {
	gen uint64
	seq uint64
}

type entry struct {
	at     time.Time
	gen    uint64
	seq    uint64
	action Action
}

// Timeline is an ordered list of delayed actions. It holds no goroutines or
// timers; the owner asks NextWake when to come back and calls Advance with the
// current time. Entries fire in (time, scheduling order). Cancel drops every
// pending entry and bumps the generation, so nothing scheduled before the
// cancel can run afterwards.
type Timeline struct {
	gen     uint64
	seq     uint64
	entries []entry
}

// Schedule registers action to fire at at.
func (t *Timeline) Schedule(at time.Time, action Action) Token {
	t.seq++
	e := entry{at: at, gen: t.gen, seq: t.seq, action: action}
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].at.After(at)
	})
	t.entries = append(t.entries, entry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = e
	return Token{gen: e.gen, seq: e.seq}
}

// Stop removes a single pending entry. It reports whether the entry was still pending.
func (t *Timeline) Stop(tok Token) bool {
	for i, e := range t.entries {
		if e.gen == tok.gen && e.seq == tok.seq {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Cancel invalidates all pending entries.
func (t *Timeline) Cancel() {
	t.gen++
	t.entries = nil
}

// Generation returns the current cancellation generation.
func (t *Timeline) Generation() uint64 {
	return t.gen
}

// Pending returns the number of entries waiting to fire.
func (t *Timeline) Pending() int {
	return len(t.entries)
}

// NextWake returns the fire time of the earliest pending entry.
func (t *Timeline) NextWake() (time.Time, bool) {
	if len(t.entries) == 0 {
		return time.Time{}, false
	}
	return t.entries[0].at, true
}

// Advance fires every entry due at or before now, in order, and returns how
// many ran. Actions may schedule further entries; those fire in the same call
// when they are already due. An action that calls Cancel stops the sweep.
func (t *Timeline) Advance(now time.Time) int {
	fired := 0
	for len(t.entries) > 0 {
		e := t.entries[0]
		if e.at.After(now) {
			break
		}
		t.entries = t.entries[1:]
		if e.gen != t.gen {
			continue
		}
		e.action(e.at)
		fired++
	}
	return fired
}
