package realtime

import (
	"sync"
	"testing"
	"time"
)

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_CreateKeepsBroadcaster(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "a")
	hub := s.Broadcaster("r1")
	s.Create("r1", "b")
	if s.Broadcaster("r1") != hub {
		t.Error("re-creating a room should keep its broadcaster")
	}
}

func TestRoomStore_GetOrCreate(t *testing.T) {
	s := NewRoomStore[string]()
	hub := s.Broadcaster("r1")
	r, created := s.GetOrCreate("r1", func() string { return "a" })
	if !created || r.State != "a" {
		t.Fatalf("GetOrCreate on placeholder: created %v state %q, want true a", created, r.State)
	}
	if s.Broadcaster("r1") != hub {
		t.Error("GetOrCreate should keep the placeholder's broadcaster")
	}
	r, created = s.GetOrCreate("r1", func() string { return "b" })
	if created || r.State != "a" {
		t.Errorf("second GetOrCreate: created %v state %q, want false a", created, r.State)
	}
}

func TestRoomStore_GetOrCreateConcurrent(t *testing.T) {
	s := NewRoomStore[*int]()
	const n = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		calls int
	)
	rooms := make([]*Room[*int], n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			rooms[i], _ = s.GetOrCreate("r", func() *int {
				mu.Lock()
				calls++
				mu.Unlock()
				return new(int)
			})
		}(i)
	}
	close(start)
	wg.Wait()
	if calls != 1 {
		t.Errorf("create ran %d times, want 1", calls)
	}
	for i, r := range rooms {
		if r != rooms[0] || r.State != rooms[0].State {
			t.Fatalf("caller %d got a different room", i)
		}
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", Message{Event: "event1"})
	got := <-ch
	if got.Event != "event1" {
		t.Errorf("got %q, want event1", got.Event)
	}
}

func TestRoomStore_IDsAndDelete(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("b", 2)
	s.Create("a", 1)
	ids := s.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs %v, want [a b]", ids)
	}
	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Error("room a should be gone after Delete")
	}
}

func TestRoomStore_RunLoopStopsAndPublishes(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 1)
	hub := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.RunLoop("r1", func() int { return 1 }, func(state int, now time.Time) (time.Time, []Message, bool) {
		return time.Time{}, []Message{{Event: "done"}}, true
	})

	select {
	case got := <-ch:
		if got.Event != "done" {
			t.Errorf("got %q, want done", got.Event)
		}
	case <-time.After(time.Second):
		t.Fatal("loop did not publish")
	}

	deadline := time.Now().Add(time.Second)
	for s.Looping("r1") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Looping("r1") {
		t.Error("loop should have exited after stop")
	}
}

func TestRoomStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewRoomStore[string]()
	s.Wake("nonexistent")
}

func TestRoomStore_RunLoopAgainWakesExisting(t *testing.T) {
	s := NewRoomStore[int]()
	s.Create("r1", 1)
	ticks := make(chan struct{}, 8)
	tick := func(int, time.Time) (time.Time, []Message, bool) {
		ticks <- struct{}{}
		return time.Now().Add(time.Hour), nil, false
	}
	waitTick := func() {
		t.Helper()
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("loop did not tick")
		}
	}

	s.RunLoop("r1", func() int { return 1 }, tick)
	waitTick()
	s.RunLoop("r1", func() int { return 1 }, tick)
	waitTick()

	s.Delete("r1")
	deadline := time.Now().Add(time.Second)
	for s.Looping("r1") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Looping("r1") {
		t.Error("loop should exit after Delete")
	}
}
