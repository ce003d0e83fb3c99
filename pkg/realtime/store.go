package realtime

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
	// ready is false for a placeholder made by Broadcaster before any state.
	ready bool
}

// RoomStore manages rooms, their broadcasters and their timing loops.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]context.CancelFunc
	wakes map[string]chan struct{}
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]context.CancelFunc),
		wakes: make(map[string]chan struct{}),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
// An existing room with the same id is replaced but keeps its broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	hub := NewBroadcaster()
	if old, ok := s.rooms[id]; ok && old.hub != nil {
		hub = old.hub
	}
	r := &Room[T]{ID: id, State: state, hub: hub, ready: true}
	s.rooms[id] = r
	return r
}

// GetOrCreate returns the room for id, creating it with create() if it has
// no state yet. created reports whether create ran. The check and the insert
// happen under one lock, so concurrent callers all get the same room.
func (s *RoomStore[T]) GetOrCreate(id string, create func() T) (r *Room[T], created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok && r.ready {
		return r, false
	}
	hub := NewBroadcaster()
	if old, ok := s.rooms[id]; ok && old.hub != nil {
		hub = old.hub
	}
	r = &Room[T]{ID: id, State: create(), hub: hub, ready: true}
	s.rooms[id] = r
	return r, true
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Delete removes the room and stops its loop, if any.
func (s *RoomStore[T]) Delete(id string) {
	s.mu.Lock()
	cancel, ok := s.loops[id]
	delete(s.rooms, id)
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

// IDs returns the sorted IDs of all rooms.
func (s *RoomStore[T]) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Publish notifies subscribers of the room's broadcaster.
func (s *RoomStore[T]) Publish(id string, msg Message) {
	hub := s.Broadcaster(id)
	hub.Publish(msg)
}

// Broadcaster returns the broadcaster for the room, creating it if the room exists but had none.
func (s *RoomStore[T]) Broadcaster(id string) *Broadcaster {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		hub := NewBroadcaster()
		s.rooms[id] = &Room[T]{ID: id, hub: hub}
		return hub
	}
	if r.hub == nil {
		r.hub = NewBroadcaster()
	}
	return r.hub
}

// Looping reports whether a timing loop is running for id.
func (s *RoomStore[T]) Looping(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}

// TickFunc is called by RunLoop to determine the next wake time and messages to publish.
// stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, msgs []Message, stop bool)

// RunLoop starts a timing loop for the room. If a loop already exists for id
// it is woken instead, so a loop that is about to stop picks up new work.
func (s *RoomStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if _, ok := s.loops[id]; ok {
		select {
		case s.wakes[id] <- struct{}{}:
		default:
		}
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	wake := make(chan struct{}, 1)
	s.loops[id] = cancel
	s.wakes[id] = wake
	s.mu.Unlock()

	// release drops the loop registration unless a wake arrived since the
	// last tick. It reports whether the loop may exit.
	release := func(force bool) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !force {
			select {
			case <-wake:
				return false
			default:
			}
		}
		if s.wakes[id] == wake {
			delete(s.loops, id)
			delete(s.wakes, id)
		}
		return true
	}

	go func() {
		for {
			state := getState()
			now := time.Now().UTC()
			next, msgs, stop := tick(state, now)
			for _, m := range msgs {
				s.Publish(id, m)
			}
			if stop {
				if release(ctx.Err() != nil) {
					cancel()
					return
				}
				continue
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				release(true)
				return
			case <-timer.C:
			case <-wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		}
	}()
}

// Wake unblocks the room's loop so it recomputes immediately.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	wake, ok := s.wakes[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}
