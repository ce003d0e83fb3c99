package project

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository"
	"github.com/mbark223/playablelab-sub000/internal/repository/memory"
)

type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return 0 }

func newTestStore() (*Store, *memory.Store) {
	repo := memory.New()
	return NewStore(repo, WithRandSource(func() playable.Rand { return fixedRand{f: 0.9} })), repo
}

func TestStore_CreateOpenGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	ed, err := s.Create(ctx, playable.ModeWheel, "Wheel Promo")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ed.ID() == "" {
		t.Fatal("editor ID is empty")
	}
	if cfg := ed.Config(); cfg.Name != "Wheel Promo" || cfg.Mode != playable.ModeWheel {
		t.Errorf("config %q %q, want Wheel Promo wheel", cfg.Name, cfg.Mode)
	}

	got, err := s.Open(ctx, ed.ID())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != ed {
		t.Error("Open returned a different editor for a live project")
	}
	if _, err := s.Open(ctx, "nonexistent"); !errors.Is(err, repository.ErrProjectNotFound) {
		t.Errorf("Open(nonexistent) %v, want ErrProjectNotFound", err)
	}
}

// slowRepo delays loads so concurrent opens overlap.
type slowRepo struct {
	*memory.Store
	delay time.Duration
}

func (r slowRepo) GetProject(ctx context.Context, id string) (*model.Project, error) {
	time.Sleep(r.delay)
	return r.Store.GetProject(ctx, id)
}

func TestStore_ConcurrentOpenSharesEditor(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	now := time.Now().UTC()
	cfg := playable.DefaultConfiguration(playable.ModeSlots)
	if err := mem.SaveProject(ctx, &model.Project{ID: "p", Config: cfg, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatal(err)
	}

	for trial := 0; trial < 20; trial++ {
		s := NewStore(slowRepo{Store: mem, delay: time.Millisecond})
		const n = 8
		var wg sync.WaitGroup
		eds := make([]*playable.Editor, n)
		errs := make([]error, n)
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				eds[i], errs[i] = s.Open(ctx, "p")
			}(i)
		}
		close(start)
		wg.Wait()

		live, ok := s.Get("p")
		if !ok {
			t.Fatal("project not live after Open")
		}
		for i := range eds {
			if errs[i] != nil {
				t.Fatalf("Open: %v", errs[i])
			}
			if eds[i] != live {
				t.Fatalf("trial %d: caller %d got an editor that is not the live one", trial, i)
			}
		}
	}
}

func TestStore_OpenLoadsSavedProject(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore()
	ed, _ := s.Create(ctx, playable.ModeSlots, "")
	if err := ed.Dispatch(time.Now(), playable.SetName{Name: "Renamed"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx, ed.ID()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fresh := NewStore(repo)
	loaded, err := fresh.Open(ctx, ed.ID())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if loaded.Config().Name != "Renamed" {
		t.Errorf("Name %q, want Renamed", loaded.Config().Name)
	}
}

func TestStore_EventsReachSubscribers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	ed, _ := s.Create(ctx, playable.ModeSlots, "")
	hub := s.Broadcaster(ed.ID())
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	ed.TogglePreview(time.Now().UTC())
	select {
	case msg := <-ch:
		if msg.Event != string(playable.EventPreviewStarted) {
			t.Errorf("event %q, want preview_started", msg.Event)
		}
		var ev playable.Event
		if err := json.Unmarshal([]byte(msg.Data), &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.Kind != playable.EventPreviewStarted {
			t.Errorf("Kind %q, want preview_started", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestStore_LoopResolvesPlay(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	cfg := playable.DefaultConfiguration(playable.ModePick)
	cfg.PlaysAllowed = 1
	ed, _ := s.Import(ctx, cfg)
	hub := s.Broadcaster(ed.ID())
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	now := time.Now().UTC()
	ed.TogglePreview(now)
	ed.RequestPlay(now, 0)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.Event == string(playable.EventPlayResolved) {
				return
			}
		case <-deadline:
			t.Fatal("play never resolved on the timer loop")
		}
	}
}

func TestStore_SweepIdle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	idle, _ := s.Create(ctx, playable.ModeSlots, "idle")
	busy, _ := s.Create(ctx, playable.ModeSlots, "busy")
	off, _ := s.Create(ctx, playable.ModeSlots, "off")
	_ = off

	t0 := time.Now().UTC()
	idle.TogglePreview(t0)
	busy.TogglePreview(t0)
	busy.RequestPlay(t0.Add(9*time.Minute), -1)

	if n := s.SweepIdle(t0.Add(10*time.Minute), 5*time.Minute); n != 1 {
		t.Errorf("SweepIdle stopped %d, want 1", n)
	}
	if idle.Playing() {
		t.Error("idle preview should be stopped")
	}
	if !busy.Playing() {
		t.Error("recently used preview should keep running")
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	ed, _ := s.Create(ctx, playable.ModeSlots, "")
	if err := s.Delete(ctx, ed.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get(ed.ID()); ok {
		t.Error("editor still open after Delete")
	}
	if _, err := s.Open(ctx, ed.ID()); !errors.Is(err, repository.ErrProjectNotFound) {
		t.Errorf("Open after Delete %v, want ErrProjectNotFound", err)
	}
}

func TestNewSweeper_BadSchedule(t *testing.T) {
	s, _ := newTestStore()
	if _, err := NewSweeper(s, "not a schedule", time.Minute); err == nil {
		t.Error("NewSweeper should reject a malformed schedule")
	}
	sw, err := NewSweeper(s, "@every 1m", time.Minute)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	sw.Start()
	sw.Stop()
}
