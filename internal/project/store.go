// Package project keeps the live editors, one per open project, and connects
// them to persistence and to the per-project event stream.
package project

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository"
	"github.com/mbark223/playablelab-sub000/pkg/realtime"
)

// Store holds editors and delegates to realtime.RoomStore for broadcast and
// the timer loop.
type Store struct {
	r       *realtime.RoomStore[*playable.Editor]
	repo    repository.ProjectRepository
	newRand func() playable.Rand
	now     func() time.Time
}

type Option func(*Store)

// WithRandSource sets the factory for each editor's random source.
func WithRandSource(fn func() playable.Rand) Option {
	return func(s *Store) { s.newRand = fn }
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

func NewStore(repo repository.ProjectRepository, opts ...Option) *Store {
	s := &Store{
		r:       realtime.NewRoomStore[*playable.Editor](),
		repo:    repo,
		newRand: func() playable.Rand { return playable.NewRand(0) },
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a project from the default configuration for mode and
// persists it.
func (s *Store) Create(ctx context.Context, mode playable.Mode, name string) (*playable.Editor, error) {
	cfg := playable.DefaultConfiguration(mode)
	if name != "" {
		cfg.Name = name
	}
	return s.Import(ctx, cfg)
}

// Import creates a project from a full configuration.
func (s *Store) Import(ctx context.Context, cfg playable.Configuration) (*playable.Editor, error) {
	cfg = cfg.Clone()
	cfg.Normalize()
	now := s.now()
	p := &model.Project{ID: uuid.NewString(), Config: cfg, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.SaveProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	ed := s.register(p.ID, cfg)
	log.WithFields(log.Fields{"project": p.ID, "mode": cfg.Mode}).Info("project created")
	return ed, nil
}

// Open returns the live editor for id, loading the project if it is not
// open yet.
func (s *Store) Open(ctx context.Context, id string) (*playable.Editor, error) {
	if ed, ok := s.Get(id); ok {
		return ed, nil
	}
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	room, created := s.r.GetOrCreate(p.ID, func() *playable.Editor {
		return s.newEditor(p.ID, p.Config)
	})
	if created {
		log.WithField("project", p.ID).Debug("project opened")
	}
	return room.State, nil
}

// Get returns an already open editor.
func (s *Store) Get(id string) (*playable.Editor, bool) {
	room, ok := s.r.Get(id)
	if !ok || room.State == nil {
		return nil, false
	}
	return room.State, true
}

func (s *Store) register(id string, cfg playable.Configuration) *playable.Editor {
	ed := s.newEditor(id, cfg)
	s.r.Create(id, ed)
	return ed
}

func (s *Store) newEditor(id string, cfg playable.Configuration) *playable.Editor {
	return playable.NewEditor(id, cfg,
		playable.WithRand(s.newRand()),
		playable.WithEventSink(s.sink(id)),
	)
}

// sink forwards editor events to the project's subscribers and keeps the
// timer loop running while work is scheduled.
func (s *Store) sink(id string) playable.EventSink {
	return func(ev playable.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			log.WithError(err).WithField("project", id).Error("encode event")
			return
		}
		s.r.Publish(id, realtime.Message{Event: string(ev.Kind), Data: string(data)})
		switch ev.Kind {
		case playable.EventPreviewStarted, playable.EventPlayStarted, playable.EventAnswerGraded:
			s.EnsureLoop(id)
		}
	}
}

// Save persists the editor's current configuration.
func (s *Store) Save(ctx context.Context, id string) (*model.Project, error) {
	ed, ok := s.Get(id)
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	now := s.now()
	p := &model.Project{ID: id, Config: ed.ExportConfig(), CreatedAt: now, UpdatedAt: now}
	if err := s.repo.SaveProject(ctx, p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	log.WithField("project", id).Debug("project saved")
	return p, nil
}

// Delete closes the editor and removes the project.
func (s *Store) Delete(ctx context.Context, id string) error {
	if ed, ok := s.Get(id); ok {
		ed.StopPreview(s.now())
	}
	s.r.Delete(id)
	return s.repo.DeleteProject(ctx, id)
}

func (s *Store) List(ctx context.Context) ([]model.ProjectSummary, error) {
	return s.repo.ListProjects(ctx)
}

// Broadcaster returns the SSE broadcaster for a project.
func (s *Store) Broadcaster(id string) *realtime.Broadcaster {
	return s.r.Broadcaster(id)
}

// EnsureLoop starts the timer loop for a project, or wakes it if running.
func (s *Store) EnsureLoop(id string) {
	getState := func() *playable.Editor {
		ed, _ := s.Get(id)
		return ed
	}
	tick := func(ed *playable.Editor, now time.Time) (time.Time, []realtime.Message, bool) {
		if ed == nil {
			return time.Time{}, nil, true
		}
		ed.Advance(now)
		next, ok := ed.NextWake()
		if !ok {
			return time.Time{}, nil, true
		}
		return next, nil, false
	}
	s.r.RunLoop(id, getState, tick)
}

// Looping reports whether the project's timer loop is running.
func (s *Store) Looping(id string) bool {
	return s.r.Looping(id)
}

// Live returns the IDs of open projects.
func (s *Store) Live() []string {
	return s.r.IDs()
}

// SweepIdle turns off previews nobody has touched within ttl and returns how
// many it stopped.
func (s *Store) SweepIdle(now time.Time, ttl time.Duration) int {
	stopped := 0
	for _, id := range s.r.IDs() {
		ed, ok := s.Get(id)
		if !ok || !ed.Playing() {
			continue
		}
		if now.Sub(ed.LastTouched()) < ttl {
			continue
		}
		if ed.StopPreview(now) {
			stopped++
			log.WithField("project", id).Info("idle preview stopped")
		}
	}
	return stopped
}
