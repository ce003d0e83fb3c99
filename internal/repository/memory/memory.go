// Package memory keeps projects and exports in process memory. It backs the
// server when no database is configured and the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	projects map[string]model.Project
	exports  map[string][]model.ExportRecord
}

func New() *Store {
	return &Store{
		projects: make(map[string]model.Project),
		exports:  make(map[string][]model.ExportRecord),
	}
}

var (
	_ repository.ProjectRepository = (*Store)(nil)
	_ repository.ExportRepository  = (*Store)(nil)
)

func (s *Store) SaveProject(_ context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	stored.Config = p.Config.Clone()
	if old, ok := s.projects[p.ID]; ok && !old.CreatedAt.IsZero() {
		stored.CreatedAt = old.CreatedAt
	}
	s.projects[p.ID] = stored
	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	p.Config = p.Config.Clone()
	return &p, nil
}

func (s *Store) ListProjects(_ context.Context) ([]model.ProjectSummary, error) {
	s.mu.RLock()
	out := make([]model.ProjectSummary, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Summary())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(s.projects, id)
	delete(s.exports, id)
	return nil
}

func (s *Store) CreateExport(_ context.Context, rec *model.ExportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[rec.ProjectID]; !ok {
		return repository.ErrProjectNotFound
	}
	s.exports[rec.ProjectID] = append(s.exports[rec.ProjectID], *rec)
	return nil
}

// ListExports returns the project's exports, newest first.
func (s *Store) ListExports(_ context.Context, projectID string) ([]model.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.exports[projectID]
	out := make([]model.ExportRecord, len(recs))
	for i, r := range recs {
		out[len(recs)-1-i] = r
	}
	return out, nil
}
