package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository"
)

func TestStore_ProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &model.Project{ID: "p1", Config: playable.DefaultConfiguration(playable.ModeSlots), CreatedAt: created, UpdatedAt: created}
	if err := s.SaveProject(ctx, p); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	p.Config.SymbolSet[0] = "mutated"
	got, err := s.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Config.SymbolSet[0] == "mutated" {
		t.Error("stored config shares memory with the caller")
	}

	later := created.Add(time.Hour)
	if err := s.SaveProject(ctx, &model.Project{ID: "p1", Config: got.Config, CreatedAt: later, UpdatedAt: later}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetProject(ctx, "p1")
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt %v, want original %v", got.CreatedAt, created)
	}

	if _, err := s.GetProject(ctx, "missing"); !errors.Is(err, repository.ErrProjectNotFound) {
		t.Errorf("GetProject(missing) %v, want ErrProjectNotFound", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		_ = s.SaveProject(ctx, &model.Project{ID: id, Config: playable.DefaultConfiguration(playable.ModeWheel), UpdatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[2].ID != "a" {
		t.Errorf("ListProjects %+v, want c b a", list)
	}
}

func TestStore_Exports(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateExport(ctx, &model.ExportRecord{ID: "e0", ProjectID: "nope"}); !errors.Is(err, repository.ErrProjectNotFound) {
		t.Errorf("CreateExport for unknown project %v, want ErrProjectNotFound", err)
	}
	_ = s.SaveProject(ctx, &model.Project{ID: "p1", Config: playable.DefaultConfiguration(playable.ModeSlots)})
	_ = s.CreateExport(ctx, &model.ExportRecord{ID: "e1", ProjectID: "p1"})
	_ = s.CreateExport(ctx, &model.ExportRecord{ID: "e2", ProjectID: "p1"})

	recs, _ := s.ListExports(ctx, "p1")
	if len(recs) != 2 || recs[0].ID != "e2" {
		t.Errorf("ListExports %+v, want e2 first", recs)
	}

	if err := s.DeleteProject(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if recs, _ := s.ListExports(ctx, "p1"); len(recs) != 0 {
		t.Errorf("exports survived project delete: %+v", recs)
	}
}
