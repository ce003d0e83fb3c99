package repository

import (
	"context"
	"errors"

	"github.com/mbark223/playablelab-sub000/internal/model"
)

// ErrProjectNotFound is returned when no project has the requested ID.
var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	SaveProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error
}

type ExportRepository interface {
	CreateExport(ctx context.Context, rec *model.ExportRecord) error
	ListExports(ctx context.Context, projectID string) ([]model.ExportRecord, error)
}

// TxRunner runs fn in one transaction. trm.Manager satisfies it.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs fn directly, for stores without transactions.
type NoTx struct{}

func (NoTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
