package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository"
)

const (
	projectsTable = "projects"
	colID         = "id"
	colName       = "name"
	colMode       = "mode"
	colConfig     = "config"
	colCreatedAt  = "created_at"
	colUpdatedAt  = "updated_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type projectRepo struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepo{pool: pool, getter: trmpgx.DefaultCtxGetter}
}

// SaveProject inserts the project or updates it in place.
func (r *projectRepo) SaveProject(ctx context.Context, p *model.Project) error {
	raw, err := json.Marshal(p.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	query := psql.Insert(projectsTable).
		Columns(colID, colName, colMode, colConfig, colCreatedAt, colUpdatedAt).
		Values(p.ID, p.Config.Name, string(p.Config.Mode), raw, p.CreatedAt, p.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, mode = EXCLUDED.mode, config = EXCLUDED.config, updated_at = EXCLUDED.updated_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.getter.DefaultTrOrDB(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

func (r *projectRepo) GetProject(ctx context.Context, id string) (*model.Project, error) {
	query := psql.Select(colID, colConfig, colCreatedAt, colUpdatedAt).
		From(projectsTable).
		Where(sq.Eq{colID: id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	var (
		p   model.Project
		raw []byte
	)
	err = r.getter.DefaultTrOrDB(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	if err := json.Unmarshal(raw, &p.Config); err != nil {
		return nil, fmt.Errorf("decode config of %s: %w", id, err)
	}
	p.Config.Normalize()
	return &p, nil
}

func (r *projectRepo) ListProjects(ctx context.Context) ([]model.ProjectSummary, error) {
	query := psql.Select(colID, colName, colMode, colUpdatedAt).
		From(projectsTable).
		OrderBy(colUpdatedAt+" DESC", colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.getter.DefaultTrOrDB(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []model.ProjectSummary
	for rows.Next() {
		var (
			s       model.ProjectSummary
			mode    string
			updated time.Time
		)
		if err := rows.Scan(&s.ID, &s.Name, &mode, &updated); err != nil {
			return nil, err
		}
		s.Mode = playable.Mode(mode)
		s.UpdatedAt = updated
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *projectRepo) DeleteProject(ctx context.Context, id string) error {
	query := psql.Delete(projectsTable).Where(sq.Eq{colID: id})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	tag, err := r.getter.DefaultTrOrDB(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrProjectNotFound
	}
	return nil
}
