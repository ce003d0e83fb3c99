package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/repository"
)

const (
	exportsTable = "exports"
	colProjectID = "project_id"
	colChannelID = "channel_id"
	colFileName  = "file_name"
	colSize      = "size_bytes"
	colChecksum  = "checksum"
)

type exportRepo struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewExportRepository(pool *pgxpool.Pool) repository.ExportRepository {
	return &exportRepo{pool: pool, getter: trmpgx.DefaultCtxGetter}
}

func (r *exportRepo) CreateExport(ctx context.Context, rec *model.ExportRecord) error {
	query := psql.Insert(exportsTable).
		Columns(colID, colProjectID, colChannelID, colFileName, colSize, colChecksum, colCreatedAt).
		Values(rec.ID, rec.ProjectID, rec.ChannelID, rec.FileName, rec.SizeBytes, rec.Checksum, rec.CreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.getter.DefaultTrOrDB(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("record export for %s: %w", rec.ProjectID, err)
	}
	return nil
}

func (r *exportRepo) ListExports(ctx context.Context, projectID string) ([]model.ExportRecord, error) {
	query := psql.Select(colID, colProjectID, colChannelID, colFileName, colSize, colChecksum, colCreatedAt).
		From(exportsTable).
		Where(sq.Eq{colProjectID: projectID}).
		OrderBy(colCreatedAt + " DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.getter.DefaultTrOrDB(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list exports for %s: %w", projectID, err)
	}
	defer rows.Close()

	var out []model.ExportRecord
	for rows.Next() {
		var rec model.ExportRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.ChannelID, &rec.FileName, &rec.SizeBytes, &rec.Checksum, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
