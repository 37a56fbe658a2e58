package postgresql

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

const TableDatasets = "datasets"

type DatasetsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewDatasetsRepository(pool *pgxpool.Pool) *DatasetsRepository {
	return &DatasetsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var datasetColumns = []string{
	"id",
	"name",
	"original_name",
	"stored_name",
	"owner_id",
	"rows",
	"columns",
	"row_count",
	"status",
	"created_at",
	"updated_at",
}

// Create inserts the dataset record and fills in the database-assigned
// timestamps. Rows and columns persist as jsonb.
func (r *DatasetsRepository) Create(ctx context.Context, ds *domain.Dataset) error {
	db := extractDB(ctx, r.pool)

	ds.Status = ds.Status.Normalize()

	sql, args, err := r.qb.
		Insert(TableDatasets).
		Columns(
			"id",
			"name",
			"original_name",
			"stored_name",
			"owner_id",
			"rows",
			"columns",
			"row_count",
			"status",
		).
		Values(
			ds.ID,
			ds.Name,
			ds.OriginalName,
			ds.StoredName,
			ds.OwnerID,
			ds.Rows,
			ds.Columns,
			ds.RowCount,
			ds.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if err := db.QueryRow(ctx, sql, args...).Scan(&ds.CreatedAt, &ds.UpdatedAt); err != nil {
		return scanRowError(err)
	}

	return nil
}

func (r *DatasetsRepository) ByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(datasetColumns...).
		From(TableDatasets).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	ds, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.Dataset])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDatasetNotFound
	}
	if err != nil {
		return nil, collectRowsError(err)
	}

	return ds, nil
}

func (r *DatasetsRepository) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Dataset, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(datasetColumns...).
		From(TableDatasets).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	datasets, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Dataset])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return datasets, nil
}

// DeleteByID is idempotent: deleting an already-deleted dataset is not an
// error, concurrent deletes of the same id both succeed.
func (r *DatasetsRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Delete(TableDatasets).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return executeQueryError(err)
	}

	return nil
}

func (r *DatasetsRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Delete(TableDatasets).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, createQueryError(err)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, executeQueryError(err)
	}

	return tag.RowsAffected(), nil
}
