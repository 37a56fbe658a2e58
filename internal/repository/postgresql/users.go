package postgresql

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

const (
	TableUsers       = "users"
	TableUserUploads = "user_uploads"
)

const uniqueViolationCode = "23505"

type UsersRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewUsersRepository(pool *pgxpool.Pool) *UsersRepository {
	return &UsersRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var userColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"roles",
	"is_admin",
	"files_uploaded",
	"created_at",
	"updated_at",
}

func (r *UsersRepository) Create(ctx context.Context, user *domain.User) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableUsers).
		Columns("id", "name", "email", "password_hash", "roles", "is_admin").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Roles, user.IsAdmin).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if err := db.QueryRow(ctx, sql, args...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrEmailTaken
		}

		return scanRowError(err)
	}

	return nil
}

func (r *UsersRepository) ByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.one(ctx, sq.Eq{"id": id})
}

func (r *UsersRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, sq.Eq{"email": email})
}

func (r *UsersRepository) one(ctx context.Context, where sq.Eq) (*domain.User, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(userColumns...).
		From(TableUsers).
		Where(where).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, collectRowsError(err)
	}

	return user, nil
}

func (r *UsersRepository) All(ctx context.Context) ([]*domain.User, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(userColumns...).
		From(TableUsers).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.User])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return users, nil
}

func (r *UsersRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Delete(TableUsers).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return executeQueryError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Promote grants the admin role and returns the updated user. Promoting an
// admin again is a no-op on the roles list.
func (r *UsersRepository) Promote(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Update(TableUsers).
		Set("is_admin", true).
		Set("roles", sq.Expr("CASE WHEN 'admin' = ANY(roles) THEN roles ELSE array_append(roles, 'admin') END")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, collectRowsError(err)
	}

	return user, nil
}

// LinkUpload appends a dataset to the owner's upload list and bumps the
// lifetime upload counter. Runs inside the ingestion transaction.
func (r *UsersRepository) LinkUpload(ctx context.Context, userID, datasetID uuid.UUID) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableUserUploads).
		Columns("user_id", "dataset_id").
		Values(userID, datasetID).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return executeQueryError(err)
	}

	sql, args, err = r.qb.
		Update(TableUsers).
		Set("files_uploaded", sq.Expr("files_uploaded + 1")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return executeQueryError(err)
	}

	return nil
}

func (r *UsersRepository) UnlinkUpload(ctx context.Context, userID, datasetID uuid.UUID) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Delete(TableUserUploads).
		Where(sq.Eq{"user_id": userID, "dataset_id": datasetID}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return executeQueryError(err)
	}

	return nil
}

func (r *UsersRepository) ClearUploads(ctx context.Context, userID uuid.UUID) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Delete(TableUserUploads).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		return executeQueryError(err)
	}

	return nil
}

func (r *UsersRepository) UploadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select("dataset_id").
		From(TableUserUploads).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return ids, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
