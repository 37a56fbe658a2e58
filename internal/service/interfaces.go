package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

type FileStore interface {
	Store(originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, storedName string) error
	Path(storedName string) (string, error)
}

type Decoder interface {
	Decode(path string) ([]domain.Row, []string, error)
}

type DatasetsRepository interface {
	Create(ctx context.Context, ds *domain.Dataset) error
	ByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Dataset, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type UsersRepository interface {
	Create(ctx context.Context, user *domain.User) error
	ByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	All(ctx context.Context) ([]*domain.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Promote(ctx context.Context, id uuid.UUID) (*domain.User, error)
	LinkUpload(ctx context.Context, userID, datasetID uuid.UUID) error
	UnlinkUpload(ctx context.Context, userID, datasetID uuid.UUID) error
	ClearUploads(ctx context.Context, userID uuid.UUID) error
	UploadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReportGenerator interface {
	Generate(ds *domain.Dataset, summary string) ([]byte, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}
