package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/decoder"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
	"github.com/kurochkinivan/excel_analytics/internal/summary"
)

// DatasetService orchestrates the ingestion pipeline (store -> decode ->
// persist -> link) and its mirror delete flow. Store and decode run outside
// the database transaction, so both failure paths compensate by removing
// the already-stored file; persist and link share one transaction.
type DatasetService struct {
	log           *slog.Logger
	files         FileStore
	decoder       Decoder
	datasets      DatasetsRepository
	users         UsersRepository
	transactor    Transactor
	reports       ReportGenerator
	maxUploadSize int64
}

func NewDatasetService(
	log *slog.Logger,
	files FileStore,
	dec Decoder,
	datasets DatasetsRepository,
	users UsersRepository,
	transactor Transactor,
	reports ReportGenerator,
	maxUploadSize int64,
) *DatasetService {
	return &DatasetService{
		log:           log,
		files:         files,
		decoder:       dec,
		datasets:      datasets,
		users:         users,
		transactor:    transactor,
		reports:       reports,
		maxUploadSize: maxUploadSize,
	}
}

func (s *DatasetService) Upload(ctx context.Context, ownerID uuid.UUID, filename string, size int64, r io.Reader) (*domain.Dataset, error) {
	if filename == "" || r == nil {
		return nil, domain.ErrNoFile
	}

	if !decoder.Allowed(filename) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filename)
	}

	if size > s.maxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, size)
	}

	stored, err := s.files.Store(filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	path, err := s.files.Path(stored)
	if err != nil {
		s.compensate(ctx, stored)
		return nil, err
	}

	rows, columns, err := s.decoder.Decode(path)
	if err != nil {
		s.compensate(ctx, stored)
		return nil, err
	}

	ds := &domain.Dataset{
		ID:           uuid.New(),
		Name:         filename,
		OriginalName: filename,
		StoredName:   stored,
		OwnerID:      ownerID,
		Rows:         rows,
		Columns:      columns,
		RowCount:     len(rows),
		Status:       domain.StatusSuccess,
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.datasets.Create(ctx, ds); err != nil {
			return err
		}

		return s.users.LinkUpload(ctx, ownerID, ds.ID)
	})
	if err != nil {
		s.compensate(ctx, stored)
		return nil, fmt.Errorf("failed to persist dataset: %w", err)
	}

	s.log.InfoContext(ctx, "dataset ingested",
		slog.String("dataset_id", ds.ID.String()),
		slog.String("original_name", ds.OriginalName),
		slog.Int("row_count", ds.RowCount),
	)

	return ds, nil
}

// compensate removes the stored file after a failed decode or persist so
// no orphaned file outlives the rejected upload.
func (s *DatasetService) compensate(ctx context.Context, stored string) {
	if err := s.files.Remove(ctx, stored); err != nil {
		s.log.ErrorContext(ctx, "failed to remove stored file after rollback",
			slog.String("stored_name", stored),
			slog.String("err", err.Error()),
		)
	}
}

func (s *DatasetService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	ds, err := s.owned(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(ctx, ds.StoredName); err != nil {
		return err
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.datasets.DeleteByID(ctx, id); err != nil {
			return err
		}

		return s.users.UnlinkUpload(ctx, ds.OwnerID, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	return nil
}

func (s *DatasetService) History(ctx context.Context, callerID uuid.UUID) ([]*domain.Dataset, error) {
	return s.datasets.ByOwner(ctx, callerID)
}

// ClearHistory removes every dataset of the caller: files first, one by
// one, continuing past missing ones, then records and links in one
// transaction.
func (s *DatasetService) ClearHistory(ctx context.Context, callerID uuid.UUID) error {
	datasets, err := s.datasets.ByOwner(ctx, callerID)
	if err != nil {
		return err
	}

	for _, ds := range datasets {
		if err := s.files.Remove(ctx, ds.StoredName); err != nil {
			s.log.ErrorContext(ctx, "failed to remove file, continuing",
				slog.String("stored_name", ds.StoredName),
				slog.String("err", err.Error()),
			)
		}
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.datasets.DeleteByOwner(ctx, callerID); err != nil {
			return err
		}

		return s.users.ClearUploads(ctx, callerID)
	})
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

func (s *DatasetService) Rows(ctx context.Context, callerID, id uuid.UUID, page, limit int) (*RowPage, error) {
	ds, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	return PageRows(ds.Rows, page, limit), nil
}

func (s *DatasetService) Summary(ctx context.Context, callerID, id uuid.UUID) (string, error) {
	ds, err := s.owned(ctx, callerID, id)
	if err != nil {
		return "", err
	}

	return summary.Summarize(ds), nil
}

func (s *DatasetService) Report(ctx context.Context, callerID, id uuid.UUID) ([]byte, error) {
	ds, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	return s.reports.Generate(ds, summary.Summarize(ds))
}

// owned loads a dataset and enforces that the caller is its owner. Every
// per-dataset operation goes through here.
func (s *DatasetService) owned(ctx context.Context, callerID, id uuid.UUID) (*domain.Dataset, error) {
	ds, err := s.datasets.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ds.OwnerID != callerID {
		return nil, domain.ErrNotOwner
	}

	return ds, nil
}
