package service_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
	"github.com/kurochkinivan/excel_analytics/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxUploadSize = 10 << 20

type fixture struct {
	files    *fakeFileStore
	decoder  *fakeDecoder
	datasets *fakeDatasets
	users    *fakeUsers
	svc      *service.DatasetService
}

func newFixture(t *testing.T, dec *fakeDecoder, seed ...*domain.Dataset) *fixture {
	t.Helper()

	f := &fixture{
		files:    newFakeFileStore(),
		decoder:  dec,
		datasets: newFakeDatasets(seed...),
		users:    newFakeUsers(),
	}

	f.svc = service.NewDatasetService(
		slog.New(slog.DiscardHandler),
		f.files,
		f.decoder,
		f.datasets,
		f.users,
		fakeTransactor{},
		fakeReports{},
		maxUploadSize,
	)

	return f
}

func TestDatasetService_Upload_HappyPath(t *testing.T) {
	t.Parallel()

	rows := []domain.Row{
		{"a": domain.NumberValue(1), "b": domain.StringValue("x")},
		{"a": domain.NumberValue(2), "b": domain.StringValue("y")},
	}
	f := newFixture(t, &fakeDecoder{rows: rows, columns: []string{"a", "b"}})

	ownerID := uuid.New()
	ds, err := f.svc.Upload(context.Background(), ownerID, "data.csv", 64, strings.NewReader("a,b\n1,x\n2,y\n"))
	require.NoError(t, err)

	assert.Equal(t, ownerID, ds.OwnerID)
	assert.Equal(t, "data.csv", ds.OriginalName)
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
	assert.Equal(t, len(ds.Rows), ds.RowCount)
	assert.Equal(t, domain.StatusSuccess, ds.Status)

	// record persisted and linked to the owner
	_, err = f.datasets.ByID(context.Background(), ds.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ds.ID}, f.users.links[ownerID])

	// stored file survives
	assert.Len(t, f.files.stored, 1)
	assert.Empty(t, f.files.removed)
}

func TestDatasetService_Upload_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "no file", filename: "", size: 10, wantErr: domain.ErrNoFile},
		{name: "unsupported type", filename: "notes.txt", size: 10, wantErr: domain.ErrUnsupportedFileType},
		{name: "too large", filename: "big.csv", size: maxUploadSize + 1, wantErr: domain.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, &fakeDecoder{})

			_, err := f.svc.Upload(context.Background(), uuid.New(), tt.filename, tt.size, strings.NewReader("x"))
			require.ErrorIs(t, err, tt.wantErr)

			assert.Empty(t, f.files.stored)
			assert.Empty(t, f.datasets.byID)
		})
	}
}

func TestDatasetService_Upload_DecodeFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeDecoder{err: domain.ErrDecodeFailed})

	_, err := f.svc.Upload(context.Background(), uuid.New(), "broken.xlsx", 64, strings.NewReader("junk"))
	require.ErrorIs(t, err, domain.ErrDecodeFailed)

	// neither a stored file nor a dataset record survives the failure
	assert.Empty(t, f.files.stored)
	assert.Len(t, f.files.removed, 1)
	assert.Empty(t, f.datasets.byID)
	assert.Empty(t, f.users.links)
}

func TestDatasetService_Upload_PathFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeDecoder{})
	f.files.pathErr = errBoom

	_, err := f.svc.Upload(context.Background(), uuid.New(), "data.csv", 64, strings.NewReader("a\n1\n"))
	require.ErrorIs(t, err, errBoom)

	assert.Len(t, f.files.removed, 1)
	assert.Empty(t, f.datasets.byID)
}

func TestDatasetService_Upload_PersistFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeDecoder{rows: []domain.Row{{"a": domain.NumberValue(1)}}, columns: []string{"a"}})
	f.datasets.createErr = errBoom

	_, err := f.svc.Upload(context.Background(), uuid.New(), "data.csv", 64, strings.NewReader("a\n1\n"))
	require.ErrorIs(t, err, errBoom)

	assert.Empty(t, f.files.stored)
	assert.Len(t, f.files.removed, 1)
}

func TestDatasetService_Upload_LinkFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeDecoder{rows: []domain.Row{{"a": domain.NumberValue(1)}}, columns: []string{"a"}})
	f.users.linkErr = errBoom

	_, err := f.svc.Upload(context.Background(), uuid.New(), "data.csv", 64, strings.NewReader("a\n1\n"))
	require.ErrorIs(t, err, errBoom)

	assert.Empty(t, f.files.stored)
}

func TestDatasetService_Delete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	ds := &domain.Dataset{ID: uuid.New(), OwnerID: ownerID, StoredName: "stored-1.csv"}
	f := newFixture(t, &fakeDecoder{}, ds)
	f.files.stored["stored-1.csv"] = true
	f.users.links[ownerID] = []uuid.UUID{ds.ID}

	ctx := context.Background()
	require.NoError(t, f.svc.Delete(ctx, ownerID, ds.ID))

	assert.Empty(t, f.files.stored)
	assert.Empty(t, f.datasets.byID)
	assert.Empty(t, f.users.links[ownerID])

	// second delete of the same id is a benign not-found, never a crash
	err := f.svc.Delete(ctx, ownerID, ds.ID)
	require.ErrorIs(t, err, domain.ErrDatasetNotFound)
}

func TestDatasetService_Delete_NotOwner(t *testing.T) {
	t.Parallel()

	ds := &domain.Dataset{ID: uuid.New(), OwnerID: uuid.New(), StoredName: "stored-1.csv"}
	f := newFixture(t, &fakeDecoder{}, ds)
	f.files.stored["stored-1.csv"] = true

	err := f.svc.Delete(context.Background(), uuid.New(), ds.ID)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	// nothing was touched
	assert.Len(t, f.files.stored, 1)
	assert.Len(t, f.datasets.byID, 1)
}

func TestDatasetService_ClearHistory(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	first := &domain.Dataset{ID: uuid.New(), OwnerID: ownerID, StoredName: "stored-1.csv"}
	second := &domain.Dataset{ID: uuid.New(), OwnerID: ownerID, StoredName: "stored-2.csv"}
	other := &domain.Dataset{ID: uuid.New(), OwnerID: uuid.New(), StoredName: "stored-3.csv"}

	f := newFixture(t, &fakeDecoder{}, first, second, other)
	// stored-2 is already gone from disk; the sweep must keep going
	f.files.stored["stored-1.csv"] = true
	f.users.links[ownerID] = []uuid.UUID{first.ID, second.ID}

	require.NoError(t, f.svc.ClearHistory(context.Background(), ownerID))

	assert.ElementsMatch(t, []string{"stored-1.csv", "stored-2.csv"}, f.files.removed)
	assert.Len(t, f.datasets.byID, 1)
	assert.Empty(t, f.users.links[ownerID])
}

func TestDatasetService_Rows_Authorization(t *testing.T) {
	t.Parallel()

	ds := &domain.Dataset{ID: uuid.New(), OwnerID: uuid.New()}
	f := newFixture(t, &fakeDecoder{}, ds)

	_, err := f.svc.Rows(context.Background(), uuid.New(), ds.ID, 1, 100)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = f.svc.Summary(context.Background(), uuid.New(), ds.ID)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = f.svc.Report(context.Background(), uuid.New(), ds.ID)
	require.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestDatasetService_Rows_MissingDataset(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeDecoder{})

	_, err := f.svc.Rows(context.Background(), uuid.New(), uuid.New(), 1, 100)
	require.ErrorIs(t, err, domain.ErrDatasetNotFound)
}

func TestDatasetService_Summary(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	ds := &domain.Dataset{
		ID:      uuid.New(),
		Name:    "scores.csv",
		OwnerID: ownerID,
		Columns: []string{"score"},
		Rows: []domain.Row{
			{"score": domain.NumberValue(1)},
			{"score": domain.NumberValue(4)},
		},
	}
	f := newFixture(t, &fakeDecoder{}, ds)

	got, err := f.svc.Summary(context.Background(), ownerID, ds.ID)
	require.NoError(t, err)
	assert.Contains(t, got, "Min: 1, Max: 4, Avg: 2.50")
}
