package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

type fakeFileStore struct {
	stored    map[string]bool
	counter   int
	removed   []string
	storeErr  error
	removeErr error
	pathErr   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{stored: map[string]bool{}}
}

func (f *fakeFileStore) Store(originalName string, r io.Reader) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}

	f.counter++
	name := fmt.Sprintf("stored-%d%s", f.counter, filepath.Ext(originalName))
	f.stored[name] = true

	return name, nil
}

func (f *fakeFileStore) Remove(_ context.Context, storedName string) error {
	f.removed = append(f.removed, storedName)
	if f.removeErr != nil {
		return f.removeErr
	}

	delete(f.stored, storedName)

	return nil
}

func (f *fakeFileStore) Path(storedName string) (string, error) {
	if f.pathErr != nil {
		return "", f.pathErr
	}

	return filepath.Join("/content", storedName), nil
}

type fakeDecoder struct {
	rows    []domain.Row
	columns []string
	err     error
}

func (f *fakeDecoder) Decode(string) ([]domain.Row, []string, error) {
	return f.rows, f.columns, f.err
}

type fakeDatasets struct {
	byID      map[uuid.UUID]*domain.Dataset
	createErr error
}

func newFakeDatasets(datasets ...*domain.Dataset) *fakeDatasets {
	f := &fakeDatasets{byID: map[uuid.UUID]*domain.Dataset{}}
	for _, ds := range datasets {
		f.byID[ds.ID] = ds
	}

	return f
}

func (f *fakeDatasets) Create(_ context.Context, ds *domain.Dataset) error {
	if f.createErr != nil {
		return f.createErr
	}

	ds.Status = ds.Status.Normalize()
	f.byID[ds.ID] = ds

	return nil
}

func (f *fakeDatasets) ByID(_ context.Context, id uuid.UUID) (*domain.Dataset, error) {
	ds, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}

	return ds, nil
}

func (f *fakeDatasets) ByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Dataset, error) {
	var datasets []*domain.Dataset
	for _, ds := range f.byID {
		if ds.OwnerID == ownerID {
			datasets = append(datasets, ds)
		}
	}

	return datasets, nil
}

func (f *fakeDatasets) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeDatasets) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	for id, ds := range f.byID {
		if ds.OwnerID == ownerID {
			delete(f.byID, id)
			deleted++
		}
	}

	return deleted, nil
}

type fakeUsers struct {
	byID    map[uuid.UUID]*domain.User
	links   map[uuid.UUID][]uuid.UUID
	linkErr error
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{
		byID:  map[uuid.UUID]*domain.User{},
		links: map[uuid.UUID][]uuid.UUID{},
	}
	for _, u := range users {
		f.byID[u.ID] = u
	}

	return f
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	f.byID[user.ID] = user

	return nil
}

func (f *fakeUsers) ByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) All(_ context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range f.byID {
		users = append(users, user)
	}

	return users, nil
}

func (f *fakeUsers) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}

	delete(f.byID, id)

	return nil
}

func (f *fakeUsers) Promote(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	user.IsAdmin = true
	user.Roles = append(user.Roles, domain.RoleAdmin)

	return user, nil
}

func (f *fakeUsers) LinkUpload(_ context.Context, userID, datasetID uuid.UUID) error {
	if f.linkErr != nil {
		return f.linkErr
	}

	f.links[userID] = append(f.links[userID], datasetID)

	return nil
}

func (f *fakeUsers) UnlinkUpload(_ context.Context, userID, datasetID uuid.UUID) error {
	ids := f.links[userID]
	for i, id := range ids {
		if id == datasetID {
			f.links[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return nil
}

func (f *fakeUsers) ClearUploads(_ context.Context, userID uuid.UUID) error {
	delete(f.links, userID)
	return nil
}

func (f *fakeUsers) UploadIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.links[userID], nil
}

// fakeTransactor runs the function directly; rollback semantics are the
// repositories' concern and are covered by the error path alone.
type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReports struct{}

func (fakeReports) Generate(*domain.Dataset, string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(uuid.UUID) (string, error) {
	return "token", nil
}

var errBoom = errors.New("boom")
