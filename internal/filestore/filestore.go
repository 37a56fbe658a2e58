package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore persists uploaded binary files in a single flat content
// directory. Stored names combine the upload time with a random suffix, so
// concurrent uploads never collide and no locking is needed.
type FileStore struct {
	log *slog.Logger
	dir string
}

func New(log *slog.Logger, dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content directory %q: %w", dir, err)
	}

	return &FileStore{
		log: log,
		dir: dir,
	}, nil
}

// Store writes the file bytes under a generated unique name, keeping the
// original extension so type inference by suffix still works.
func (s *FileStore) Store(originalName string, r io.Reader) (_ string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	f, err := os.OpenFile(filepath.Join(s.dir, storedName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file %q: %w", storedName, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if _, err := io.Copy(f, r); err != nil {
		if rmErr := os.Remove(f.Name()); rmErr != nil {
			s.log.Warn("failed to remove partially written file",
				slog.String("stored_name", storedName),
				slog.String("err", rmErr.Error()))
		}

		return "", fmt.Errorf("failed to write file %q: %w", storedName, err)
	}

	return storedName, nil
}

// Remove deletes the stored file. A file that is already gone is a
// warning, not a failure: delete stays idempotent.
func (s *FileStore) Remove(ctx context.Context, storedName string) error {
	path, err := s.Path(storedName)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.WarnContext(ctx, "file missing or already deleted",
				slog.String("stored_name", storedName))
			return nil
		}

		return fmt.Errorf("failed to remove file %q: %w", storedName, err)
	}

	return nil
}

// Path resolves a stored name inside the content directory. Names that
// would escape it are rejected.
func (s *FileStore) Path(storedName string) (string, error) {
	if storedName == "" || filepath.Base(storedName) != storedName {
		return "", fmt.Errorf("invalid stored name %q", storedName)
	}

	return filepath.Join(s.dir, storedName), nil
}
