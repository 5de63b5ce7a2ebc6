package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tuberelay/internal/relay"
	"tuberelay/pkg/logging"
)

// LocalDirStore copies produced files into a directory served by this
// process's own audio route. Used when PUBLIC_BASE_URL points back at the
// service instead of an object store.
type LocalDirStore struct {
	dir    string
	logger *logging.Logger
}

// NewLocalDirStore creates the media directory if needed.
func NewLocalDirStore(dir string, logger *logging.Logger) (*LocalDirStore, error) {
	if logger == nil {
		logger = logging.Default()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolving media dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating media dir: %w", err)
	}
	return &LocalDirStore{dir: abs, logger: logger}, nil
}

var _ relay.Uploader = (*LocalDirStore)(nil)

// Dir returns the absolute media directory.
func (l *LocalDirStore) Dir() string { return l.dir }

// Upload copies the local file into the media directory under name.
func (l *LocalDirStore) Upload(_ context.Context, localPath, name string) error {
	if !validFilename(name) {
		return fmt.Errorf("storage: invalid media name %q", name)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", localPath, err)
	}
	defer src.Close()

	dstPath := filepath.Join(l.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("storage: copy to %s: %w", dstPath, err)
	}

	l.logger.Info("published audio to media dir", "path", dstPath)
	return nil
}

// validFilename rejects anything that could escape the media directory.
func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
