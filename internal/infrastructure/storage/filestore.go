package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
)

var _ reconcile.FileStore = (*LocalFileStore)(nil)

// LocalFileStore persists uploaded attachments under a base directory and
// returns paths relative to it. Extension checks happen before any write.
type LocalFileStore struct {
	baseDir string
}

// NewLocalFileStore builds the store; the directory is created on demand.
func NewLocalFileStore(baseDir string) *LocalFileStore {
	return &LocalFileStore{baseDir: baseDir}
}

// Store writes data under a uuid filename with the given extension. A
// disallowed extension is rejected without touching the filesystem.
func (s *LocalFileStore) Store(data []byte, extension string, allowed []string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	permitted := false
	for _, a := range allowed {
		if ext == a {
			permitted = true
			break
		}
	}
	if !permitted {
		return "", fmt.Errorf("%w: .%s", domain.ErrFileTypeNotAllowed, ext)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	relPath := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, relPath), data, 0o644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return relPath, nil
}

// Remove deletes a stored attachment; used as compensating cleanup when the
// surrounding unit of work fails after the file was written.
func (s *LocalFileStore) Remove(relativePath string) error {
	if relativePath == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, relativePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove attachment: %w", err)
	}
	return nil
}
