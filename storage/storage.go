// Package storage persists corrected documents and guards against processing
// the same input twice at once.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Saver stores a corrected document and returns where it went.
type Saver interface {
	Save(ctx context.Context, nameHint string, data []byte) (string, error)
}

// NamingPolicy chooses the path of a saved document.
type NamingPolicy interface {
	Name(nameHint string) string
}

// DatedUUID names documents "<Prefix>_document_<YYYY-MM-DD>_<uuid>.docx"
// inside Root/<nameHint>/.
type DatedUUID struct {
	Root   string
	Prefix string
	Now    func() time.Time // nil means time.Now
}

// Name implements NamingPolicy.
func (p DatedUUID) Name(nameHint string) string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	prefix := p.Prefix
	if prefix == "" {
		prefix = "updated"
	}
	file := fmt.Sprintf("%s_document_%s_%s.docx", prefix, now().Format("2006-01-02"), uuid.NewString())
	return filepath.Join(p.Root, sanitize(nameHint), file)
}

// sanitize keeps a name hint to a single path element.
func sanitize(hint string) string {
	hint = strings.TrimSpace(hint)
	hint = strings.NewReplacer("/", "_", `\`, "_").Replace(hint)
	if hint == "" || hint == "." || hint == ".." {
		return "anonymous"
	}
	return hint
}

// FileStore writes documents to the local filesystem.
type FileStore struct {
	Naming NamingPolicy
}

// NewFileStore returns a FileStore that uses the DatedUUID policy under root.
func NewFileStore(root string) *FileStore {
	return &FileStore{Naming: DatedUUID{Root: root}}
}

// Save writes data atomically while holding a lock on the target directory.
func (s *FileStore) Save(ctx context.Context, nameHint string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.Naming.Name(nameHint)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, ".lock"))
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return "", fmt.Errorf("failed to acquire lock on %s: %w", dir, err)
	}
	if !locked {
		return "", fmt.Errorf("failed to acquire lock on %s", dir)
	}
	defer lock.Unlock()

	if err := atomicWrite(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// atomicWrite writes data to a temp file in the target directory and renames
// it into place, so readers never see a partial document.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}
