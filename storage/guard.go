package storage

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/zeebo/blake3"
)

// ErrInProgress is returned when another run already holds the input.
var ErrInProgress = errors.New("document is already being processed")

// Fingerprint returns the hex BLAKE3 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Guard hands out per-input locks so the same document is never processed
// by two runs at once, across goroutines and processes.
type Guard struct {
	dir string
}

// NewGuard keeps its lock files in dir.
func NewGuard(dir string) *Guard {
	return &Guard{dir: dir}
}

// Acquire locks the input identified by data without blocking. It returns
// ErrInProgress when the input is locked elsewhere. The returned function
// releases the lock.
func (g *Guard) Acquire(data []byte) (release func() error, err error) {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory %s: %w", g.dir, err)
	}
	path := filepath.Join(g.dir, Fingerprint(data)+".lock")
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !ok {
		return nil, ErrInProgress
	}
	return func() error {
		if err := lock.Unlock(); err != nil {
			return fmt.Errorf("failed to release lock on %s: %w", path, err)
		}
		return nil
	}, nil
}
