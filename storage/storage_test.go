package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
}

func TestDatedUUID_Name(t *testing.T) {
	p := DatedUUID{Root: "/data", Now: fixedNow}

	name := p.Name("alice")

	assert.Equal(t, "/data/alice", filepath.Dir(name))
	assert.Regexp(t, regexp.MustCompile(`^updated_document_2024-03-09_[0-9a-f-]{36}\.docx$`), filepath.Base(name))
	assert.NotEqual(t, name, p.Name("alice"), "every name carries a fresh uuid")
}

func TestDatedUUID_SanitizesHint(t *testing.T) {
	p := DatedUUID{Root: "/data", Prefix: "apa", Now: fixedNow}

	assert.Equal(t, "/data/.._etc", filepath.Dir(p.Name("../etc")))
	assert.Equal(t, "/data/anonymous", filepath.Dir(p.Name("  ")))
	assert.Regexp(t, `^apa_document_`, filepath.Base(p.Name("bob")))
}

func TestFileStore_Save(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root)

	path, err := s.Save(context.Background(), "alice", []byte("docx bytes"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "alice"), filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "docx bytes", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "alice"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotRegexp(t, `^\.tmp-`, e.Name(), "temp files are cleaned up")
	}
}

func TestFileStore_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(t.TempDir()).Save(ctx, "alice", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("manuscript"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint([]byte("manuscript")))
	assert.NotEqual(t, a, Fingerprint([]byte("manuscript v2")))
}

func TestGuard(t *testing.T) {
	g := NewGuard(t.TempDir())
	input := []byte("same document")

	release, err := g.Acquire(input)
	require.NoError(t, err)

	_, err = g.Acquire(input)
	assert.ErrorIs(t, err, ErrInProgress)

	other, err := g.Acquire([]byte("another document"))
	require.NoError(t, err)
	require.NoError(t, other())

	require.NoError(t, release())
	again, err := g.Acquire(input)
	require.NoError(t, err)
	require.NoError(t, again())
}
