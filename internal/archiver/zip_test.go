package archiver

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"regexp"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "gocloud.dev/blob/memblob"

	"github.com/sir_venger/filegate/internal/models"
	"github.com/sir_venger/filegate/internal/storage"
	"github.com/sir_venger/filegate/internal/tmpfs"
)

func newTestArchiver(t *testing.T, files map[string]string) (*Archiver, *tmpfs.Store) {
	t.Helper()

	fsys := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}

	store, err := tmpfs.Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(store, storage.NewWithFilesystem(fsys)), store
}

func readArchive(t *testing.T, store *tmpfs.Store, id string) *zip.Reader {
	t.Helper()

	r, err := store.ReadStream(context.Background(), id)
	require.NoError(t, err)
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	return zr
}

func TestEmptyArchive(t *testing.T) {
	ctx := context.Background()
	a, store := newTestArchiver(t, nil)

	job, err := a.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, job.Close())

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-Za-z_]+$`), job.ID())

	zr := readArchive(t, store, job.ID())
	assert.Empty(t, zr.File)
}

func TestAddFileAndDir(t *testing.T) {
	ctx := context.Background()
	a, store := newTestArchiver(t, map[string]string{
		"top.txt":         "top",
		"docs/a.txt":      "alpha",
		"docs/sub/b.txt":  "beta",
		"unrelated/c.txt": "gamma",
	})

	job, err := a.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, job.AddFile("/top.txt"))
	require.NoError(t, job.AddDir("/docs"))
	require.NoError(t, job.Close())

	zr := readArchive(t, store, job.ID())

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	// Порядок членов — порядок добавления, каталоги с завершающим "/".
	assert.Equal(t, []string{"top.txt", "docs/", "docs/a.txt", "docs/sub/", "docs/sub/b.txt"}, names)

	rc, err := zr.Open("docs/sub/b.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "beta", string(got))
}

func TestAddMissingFileDiscards(t *testing.T) {
	ctx := context.Background()
	a, store := newTestArchiver(t, nil)

	job, err := a.Create(ctx)
	require.NoError(t, err)

	err = job.AddFile("/ghost.txt")
	require.ErrorIs(t, err, models.ErrNotFound)

	job.Discard(ctx)
	_, err = store.ReadStream(ctx, job.ID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
