package tmpfs

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "gocloud.dev/blob/memblob"

	"github.com/sir_venger/filegate/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestNewTicketID(t *testing.T) {
	idPattern := regexp.MustCompile(`^[0-9A-Za-z_]+$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewTicketID()
		assert.Regexp(t, idPattern, id)
		assert.False(t, seen[id], "ticket id collision")
		seen[id] = true
		// Санитизация для валидного тикета ничего не теряет.
		assert.Equal(t, id, Sanitize(id))
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "abc;rm -rf", want: "abcrmrf"},
		{in: "../../etc/passwd", want: "etcpasswd"},
		{in: "normal_Ticket42", want: "normal_Ticket42"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Sanitize(tc.in))
	}
}

func TestWriteReadRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	id := NewTicketID()

	w, err := store.NewWriter(ctx, id)
	require.NoError(t, err)
	_, err = w.Write([]byte("archive bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := store.ReadStream(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(len("archive bytes")), r.Size())
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "archive bytes", string(got))

	require.NoError(t, store.Remove(ctx, id))
	_, err = store.ReadStream(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Повторное удаление идемпотентно.
	assert.NoError(t, store.Remove(ctx, id))
}

func TestReadStream_UnknownTicket(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ReadStream(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTotalBytes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, size := range []int{10, 20, 30} {
		w, err := store.NewWriter(ctx, NewTicketID())
		require.NoError(t, err)
		_, err = w.Write(make([]byte, size))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	total, err := store.TotalBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(60), total)
}

func TestSweepOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	id := NewTicketID()

	w, err := store.NewWriter(ctx, id)
	require.NoError(t, err)
	_, err = w.Write([]byte("stale"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Свежий артефакт переживает уборку, просроченный — нет.
	require.NoError(t, store.sweepOnce(ctx, time.Hour))
	r, err := store.ReadStream(ctx, id)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.sweepOnce(ctx, 10*time.Millisecond))
	_, err = store.ReadStream(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
