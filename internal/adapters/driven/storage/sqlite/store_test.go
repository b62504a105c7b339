package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrations_RunTwice(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestTrendStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing role", func(t *testing.T) {
		_, err := store.LatestSnapshot(ctx, "never analyzed")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, "Data Scientist", 42))

		snap, err := store.LatestSnapshot(ctx, "data scientist")
		require.NoError(t, err)
		assert.Equal(t, "data_scientist", snap.Role)
		assert.Equal(t, 42, snap.JobCount)
		assert.WithinDuration(t, time.Now().UTC(), snap.TakenAt, time.Minute)
	})

	t.Run("latest wins", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, "devops", 10))
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, store.SaveSnapshot(ctx, "devops", 25))

		snap, err := store.LatestSnapshot(ctx, "devops")
		require.NoError(t, err)
		assert.Equal(t, 25, snap.JobCount)
	})
}

func TestSessionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("empty session before save", func(t *testing.T) {
		mem, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.False(t, mem.HasResume())
		assert.False(t, mem.HasJob())
	})

	t.Run("save and load round trip", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		saved := &domain.SessionMemory{
			ResumeText:       "resume body",
			JobDescription:   "job body",
			UploadedFilename: "resume.pdf",
			UploadedAt:       now,
			JobStoredAt:      now,
		}
		require.NoError(t, store.SaveSession(ctx, saved))

		mem, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "resume body", mem.ResumeText)
		assert.Equal(t, "job body", mem.JobDescription)
		assert.Equal(t, "resume.pdf", mem.UploadedFilename)
		assert.True(t, mem.UploadedAt.Equal(now))
	})

	t.Run("upsert replaces", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, &domain.SessionMemory{ResumeText: "second resume"}))

		mem, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second resume", mem.ResumeText)
		assert.Empty(t, mem.JobDescription)
		assert.True(t, mem.UploadedAt.IsZero(), "zero time stored as NULL")
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.ClearSession(ctx))

		mem, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.False(t, mem.HasResume())
	})
}
