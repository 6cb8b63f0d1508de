package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "websites.db")
	store, err := NewSnapshotStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoad_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	snapshots, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := map[string]string{
		"https://a.example": "Hello",
		"https://b.example": "",
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_ReplacesFullTable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string]string{
		"https://a.example": "Hello",
		"https://b.example": "X",
	}))

	// A URL absent from the new mapping is removed by the full replace.
	require.NoError(t, store.Save(ctx, map[string]string{
		"https://a.example": "World",
	}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://a.example": "World"}, got)
}

func TestSaveLoad_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := map[string]string{
		"https://a.example": "Hello",
		"https://b.example": "World",
	}
	require.NoError(t, store.Save(ctx, want))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded)
}

func TestSeed_InsertsOnlyNewURLs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string]string{"https://a.example": "Hello"}))

	require.NoError(t, store.Seed(ctx, []string{"https://a.example", "https://b.example"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"https://a.example": "Hello", // existing baseline untouched
		"https://b.example": "",
	}, got)
}

func TestSeed_EmptyList(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Seed(context.Background(), nil))

	snapshots, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestLoad_TreatsNullContentAsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `INSERT INTO websites (url, content) VALUES (?, NULL)`, "https://a.example")
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://a.example": ""}, got)
}

func TestNewSnapshotStore_ReopensExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "websites.db")
	ctx := context.Background()

	store, err := NewSnapshotStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, map[string]string{"https://a.example": "Hello"}))
	require.NoError(t, store.Close())

	reopened, err := NewSnapshotStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://a.example": "Hello"}, got)
}
