package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosecraft/prosecraft/internal/config"
	"github.com/prosecraft/prosecraft/internal/storage"
)

func exerciseStore(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "theme", "light"))
	require.NoError(t, s.Set(ctx, "fontSize", "large"))
	require.NoError(t, s.Set(ctx, "theme", "auto"))

	v, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "auto", v)

	require.NoError(t, s.Remove(ctx, "theme"))
	require.NoError(t, s.Remove(ctx, "theme"))

	_, ok, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get(ctx, "fontSize")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "large", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, storage.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s := storage.NewFileStore(filepath.Join(t.TempDir(), "nested", "preferences.yaml"))
	exerciseStore(t, s)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	ctx := context.Background()

	require.NoError(t, storage.NewFileStore(path).Set(ctx, "colorScheme", "purple"))

	v, ok, err := storage.NewFileStore(path).Get(ctx, "colorScheme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "purple", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0o600))
	s := storage.NewFileStore(path)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "theme")
	assert.ErrorIs(t, err, storage.ErrCorruptDocument)

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestFileStore_UnreadableFileIsKept(t *testing.T) {
	// A directory at the store path cannot be read as a file.
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o600))
	s := storage.NewFileStore(path)
	ctx := context.Background()

	err := s.Set(ctx, "theme", "dark")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrCorruptDocument)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
	_, statErr = os.Stat(filepath.Join(path, "keep"))
	assert.NoError(t, statErr)
}

func TestSQLiteStore(t *testing.T) {
	s, err := storage.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "prosecraft.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := storage.NewSQLiteStore(context.Background(), "")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	srv := miniredis.RunT(t)

	s, err := storage.NewRedisStore(context.Background(), storage.RedisOptions{Address: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "layoutDensity", "compact"))
	got, err := srv.Get("prosecraft:layoutDensity")
	require.NoError(t, err)
	assert.Equal(t, "compact", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "default file", cfg: config.StorageConfig{}},
		{name: "memory", cfg: config.StorageConfig{Backend: storage.BackendMemory}},
		{name: "sqlite", cfg: config.StorageConfig{Backend: storage.BackendSQLite}},
		{name: "redis without address", cfg: config.StorageConfig{Backend: storage.BackendRedis}, wantErr: true},
		{name: "unknown", cfg: config.StorageConfig{Backend: "floppy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.Open(ctx, tt.cfg, dir, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			require.NoError(t, s.Set(ctx, "theme", "dark"))
		})
	}
}

func TestLocation(t *testing.T) {
	dir := filepath.Join("home", "data")

	assert.Equal(t, filepath.Join(dir, "preferences.yaml"), storage.Location(config.StorageConfig{}, dir))
	assert.Equal(t, filepath.Join(dir, "prosecraft.db"), storage.Location(config.StorageConfig{Backend: storage.BackendSQLite}, dir))
	assert.Equal(t, "/tmp/p.db", storage.Location(config.StorageConfig{Backend: storage.BackendSQLite, Path: "/tmp/p.db"}, dir))
	assert.Equal(t, `redis://cache:6379/2 (keys prefixed "pc:")`, storage.Location(config.StorageConfig{
		Backend: storage.BackendRedis,
		Redis:   config.RedisConfig{Address: "cache:6379", DB: 2, Prefix: "pc:"},
	}, dir))
}
