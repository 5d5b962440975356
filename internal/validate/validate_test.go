package validate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosecraft/prosecraft/internal/config"
	"github.com/prosecraft/prosecraft/internal/storage"
)

func statuses(r Result) map[string]Status {
	out := make(map[string]Status, len(r.Items))
	for _, item := range r.Items {
		out[item.Name] = item.Status
	}
	return out
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	missing := Config(ctx, filepath.Join(dir, "prosecraft.yaml"))
	assert.True(t, missing.OK())
	assert.Len(t, missing.Warnings, 1)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("storage:\n  backend: floppy\n"), 0o600))
	result := Config(ctx, bad)
	assert.False(t, result.OK())
	assert.Equal(t, StatusError, statuses(result)["bad.yaml"])

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, config.DefaultConfig().Save(good))
	assert.True(t, Config(ctx, good).OK())
}

func TestAnalysis(t *testing.T) {
	cfg := config.DefaultConfig().Analysis

	result := Analysis(context.Background(), cfg)
	assert.True(t, result.OK())
	assert.Equal(t, StatusWarning, statuses(result)["api key"])

	cfg.APIKey = "secret"
	cfg.Endpoint = "not a url"
	result = Analysis(context.Background(), cfg)
	assert.False(t, result.OK())
	assert.Equal(t, StatusSuccess, statuses(result)["api key"])
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	result := Storage(ctx, "memory", store)
	assert.True(t, result.OK())
	_, ok, err := store.Get(ctx, probeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	result = Storage(ctx, "broken", brokenStore{})
	assert.False(t, result.OK())
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "theme", "light"))
	require.NoError(t, store.Set(ctx, "fontSize", "huge"))

	result := Preferences(ctx, store)
	got := statuses(result)

	assert.Equal(t, StatusSuccess, got["theme"])
	assert.Equal(t, StatusWarning, got["fontSize"])
	assert.Equal(t, StatusPending, got["colorScheme"])
	assert.Equal(t, StatusPending, got["layoutDensity"])
	assert.Len(t, result.Warnings, 1)
	assert.True(t, result.OK())
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("offline")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("offline") }
func (brokenStore) Remove(context.Context, string) error      { return errors.New("offline") }
