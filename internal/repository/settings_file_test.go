package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettingsFile(t *testing.T) *SettingsFile {
	t.Helper()
	return NewSettingsFile(filepath.Join(t.TempDir(), "app_settings.json"), time.Minute)
}

func TestSettingsFile_LoadAbsent(t *testing.T) {
	store := newTestSettingsFile(t)

	settings := store.Load(context.Background())

	assert.Equal(t, entity.Settings{}, settings)
}

func TestSettingsFile_SaveLoadRoundTrip(t *testing.T) {
	store := newTestSettingsFile(t)
	want := entity.Settings{
		APIKey:          "sk-test",
		TechnicalChecks: "security, scalability",
	}

	require.NoError(t, store.Save(context.Background(), want))

	assert.Equal(t, want, store.Load(context.Background()))
	// Second load hits the cache and must agree.
	assert.Equal(t, want, store.Load(context.Background()))
}

func TestSettingsFile_SaveOverwrites(t *testing.T) {
	store := newTestSettingsFile(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.Settings{APIKey: "first"}))
	_ = store.Load(ctx) // warm the cache

	require.NoError(t, store.Save(ctx, entity.Settings{APIKey: "second"}))

	assert.Equal(t, "second", store.Load(ctx).APIKey, "save invalidates the cached record")
}

func TestSettingsFile_LoadUnparsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewSettingsFile(path, time.Minute)

	assert.Equal(t, entity.Settings{}, store.Load(context.Background()))
}

func TestSettingsFile_ClearIsIdempotent(t *testing.T) {
	store := newTestSettingsFile(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.Settings{APIKey: "sk-test"}))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, entity.Settings{}, store.Load(ctx))

	// Clearing an absent file is not an error.
	require.NoError(t, store.Clear(ctx))
}
