package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PROFILE_PATH", "")
	t.Setenv("RNG_SEED", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TICK_INTERVAL", "")
	t.Setenv("SAVE_INTERVAL", "")
	t.Setenv("ES_RETENTION", "")
	t.Setenv("ES_URL", "")
	t.Setenv("ES_USERNAME", "")
	t.Setenv("ES_PASSWORD", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, filepath.Join(dir, "data", "profile.json"), cfg.ProfilePath)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, 5*time.Minute, cfg.SaveInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.ESRetention)
	assert.Equal(t, int64(0), cfg.RNGSeed)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.False(t, cfg.ArchiveEnabled())
	assert.False(t, cfg.APIEnabled())
	assert.True(t, cfg.IsDevelopment())
	assert.DirExists(t, filepath.Join(dir, "data"))
}

func TestLoadSQLiteProfilePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("STORE_DRIVER", StoreSQLite)
	t.Setenv("PROFILE_PATH", "")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ES_URL", "http://localhost:9200")
	t.Setenv("ES_USERNAME", "")
	t.Setenv("ES_PASSWORD", "")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "profile.db"), cfg.ProfilePath)
	assert.Equal(t, int64(42), cfg.RNGSeed)
	assert.True(t, cfg.ArchiveEnabled())
	assert.True(t, cfg.APIEnabled())
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{"Unknown store driver", "STORE_DRIVER", "postgres"},
		{"Bad seed", "RNG_SEED", "lucky"},
		{"Bad timezone", "TIMEZONE", "Mars/Olympus_Mons"},
		{"Bad tick", "TICK_INTERVAL", "often"},
		{"Negative save interval", "SAVE_INTERVAL", "-1m"},
		{"Bad retention", "ES_RETENTION", "forever"},
		{"Half credentials", "ES_USERNAME", "elastic"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("DATA_DIR", dir)
			t.Setenv("STORE_DRIVER", StoreMemory)
			t.Setenv("RNG_SEED", "")
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv("TICK_INTERVAL", "")
			t.Setenv("SAVE_INTERVAL", "")
			t.Setenv("ES_RETENTION", "")
			t.Setenv("ES_USERNAME", "")
			t.Setenv("ES_PASSWORD", "")
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
