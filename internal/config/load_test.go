package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadIniFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.ini")
	content := `[game]
base_interval = 150ms
min_interval = 20ms
seed = 42

[store]
kind = ini
path = /tmp/hs.ini

[ui]
frontend = tcell
sound = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.Timing.BaseInterval)
	assert.Equal(t, 20*time.Millisecond, cfg.Timing.MinInterval)
	assert.Equal(t, IntervalStep, cfg.Timing.IntervalStep)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "ini", cfg.StoreKind)
	assert.Equal(t, "/tmp/hs.ini", cfg.StorePath)
	assert.Equal(t, "tcell", cfg.UI)
	assert.True(t, cfg.Sound)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.ini")
	require.NoError(t, os.WriteFile(path, []byte("[store]\nkind = ini\n"), 0o644))
	t.Setenv("SNAKE_STORE", "memory")
	t.Setenv("SNAKE_BASE_INTERVAL", "80ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreKind)
	assert.Equal(t, 80*time.Millisecond, cfg.Timing.BaseInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown ui", func(t *testing.T) {
		t.Setenv("SNAKE_UI", "gtk")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("min above base", func(t *testing.T) {
		t.Setenv("SNAKE_MIN_INTERVAL", "500ms")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrMinAboveBase)
	})
}

func TestTimingValidate(t *testing.T) {
	assert.NoError(t, DefaultTiming().Validate())

	bad := DefaultTiming()
	bad.BaseInterval = 0
	assert.ErrorIs(t, bad.Validate(), ErrNonPositiveInterval)
}
