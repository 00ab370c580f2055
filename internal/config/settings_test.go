package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "192.168.0.10", s.Host)
	assert.Equal(t, 35000, s.Port)
	assert.Equal(t, 100*time.Millisecond, s.RefreshInterval)
	assert.Equal(t, config.DefaultCommandsFile, s.CommandsFile)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "192.168.0.10:35000", s.Address())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obd-dashboard.yaml")
	content := []byte(`
host: 10.0.0.5
port: 3500
refresh_interval: 250ms
log_level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	s, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", s.Host)
	assert.Equal(t, 3500, s.Port)
	assert.Equal(t, 250*time.Millisecond, s.RefreshInterval)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, config.DefaultQueryTimeout, s.QueryTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TESTOBD_HOST", "127.0.0.1")
	t.Setenv("TESTOBD_PORT", "6789")

	s, err := config.Load(config.WithEnvPrefix("TESTOBD"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6789", s.Address())
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh_interval: 0s\n"), 0o600))

	_, err := config.Load(config.WithConfigFile(path))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidConfig))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated\n"), 0o600))

	_, err := config.Load(config.WithConfigFile(path))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrReadConfig))
}

func TestEmptyEnvPrefix(t *testing.T) {
	_, err := config.Load(config.WithEnvPrefix(""))
	assert.True(t, errors.IsCode(err, errors.ErrInvalidConfig))
}
