package obd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obd-dashboard.klederson.com/internal/errors"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `{"speed": "SPEED", "rpm": "rpm", "get_dtc": "GET_DTC"}`)

	cat, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"get_dtc", "rpm", "speed"}, cat.Keys())
	cmd, ok := cat.Command(KeyRPM)
	require.True(t, ok)
	assert.Equal(t, byte(0x0C), cmd.PID)
}

func TestLoadCatalogShippedFile(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join("..", "..", "data", "commands.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Keys(), cat.Keys())
}

func TestDefaultCatalogMatchesShippedFile(t *testing.T) {
	shipped, err := LoadCatalog(filepath.Join("..", "..", "data", "commands.json"))
	require.NoError(t, err)

	def := DefaultCatalog()
	for _, key := range []string{
		KeySpeed, KeyRPM, KeyThrottle, KeyEngineLoad, KeyTimingAdvance,
		KeyCoolantTemp, KeyIntakeTemp, KeyOilTemp, KeyFuelPressure, KeyFuelRate,
		KeyMAF, KeyMaxMAF, KeyRunTime, KeyDistanceSinceClear, KeyTimeSinceClear,
		KeyGetDTC, KeyClearDTC,
	} {
		want, ok := shipped.Command(key)
		require.True(t, ok, key)
		got, ok := def.Command(key)
		require.True(t, ok, key)
		assert.Same(t, want, got, key)
	}
	assert.Equal(t, shipped.Keys(), def.Keys())
}

func TestLoadCatalogFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"malformed json", func(t *testing.T) string { return writeCatalog(t, `{"speed": `) }},
		{"unknown command", func(t *testing.T) string { return writeCatalog(t, `{"speed": "HYPERDRIVE"}`) }},
		{"non-string value", func(t *testing.T) string { return writeCatalog(t, `{"speed": 13}`) }},
		{"empty object", func(t *testing.T) string { return writeCatalog(t, `{}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCatalogLoad))
		})
	}
}
