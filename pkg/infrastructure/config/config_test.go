package config

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogDevelopment)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 3, cfg.BestOffers)
	assert.Equal(t, 10000, cfg.MemoCapacity)
	assert.Equal(t, int32(2), cfg.DisplayPrecision)
	assert.Equal(t, ".", cfg.DecimalSeparator)
	assert.Equal(t, "", cfg.CurrencySymbol)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RXPROCURE_LOG_LEVEL", "debug")
	t.Setenv("RXPROCURE_LOG_DEVELOPMENT", "true")
	t.Setenv("RXPROCURE_WORKERS", "8")
	t.Setenv("RXPROCURE_BEST_OFFERS", "5")
	t.Setenv("RXPROCURE_DISPLAY_PRECISION", "3")
	t.Setenv("RXPROCURE_DECIMAL_SEPARATOR", ",")
	t.Setenv("RXPROCURE_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogDevelopment)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 5, cfg.BestOffers)
	assert.Equal(t, int32(3), cfg.DisplayPrecision)
	assert.Equal(t, ",", cfg.DecimalSeparator)
	assert.Equal(t, "€", cfg.CurrencySymbol)
}

func TestLoad_UnparsableNumberFallsBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RXPROCURE_BEST_OFFERS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.BestOffers)
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"zero workers", "RXPROCURE_WORKERS", "0"},
		{"negative best offers", "RXPROCURE_BEST_OFFERS", "-1"},
		{"negative precision", "RXPROCURE_DISPLAY_PRECISION", "-2"},
		{"odd separator", "RXPROCURE_DECIMAL_SEPARATOR", ";"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
