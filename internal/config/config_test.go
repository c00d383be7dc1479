package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Addr:       DefaultAddr,
		ResultsDir: DefaultResultsDir,
		Chip:       DefaultChip,
		Pin:        DefaultPin,
		Debounce:   20 * time.Millisecond,
		LogLevel:   zerolog.InfoLevel,
	}, cfg)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse([]string{
		"-addr", "127.0.0.1:8080",
		"-results", "/tmp/out",
		"-pin", "27",
		"-debounce", "50ms",
		"-no-gpio",
		"-log-level", "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "/tmp/out", cfg.ResultsDir)
	assert.Equal(t, 27, cfg.Pin)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.NoGPIO)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-port", "80"}},
		{"empty addr", []string{"-addr", ""}},
		{"empty results", []string{"-results", ""}},
		{"negative pin", []string{"-pin", "-1"}},
		{"bad duration", []string{"-debounce", "soon"}},
		{"negative debounce", []string{"-debounce", "-1ms"}},
		{"bad level", []string{"-log-level", "loud"}},
		{"stray args", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			assert.Error(t, err)
		})
	}
}
