// SPDX-License-Identifier: MIT

package config_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/probcalc/config"
	"github.com/katalvlaran/probcalc/dice"
	"github.com/katalvlaran/probcalc/exact"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Family:         config.FamilyExact,
		TargetParts:    0,
		Slack:          1.1,
		Workers:        1,
		MaxDenominator: exact.DefaultMaxDenominator,
		LogLevel:       slog.LevelWarn,
	}, cfg)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"PROBCALC_FAMILY":          "numeric",
		"PROBCALC_TARGET_PARTS":    "50",
		"PROBCALC_SLACK":           "1.5",
		"PROBCALC_WORKERS":         "4",
		"PROBCALC_MAX_DENOMINATOR": "0",
		"PROBCALC_LOG_LEVEL":       "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, config.FamilyNumeric, cfg.Family)
	assert.Equal(t, 50, cfg.TargetParts)
	assert.Equal(t, 1.5, cfg.Slack)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, int64(0), cfg.MaxDenominator)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFrom_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want error
	}{
		{"family", map[string]string{"PROBCALC_FAMILY": "quantum"}, config.ErrUnknownFamily},
		{"slack", map[string]string{"PROBCALC_SLACK": "0.5"}, config.ErrInvalidValue},
		{"slack inf", map[string]string{"PROBCALC_SLACK": "Inf"}, config.ErrInvalidValue},
		{"slack nan", map[string]string{"PROBCALC_SLACK": "NaN"}, config.ErrInvalidValue},
		{"workers", map[string]string{"PROBCALC_WORKERS": "0"}, config.ErrInvalidValue},
		{"target", map[string]string{"PROBCALC_TARGET_PARTS": "-3"}, config.ErrInvalidValue},
		{"denominator", map[string]string{"PROBCALC_MAX_DENOMINATOR": "-1"}, config.ErrInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFrom(tc.env)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.LoadFrom(map[string]string{"PROBCALC_WORKERS": "many"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_ProcessEnv(t *testing.T) {
	t.Setenv("PROBCALC_FAMILY", "numeric")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.FamilyNumeric, cfg.Family)
}

// TestOptions feeds converted options into both families.
func TestOptions(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"PROBCALC_TARGET_PARTS": "5"})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ex, err := dice.Evaluate("4d6", dice.Exact(cfg.ExactOptions(logger)...))
	require.NoError(t, err)
	assert.LessOrEqual(t, ex.Len(), 5)

	nu, err := dice.Evaluate("4d6", dice.Numeric(cfg.NumericOptions(logger)...))
	require.NoError(t, err)
	assert.LessOrEqual(t, nu.Len(), 5)
}
