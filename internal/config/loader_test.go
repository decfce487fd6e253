package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := parse(defaultRulesYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_CustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
timing:
  challenge_seconds: 90
scoring:
  perfect_margin: 4
  rewards:
    easy: 12
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Timing.ChallengeSeconds)
	assert.Equal(t, 4, cfg.Scoring.PerfectMargin)
	assert.Equal(t, 12, cfg.Scoring.Rewards.Easy)
	// Untouched keys keep defaults.
	assert.Equal(t, 1000, cfg.Timing.MatchDelayMs)
	assert.Equal(t, 20, cfg.Scoring.Rewards.Challenge)
	assert.Equal(t, 4, cfg.Board.Columns)
}

func TestLoad_CustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_CustomPathInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_RejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
local:
  min_pairs: 12
  max_pairs: 8
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Rules)
		wantErr bool
	}{
		{"defaults", func(*Rules) {}, false},
		{"zero tick", func(r *Rules) { r.Timing.TickIntervalMs = 0 }, true},
		{"negative delay", func(r *Rules) { r.Timing.MatchDelayMs = -1 }, true},
		{"zero delay allowed", func(r *Rules) { r.Timing.MatchDelayMs = 0 }, false},
		{"custom bounds inverted", func(r *Rules) { r.Presets.CustomMaxRows = 1 }, true},
		{"negative reward", func(r *Rules) { r.Scoring.Rewards.Hard = -5 }, true},
		{"empty alias", func(r *Rules) { r.Profile.DefaultAlias = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimingDurations(t *testing.T) {
	timing := Default().Timing
	assert.Equal(t, "1s", timing.MatchDelay().String())
	assert.Equal(t, "1s", timing.TickInterval().String())
}
