package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var fromYAML SkyBattleConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))
	assert.Equal(t, DefaultSkyBattleConfig(), fromYAML)
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, DefaultSkyBattleConfig().Validate())
}

func TestLoadCustomYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("boss:\n  health: 40\nlevels:\n  one:\n    kill_target: 3\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadSkyBattle(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Boss.Health)
	assert.Equal(t, 3, cfg.Levels.One.KillTarget)
	// Untouched keys keep default values.
	assert.Equal(t, 500, cfg.Boss.ShieldFrames)
	assert.Equal(t, 1300.0, cfg.Playfield.Width)
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[enemy]\nfire_rate = 0.5\n\n[levels.four]\nplayer_health = 9\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadSkyBattle(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Enemy.FireRate)
	assert.Equal(t, 9, cfg.Levels.Four.PlayerHealth)
	assert.Equal(t, -6.0, cfg.Enemy.Velocity)
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSkyBattle(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("boss: [unclosed"), 0o644))
	_, err = LoadSkyBattle(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("boss:\n  shield_probability: 2\n"), 0o644))
	_, err = LoadSkyBattle(invalid)
	assert.ErrorContains(t, err, "boss shield_probability")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkyBattleConfig)
		want   string
	}{
		{"zero boss health", func(c *SkyBattleConfig) { c.Boss.Health = 0 }, "boss health"},
		{"inverted player band", func(c *SkyBattleConfig) { c.Player.MinY = 700 }, "player min_y"},
		{"negative spawn probability", func(c *SkyBattleConfig) { c.Levels.One.SpawnProbability = -0.1 }, "spawn_probability"},
		{"no kill target", func(c *SkyBattleConfig) { c.Levels.One.KillTarget = 0 }, "kill_target"},
		{"dead on arrival", func(c *SkyBattleConfig) { c.Levels.Three.PlayerHealth = 0 }, "level three player_health"},
		{"zero frames per move", func(c *SkyBattleConfig) { c.Boss.FramesPerMove = 0 }, "frames_per_move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSkyBattleConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultSkyBattleConfig()

	easy := DefaultSkyBattleConfig()
	ApplySkyBattlePreset(&easy, DifficultyEasy)
	assert.Less(t, easy.Boss.FireRate, base.Boss.FireRate)
	assert.Greater(t, easy.Levels.Four.PlayerHealth, base.Levels.Four.PlayerHealth)
	assert.NoError(t, easy.Validate())

	hard := DefaultSkyBattleConfig()
	ApplySkyBattlePreset(&hard, DifficultyHard)
	assert.Greater(t, hard.Enemy.FireRate, base.Enemy.FireRate)
	assert.Equal(t, 1, hard.Levels.Four.PlayerHealth)
	assert.NoError(t, hard.Validate())

	normal := DefaultSkyBattleConfig()
	ApplySkyBattlePreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParsePreset("hard"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset("nightmare"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset(""))
}
