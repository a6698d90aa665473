package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSkyBattle loads Sky Battle configuration.
// Search order: customPath -> ~/.skybattle/configs/skybattle.yaml -> ./configs/skybattle.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. Paths ending in .toml are decoded as TOML.
func LoadSkyBattle(customPath string) (SkyBattleConfig, error) {
	cfg := DefaultSkyBattleConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath("skybattle.yaml"), filepath.Join("configs", "skybattle.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultSkyBattleConfig()
		if err := decode(path, data, &fileCfg); err != nil {
			continue
		}
		if fileCfg.Validate() != nil {
			continue
		}
		return fileCfg, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSkyBattleYAML, &cfg); err != nil {
		return DefaultSkyBattleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *SkyBattleConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skybattle", "configs", filename)
}

// Validate reports every configuration value that would break the
// simulation.
func (c SkyBattleConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield must have positive size")
	check(c.EnemyMaxY() >= 0, "enemy_spawn_margin %v exceeds playfield height", c.Playfield.EnemySpawnMargin)
	check(c.Player.MinY <= c.Player.MaxY, "player min_y must not exceed max_y")
	check(c.Boss.MinY <= c.Boss.MaxY, "boss min_y must not exceed max_y")
	check(c.Enemy.Health > 0, "enemy health must be positive")
	check(c.Boss.Health > 0, "boss health must be positive")
	check(c.Boss.MoveRepeats > 0, "boss move_repeats must be positive")
	check(c.Boss.FramesPerMove > 0, "boss frames_per_move must be positive")
	check(c.Boss.ShieldFrames > 0, "boss shield_frames must be positive")
	for name, p := range map[string]float64{
		"enemy fire_rate":             c.Enemy.FireRate,
		"boss fire_rate":              c.Boss.FireRate,
		"boss shield_probability":     c.Boss.ShieldProbability,
		"level one spawn_probability": c.Levels.One.SpawnProbability,
	} {
		check(p >= 0 && p <= 1, "%s %v must be within [0, 1]", name, p)
	}
	check(c.Levels.One.RosterSize > 0, "level one roster_size must be positive")
	check(c.Levels.One.KillTarget > 0, "level one kill_target must be positive")
	for name, lvl := range map[string]int{
		"one":   c.Levels.One.PlayerHealth,
		"two":   c.Levels.Two.PlayerHealth,
		"three": c.Levels.Three.PlayerHealth,
		"four":  c.Levels.Four.PlayerHealth,
	} {
		check(lvl > 0, "level %s player_health must be positive", name)
	}

	return errors.Join(errs...)
}

// ApplySkyBattlePreset modifies the config based on a difficulty preset.
// Normal and empty presets leave the config untouched.
func ApplySkyBattlePreset(cfg *SkyBattleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.FireRate *= 0.5
		cfg.Boss.FireRate *= 0.5
		cfg.Boss.ShieldProbability *= 0.5
		cfg.Levels.One.KillTarget = max(1, cfg.Levels.One.KillTarget*7/10)
		cfg.Levels.One.PlayerHealth += 2
		cfg.Levels.Two.PlayerHealth += 2
		cfg.Levels.Three.PlayerHealth += 2
		cfg.Levels.Four.PlayerHealth += 2
	case DifficultyHard:
		cfg.Enemy.FireRate *= 2
		cfg.Boss.FireRate = min(1, cfg.Boss.FireRate*1.5)
		cfg.Boss.ShieldProbability *= 2
		cfg.Levels.One.SpawnProbability = min(1, cfg.Levels.One.SpawnProbability*1.5)
		cfg.Levels.One.PlayerHealth = max(1, cfg.Levels.One.PlayerHealth-2)
		cfg.Levels.Two.PlayerHealth = max(1, cfg.Levels.Two.PlayerHealth-2)
		cfg.Levels.Three.PlayerHealth = max(1, cfg.Levels.Three.PlayerHealth-1)
		cfg.Levels.Four.PlayerHealth = max(1, cfg.Levels.Four.PlayerHealth-1)
	}
}
