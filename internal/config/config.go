// Package config provides YAML/TOML game configuration loading and
// difficulty presets for Sky Battle.
package config

// SkyBattleConfig contains all tunable parameters of the simulation.
// Distances are in playfield units, velocities in units per tick and
// probabilities are per tick.
type SkyBattleConfig struct {
	Playfield   PlayfieldConfig   `yaml:"playfield" toml:"playfield"`
	Player      PlayerConfig      `yaml:"player" toml:"player"`
	Enemy       EnemyConfig       `yaml:"enemy" toml:"enemy"`
	Boss        BossConfig        `yaml:"boss" toml:"boss"`
	Projectiles ProjectilesConfig `yaml:"projectiles" toml:"projectiles"`
	Levels      LevelsConfig      `yaml:"levels" toml:"levels"`
}

// Size is the intrinsic hitbox of an entity.
type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlayfieldConfig defines the simulated screen.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	// EnemySpawnMargin is subtracted from Height to get the lowest y an
	// enemy may spawn at.
	EnemySpawnMargin float64 `yaml:"enemy_spawn_margin" toml:"enemy_spawn_margin"`
	// CullMargin is how far past the playfield edge a projectile may travel
	// before it is discarded.
	CullMargin float64 `yaml:"cull_margin" toml:"cull_margin"`
}

// PlayerConfig defines the player craft.
type PlayerConfig struct {
	X                 float64 `yaml:"x" toml:"x"`
	Y                 float64 `yaml:"y" toml:"y"`
	Size              Size    `yaml:"size" toml:"size"`
	Speed             float64 `yaml:"speed" toml:"speed"`
	MinY              float64 `yaml:"min_y" toml:"min_y"`
	MaxY              float64 `yaml:"max_y" toml:"max_y"`
	ProjectileX       float64 `yaml:"projectile_x" toml:"projectile_x"`
	ProjectileYOffset float64 `yaml:"projectile_y_offset" toml:"projectile_y_offset"`
}

// EnemyConfig defines ordinary enemy craft.
type EnemyConfig struct {
	Size              Size    `yaml:"size" toml:"size"`
	Velocity          float64 `yaml:"velocity" toml:"velocity"`
	Health            int     `yaml:"health" toml:"health"`
	FireRate          float64 `yaml:"fire_rate" toml:"fire_rate"`
	ProjectileXOffset float64 `yaml:"projectile_x_offset" toml:"projectile_x_offset"`
	ProjectileYOffset float64 `yaml:"projectile_y_offset" toml:"projectile_y_offset"`
}

// BossConfig defines the boss craft and its behavior.
type BossConfig struct {
	X                 float64 `yaml:"x" toml:"x"`
	Y                 float64 `yaml:"y" toml:"y"`
	Size              Size    `yaml:"size" toml:"size"`
	Health            int     `yaml:"health" toml:"health"`
	Speed             float64 `yaml:"speed" toml:"speed"`
	MoveRepeats       int     `yaml:"move_repeats" toml:"move_repeats"`       // Copies of {+v, -v, 0} in the move pattern
	FramesPerMove     int     `yaml:"frames_per_move" toml:"frames_per_move"` // Ticks spent on one pattern entry
	MinY              float64 `yaml:"min_y" toml:"min_y"`
	MaxY              float64 `yaml:"max_y" toml:"max_y"`
	FireRate          float64 `yaml:"fire_rate" toml:"fire_rate"`
	ShieldProbability float64 `yaml:"shield_probability" toml:"shield_probability"`
	ShieldFrames      int     `yaml:"shield_frames" toml:"shield_frames"`
	ProjectileX       float64 `yaml:"projectile_x" toml:"projectile_x"`
	ProjectileYOffset float64 `yaml:"projectile_y_offset" toml:"projectile_y_offset"`
}

// ProjectileConfig defines one projectile kind.
type ProjectileConfig struct {
	Size     Size    `yaml:"size" toml:"size"`
	Velocity float64 `yaml:"velocity" toml:"velocity"`
}

// ProjectilesConfig groups the three projectile kinds.
type ProjectilesConfig struct {
	Player ProjectileConfig `yaml:"player" toml:"player"`
	Enemy  ProjectileConfig `yaml:"enemy" toml:"enemy"`
	Boss   ProjectileConfig `yaml:"boss" toml:"boss"`
}

// RosterLevelConfig defines a level that keeps a roster of ordinary enemies
// topped up until the kill target is reached.
type RosterLevelConfig struct {
	PlayerHealth     int     `yaml:"player_health" toml:"player_health"`
	RosterSize       int     `yaml:"roster_size" toml:"roster_size"`
	SpawnProbability float64 `yaml:"spawn_probability" toml:"spawn_probability"`
	KillTarget       int     `yaml:"kill_target" toml:"kill_target"`
}

// BossLevelConfig defines a boss fight.
type BossLevelConfig struct {
	PlayerHealth int `yaml:"player_health" toml:"player_health"`
	BossHealth   int `yaml:"boss_health" toml:"boss_health"` // 0 = use boss.health
}

// LevelsConfig holds per-level settings of the campaign.
type LevelsConfig struct {
	One   RosterLevelConfig `yaml:"one" toml:"one"`
	Two   BossLevelConfig   `yaml:"two" toml:"two"`
	Three BossLevelConfig   `yaml:"three" toml:"three"`
	Four  BossLevelConfig   `yaml:"four" toml:"four"`
}

// EnemyMaxY returns the lowest y coordinate an enemy may spawn at.
func (c SkyBattleConfig) EnemyMaxY() float64 {
	return c.Playfield.Height - c.Playfield.EnemySpawnMargin
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset.
// Unknown or empty values map to an empty preset (no changes).
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
