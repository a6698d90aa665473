package config

import (
	_ "embed"
)

//go:embed defaults/skybattle.yaml
var defaultSkyBattleYAML []byte

// DefaultSkyBattleConfig returns the default configuration.
// Values match defaults/skybattle.yaml.
func DefaultSkyBattleConfig() SkyBattleConfig {
	return SkyBattleConfig{
		Playfield: PlayfieldConfig{
			Width:            1300,
			Height:           750,
			EnemySpawnMargin: 150,
			CullMargin:       200,
		},
		Player: PlayerConfig{
			X:                 5,
			Y:                 300,
			Size:              Size{Width: 105, Height: 55},
			Speed:             8,
			MinY:              -40,
			MaxY:              600,
			ProjectileX:       110,
			ProjectileYOffset: 20,
		},
		Enemy: EnemyConfig{
			Size:              Size{Width: 105, Height: 55},
			Velocity:          -6,
			Health:            1,
			FireRate:          0.01,
			ProjectileXOffset: -100,
			ProjectileYOffset: 50,
		},
		Boss: BossConfig{
			X:                 1000,
			Y:                 400,
			Size:              Size{Width: 200, Height: 120},
			Health:            100,
			Speed:             8,
			MoveRepeats:       5,
			FramesPerMove:     10,
			MinY:              -100,
			MaxY:              475,
			FireRate:          0.04,
			ShieldProbability: 0.002,
			ShieldFrames:      500,
			ProjectileX:       950,
			ProjectileYOffset: 75,
		},
		Projectiles: ProjectilesConfig{
			Player: ProjectileConfig{Size: Size{Width: 40, Height: 12}, Velocity: 15},
			Enemy:  ProjectileConfig{Size: Size{Width: 30, Height: 12}, Velocity: -10},
			Boss:   ProjectileConfig{Size: Size{Width: 45, Height: 25}, Velocity: -15},
		},
		Levels: LevelsConfig{
			One: RosterLevelConfig{
				PlayerHealth:     5,
				RosterSize:       5,
				SpawnProbability: 0.2,
				KillTarget:       10,
			},
			Two:   BossLevelConfig{PlayerHealth: 5},
			Three: BossLevelConfig{PlayerHealth: 3},
			Four:  BossLevelConfig{PlayerHealth: 2},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSkyBattleYAML
}
