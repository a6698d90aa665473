package sim

import (
	"fmt"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/registry"
)

// LevelID is the enumerated identifier of a campaign level.
type LevelID string

const (
	LevelOne   LevelID = "level-1"
	LevelTwo   LevelID = "level-2"
	LevelThree LevelID = "level-3"
	LevelFour  LevelID = "level-4"
)

// FirstLevel is where a new campaign starts.
const FirstLevel = LevelOne

// LevelFactory builds a level from the shared configuration.
type LevelFactory func(cfg config.SkyBattleConfig, rng Rand, listener Listener) *Level

// Levels maps level identifiers to their constructors.
var Levels = registry.New[LevelFactory]("level")

func init() {
	Levels.Register(registry.Info{ID: string(LevelOne), Title: "Level One", Order: 1}, newLevelOne)
	Levels.Register(registry.Info{ID: string(LevelTwo), Title: "Level Two", Order: 2},
		bossLevel(LevelTwo, "Level Two", LevelThree, func(c config.LevelsConfig) config.BossLevelConfig { return c.Two }))
	Levels.Register(registry.Info{ID: string(LevelThree), Title: "Level Three", Order: 3},
		bossLevel(LevelThree, "Level Three", LevelFour, func(c config.LevelsConfig) config.BossLevelConfig { return c.Three }))
	Levels.Register(registry.Info{ID: string(LevelFour), Title: "Level Four", Order: 4},
		bossLevel(LevelFour, "Level Four", "", func(c config.LevelsConfig) config.BossLevelConfig { return c.Four }))
}

func newLevelOne(cfg config.SkyBattleConfig, rng Rand, listener Listener) *Level {
	lc := cfg.Levels.One
	return NewLevel(Params{
		ID:     LevelOne,
		Config: cfg,
		Policy: &RosterPolicy{
			Title:            "Level One",
			Roster:           lc.RosterSize,
			SpawnProbability: lc.SpawnProbability,
			KillTarget:       lc.KillTarget,
			Next:             LevelTwo,
		},
		PlayerHealth: lc.PlayerHealth,
		Rand:         rng,
		Listener:     listener,
	})
}

func bossLevel(id LevelID, title string, next LevelID, pick func(config.LevelsConfig) config.BossLevelConfig) LevelFactory {
	return func(cfg config.SkyBattleConfig, rng Rand, listener Listener) *Level {
		lc := pick(cfg.Levels)
		return NewLevel(Params{
			ID:     id,
			Config: cfg,
			Policy: &BossPolicy{
				Title:      title,
				BossHealth: lc.BossHealth,
				Next:       next,
			},
			PlayerHealth: lc.PlayerHealth,
			Rand:         rng,
			Listener:     listener,
		})
	}
}

// BuildLevel looks up id in Levels and constructs it.
func BuildLevel(id LevelID, cfg config.SkyBattleConfig, rng Rand, listener Listener) (*Level, error) {
	factory, err := Levels.Get(string(id))
	if err != nil {
		return nil, fmt.Errorf("sim: build level: %w", err)
	}
	return factory(cfg, rng, listener), nil
}

// Title returns the display title of a level, or its id when unknown.
func (id LevelID) Title() string {
	if info, ok := Levels.Lookup(string(id)); ok {
		return info.Title
	}
	return string(id)
}
