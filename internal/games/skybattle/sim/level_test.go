package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isKind(k Kind) func(Event) bool {
	return func(ev Event) bool {
		r, ok := ev.(EntityRemoved)
		return ok && r.Kind == k
	}
}

func TestNewLevelEmitsStartEvents(t *testing.T) {
	rec := &recorder{}
	l := newScriptLevel(testConfig(), &scriptPolicy{}, 5, &fixedRand{value: 1}, rec)

	require.Len(t, rec.events, 3)
	assert.Equal(t, LevelStarted{Level: "test", View: View{Title: "script"}}, rec.events[0])
	spawned, ok := rec.events[1].(EntitySpawned)
	require.True(t, ok)
	assert.Equal(t, KindPlayer, spawned.Kind)
	assert.Equal(t, HealthChanged{Health: 5}, rec.events[2])
	assert.Equal(t, 5, l.Player().Health())
}

func TestPlayerShotKillsEnemy(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.FireRate = 0
	rec := &recorder{}
	rng := &fixedRand{value: 0.5}

	var enemy *Enemy
	policy := &scriptPolicy{spawn: spawnOnce(func(l *Level) Fighter {
		enemy = NewEnemy(l.NextID(), 400, cfg.Player.Y, rng, cfg.Enemy, cfg.Projectiles.Enemy)
		return enemy
	})}
	l := newScriptLevel(cfg, policy, 5, rng, rec)

	l.RequestFire()
	for i := 0; i < 30 && l.Kills() == 0; i++ {
		l.Tick()
	}

	assert.True(t, enemy.Destroyed())
	assert.Equal(t, 1, l.Kills())
	assert.Equal(t, 0, l.EnemyCount())
	assert.Empty(t, l.PlayerShots())
	assert.Empty(t, l.EnemyShots())
	assert.Equal(t, 5, l.Player().Health())
	assert.Equal(t, 1, rec.count(isKind(KindEnemy)))
	assert.Equal(t, 1, rec.count(func(ev Event) bool { return ev == KillsChanged{Kills: 1} }))
}

func TestEnemyPenetrationCostsOneHealth(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.FireRate = 0
	cfg.Playfield.Width = 30
	rec := &recorder{}
	rng := &fixedRand{value: 0.5}

	var enemy *Enemy
	policy := &scriptPolicy{spawn: spawnOnce(func(l *Level) Fighter {
		// Far below the player so nothing collides on the way.
		enemy = NewEnemy(l.NextID(), cfg.Playfield.Width, 650, rng, cfg.Enemy, cfg.Projectiles.Enemy)
		return enemy
	})}
	l := newScriptLevel(cfg, policy, 5, rng, rec)

	// |dx| must exceed 30: after 5 ticks dx is -30, after 6 it is -36.
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	require.False(t, enemy.Destroyed())
	assert.Equal(t, 5, l.Player().Health())

	l.Tick()
	assert.True(t, enemy.Destroyed())
	assert.Equal(t, 4, l.Player().Health())
	assert.Equal(t, 1, l.Kills())
	assert.Equal(t, 0, l.EnemyCount())
	assert.Equal(t, 1, rec.count(func(ev Event) bool { return ev == HealthChanged{Health: 4} }))
}

func TestRequestFireIsAppliedAtTick(t *testing.T) {
	l := newScriptLevel(testConfig(), &scriptPolicy{}, 5, &fixedRand{value: 1}, nil)

	l.RequestFire()
	l.RequestFire()
	l.RequestFire()
	assert.Empty(t, l.PlayerShots(), "input waits for the tick boundary")

	l.Tick()
	assert.Len(t, l.PlayerShots(), 3)

	l.Tick()
	assert.Len(t, l.PlayerShots(), 3, "requests are consumed once")
}

func TestVerticalIntentIsAppliedAtTick(t *testing.T) {
	cfg := testConfig()
	l := newScriptLevel(cfg, &scriptPolicy{}, 5, &fixedRand{value: 1}, nil)

	l.SetVerticalIntent(IntentDown)
	assert.Equal(t, cfg.Player.Y, l.Player().Y())

	l.Tick()
	assert.Equal(t, cfg.Player.Y+cfg.Player.Speed, l.Player().Y())
}

func TestTerminalEventEmittedOnce(t *testing.T) {
	rec := &recorder{}
	policy := &scriptPolicy{verdict: func(l *Level) Verdict {
		if l.Ticks() >= 3 {
			return Verdict{Outcome: OutcomeLost}
		}
		return Verdict{}
	}}
	l := newScriptLevel(testConfig(), policy, 5, &fixedRand{value: 1}, rec)

	assert.True(t, l.Tick())
	assert.True(t, l.Tick())
	assert.False(t, l.Tick())
	assert.False(t, l.Tick())
	assert.False(t, l.Tick())

	assert.True(t, l.Halted())
	assert.Equal(t, 3, l.Ticks(), "halted level does not tick")
	assert.Equal(t, OutcomeLost, l.Verdict().Outcome)
	assert.Equal(t, 1, rec.count(func(ev Event) bool { _, ok := ev.(LevelLost); return ok }))
}

func TestCulledProjectilesDoNotCountAsKills(t *testing.T) {
	cfg := testConfig()
	cfg.Playfield.CullMargin = 0
	l := newScriptLevel(cfg, &scriptPolicy{}, 5, &fixedRand{value: 1}, nil)

	l.RequestFire()
	for i := 0; i < 100; i++ {
		l.Tick()
	}

	assert.Empty(t, l.PlayerShots())
	assert.Equal(t, 0, l.Kills())
}

func TestShieldChangedEvents(t *testing.T) {
	cfg := testConfig()
	rec := &recorder{}
	rng := &fixedRand{value: 0}
	policy := &BossPolicy{Title: "boss"}
	l := newScriptLevel(cfg, policy, 50, rng, rec)

	l.Tick()
	assert.Equal(t, 1, rec.count(func(ev Event) bool { return ev == ShieldChanged{Shielded: true} }))

	rng.value = 1
	for i := 0; i < cfg.Boss.ShieldFrames; i++ {
		l.Tick()
	}
	assert.Equal(t, 1, rec.count(func(ev Event) bool { return ev == ShieldChanged{Shielded: false} }))
}

// TestLevelInvariants drives a full level with the autopilot and checks the
// lifecycle and kill accounting properties after every tick.
func TestLevelInvariants(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		cfg := testConfig()
		cfg.Levels.One.KillTarget = 1000
		cfg.Levels.One.PlayerHealth = 1000

		rec := &recorder{}
		l, err := BuildLevel(LevelOne, cfg, seeded(seed), rec)
		require.NoError(t, err)
		pilot := NewAutopilot(3)

		for i := 0; i < 1500 && !l.Halted(); i++ {
			pilot.Control(l)
			before := l.Kills()
			removedBefore := rec.count(isKind(KindEnemy))

			require.NotPanics(t, func() { l.Tick() }, "seed %d tick %d", seed, i)

			for _, a := range l.Actors() {
				require.False(t, a.Destroyed(), "destroyed %s %d survived the purge", a.Kind(), a.ID())
			}
			removed := rec.count(isKind(KindEnemy)) - removedBefore
			require.Equal(t, before+removed, l.Kills(), "kills must grow by the enemy shrinkage")
		}
		assert.Positive(t, l.Kills(), "seed %d", seed)
	}
}
