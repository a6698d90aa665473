package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/registry"
)

// quickConfig makes every level short and the player hard to kill so a
// campaign finishes quickly under the autopilot.
func quickConfig() config.SkyBattleConfig {
	cfg := testConfig()
	cfg.Enemy.FireRate = 0
	cfg.Boss.FireRate = 0
	cfg.Boss.ShieldProbability = 0
	cfg.Levels.One.KillTarget = 2
	cfg.Levels.One.PlayerHealth = 1000
	cfg.Levels.Two = config.BossLevelConfig{PlayerHealth: 1000, BossHealth: 2}
	cfg.Levels.Three = config.BossLevelConfig{PlayerHealth: 1000, BossHealth: 2}
	cfg.Levels.Four = config.BossLevelConfig{PlayerHealth: 1000, BossHealth: 2}
	return cfg
}

func TestLevelsRegistered(t *testing.T) {
	// Tests register extra levels ordered after the campaign.
	list := Levels.List()
	require.GreaterOrEqual(t, len(list), 4)

	want := []LevelID{LevelOne, LevelTwo, LevelThree, LevelFour}
	for i, id := range want {
		assert.Equal(t, string(id), list[i].ID)
	}
	assert.Equal(t, "Level Three", LevelThree.Title())
	assert.Equal(t, "nope", LevelID("nope").Title())
}

func TestBuildLevelHealthPerLevel(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		id     LevelID
		health int
		boss   bool
	}{
		{LevelOne, 5, false},
		{LevelTwo, 5, true},
		{LevelThree, 3, true},
		{LevelFour, 2, true},
	}

	for _, tt := range tests {
		l, err := BuildLevel(tt.id, cfg, seeded(1), nil)
		require.NoError(t, err)
		assert.Equal(t, tt.health, l.Player().Health(), tt.id)
		assert.Equal(t, tt.boss, l.View().ShowShield, tt.id)
	}
}

func TestCampaignPlaysThroughEveryLevel(t *testing.T) {
	rec := &recorder{}
	c, err := NewCampaign(quickConfig(), FirstLevel, seeded(2024), rec)
	require.NoError(t, err)

	res, err := Run(context.Background(), c, RunOptions{MaxTicks: 50000, Controller: NewAutopilot(1)})
	require.NoError(t, err)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, LevelFour, res.Level)
	assert.GreaterOrEqual(t, res.Kills, 2+3)

	var started []LevelID
	for _, ev := range rec.events {
		if s, ok := ev.(LevelStarted); ok {
			started = append(started, s.Level)
		}
	}
	assert.Equal(t, []LevelID{LevelOne, LevelTwo, LevelThree, LevelFour}, started)
	assert.Equal(t, 3, rec.count(func(ev Event) bool { _, ok := ev.(AdvanceToLevel); return ok }))
	assert.Equal(t, 1, rec.count(func(ev Event) bool { _, ok := ev.(LevelWon); return ok }))

	more, err := c.Tick()
	assert.False(t, more)
	assert.NoError(t, err)
}

func TestCampaignLost(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.Velocity = -2000 // Every enemy penetrates on its first tick
	cfg.Levels.One.PlayerHealth = 1

	c, err := NewCampaign(cfg, LevelOne, seeded(3), nil)
	require.NoError(t, err)

	res, err := Run(context.Background(), c, RunOptions{MaxTicks: 1000})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLost, res.Outcome)
	assert.Equal(t, LevelOne, res.Level)
	assert.True(t, c.Done())
}

func TestCampaignUnknownLevel(t *testing.T) {
	_, err := NewCampaign(testConfig(), "level-99", seeded(1), nil)
	assert.ErrorContains(t, err, `unknown level "level-99"`)
}

const deadEnd LevelID = "test-dead-end"

func init() {
	Levels.Register(registry.Info{ID: string(deadEnd), Order: 100}, func(cfg config.SkyBattleConfig, rng Rand, listener Listener) *Level {
		return NewLevel(Params{
			ID:           deadEnd,
			Config:       cfg,
			Policy:       &RosterPolicy{KillTarget: 0, Next: "nowhere"},
			PlayerHealth: 1,
			Rand:         rng,
			Listener:     listener,
		})
	})
}

func TestCampaignAdvanceToUnknownLevel(t *testing.T) {
	c, err := NewCampaign(testConfig(), deadEnd, seeded(1), nil)
	require.NoError(t, err)

	more, err := c.Tick()
	assert.False(t, more)
	assert.ErrorContains(t, err, `unknown level "nowhere"`)
}

func TestCampaignDeterminism(t *testing.T) {
	run := func() ([]Event, Result) {
		rec := &recorder{}
		c, err := NewCampaign(testConfig(), FirstLevel, seeded(42), rec)
		require.NoError(t, err)
		res, err := Run(context.Background(), c, RunOptions{MaxTicks: 3000, Controller: NewAutopilot(4)})
		if err != nil {
			require.ErrorIs(t, err, ErrTickLimit)
		}
		return rec.events, res
	}

	events1, res1 := run()
	events2, res2 := run()

	assert.Equal(t, res1, res2)
	assert.Equal(t, events1, events2)
}

func TestRunStopsOnCancel(t *testing.T) {
	c, err := NewCampaign(testConfig(), FirstLevel, seeded(1), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, c, RunOptions{Period: time.Millisecond})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Run(ctx, c, RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.Ticks())
}

func TestRunRealTimeTickLimit(t *testing.T) {
	c, err := NewCampaign(testConfig(), FirstLevel, seeded(1), nil)
	require.NoError(t, err)

	calls := 0
	res, err := Run(context.Background(), c, RunOptions{
		Period:     time.Millisecond,
		MaxTicks:   5,
		Controller: ControllerFunc(func(*Level) { calls++ }),
	})
	assert.ErrorIs(t, err, ErrTickLimit)
	assert.Equal(t, 5, res.Ticks)
	assert.Equal(t, 5, calls)
	assert.Equal(t, OutcomeNone, res.Outcome)
}

func TestLogListener(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	c, err := NewCampaign(testConfig(), LevelTwo, seeded(5), NewLogListener(logger))
	require.NoError(t, err)
	_, err = c.Tick()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level started")
	assert.Contains(t, out, "spawned")
	assert.Contains(t, out, "kind=boss")
}
