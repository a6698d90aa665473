package skybattle

import (
	"strings"
	"testing"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/core"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: core.DefaultTickRate,
		Seed:     seed,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical results
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%40 < 10:
			inputs[i].Set(core.ActionUp)
		case i%40 >= 20 && i%40 < 30:
			inputs[i].Set(core.ActionDown)
		}
		if i%5 == 0 {
			inputs[i].Set(core.ActionFire)
		}
	}

	run := func() (core.GameState, sim.Result) {
		g := New(config.DefaultSkyBattleConfig())
		g.Reset(testRuntime(12345))
		var st core.GameState
		for _, in := range inputs {
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st, g.Result()
	}

	state1, res1 := run()
	state2, res2 := run()

	if state1 != state2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", state1, state2)
	}
	if res1 != res2 {
		t.Errorf("Determinism failed: results differ. Run1=%+v, Run2=%+v", res1, res2)
	}
}

func TestGameReset(t *testing.T) {
	g := New(config.DefaultSkyBattleConfig())
	g.Reset(testRuntime(42))

	state := g.State()
	if state.Health != 5 {
		t.Errorf("Health after reset = %d, expected 5", state.Health)
	}
	if state.Level != string(sim.LevelOne) {
		t.Errorf("Level after reset = %q, expected %q", state.Level, sim.LevelOne)
	}

	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}

	g.Reset(testRuntime(42))
	if g.Result().Ticks != 0 {
		t.Errorf("Ticks after reset = %d, expected 0", g.Result().Ticks)
	}
	if g.State().Score != 0 {
		t.Errorf("Score after reset = %d, expected 0", g.State().Score)
	}
}

func TestGamePause(t *testing.T) {
	g := New(config.DefaultSkyBattleConfig())
	g.Reset(testRuntime(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	before := g.Result().Ticks
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Result().Ticks != before {
		t.Errorf("Paused game advanced from %d to %d ticks", before, g.Result().Ticks)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameFirePresses(t *testing.T) {
	g := New(config.DefaultSkyBattleConfig())
	g.Reset(testRuntime(1))

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	in.Set(core.ActionFire)
	g.Step(in)

	if n := len(g.campaign.Level().PlayerShots()); n != 2 {
		t.Errorf("Two fire presses produced %d shots, expected 2", n)
	}
}

func TestGameIntentHold(t *testing.T) {
	cfg := config.DefaultSkyBattleConfig()
	g := New(cfg)
	g.Reset(testRuntime(1))

	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	g.Step(up)

	player := g.campaign.Level().Player()
	startY := player.Y()

	// The intent survives the gap between key repeats, then stops.
	for i := 0; i < IntentHoldTicks+3; i++ {
		g.Step(core.NewInputFrame())
	}

	moved := startY - player.Y()
	expected := float64(IntentHoldTicks-1) * cfg.Player.Speed
	if moved != expected {
		t.Errorf("Player moved %v after release, expected %v", moved, expected)
	}
}

func TestGameWinAndRestart(t *testing.T) {
	cfg := config.DefaultSkyBattleConfig()
	cfg.Boss.ShieldProbability = 0
	cfg.Boss.FireRate = 0
	cfg.Levels.Four = config.BossLevelConfig{PlayerHealth: 100, BossHealth: 1}

	g := New(cfg, WithStartLevel(sim.LevelFour), WithAutopilot(sim.NewAutopilot(1)))
	g.Reset(testRuntime(7))

	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	state := g.State()
	if !state.GameOver || !state.Won {
		t.Fatalf("Autopilot should beat a one-hit boss, state=%+v err=%v", state, g.Err())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "VICTORY") {
		t.Error("Victory banner not rendered")
	}

	g.Reset(testRuntime(8))
	if g.State().GameOver {
		t.Error("Reset should start a fresh campaign")
	}
}

func TestGameUnknownStartLevel(t *testing.T) {
	g := New(config.DefaultSkyBattleConfig(), WithStartLevel("level-99"))
	g.Reset(testRuntime(1))

	if g.Err() == nil {
		t.Fatal("Unknown start level should fail")
	}
	if !g.State().GameOver {
		t.Error("Game with no campaign should report game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CANNOT START") {
		t.Error("Error banner not rendered")
	}
}

func TestRenderHUD(t *testing.T) {
	g := New(config.DefaultSkyBattleConfig(), WithStartLevel(sim.LevelTwo))
	g.Reset(testRuntime(3))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(120, 30)
	g.Render(screen)
	hudRow := strings.Split(screen.String(), "\n")[0]

	if strings.Count(hudRow, string(HeartChar)) != 5 {
		t.Errorf("HUD should show 5 hearts, got %q", hudRow)
	}
	if !strings.Contains(hudRow, "Boss 100") {
		t.Errorf("HUD should show boss health, got %q", hudRow)
	}
	if !strings.Contains(hudRow, "Level Two") {
		t.Errorf("HUD should show the level title, got %q", hudRow)
	}
	if !strings.ContainsRune(screen.String(), PlayerNose) {
		t.Error("Player not rendered")
	}
	if !strings.ContainsRune(screen.String(), BossBody) {
		t.Error("Boss not rendered")
	}
}
