// Package skybattle adapts the Sky Battle simulation to the terminal
// platform. It is the presentation layer: it turns input frames into
// simulation intents, listens to simulation events for the HUD and effects,
// and draws entities into a character screen.
package skybattle

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/core"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
)

// Tuning for the terminal adapter.
const (
	// IntentHoldTicks keeps a vertical intent alive between terminal key
	// repeats, which arrive slower and less regularly than ticks.
	IntentHoldTicks = 4
	// ExplosionTicks is how long a destroyed craft stays on screen.
	ExplosionTicks = 6
)

// explosion marks where a craft was destroyed.
type explosion struct {
	bounds core.Rect
	ttl    int
}

// hud is the state the heads-up display is drawn from. It is only ever
// updated from simulation events.
type hud struct {
	level      sim.LevelID
	view       sim.View
	health     int
	levelKills int
	priorKills int // Kills of finished levels
	shielded   bool
	outcome    sim.Outcome
}

// Game implements core.Game on top of sim.Campaign.
type Game struct {
	cfg      config.SkyBattleConfig
	start    sim.LevelID
	logger   *log.Logger
	listener sim.Listener
	pilot    *sim.Autopilot

	rc       core.RuntimeConfig
	campaign *sim.Campaign
	err      error
	paused   bool

	intent     sim.Intent
	intentHold int

	hud        hud
	explosions []explosion
}

// Option configures a Game.
type Option func(*Game)

// WithStartLevel starts campaigns at the given level instead of the first.
func WithStartLevel(id sim.LevelID) Option {
	return func(g *Game) { g.start = id }
}

// WithLogger logs simulation events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithListener forwards every simulation event to l as well.
func WithListener(l sim.Listener) Option {
	return func(g *Game) { g.listener = l }
}

// WithAutopilot lets the bot fly instead of the player.
func WithAutopilot(p *sim.Autopilot) Option {
	return func(g *Game) { g.pilot = p }
}

// New creates a Sky Battle game using cfg.
func New(cfg config.SkyBattleConfig, opts ...Option) *Game {
	g := &Game{cfg: cfg, start: sim.FirstLevel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "skybattle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sky Battle"
}

// Reset starts a new campaign seeded from cfg.Seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.paused = false
	g.err = nil
	g.intent = sim.IntentStop
	g.intentHold = 0
	g.hud = hud{}
	g.explosions = nil

	var logListener sim.Listener
	if g.logger != nil {
		logListener = sim.NewLogListener(g.logger)
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	g.campaign, g.err = sim.NewCampaign(g.cfg, g.start, rng, sim.Listeners(sim.ListenerFunc(g.onEvent), g.listener, logListener))
	if g.err != nil && g.logger != nil {
		g.logger.Error("failed to start campaign", "err", g.err)
	}
}

// onEvent keeps the HUD and effects in sync with the simulation.
func (g *Game) onEvent(ev sim.Event) {
	switch e := ev.(type) {
	case sim.LevelStarted:
		g.hud.priorKills += g.hud.levelKills
		g.hud.levelKills = 0
		g.hud.level = e.Level
		g.hud.view = e.View
		g.hud.shielded = false
		g.explosions = g.explosions[:0]
	case sim.HealthChanged:
		g.hud.health = e.Health
	case sim.KillsChanged:
		g.hud.levelKills = e.Kills
	case sim.ShieldChanged:
		g.hud.shielded = e.Shielded
	case sim.EntityRemoved:
		if !e.Kind.IsProjectile() {
			g.explosions = append(g.explosions, explosion{bounds: e.Bounds, ttl: ExplosionTicks})
		}
	case sim.LevelWon:
		g.hud.outcome = sim.OutcomeWon
	case sim.LevelLost:
		g.hud.outcome = sim.OutcomeLost
	}
}

// Step advances the campaign by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.over() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ageExplosions()

	level := g.campaign.Level()
	if g.pilot != nil {
		g.pilot.Control(level)
	} else {
		g.applyInput(level, in)
	}

	if _, err := g.campaign.Tick(); err != nil {
		g.err = err
		if g.logger != nil {
			g.logger.Error("campaign stopped", "err", err)
		}
	}

	return core.StepResult{State: g.State()}
}

// applyInput turns the frame into a vertical intent and fire requests.
// Each fire press is one shot.
func (g *Game) applyInput(level *sim.Level, in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp) && !in.Has(core.ActionDown):
		g.intent, g.intentHold = sim.IntentUp, IntentHoldTicks
	case in.Has(core.ActionDown) && !in.Has(core.ActionUp):
		g.intent, g.intentHold = sim.IntentDown, IntentHoldTicks
	case in.Has(core.ActionUp) && in.Has(core.ActionDown):
		g.intent, g.intentHold = sim.IntentStop, 0
	case g.intentHold > 0:
		g.intentHold--
		if g.intentHold == 0 {
			g.intent = sim.IntentStop
		}
	}
	level.SetVerticalIntent(g.intent)

	for i := 0; i < in.Count(core.ActionFire); i++ {
		level.RequestFire()
	}
}

func (g *Game) ageExplosions() {
	kept := g.explosions[:0]
	for _, e := range g.explosions {
		e.ttl--
		if e.ttl > 0 {
			kept = append(kept, e)
		}
	}
	g.explosions = kept
}

func (g *Game) over() bool {
	return g.err != nil || g.campaign == nil || g.campaign.Done()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.hud.priorKills + g.hud.levelKills,
		Level:    string(g.hud.level),
		Health:   g.hud.health,
		GameOver: g.over(),
		Won:      g.hud.outcome == sim.OutcomeWon,
		Paused:   g.paused,
	}
}

// Result returns the campaign summary, or a zero Result before Reset.
func (g *Game) Result() sim.Result {
	if g.campaign == nil {
		return sim.Result{}
	}
	return g.campaign.Result()
}

// Err returns the error that stopped the campaign, if any.
func (g *Game) Err() error {
	return g.err
}

// Seed returns the seed of the current campaign.
func (g *Game) Seed() int64 {
	return g.rc.Seed
}

// StartLevel returns the level campaigns start at.
func (g *Game) StartLevel() sim.LevelID {
	return g.start
}

// Demo reports whether the autopilot is flying.
func (g *Game) Demo() bool {
	return g.pilot != nil
}
