package sim

import (
	"fmt"

	"github.com/vovakirdan/sky-battle/internal/config"
)

// Result summarizes a campaign.
type Result struct {
	Outcome Outcome // OutcomeWon, OutcomeLost, or OutcomeNone while running
	Level   LevelID // Level being played when the campaign ended
	Kills   int     // Kills across every level played
	Ticks   int     // Ticks across every level played
}

// Campaign hosts a sequence of levels. It reacts to AdvanceToLevel by
// building the next level through the Levels registry and ends on LevelWon
// or LevelLost.
type Campaign struct {
	cfg      config.SkyBattleConfig
	rng      Rand
	listener Listener

	level   *Level
	kills   int // From finished levels
	ticks   int
	pending LevelID
	outcome Outcome
}

// NewCampaign builds the start level. Events of every level are forwarded
// to listener, which may be nil.
func NewCampaign(cfg config.SkyBattleConfig, start LevelID, rng Rand, listener Listener) (*Campaign, error) {
	c := &Campaign{cfg: cfg, rng: rng, listener: listener}

	lvl, err := BuildLevel(start, cfg, rng, ListenerFunc(c.onEvent))
	if err != nil {
		return nil, err
	}
	c.level = lvl
	return c, nil
}

func (c *Campaign) onEvent(ev Event) {
	if c.listener != nil {
		c.listener.OnEvent(ev)
	}

	switch e := ev.(type) {
	case AdvanceToLevel:
		c.pending = e.Next
	case LevelWon:
		c.outcome = OutcomeWon
	case LevelLost:
		c.outcome = OutcomeLost
	}
}

// Tick advances the current level by one tick and switches levels when it
// asks to. It returns false once the campaign is over.
func (c *Campaign) Tick() (bool, error) {
	if c.Done() {
		return false, nil
	}

	c.level.Tick()
	c.ticks++

	if c.pending != "" {
		next := c.pending
		c.pending = ""

		lvl, err := BuildLevel(next, c.cfg, c.rng, ListenerFunc(c.onEvent))
		if err != nil {
			return false, fmt.Errorf("sim: advance from %s: %w", c.level.ID(), err)
		}
		c.kills += c.level.Kills()
		c.level = lvl
	}

	return !c.Done(), nil
}

// Level returns the level being played. Hosts send input to it.
func (c *Campaign) Level() *Level { return c.level }

// Done reports whether the campaign has been won or lost.
func (c *Campaign) Done() bool { return c.outcome != OutcomeNone }

// Ticks returns the number of ticks run so far.
func (c *Campaign) Ticks() int { return c.ticks }

// Result returns the campaign summary so far.
func (c *Campaign) Result() Result {
	return Result{
		Outcome: c.outcome,
		Level:   c.level.ID(),
		Kills:   c.kills + c.level.Kills(),
		Ticks:   c.ticks,
	}
}
