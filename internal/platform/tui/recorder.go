package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-battle/internal/core"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
	"github.com/vovakirdan/sky-battle/internal/metrics"
	"github.com/vovakirdan/sky-battle/internal/storage"
)

// RunRecorder is told about every game that ends, finished or not.
type RunRecorder interface {
	Record(g core.Game, abandoned bool)
}

// campaignGame is implemented by games that can summarize a campaign.
type campaignGame interface {
	Result() sim.Result
	Seed() int64
	StartLevel() sim.LevelID
	Demo() bool
}

// StoreRecorder saves runs to the store and reports them to metrics.
// Any field may be nil or empty.
type StoreRecorder struct {
	Store      *storage.Store
	Metrics    *metrics.Metrics
	Logger     *log.Logger
	Player     string
	Source     string
	Difficulty string
}

// Record saves the run played by g. Games without campaign results and
// runs that never ticked are ignored.
func (r StoreRecorder) Record(g core.Game, abandoned bool) {
	cg, ok := g.(campaignGame)
	if !ok {
		return
	}

	res := cg.Result()
	if res.Ticks == 0 {
		return
	}
	if r.Metrics != nil {
		r.Metrics.ObserveTicks(res.Ticks)
		r.Metrics.ObserveRun(res)
	}

	if abandoned && r.Logger != nil {
		r.Logger.Debug("run abandoned", "level", res.Level, "ticks", res.Ticks)
	}

	run := RunFromResult(res, cg.StartLevel(), cg.Seed())
	run.Player = r.Player
	run.Source = r.Source
	run.Difficulty = r.Difficulty
	if cg.Demo() {
		run.Source = "demo"
	}

	if r.Store == nil {
		return
	}
	id, err := r.Store.SaveRun(run)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("could not save run", "err", err)
		}
		return
	}
	if r.Logger != nil {
		r.Logger.Info("run saved", "id", id, "outcome", run.Outcome, "kills", run.Kills)
	}
}

// RunFromResult converts a campaign result to a storage record.
func RunFromResult(res sim.Result, start sim.LevelID, seed int64) storage.Run {
	outcome := res.Outcome.String()
	if res.Outcome == sim.OutcomeNone {
		outcome = "abandoned"
	}
	return storage.Run{
		StartLevel:   string(start),
		LevelReached: string(res.Level),
		Outcome:      outcome,
		Kills:        res.Kills,
		Ticks:        res.Ticks,
		Seed:         seed,
	}
}
