package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
	"github.com/vovakirdan/sky-battle/internal/platform/tui"
	"github.com/vovakirdan/sky-battle/internal/storage"
)

var (
	flagSimRuns     int
	flagSimStart    string
	flagSimRealtime bool
	flagSimMaxTicks int
	flagSimRecord   bool
	flagSimFire     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot fly a headless campaign",
	Long: `Run campaigns without a terminal UI, flown by the autopilot.

Runs go as fast as possible unless --realtime is given, in which case
ticks follow --fps. With --seed every run is reproducible; batch runs
use consecutive seeds.

Examples:
  skybattle simulate
  skybattle simulate --seed 42 --runs 10
  skybattle simulate --start level-4 --difficulty hard --record
  skybattle simulate --realtime --log-file sim.log`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of campaigns to fly")
	simulateCmd.Flags().StringVar(&flagSimStart, "start", string(sim.FirstLevel), "Level to start at")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick at --fps instead of full speed")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 200000, "Give up after this many ticks (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save runs to the run history")
	simulateCmd.Flags().IntVar(&flagSimFire, "fire-every", sim.DefaultFireEvery, "Ticks between autopilot shots")
}

func runSimulate(_ *cobra.Command, _ []string) {
	start := sim.LevelID(flagSimStart)
	if !sim.Levels.Exists(string(start)) {
		fail("unknown level %q", start)
	}
	if flagSimRuns < 1 {
		fail("--runs must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *storage.Store
	if flagSimRecord {
		if store = openStore(logger); store != nil {
			defer store.Close()
		}
	}

	opts := sim.RunOptions{MaxTicks: flagSimMaxTicks}
	if flagSimRealtime {
		opts.Period = time.Second / time.Duration(max(flagFPS, 1))
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	wins := 0
	for i := 0; i < flagSimRuns; i++ {
		seed := baseSeed + int64(i)
		rng := rand.New(rand.NewSource(seed))

		campaign, err := sim.NewCampaign(cfg, start, rng, sim.NewLogListener(logger))
		if err != nil {
			fail("%v", err)
		}

		opts.Controller = sim.NewAutopilot(flagSimFire)
		res, runErr := sim.Run(ctx, campaign, opts)

		switch {
		case runErr == nil:
		case errors.Is(runErr, sim.ErrTickLimit):
			logger.Warn("tick limit reached", "seed", seed, "ticks", res.Ticks)
		case errors.Is(runErr, context.Canceled):
			fmt.Println("Interrupted.")
			return
		default:
			fail("run %d: %v", i+1, runErr)
		}

		if res.Outcome == sim.OutcomeWon {
			wins++
		}
		printResult(i+1, seed, res)

		if store != nil {
			run := tui.RunFromResult(res, start, seed)
			run.Player = "autopilot"
			run.Source = "simulate"
			run.Difficulty = flagDifficulty
			if _, err := store.SaveRun(run); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
			}
		}
	}

	if flagSimRuns > 1 {
		fmt.Println()
		fmt.Printf("Won %d of %d campaigns\n", wins, flagSimRuns)
	}
}

func printResult(n int, seed int64, res sim.Result) {
	outcome := res.Outcome.String()
	if res.Outcome == sim.OutcomeNone {
		outcome = "unfinished"
	}
	gameTime := time.Duration(res.Ticks) * (time.Second / time.Duration(max(flagFPS, 1)))
	fmt.Printf("Run %-3d seed=%-20d outcome=%-10s level=%-8s kills=%-3d ticks=%d (%s)\n",
		n, seed, outcome, res.Level, res.Kills, res.Ticks, gameTime.Round(time.Second))
}
