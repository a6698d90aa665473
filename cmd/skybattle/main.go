// skybattle is a side-scrolling air combat game for the terminal.
//
// Usage:
//
//	skybattle play [level]   - Fly a campaign, optionally from a later level
//	skybattle menu           - Pick a level interactively
//	skybattle list           - List levels
//	skybattle simulate       - Let the autopilot fly a headless campaign
//	skybattle scores         - Show recorded runs
//	skybattle serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 20, one tick per 50ms)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.skybattle/runs.db)
//	--log-file <path>     - Write debug logs to a file
//	--config <path>       - Custom YAML or TOML config
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/core"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
	"github.com/vovakirdan/sky-battle/internal/metrics"
	"github.com/vovakirdan/sky-battle/internal/platform/tui"
	"github.com/vovakirdan/sky-battle/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skybattle",
	Short: "Sky Battle - air combat in your terminal",
	Long: `Sky Battle is a side-scrolling shooter for the terminal.

Shoot down ten fighters, then defeat the shielded mothership three times.

Available commands:
  play      - Fly a campaign
  menu      - Interactive level picker
  list      - Show all levels
  simulate  - Let the autopilot fly a headless campaign
  scores    - View recorded runs
  serve     - Start SSH server for remote play

Examples:
  skybattle play
  skybattle play level-3 --difficulty hard
  skybattle simulate --seed 42
  skybattle serve --ssh :2222 --metrics :9100`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skybattle/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error in the CLI format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.SkyBattleConfig, error) {
	cfg, err := config.LoadSkyBattle(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplySkyBattlePreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger returns a debug logger writing to --log-file, or a logger
// writing to fallback at info level. A nil fallback discards logs, since
// the TUI owns the terminal. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func()) {
	if flagLogFile == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		return log.NewWithOptions(fallback, log.Options{
			ReportTimestamp: true,
			Prefix:          "skybattle",
		}), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "skybattle",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history, warning and returning nil on failure.
// The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("run history disabled", "err", err)
		return nil
	}
	return store
}

// gameFactory builds Sky Battle games for menu selections. Each game gets
// its own metrics listener when m is set.
func gameFactory(cfg config.SkyBattleConfig, logger *log.Logger, m *metrics.Metrics) tui.GameFactory {
	return func(item tui.MenuItem) core.Game {
		opts := []skybattle.Option{
			skybattle.WithStartLevel(item.Level),
			skybattle.WithLogger(logger),
		}
		if m != nil {
			opts = append(opts, skybattle.WithListener(m.Listener()))
		}
		if item.Demo {
			opts = append(opts, skybattle.WithAutopilot(sim.NewAutopilot(sim.DefaultFireEvery)))
		}
		return skybattle.New(cfg, opts...)
	}
}

// localPlayer names the local user for the run history.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
