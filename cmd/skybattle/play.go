package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
	"github.com/vovakirdan/sky-battle/internal/platform/tui"
)

var flagDemo bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Fly a campaign",
	Long: `Start a campaign, optionally at a later level.

Controls:
  W/Up       - Climb
  S/Down     - Dive
  Space/F    - Fire (one shot per press)
  P          - Pause
  B/Esc      - Back (when paused or after the game ends)
  R          - Restart (after the game ends)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower enemy fire, weaker shield, more health
  normal - The classic balance
  hard   - Faster fire, more shields, less health

Examples:
  skybattle play
  skybattle play level-2
  skybattle play --difficulty hard
  skybattle play --config ./my-skybattle.yaml
  skybattle play --demo`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot fly")
}

func runPlay(_ *cobra.Command, args []string) {
	start := sim.FirstLevel
	if len(args) == 1 {
		start = sim.LevelID(args[0])
	}
	if !sim.Levels.Exists(string(start)) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", start)
		fmt.Fprintln(os.Stderr, "Run 'skybattle list' to see available levels.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog := newLogger(nil)
	defer closeLog()

	store := openStore(logger)
	recorder := tui.StoreRecorder{
		Store:      store,
		Logger:     logger,
		Player:     localPlayer(),
		Source:     "local",
		Difficulty: flagDifficulty,
	}

	game := gameFactory(cfg, logger, nil)(tui.MenuItem{Level: start, Demo: flagDemo})
	_, runErr := tui.Run(game, recorder, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
