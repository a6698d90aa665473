package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-battle/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start Sky Battle in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Recorded runs
  Q            - Quit

Examples:
  skybattle menu
  skybattle menu --fps 30
  skybattle menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog := newLogger(nil)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	recorder := tui.StoreRecorder{
		Store:      store,
		Logger:     logger,
		Player:     localPlayer(),
		Source:     "local",
		Difficulty: flagDifficulty,
	}
	newGame := gameFactory(cfg, logger, nil)
	rc := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		back, err := tui.Run(newGame(menuResult.Item), recorder, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return
		}
	}
}
