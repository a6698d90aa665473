package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-battle/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs: most kills first, then fewest ticks.

Examples:
  skybattle scores
  skybattle scores --recent --limit 20
  skybattle scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	var runs []storage.Run
	title := "Top Runs"
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Sky Battle - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skybattle play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-5s  %-8s  %-10s  %-8s  %s\n", "Rank", "Player", "Kills", "Reached", "Outcome", "Source", "Date")
	fmt.Printf("  %-4s  %-12s  %-5s  %-8s  %-10s  %-8s  %s\n", "----", "------", "-----", "-------", "-------", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-5d  %-8s  %-10s  %-8s  %s\n",
			i+1, player, r.Kills, r.LevelReached, r.Outcome, r.Source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d kills  Average: %.1f kills\n",
			stats.Runs, stats.Wins, stats.BestKills, stats.AvgKills)
	}
}
