package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/stats"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var statsRange string

// statsReport is the JSON form of the stats command.
type statsReport struct {
	stats.Summary
	Distribution map[string]int     `json:"distribution"`
	Streak       stats.StreakStatus `json:"streak"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mood and writing statistics",
	Long:  "Average mood, daily writing frequency, tag counts and the current streak over a trailing window.",
	Example: `  moodiary stats
  moodiary stats --range year --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := stats.ParseTimeRange(statsRange)
		if err != nil {
			return usageError("%v", err)
		}
		current := today()

		summary, err := stats.Summarize(store, r, current)
		if err != nil {
			return err
		}
		streak, err := stats.Streak(store, current)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			entries, err := store.FetchRange(summary.From, summary.To)
			if err != nil {
				return err
			}
			dist := make(map[string]int)
			for mood, n := range stats.MoodDistribution(entries) {
				dist[strconv.Itoa(mood)] = n
			}
			return ui.FormatJSON(out, statsReport{Summary: summary, Distribution: dist, Streak: streak})
		}

		ui.FormatSummary(out, summary, theme())
		fmt.Fprintf(out, "Streak: %d days\n", streak.Days)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsRange, "range", string(stats.Week), "window: week, month or year")
	rootCmd.AddCommand(statsCmd)
}
