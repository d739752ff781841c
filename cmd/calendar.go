package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/stats"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var calendarMonth string

// calendarDay is the JSON form of one logged day.
type calendarDay struct {
	Date     string `json:"date"`
	ID       string `json:"id"`
	Mood     int    `json:"mood"`
	MoodIcon string `json:"mood_icon"`
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month of moods",
	Long:  "Draw a month grid marking each day's mood, with the month's average.",
	Example: `  moodiary calendar
  moodiary calendar --month 2024-03`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateWindow(calendarMonth, "", "")
		if err != nil {
			return err
		}
		entries, err := store.FetchRange(start, end)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			days := make([]calendarDay, 0, len(entries))
			seen := make(map[string]bool, len(entries))
			for _, e := range entries {
				d := e.DayString(location())
				if seen[d] {
					continue
				}
				seen[d] = true
				days = append(days, calendarDay{Date: d, ID: e.ID, Mood: e.Mood, MoodIcon: e.MoodIcon()})
			}
			return ui.FormatJSON(out, struct {
				Month       string        `json:"month"`
				AverageMood float64       `json:"average_mood"`
				Days        []calendarDay `json:"days"`
			}{start.Format(day.MonthLayout), stats.AverageMood(entries), days})
		}

		fmt.Fprint(out, ui.RenderCalendar(start, entries, today(), theme()))
		if len(entries) > 0 {
			fmt.Fprintf(out, "\n%d entries, average mood %.2f\n", len(entries), stats.AverageMood(entries))
		}
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to show (YYYY-MM, default current)")
	rootCmd.AddCommand(calendarCmd)
}
