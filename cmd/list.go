package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var (
	listMonth  string
	listFrom   string
	listTo     string
	listAll    bool
	listIDOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Long:  "List diary entries oldest first. Shows the current month unless a window is given.",
	Example: `  moodiary list
  moodiary list --month 2024-03
  moodiary list --from 2024-03-01 --to 2024-03-15
  moodiary list --all --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []entry.Entry
		var err error
		if listAll {
			entries, err = store.FetchAll()
		} else {
			start, end, werr := dateWindow(listMonth, listFrom, listTo)
			if werr != nil {
				return werr
			}
			entries, err = store.FetchRange(start, end)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case listIDOnly:
			for _, e := range entries {
				fmt.Fprintln(out, e.ID)
			}
			return nil
		case jsonOutput:
			return ui.FormatJSON(out, ui.ToSummaries(entries))
		}
		var buf bytes.Buffer
		ui.FormatEntryList(&buf, entries, location())
		return ui.OutputOrPage(out, buf.String(), false, theme())
	},
}

func init() {
	listCmd.Flags().StringVar(&listMonth, "month", "", "month to list (YYYY-MM)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "first day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "last day, inclusive (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "list every entry")
	listCmd.Flags().BoolVar(&listIDOnly, "id-only", false, "print just entry IDs, one per line")
	rootCmd.AddCommand(listCmd)
}
