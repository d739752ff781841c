package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show [date|id]",
	Short: "Show a diary entry",
	Long:  "Display the entry for a day (today by default) or the entry with the given ID.",
	Example: `  moodiary show
  moodiary show 2024-03-10
  moodiary show a3kf9x2m --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		t, err := parseTarget(arg)
		if err != nil {
			return err
		}
		e, err := t.lookup()
		if errors.Is(err, storage.ErrNotFound) && arg == "" {
			// An empty today is not an error.
			if jsonOutput {
				return ui.FormatJSON(cmd.OutOrStdout(), nil)
			}
			ui.FormatNoEntry(cmd.OutOrStdout(), t.day)
			return nil
		}
		if err != nil {
			return err
		}

		if showContentOnly {
			fmt.Fprintln(cmd.OutOrStdout(), e.Content)
			return nil
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), e)
		}

		th := theme()
		var buf bytes.Buffer
		ui.FormatEntryFull(&buf, e, location(), th.MarkdownStyle)
		return ui.OutputOrPage(cmd.OutOrStdout(), buf.String(), false, th)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the entry text")
	rootCmd.AddCommand(showCmd)
}
