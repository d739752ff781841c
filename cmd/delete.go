package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <date|id>",
	Short: "Delete a diary entry",
	Long:  "Permanently delete the entry for a day or with the given ID. Requires confirmation unless --force is used.",
	Example: `  moodiary delete 2024-03-10
  moodiary delete a3kf9x2m --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		e, err := t.lookup()
		if err != nil {
			return err
		}

		if !forceDelete {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entry: %s (%s, %s)\n", e.ID, e.DayString(location()), entry.MoodLabel(e.Mood))
			fmt.Fprintf(out, "Preview: %s\n\n", e.Preview(60))

			confirmed, err := ui.Confirm("Delete this entry? This cannot be undone.", theme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := store.Delete(e.ID); err != nil {
			return err
		}
		appLogger.Info("entry deleted", "id", e.ID)

		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), ui.DeleteResult{ID: e.ID, Deleted: true})
		}
		ui.FormatEntryDeleted(cmd.OutOrStdout(), e.ID)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
