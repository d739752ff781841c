package cmd

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var forceRestore bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and restore backups",
	Long: `Backups are JSON files holding every entry, written to the backup
directory (default <data_dir>/backups) and optionally copied to S3.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a backup of every entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := do.Invoke[*backup.Service](injector)
		if err != nil {
			return err
		}
		res, err := svc.Create(cmd.Context())
		if err != nil && res == nil {
			return err
		}

		if jsonOutput {
			if ferr := ui.FormatJSON(cmd.OutOrStdout(), res); ferr != nil {
				return ferr
			}
		} else {
			ui.FormatBackupCreated(cmd.OutOrStdout(), res)
		}
		// A failed upload still leaves the local file.
		return err
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace every entry with the contents of a backup",
	Long: `Replace the whole diary with the entries in a backup file.

Unreadable fields are replaced with defaults and reported. The current
entries are only removed once the backup has been read successfully.`,
	Example: `  moodiary backup restore ~/.moodiary/backups/diary_backup_2024-03-10_21-00-00.json --force`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !forceRestore {
			confirmed, err := ui.Confirm("Replace every entry with this backup?", theme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		svc, err := do.Invoke[*backup.Service](injector)
		if err != nil {
			return err
		}
		res, err := svc.Restore(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), res)
		}
		ui.FormatRestoreResult(cmd.OutOrStdout(), res)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup files, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := do.Invoke[*backup.Service](injector)
		if err != nil {
			return err
		}
		infos, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			if infos == nil {
				infos = []backup.Info{}
			}
			return ui.FormatJSON(cmd.OutOrStdout(), infos)
		}
		ui.FormatBackupList(cmd.OutOrStdout(), infos)
		return nil
	},
}

func init() {
	backupRestoreCmd.Flags().BoolVar(&forceRestore, "force", false, "skip confirmation prompt")
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd, backupListCmd)
	rootCmd.AddCommand(backupCmd)
}
