package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/config"
	"github.com/chris-regnier/moodiary/internal/editor"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/ui"
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("invalid input")

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	logLevel       string

	injector  *do.RootScope
	appConfig *config.Config
	appLogger *slog.Logger
	store     storage.Storage

	// now is replaced in tests.
	now = time.Now

	// version is set at build time with -ldflags "-X".
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "moodiary",
	Short: "A mood diary for the terminal",
	Long: `moodiary keeps one diary entry per day: text, a mood from 1 to 5,
tags and an optional photo. Entries are stored as markdown files or in SQLite.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if injector != nil {
			return nil
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if storageBackend != "" {
			cfg.Storage = storageBackend
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return bootstrap(cfg)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCmd.RunE(cmd, nil)
	},
}

// Execute runs the root command, prints any error, and returns the process
// exit code: 0 on success, 1 for missing entries and bad input, 2 otherwise.
func Execute() int {
	err := rootCmd.Execute()
	shutdown()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrValidation),
		errors.Is(err, storage.ErrConflict),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, editor.ErrEmpty),
		errors.Is(err, backup.ErrBackupNotFound),
		errors.Is(err, backup.ErrCorruptBackup),
		errors.Is(err, errUsage):
		return 1
	}
	return 2
}

// location is the calendar every command works in.
func location() *time.Location {
	return appConfig.Location()
}

// today returns the current time in the configured location.
func today() time.Time {
	return now().In(location())
}

func theme() ui.Theme {
	t, err := ui.ResolveTheme(appConfig.Theme)
	if err != nil {
		appLogger.Warn("falling back to default theme", "error", err)
	}
	return t
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
