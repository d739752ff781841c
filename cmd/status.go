package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/shell"
	"github.com/chris-regnier/moodiary/internal/ui"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Mood       int
	MoodLabel  string
	Backend    string
	HasToday   bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show diary prompt status",
	Long: `Show diary status for shell prompt integration.

Outputs the today indicator, the streak and today's mood.
Reads from cache when fresh, queries storage when stale. Writing, editing
or deleting an entry drops the cache.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  moodiary status
  moodiary status --env
  moodiary status --refresh
  moodiary status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlag, _ := cmd.Flags().GetBool("env")
		refreshFlag, _ := cmd.Flags().GetBool("refresh")
		formatFlag, _ := cmd.Flags().GetString("format")

		ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
		if err != nil {
			ttl = 5 * time.Minute
		}

		current := today()
		cache := shell.ReadCache(appConfig.DataDir)
		if refreshFlag || !cache.IsFresh(ttl, current) {
			cache, err = shell.ComputeStatus(store, current)
			if err != nil {
				return fmt.Errorf("computing status: %w", err)
			}
			cache.StorageBackend = appConfig.Storage
			if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
				// A prompt must still render without a cache.
				appLogger.Warn("could not write prompt cache", "error", err)
			}
		}

		data := buildStatusData(cache)
		out := cmd.OutOrStdout()
		switch {
		case envFlag:
			return outputEnv(out, data)
		case formatFlag != "":
			return outputTemplate(out, data, formatFlag)
		case jsonOutput:
			return ui.FormatJSON(out, cache)
		}
		return outputDefault(out, data)
	},
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}
	data := statusData{
		TodayIcon:  icon,
		Streak:     cache.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Mood:       cache.Mood,
		Backend:    cache.StorageBackend,
		HasToday:   cache.Today,
	}
	if cache.Mood != 0 {
		data.MoodLabel = entry.MoodLabel(cache.Mood)
	}
	return data
}

func outputEnv(w io.Writer, data statusData) error {
	fmt.Fprintf(w, "export MOODIARY_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(w, "export MOODIARY_STREAK=%q\n", fmt.Sprintf("%d", data.Streak))
	fmt.Fprintf(w, "export MOODIARY_STREAK_ICON=%q\n", data.StreakIcon)
	if data.Mood != 0 {
		fmt.Fprintf(w, "export MOODIARY_MOOD=%q\n", fmt.Sprintf("%d", data.Mood))
	} else {
		fmt.Fprintln(w, "unset MOODIARY_MOOD")
	}
	return nil
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return usageError("invalid format template: %v", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	parts := []string{fmt.Sprintf("%s %d%s", data.TodayIcon, data.Streak, data.StreakIcon)}
	if appConfig.Shell.ShowMood && data.Mood != 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", data.Mood, entry.MaxMood))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
	return nil
}

func init() {
	statusCmd.Flags().Bool("env", false, "output shell environment variable assignments")
	statusCmd.Flags().Bool("refresh", false, "force cache refresh")
	statusCmd.Flags().String("format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
