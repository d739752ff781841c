package cmd

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/editor"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/generate"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var (
	createDate     string
	createMood     int
	createTags     []string
	createTitle    string
	createImage    string
	createAutoTags bool
)

var createCmd = &cobra.Command{
	Use:   "create [content...]",
	Short: "Write the entry for a day",
	Long: `Write the entry for a day (today unless --date is given).

If content is provided as arguments, it is used directly.
If "-" is provided, content is read from stdin.
If no content is provided, your editor is opened.

Each day holds one entry; use "moodiary edit" to change an existing one.`,
	Example: `  moodiary create "Long walk by the river" --mood 4 --tag walk
  moodiary create --date 2024-03-10 --image lake.jpg Sunday at the lake
  echo "piped content" | moodiary create -
  moodiary create`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(createDate)
		if err != nil {
			return err
		}
		if existing, found, err := store.GetEntryForDate(date); err != nil {
			return err
		} else if found {
			return fmt.Errorf("%w: %s already has entry %s (use \"moodiary edit\")",
				storage.ErrConflict, date.Format(day.DayLayout), existing.ID)
		}

		mood := createMood
		if !cmd.Flags().Changed("mood") {
			mood = appConfig.DefaultMood
		}
		image, err := readImage(createImage)
		if err != nil {
			return err
		}
		p := entry.Payload{
			Date:  &date,
			Mood:  mood,
			Tags:  append([]string{}, createTags...),
			Title: createTitle,
			Image: image,
		}

		content, err := readContent(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if content == "" {
			edited, changed, err := editor.EditEntry(editor.ResolveEditor(appConfig.Editor), p)
			if err != nil {
				return err
			}
			if !changed {
				return editor.ErrEmpty
			}
			p = edited
		} else {
			p.Content = content
		}
		if err := checkMood(p.Mood); err != nil {
			return err
		}

		if createAutoTags && len(p.Tags) == 0 {
			p.Tags = suggestTags(cmd, p.Content)
		}

		e, err := store.Create(p)
		if err != nil {
			return err
		}
		appLogger.Info("entry created", "id", e.ID, "date", e.DayString(location()))

		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), e)
		}
		ui.FormatEntryCreated(cmd.OutOrStdout(), e, location())
		return nil
	},
}

// suggestTags asks the generator for tags. Failures are logged and yield
// no tags so that writing an entry never depends on the network.
func suggestTags(cmd *cobra.Command, content string) []string {
	gen, err := do.Invoke[generate.Generator](injector)
	if err == nil {
		var tags []string
		if tags, err = gen.Tagify(cmd.Context(), content); err == nil {
			return tags
		}
	}
	appLogger.Warn("tag suggestion failed", "error", err)
	return []string{}
}

func init() {
	createCmd.Flags().StringVar(&createDate, "date", "", "day of the entry (YYYY-MM-DD, default today)")
	createCmd.Flags().IntVar(&createMood, "mood", entry.NeutralMood, "mood from 1 (very bad) to 5 (excellent)")
	createCmd.Flags().StringSliceVar(&createTags, "tag", nil, "tag the entry (repeatable)")
	createCmd.Flags().StringVar(&createTitle, "title", "", "entry title")
	createCmd.Flags().StringVar(&createImage, "image", "", "attach a photo (JPEG or PNG)")
	createCmd.Flags().BoolVar(&createAutoTags, "auto-tags", false, "suggest tags with the generator when none are given")
	rootCmd.AddCommand(createCmd)
}
