package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/daily"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/generate"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var (
	generateMood         int
	generateImageSummary string
	generateStyle        string
	generateSave         bool
	generateDate         string
)

// draftResult is the JSON form of a generated draft.
type draftResult struct {
	Content string       `json:"content"`
	Tags    []string     `json:"tags"`
	Mood    int          `json:"mood"`
	Saved   *entry.Entry `json:"saved,omitempty"`
	Created bool         `json:"created,omitempty"`
}

var generateCmd = &cobra.Command{
	Use:   "generate [notes...]",
	Short: "Draft an entry from notes with a language model",
	Long: `Turn a few notes about the day into a diary entry and suggest tags.

The model, endpoint and API key come from the [generator] config section.
Styles: realistic, delicate, philosophical, lyrical, humorous.
With --save the draft becomes the entry for --date (default today),
replacing the text of an existing entry for that day.`,
	Example: `  moodiary generate --mood 4 "lunch with Sam, finished the report"
  moodiary generate --style lyrical --image-summary "sunset over the bay" --save beach walk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := readContent(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if notes == "" && generateImageSummary == "" {
			return usageError("give some notes or an --image-summary to write about")
		}
		if err := checkMood(generateMood); err != nil {
			return err
		}
		if generateStyle != "" {
			if _, err := generate.LookupStyle(generateStyle); err != nil {
				return usageError("%v", err)
			}
			// The generator is built lazily, so the override is seen by its provider.
			appConfig.Generator.Style = generateStyle
		}
		date, err := parseDay(generateDate)
		if err != nil {
			return err
		}

		gen, err := do.Invoke[generate.Generator](injector)
		if err != nil {
			return err
		}
		draft, err := gen.Generate(cmd.Context(), generate.Request{
			Content:      notes,
			ImageSummary: generateImageSummary,
			Mood:         generateMood,
		})
		if err != nil {
			return err
		}
		tags, err := gen.Tagify(cmd.Context(), draft)
		if err != nil {
			appLogger.Warn("tag suggestion failed", "error", err)
			tags = []string{}
		}

		res := draftResult{Content: draft, Tags: tags, Mood: generateMood}
		if generateSave {
			p, _, err := daily.Draft(store, date)
			if err != nil {
				return err
			}
			p.Content = draft
			p.Mood = generateMood
			p.Tags = tags
			e, created, err := daily.Upsert(store, date, p)
			if err != nil {
				return err
			}
			appLogger.Info("generated entry saved", "id", e.ID, "created", created)
			res.Saved = &e
			res.Created = created
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return ui.FormatJSON(out, res)
		}
		fmt.Fprintln(out, draft)
		fmt.Fprintln(out)
		if len(tags) > 0 {
			fmt.Fprintf(out, "Tags: %s\n", strings.Join(tags, ", "))
		}
		switch {
		case res.Saved != nil && res.Created:
			ui.FormatEntryCreated(out, *res.Saved, location())
		case res.Saved != nil:
			ui.FormatEntryUpdated(out, *res.Saved, location())
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateMood, "mood", entry.NeutralMood, "mood of the day from 1 to 5")
	generateCmd.Flags().StringVar(&generateImageSummary, "image-summary", "", "short description of the day's photo")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "writing style (default from config)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the draft as the day's entry")
	generateCmd.Flags().StringVar(&generateDate, "date", "", "day to save to (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(generateCmd)
}
