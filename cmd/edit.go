package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/daily"
	"github.com/chris-regnier/moodiary/internal/editor"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var (
	editContent     string
	editMood        int
	editTags        []string
	editTitle       string
	editImage       string
	editRemoveImage bool
)

var editCmd = &cobra.Command{
	Use:   "edit [date|id]",
	Short: "Edit the entry for a day",
	Long: `Edit the entry for a day (today by default) or the entry with the given ID.

Without field flags your editor opens with the entry's mood, title and tags
as front matter above the text. With field flags only those fields change.
Editing a day without an entry creates it.`,
	Example: `  moodiary edit
  moodiary edit 2024-03-10
  moodiary edit a3kf9x2m --mood 2
  moodiary edit --tag work --tag gym`,
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

		var p entry.Payload
		if t.byID() {
			e, err := store.Get(t.id)
			if err != nil {
				return err
			}
			p = e.Payload()
		} else {
			if p, _, err = daily.Draft(store, t.day); err != nil {
				return err
			}
			if !cmd.Flags().Changed("mood") && p.Content == "" {
				p.Mood = appConfig.DefaultMood
			}
		}

		fields := cmd.Flags()
		if fields.Changed("content") || fields.Changed("mood") || fields.Changed("tag") ||
			fields.Changed("title") || fields.Changed("image") || fields.Changed("remove-image") {
			if err := applyEditFlags(cmd, &p); err != nil {
				return err
			}
		} else {
			edited, changed, err := editor.EditEntry(editor.ResolveEditor(appConfig.Editor), p)
			if err != nil {
				return err
			}
			if !changed {
				if !jsonOutput {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
				}
				return nil
			}
			p = edited
		}
		if err := checkMood(p.Mood); err != nil {
			return err
		}
		if p.Content == "" {
			return editor.ErrEmpty
		}

		var e entry.Entry
		created := false
		if t.byID() {
			e, err = store.Update(t.id, p)
		} else {
			e, created, err = daily.Upsert(store, t.day, p)
		}
		if err != nil {
			return err
		}
		appLogger.Info("entry saved", "id", e.ID, "created", created)

		switch {
		case jsonOutput:
			return ui.FormatJSON(cmd.OutOrStdout(), e)
		case created:
			ui.FormatEntryCreated(cmd.OutOrStdout(), e, location())
		default:
			ui.FormatEntryUpdated(cmd.OutOrStdout(), e, location())
		}
		return nil
	},
}

func applyEditFlags(cmd *cobra.Command, p *entry.Payload) error {
	fields := cmd.Flags()
	if fields.Changed("content") {
		content, err := readContent(cmd.InOrStdin(), []string{editContent})
		if err != nil {
			return err
		}
		p.Content = content
	}
	if fields.Changed("mood") {
		p.Mood = editMood
	}
	if fields.Changed("tag") {
		p.Tags = append([]string{}, editTags...)
	}
	if fields.Changed("title") {
		p.Title = editTitle
	}
	if editRemoveImage {
		p.Image = nil
	}
	if fields.Changed("image") {
		image, err := readImage(editImage)
		if err != nil {
			return err
		}
		p.Image = image
	}
	return nil
}

func init() {
	editCmd.Flags().StringVar(&editContent, "content", "", `replace the text ("-" reads stdin)`)
	editCmd.Flags().IntVar(&editMood, "mood", entry.NeutralMood, "mood from 1 (very bad) to 5 (excellent)")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "replace the tags (repeatable)")
	editCmd.Flags().StringVar(&editTitle, "title", "", "replace the title")
	editCmd.Flags().StringVar(&editImage, "image", "", "attach or replace the photo")
	editCmd.Flags().BoolVar(&editRemoveImage, "remove-image", false, "remove the photo")
	rootCmd.AddCommand(editCmd)
}
