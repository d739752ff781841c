package cmd

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/daily"
	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/ui"
)

// seedDay is one generated diary day before a mood is drawn.
type seedDay struct {
	title   string
	content string
	tags    []string
}

// profile defines a user persona for generating seed data.
type profile struct {
	name        string
	description string
	// daysBack is how far back to start generating entries.
	daysBack int
	// writes reports whether the persona writes on the given day.
	writes func(d time.Time, rng *rand.Rand) bool
	// moodWeights are relative odds of moods 1 through 5.
	moodWeights [entry.MaxMood]int
	// weekendLift is added to the drawn mood on Saturdays and Sundays.
	weekendLift int
	// days is a pool of content generators.
	days []func(rng *rand.Rand) seedDay
}

var profiles = map[string]profile{
	"daily-writer": {
		name:        "daily-writer",
		description: "Consistent daily journaler who rarely misses a day",
		daysBack:    90,
		writes:      chance(0.92),
		moodWeights: [entry.MaxMood]int{1, 2, 5, 6, 3},
		days:        []func(*rand.Rand) seedDay{routineDay, reflectionDay, gratitudeDay, ordinaryDay},
	},
	"weekend-journaler": {
		name:        "weekend-journaler",
		description: "Writes mostly on weekends, happier away from work",
		daysBack:    120,
		writes: func(d time.Time, rng *rand.Rand) bool {
			if isWeekend(d) {
				return rng.Float64() < 0.85
			}
			return rng.Float64() < 0.15
		},
		moodWeights: [entry.MaxMood]int{1, 3, 5, 4, 2},
		weekendLift: 1,
		days:        []func(*rand.Rand) seedDay{outingDay, readingDay, cookingDay, friendsDay, ordinaryDay},
	},
	"rollercoaster": {
		name:        "rollercoaster",
		description: "Writes most weekdays with sharp ups and downs",
		daysBack:    60,
		writes: func(d time.Time, rng *rand.Rand) bool {
			if isWeekend(d) {
				return rng.Float64() < 0.3
			}
			return rng.Float64() < 0.88
		},
		moodWeights: [entry.MaxMood]int{4, 3, 1, 3, 4},
		days:        []func(*rand.Rand) seedDay{workWinDay, workSlogDay, reflectionDay, routineDay},
	},
}

var (
	seedDays int
	seedSeed int64
	seedList bool
)

type seedResult struct {
	Profile string `json:"profile"`
	Created int    `json:"entries_created"`
	Updated int    `json:"entries_updated"`
}

var seedCmd = &cobra.Command{
	Use:   "seed [profile]",
	Short: "Seed the diary with realistic sample data",
	Long: `Populate the diary with realistic entries to simulate an active user.

Available profiles:
  daily-writer      – Consistent daily journaler (~90 days, rarely misses)
  weekend-journaler – Writes mostly on weekends (~120 days)
  rollercoaster     – Weekday writer with volatile moods (~60 days)

If no profile is specified, "daily-writer" is used. Days that already have
an entry are overwritten.`,
	Example: `  moodiary seed
  moodiary seed weekend-journaler --days 30
  moodiary seed rollercoaster --seed 42
  moodiary seed --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if seedList {
			names := make([]string, 0, len(profiles))
			for name := range profiles {
				names = append(names, name)
			}
			slices.Sort(names)
			fmt.Fprintln(out, "Available profiles:")
			for _, name := range names {
				fmt.Fprintf(out, "  %-20s %s\n", name, profiles[name].description)
			}
			return nil
		}

		profileName := "daily-writer"
		if len(args) > 0 {
			profileName = args[0]
		}
		p, ok := profiles[profileName]
		if !ok {
			return usageError("unknown profile %q (run \"moodiary seed --list\")", profileName)
		}
		daysBack := p.daysBack
		if seedDays > 0 {
			daysBack = seedDays
		}

		src := seedSeed
		if src == 0 {
			src = now().UnixNano()
		}
		rng := rand.New(rand.NewSource(src))

		res := seedResult{Profile: profileName}
		end := day.Normalize(today())
		for d := end.AddDate(0, 0, -daysBack); !d.After(end); d = d.AddDate(0, 0, 1) {
			if !p.writes(d, rng) {
				continue
			}
			sd := p.days[rng.Intn(len(p.days))](rng)
			mood := drawMood(p, d, rng)

			at := randomTimeOfDay(d, rng)
			if at.After(today()) {
				at = today()
			}
			_, created, err := daily.Upsert(store, at, entry.Payload{
				Content: sd.content,
				Mood:    mood,
				Tags:    sd.tags,
				Title:   sd.title,
			})
			if err != nil {
				appLogger.Warn("skipping seed day", "date", d.Format(day.DayLayout), "error", err)
				continue
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		appLogger.Info("seed complete", "profile", profileName, "seed", src, "created", res.Created, "updated", res.Updated)

		if jsonOutput {
			return ui.FormatJSON(out, res)
		}
		fmt.Fprintf(out, "Seeded with profile %q:\n", profileName)
		fmt.Fprintf(out, "  Entries created: %d\n", res.Created)
		fmt.Fprintf(out, "  Entries updated: %d\n", res.Updated)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedList, "list", false, "list available profiles")
	seedCmd.Flags().IntVar(&seedDays, "days", 0, "days back to seed (default per profile)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "random seed for reproducible data (default time based)")
	rootCmd.AddCommand(seedCmd)
}

func chance(p float64) func(time.Time, *rand.Rand) bool {
	return func(_ time.Time, rng *rand.Rand) bool { return rng.Float64() < p }
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// drawMood picks a mood from the profile's weights.
func drawMood(p profile, d time.Time, rng *rand.Rand) int {
	total := 0
	for _, w := range p.moodWeights {
		total += w
	}
	mood := entry.NeutralMood
	if total > 0 {
		n := rng.Intn(total)
		for i, w := range p.moodWeights {
			if n < w {
				mood = i + 1
				break
			}
			n -= w
		}
	}
	if isWeekend(d) {
		mood += p.weekendLift
	}
	return min(max(mood, entry.MinMood), entry.MaxMood)
}

// randomTimeOfDay returns a time on the given day at a realistic hour.
func randomTimeOfDay(d time.Time, rng *rand.Rand) time.Time {
	// Most entries are written between 7am and 10pm
	hour := 7 + rng.Intn(15)
	minute := rng.Intn(60)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// --- Content generators ---

func routineDay(rng *rand.Rand) seedDay {
	mornings := []string{
		"Up at 6:30 for a run along the river while the fog lifted.",
		"Slow breakfast and ten minutes of breathing before anything else.",
		"Rough night, but I still made it to the gym before work.",
		"Stayed in bed with a book until nine. Needed that.",
	}
	evenings := []string{
		"Cooked pasta and watched a documentary about the deep sea.",
		"Video call with family. My niece can ride a bike now and would not stop talking about it.",
		"Read before bed. Halfway through the book on habits.",
		"Walked to the jazz bar on the corner. The trumpet player was unreal.",
	}
	return seedDay{
		title:   "Routine",
		content: fmt.Sprintf("## Morning\n\n%s\n\n## Evening\n\n%s", pick(rng, mornings), pick(rng, evenings)),
		tags:    []string{"routine"},
	}
}

func reflectionDay(rng *rand.Rand) seedDay {
	return seedDay{
		content: pick(rng, []string{
			"Noticed I was more patient today. The slow queue at the post office did not bother me at all.",
			"Had the conversation I had been putting off. It was uncomfortable and it went fine.",
			"Thinking about how I want an ordinary Tuesday to feel a year from now. Calm, mostly.",
			"Failed at something small and it stung more than it should have. Writing it down helps.",
			"Sent messages to three friends I had lost touch with. Two replied within the hour.",
		}),
		tags: []string{"reflection"},
	}
}

func gratitudeDay(rng *rand.Rand) seedDay {
	items := []string{
		"coffee on a cold morning",
		"rain on the window",
		"a kind word from a stranger",
		"a full night's sleep",
		"bread from the bakery down the street",
		"a long call with an old friend",
		"sunlight in the kitchen in the afternoon",
		"the walk home through the neighbourhood",
	}
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return seedDay{
		title:   "Three good things",
		content: fmt.Sprintf("1. %s\n2. %s\n3. %s", items[0], items[1], items[2]),
		tags:    []string{"gratitude"},
	}
}

func ordinaryDay(rng *rand.Rand) seedDay {
	return seedDay{
		content: pick(rng, []string{
			"Work, home, dinner. Nothing remarkable and that is fine.",
			"Tried the new coffee place on the east side. Better espresso than my usual.",
			"Reorganised the bookshelf and found two books I forgot I owned.",
			"Rainy all day. Got a lot of reading done and made soup.",
		}),
		tags: []string{},
	}
}

func outingDay(rng *rand.Rand) seedDay {
	return seedDay{
		title: "Out and about",
		content: pick(rng, []string{
			"Hiked to the summit. Steeper than I remembered, but lunch on the flat rock at the top made up for it.",
			"Drove to the coast and walked the beach for an hour. Found a tide pool full of tiny crabs.",
			"Rented a kayak. The lake was like glass in the morning and a heron ignored us completely.",
			"Cycled the river trail, 40km round trip with a headwind the whole way back.",
		}),
		tags: []string{"outdoors", "weekend"},
	}
}

func readingDay(rng *rand.Rand) seedDay {
	return seedDay{
		content: pick(rng, []string{
			"Finished the novel on the porch. The ending was bittersweet in a way that felt earned.",
			"Tea and three chapters on the history of zero. Strangely moving.",
			"Library run: a biography, some poetry and a book about mycelium networks.",
		}),
		tags: []string{"reading"},
	}
}

func cookingDay(rng *rand.Rand) seedDay {
	return seedDay{
		title: "Kitchen day",
		content: pick(rng, []string{
			"Tomato sauce from scratch and my first sourdough in months. Decent crumb.",
			"Attempted croissants. Not bakery grade, but flaky and gone by noon.",
			"Meal prep for the week: roast chicken, grain bowls and a pot of miso soup.",
		}),
		tags: []string{"cooking"},
	}
}

func friendsDay(rng *rand.Rand) seedDay {
	return seedDay{
		content: pick(rng, []string{
			"Monthly brunch with the group. Lots of laughing, then a slow lap of the park.",
			"Board game night ran three hours. Lost badly and loved it.",
			"Afternoon at my parents'. Dad's tomatoes are doing great this year.",
		}),
		tags: []string{"friends"},
	}
}

func workWinDay(rng *rand.Rand) seedDay {
	return seedDay{
		title: "Good day at work",
		content: pick(rng, []string{
			"Shipped the feature I have been fighting with all week. Clean rollout.",
			"Found the bug that has been haunting us for a month. One missing line.",
			"Presentation went well. My manager stopped by afterwards to say so.",
		}),
		tags: []string{"work"},
	}
}

func workSlogDay(rng *rand.Rand) seedDay {
	return seedDay{
		content: pick(rng, []string{
			"Back to back meetings and nothing to show for it. Headache by four.",
			"Deadline moved up again. Worked late and still feel behind.",
			"Argued about the same design question for the third day running.",
		}),
		tags: []string{"work", "stress"},
	}
}
