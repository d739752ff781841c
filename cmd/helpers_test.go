package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chris-regnier/moodiary/internal/config"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/generate"
)

// fixedNow is "now" for every command test.
var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Storage:     "markdown",
		DataDir:     dataDir,
		Timezone:    "UTC",
		DefaultMood: entry.NeutralMood,
		Theme:       "dark",
		Log:         config.LogConfig{Level: "error", Format: "pretty"},
		Generator: config.GeneratorConfig{
			BaseURL:   "http://127.0.0.1:1/v1",
			Model:     "test",
			APIKeyEnv: "MOODIARY_TEST_API_KEY",
			Style:     "realistic",
		},
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "🔥",
			ShowMood:    true,
		},
	}
}

// setupTestEnv wires the commands to a markdown store in a temp dir.
func setupTestEnv(t *testing.T) {
	t.Helper()
	cfg := testConfig(t.TempDir())
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	prevNow := now
	now = func() time.Time { return fixedNow }
	if err := bootstrap(cfg); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() {
		shutdown()
		now = prevNow
	})
}

// resetFlags restores every flag to its default. Flag variables are package
// level, so values would otherwise leak from one run into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the CLI with args and returns what it wrote to stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCmdWithInput(t, "", args...)
}

func runCmdWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun fails the test when the command errors.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("moodiary %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func decodeJSON(t *testing.T, data string, v any) {
	t.Helper()
	if err := json.NewDecoder(strings.NewReader(data)).Decode(v); err != nil {
		t.Fatalf("decoding %q: %v", data, err)
	}
}

// createEntry writes an entry for the given YYYY-MM-DD day and returns it.
func createEntry(t *testing.T, date string, mood int, content string, tags ...string) entry.Entry {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	d = d.Add(9 * time.Hour)
	e, err := store.Create(entry.Payload{Date: &d, Content: content, Mood: mood, Tags: append([]string{}, tags...)})
	if err != nil {
		t.Fatalf("creating entry for %s: %v", date, err)
	}
	return e
}

// fakeGenerator records requests and returns canned text.
type fakeGenerator struct {
	draft   string
	tags    []string
	err     error
	lastReq generate.Request
	tagged  []string
}

func (g *fakeGenerator) Generate(_ context.Context, req generate.Request) (string, error) {
	g.lastReq = req
	return g.draft, g.err
}

func (g *fakeGenerator) Tagify(_ context.Context, text string) ([]string, error) {
	g.tagged = append(g.tagged, text)
	if g.err != nil {
		return nil, g.err
	}
	return g.tags, nil
}

// useGenerator replaces the configured generator with g.
func useGenerator(t *testing.T, g generate.Generator) {
	t.Helper()
	do.OverrideValue[generate.Generator](injector, g)
}

