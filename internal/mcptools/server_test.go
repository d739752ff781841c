package mcptools_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/mcptools"
	"github.com/chris-regnier/moodiary/internal/notify"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/storage/markdown"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

type harness struct {
	raw     storage.Storage
	store   storage.Storage
	session *mcp.ClientSession
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	raw, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	bus := notify.NewBus()
	store := storage.WithNotifications(raw, bus)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	_, clientTransport := mcptools.NewDiaryMCPServer(ctx, mcptools.Config{
		Store:    store,
		Bus:      bus,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return &harness{raw: raw, store: store, session: session}
}

// call invokes a tool and decodes its structured output into out.
func (h *harness) call(t *testing.T, name string, args, out any) *mcp.CallToolResult {
	t.Helper()
	result, err := h.session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool %s failed: %v", name, err)
	}
	if result.IsError || out == nil {
		return result
	}
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("failed to unmarshal structured content: %v", err)
	}
	return result
}

func seed(t *testing.T, s storage.Storage, y int, m time.Month, d, mood int, tags ...string) entry.Entry {
	t.Helper()
	date := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	if tags == nil {
		tags = []string{}
	}
	e, err := s.Create(entry.Payload{Date: &date, Content: "entry", Mood: mood, Tags: tags})
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return e
}

func TestListTools(t *testing.T) {
	h := newHarness(t)
	res, err := h.session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"get_day_entry", "list_month", "mood_stats", "create_entry"} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}

func TestGetDayEntry(t *testing.T) {
	h := newHarness(t)
	e := seed(t, h.store, 2024, time.March, 15, 5, "sun")

	var out mcptools.GetDayEntryOutput
	h.call(t, "get_day_entry", mcptools.GetDayEntryInput{}, &out)
	if !out.Found || out.Entry == nil || out.Entry.ID != e.ID {
		t.Fatalf("today = %+v", out)
	}
	if out.Entry.MoodIcon != "sparkles" || out.Entry.MoodLabel != "Excellent" {
		t.Errorf("mood = %s/%s", out.Entry.MoodIcon, out.Entry.MoodLabel)
	}

	out = mcptools.GetDayEntryOutput{}
	h.call(t, "get_day_entry", mcptools.GetDayEntryInput{Date: "2024-03-14"}, &out)
	if out.Found || out.Date != "2024-03-14" {
		t.Errorf("empty day = %+v", out)
	}

	if res := h.call(t, "get_day_entry", mcptools.GetDayEntryInput{Date: "14/03/2024"}, nil); !res.IsError {
		t.Error("expected tool error for malformed date")
	}
}

func TestListMonthCacheInvalidation(t *testing.T) {
	h := newHarness(t)
	seed(t, h.store, 2024, time.March, 1, 2)
	seed(t, h.store, 2024, time.March, 31, 4)
	seed(t, h.store, 2024, time.April, 1, 5)

	var out mcptools.ListMonthOutput
	h.call(t, "list_month", mcptools.ListMonthInput{Month: "2024-03"}, &out)
	if len(out.Entries) != 2 || out.AverageMood != 3 {
		t.Fatalf("march = %+v", out)
	}

	// Written behind the bus: the cache still serves the old month.
	seed(t, h.raw, 2024, time.March, 10, 3)
	h.call(t, "list_month", mcptools.ListMonthInput{Month: "2024-03"}, &out)
	if len(out.Entries) != 2 {
		t.Fatalf("expected cached result, got %d entries", len(out.Entries))
	}

	// A published change to another month leaves March cached.
	seed(t, h.store, 2024, time.February, 10, 3)
	h.call(t, "list_month", mcptools.ListMonthInput{Month: "2024-03"}, &out)
	if len(out.Entries) != 2 {
		t.Fatalf("unrelated change evicted March: %d entries", len(out.Entries))
	}

	// A published change inside March evicts it.
	seed(t, h.store, 2024, time.March, 20, 3)
	h.call(t, "list_month", mcptools.ListMonthInput{Month: "2024-03"}, &out)
	if len(out.Entries) != 4 {
		t.Fatalf("expected 4 entries after invalidation, got %d", len(out.Entries))
	}
	if out.Month != "2024-03" {
		t.Errorf("month = %q", out.Month)
	}
}

func TestMoodStats(t *testing.T) {
	h := newHarness(t)
	seed(t, h.store, 2024, time.March, 13, 2, "work")
	seed(t, h.store, 2024, time.March, 14, 4, "work", "gym")
	seed(t, h.store, 2024, time.March, 15, 5, "gym")
	seed(t, h.store, 2024, time.January, 1, 1)

	var out mcptools.MoodStatsOutput
	h.call(t, "mood_stats", mcptools.MoodStatsInput{Range: "week"}, &out)
	if out.Entries != 3 {
		t.Errorf("entries = %d, want 3", out.Entries)
	}
	if out.Streak != 3 {
		t.Errorf("streak = %d, want 3", out.Streak)
	}
	if out.Distribution["4"] != 1 || out.Distribution["1"] != 0 {
		t.Errorf("distribution = %v", out.Distribution)
	}
	if len(out.Tags) != 2 || out.Tags[0].Tag != "work" {
		t.Errorf("tags = %+v", out.Tags)
	}

	if res := h.call(t, "mood_stats", mcptools.MoodStatsInput{Range: "decade"}, nil); !res.IsError {
		t.Error("expected tool error for unknown range")
	}
}

func TestCreateEntry(t *testing.T) {
	h := newHarness(t)

	t.Run("creates today's entry", func(t *testing.T) {
		var out mcptools.CreateEntryOutput
		h.call(t, "create_entry", mcptools.CreateEntryInput{Content: "First", Tags: []string{"a"}}, &out)
		if !out.Created || out.Date != "2024-03-15" || out.Mood != "Neutral" {
			t.Fatalf("out = %+v", out)
		}
		e, err := h.store.Get(out.ID)
		if err != nil {
			t.Fatalf("entry not found in storage: %v", err)
		}
		if e.Content != "First" || len(e.Tags) != 1 {
			t.Errorf("stored = %+v", e)
		}
	})

	t.Run("second call updates the same day", func(t *testing.T) {
		var first, second mcptools.CreateEntryOutput
		h.call(t, "create_entry", mcptools.CreateEntryInput{Content: "Morning", Date: "2024-03-01", Mood: 2}, &first)
		h.call(t, "create_entry", mcptools.CreateEntryInput{Content: "Evening", Date: "2024-03-01", Mood: 4}, &second)
		if second.Created || second.ID != first.ID {
			t.Fatalf("first=%+v second=%+v", first, second)
		}
		e, err := h.store.Get(second.ID)
		if err != nil {
			t.Fatal(err)
		}
		if e.Content != "Evening" || e.Mood != 4 {
			t.Errorf("stored = %+v", e)
		}
	})

	t.Run("keeps an existing photo", func(t *testing.T) {
		date := time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC)
		orig, err := h.store.Create(entry.Payload{Date: &date, Content: "pic", Mood: 3, Image: []byte{0xff, 0xd8}, Tags: []string{}})
		if err != nil {
			t.Fatal(err)
		}
		h.call(t, "create_entry", mcptools.CreateEntryInput{Content: "rewritten", Date: "2024-03-02"}, nil)
		e, err := h.store.Get(orig.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !e.HasImage() || e.Content != "rewritten" {
			t.Errorf("stored = %+v", e)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []mcptools.CreateEntryInput{
			{Content: ""},
			{Content: "x", Mood: 7},
			{Content: "x", Date: "March 3"},
		} {
			if res := h.call(t, "create_entry", in, nil); !res.IsError {
				t.Errorf("expected tool error for %+v", in)
			}
		}
	})
}
