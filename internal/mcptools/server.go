// Package mcptools exposes the diary as Model Context Protocol tools.
package mcptools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/notify"
	"github.com/chris-regnier/moodiary/internal/storage"
)

// Config wires the tools to the diary.
type Config struct {
	Store       storage.Storage
	Bus         *notify.Bus // optional; list_month caching is disabled without it
	Location    *time.Location
	DefaultMood int
	Version     string
	Logger      *slog.Logger
	Now         func() time.Time
}

func (c *Config) defaults() {
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.DefaultMood == 0 {
		c.DefaultMood = entry.NeutralMood
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// tools holds the state shared by the tool handlers.
type tools struct {
	cfg   Config
	cache *monthCache
}

// NewDiaryMCPServer creates an in-memory MCP server exposing diary tools.
// Returns the server and a client transport for connecting to it.
func NewDiaryMCPServer(ctx context.Context, cfg Config) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server, unsubscribe := CreateMCPServer(cfg)

	go func() {
		defer unsubscribe()
		session, err := server.Connect(ctx, serverTransport, nil)
		if err != nil {
			return
		}
		_ = session.Wait()
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the diary tools registered.
// The returned function releases the change-bus subscription.
func CreateMCPServer(cfg Config) (*mcp.Server, func()) {
	cfg.defaults()
	t := &tools{cfg: cfg}

	unsubscribe := func() {}
	if cfg.Bus != nil {
		t.cache = newMonthCache()
		unsubscribe = cfg.Bus.Subscribe(func(ch notify.Change) {
			t.cache.invalidate(ch)
			cfg.Logger.Debug("month cache invalidated", "all", ch.All, "start", ch.Start)
		})
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moodiary",
		Version: cfg.Version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_day_entry",
		Description: "Get the diary entry for one calendar day",
	}, t.getDayEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_month",
		Description: "List the diary entries of one month with the average mood",
	}, t.listMonth)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mood_stats",
		Description: "Mood average, distribution, tag frequency and writing streak over a trailing window",
	}, t.moodStats)

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Write the entry for a day; an existing entry for that day is replaced",
	}, t.createEntry)

	return server, unsubscribe
}
