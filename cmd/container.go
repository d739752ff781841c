package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/config"
	"github.com/chris-regnier/moodiary/internal/generate"
	"github.com/chris-regnier/moodiary/internal/logger"
	"github.com/chris-regnier/moodiary/internal/notify"
	"github.com/chris-regnier/moodiary/internal/shell"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/storage/markdown"
	"github.com/chris-regnier/moodiary/internal/storage/sqlite"
)

// storeHandle is the notifying store plus what it takes to close it.
type storeHandle struct {
	storage.Storage
	raw         storage.Storage
	unsubscribe func()
}

// Shutdown implements do.Shutdownable.
func (h *storeHandle) Shutdown() error {
	h.unsubscribe()
	return h.raw.Close()
}

// newContainer registers the application services. The config is provided
// as a value so tests can build a container around a temporary data dir.
func newContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, provideLogger)
	do.Provide(injector, provideBus)

	// Storage
	do.Provide(injector, provideStore)

	// Services, built on first use
	do.Provide(injector, provideBackupService)
	do.Provide(injector, provideGenerator)

	return injector
}

func provideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Config{
		Format:    cfg.Log.Format,
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}), nil
}

func provideBus(i do.Injector) (*notify.Bus, error) {
	return notify.NewBus(), nil
}

func provideStore(i do.Injector) (*storeHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	bus := do.MustInvoke[*notify.Bus](i)

	var raw storage.Storage
	var err error
	switch cfg.Storage {
	case "markdown":
		raw, err = markdown.New(cfg.DataDir)
	case "sqlite":
		raw, err = sqlite.New(cfg.DataDir)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", cfg.Storage, err)
	}
	log.Debug("storage opened", "backend", cfg.Storage, "data_dir", cfg.DataDir)

	unsubscribe := shell.InvalidateOnChange(bus, cfg.DataDir, func() time.Time { return now().In(cfg.Location()) })
	return &storeHandle{
		Storage:     storage.WithNotifications(raw, bus),
		raw:         raw,
		unsubscribe: unsubscribe,
	}, nil
}

func provideBackupService(i do.Injector) (*backup.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	handle := do.MustInvoke[*storeHandle](i)

	var sink backup.Sink
	if s3 := cfg.Backup.S3; s3.Enabled {
		s3Sink, err := backup.NewS3Sink(context.Background(), backup.S3Config{
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		sink = s3Sink
		log.Debug("backup upload enabled", "bucket", s3.Bucket, "prefix", s3.Prefix)
	}
	return backup.NewService(handle, cfg.BackupDir(), sink, log.With("component", "backup")), nil
}

func provideGenerator(i do.Injector) (generate.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	return generate.NewOpenAI(generate.OpenAIConfig{
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		APIKey:  cfg.APIKey(),
		Style:   cfg.Generator.Style,
		Prompt:  cfg.Generator.Prompt,
	}, log.With("component", "generate"))
}

// bootstrap builds the container for cfg and resolves the services every
// command reads.
func bootstrap(cfg *config.Config) error {
	inj := newContainer(cfg)
	handle, err := do.Invoke[*storeHandle](inj)
	if err != nil {
		inj.Shutdown()
		return err
	}
	injector = inj
	appConfig = cfg
	appLogger = do.MustInvoke[*slog.Logger](inj)
	store = handle
	return nil
}

// shutdown closes everything the container opened.
func shutdown() {
	if injector == nil {
		return
	}
	injector.Shutdown()
	injector = nil
	store = nil
}
