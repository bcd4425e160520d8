package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/service"
	"github.com/myhealth/portal/internal/portal/store"
	"github.com/myhealth/portal/internal/portal/store/drivers/sqlite"
	"github.com/myhealth/portal/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the storage substrate and the domain services together.
// All services share one records.Store so every collection sees the same
// per-key write coordinator; nothing in the tree reaches for a process-wide
// singleton.
type Application struct {
	cfg    Config
	logger *slog.Logger

	kv      store.KV
	Records *records.Store

	Directory *service.DirectoryService
	Messages  *service.MessageService
	Issues    *service.IssueService
	Tickets   *service.TicketService
	Session   *service.SessionService
}

// New creates an Application with all dependencies initialized and the
// caregiver-message fan-out subscribed.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	kv, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := kv.ApplyMigrations(); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	app.kv = kv

	app.initServices(kv)

	if cfg.SeedDemo {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if err := app.Directory.Seed(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	return app, nil
}

// NewWithKV builds an Application on an already-open substrate. Used by tests
// and tools that bring their own driver.
func NewWithKV(cfg Config, kv store.KV, logger *slog.Logger) *Application {
	app := &Application{cfg: cfg, logger: logger, kv: kv}
	app.initServices(kv)
	return app
}

func (app *Application) initServices(kv store.KV) {
	app.Records = records.NewStore(kv)

	app.Directory = &service.DirectoryService{Store: app.Records}
	app.Messages = &service.MessageService{Store: app.Records}
	app.Issues = &service.IssueService{Store: app.Records}
	app.Tickets = &service.TicketService{Store: app.Records}
	app.Session = &service.SessionService{Store: app.Records}

	// The one cross-component coupling in the system: every caregiver send
	// raises exactly one ticket.
	app.Messages.Subscribe(app.Tickets)
}

func (app *Application) Logger() *slog.Logger { return app.logger }

// Context returns a base context carrying the application logger.
func (app *Application) Context() context.Context {
	return slogx.WithContext(context.Background(), app.logger)
}

func (app *Application) Close() error {
	if app.kv == nil {
		return nil
	}
	return app.kv.Close()
}
