package holiday

import (
	"context"

	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	repo         *Repository
	service      *Service
	handler      *Handler
	orchestrator *sync.Orchestrator
	scheduler    *Scheduler
	logger       *zap.Logger
	syncCfg      sync.Config
}

// NewFeature wires the holiday feature: repository, service, sync
// orchestrator and the cron scheduler.
func NewFeature(db *gorm.DB, client nager.Client, logger *zap.Logger, apiCfg nager.Config, syncCfg sync.Config) (*Feature, error) {
	repo := NewRepository(db, syncCfg.BatchSize)
	svc := NewService(repo, client, logger, apiCfg.RetryCount)
	orch := sync.NewOrchestrator(client, repo, svc, logger, apiCfg.RetryCount, syncCfg)

	sched, err := NewScheduler(orch, logger, syncCfg)
	if err != nil {
		return nil, err
	}

	return &Feature{
		repo:         repo,
		service:      svc,
		handler:      NewHandler(svc),
		orchestrator: orch,
		scheduler:    sched,
		logger:       logger,
		syncCfg:      syncCfg,
	}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "holiday"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the schema, registers the routes and starts the refresh
// scheduler.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.repo.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return f.scheduler.Start()
}

// StartupSync runs the historical bootstrap when the store is empty and
// the load is enabled. Safe to call from a background goroutine after the
// server started listening.
func (f *Feature) StartupSync(ctx context.Context) error {
	if !f.syncCfg.Bootstrap {
		f.logger.Info("Startup bootstrap disabled")
		return nil
	}
	needed, err := f.orchestrator.BootstrapNeeded(ctx)
	if err != nil {
		return err
	}
	if !needed {
		f.logger.Info("Startup bootstrap skipped, countries already loaded")
		return nil
	}
	_, err = f.orchestrator.Bootstrap(ctx)
	return err
}

// Bootstrap runs the historical load unconditionally.
func (f *Feature) Bootstrap(ctx context.Context) (*sync.Report, error) {
	if err := f.repo.Migrate(); err != nil {
		return nil, err
	}
	return f.orchestrator.Bootstrap(ctx)
}

// Refresh reconciles a single (country, year).
func (f *Feature) Refresh(ctx context.Context, countryCode string, year int) error {
	if err := f.repo.Migrate(); err != nil {
		return err
	}
	_, err := f.service.Refresh(ctx, countryCode, year)
	return err
}

// Stop halts the refresh scheduler.
func (f *Feature) Stop() {
	f.scheduler.Stop()
}
