package holiday

import (
	"context"
	"time"

	"holiday-keeper/feature/holiday/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the yearly bulk refresh on a cron spec in the configured
// timezone. Each firing reconciles the previous and the current year for
// every known country.
type Scheduler struct {
	cron         *cron.Cron
	orchestrator *sync.Orchestrator
	logger       *zap.Logger
	spec         string
}

// NewScheduler builds the cron runner. The timezone must resolve through
// the system zone database.
func NewScheduler(orchestrator *sync.Orchestrator, logger *zap.Logger, cfg sync.Config) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		orchestrator: orchestrator,
		logger:       logger,
		spec:         cfg.Cron,
	}, nil
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Holiday refresh scheduled", zap.String("cron", s.spec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	year := time.Now().Year()
	years := []int{year - 1, year}
	if _, err := s.orchestrator.RefreshAll(context.Background(), years); err != nil {
		s.logger.Error("Scheduled refresh failed", zap.Ints("years", years), zap.Error(err))
	}
}
