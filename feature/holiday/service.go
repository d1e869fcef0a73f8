package holiday

import (
	"context"
	"fmt"
	"time"

	"holiday-keeper/core/nager"
	"holiday-keeper/core/retry"
	"holiday-keeper/feature/holiday/reconcile"

	"go.uber.org/zap"
)

// Service handles holiday operations: reconciliation-based refresh of one
// (country, year), paginated search, and scope deletes.
type Service struct {
	repo    *Repository
	client  nager.Client
	logger  *zap.Logger
	retries int
}

// NewService creates a new holiday service.
func NewService(repo *Repository, client nager.Client, logger *zap.Logger, retries int) *Service {
	return &Service{
		repo:    repo,
		client:  client,
		logger:  logger,
		retries: retries,
	}
}

// Refresh reconciles the persisted holidays of one (country, year) against
// the current API state. The fetched set is authoritative: missing keys are
// deleted, new keys inserted, changed keys updated, in that fixed
// insert/update/delete order, each partition only when non-empty.
//
// A terminal fetch failure aborts before any storage read or write, so a
// failed fetch can never masquerade as an empty holiday list.
func (s *Service) Refresh(ctx context.Context, countryCode string, year int) (reconcile.Summary, error) {
	start := time.Now()

	fetched, err := retry.Do(ctx, s.retries, func(ctx context.Context) ([]nager.Holiday, error) {
		return s.client.ListHolidays(ctx, year, countryCode)
	})
	if err != nil {
		return reconcile.Summary{}, fmt.Errorf("fetch holidays %s/%d: %w", countryCode, year, err)
	}

	country, err := s.repo.EnsureCountry(ctx, countryCode)
	if err != nil {
		return reconcile.Summary{}, err
	}

	persisted, err := s.repo.HolidaysForCountryYear(ctx, country.CountryID, year)
	if err != nil {
		return reconcile.Summary{}, err
	}

	plan := reconcile.Diff(fetched, persisted)

	if len(plan.Inserts) > 0 {
		if err := s.repo.UpsertHolidays(ctx, country.CountryID, plan.Inserts); err != nil {
			return reconcile.Summary{}, err
		}
	}
	if len(plan.Updates) > 0 {
		if err := s.repo.UpdateHolidays(ctx, plan.Updates); err != nil {
			return reconcile.Summary{}, err
		}
	}
	if len(plan.Deletes) > 0 {
		if err := s.repo.DeleteHolidays(ctx, plan.Deletes); err != nil {
			return reconcile.Summary{}, err
		}
	}

	summary := plan.Summary()
	s.logger.Info("Holiday refresh completed",
		zap.String("country", countryCode),
		zap.Int("year", year),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("deleted", summary.Deleted),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, nil
}

// Search returns one page of holidays matching the given filters.
func (s *Service) Search(ctx context.Context, params SearchParams) (*Page, error) {
	return s.repo.Search(ctx, params)
}

// DeleteByCountryYear removes every stored holiday of one country and year.
func (s *Service) DeleteByCountryYear(ctx context.Context, countryCode string, year int) (int64, error) {
	deleted, err := s.repo.DeleteByCountryYear(ctx, countryCode, year)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Holidays deleted",
		zap.String("country", countryCode),
		zap.Int("year", year),
		zap.Int64("rows", deleted),
	)
	return deleted, nil
}
