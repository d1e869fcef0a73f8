package sync

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"holiday-keeper/core/nager"
	"holiday-keeper/core/retry"
	"holiday-keeper/feature/holiday/reconcile"

	"go.uber.org/zap"
)

// Store is the storage surface the orchestrator needs.
type Store interface {
	BulkInsertCountries(ctx context.Context, countries []nager.Country) error
	CountryIDsByCode(ctx context.Context) (map[string]string, error)
	UpsertHolidays(ctx context.Context, countryID string, holidays []nager.Holiday) error
	CountCountries(ctx context.Context) (int64, error)
}

// Refresher reconciles one (country, year) against the external API.
type Refresher interface {
	Refresh(ctx context.Context, countryCode string, year int) (reconcile.Summary, error)
}

// Report aggregates the outcome of one orchestrated run.
type Report struct {
	Countries int           `json:"countries"`
	Holidays  int           `json:"holidays"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Orchestrator drives reconciliation across many (country, year) units with
// bounded concurrency. Units are independent: one unit failing after retry
// exhaustion is counted and logged, its siblings run to completion.
type Orchestrator struct {
	client    nager.Client
	store     Store
	refresher Refresher
	logger    *zap.Logger
	retries   int
	cfg       Config
}

// NewOrchestrator creates a sync orchestrator.
func NewOrchestrator(client nager.Client, store Store, refresher Refresher, logger *zap.Logger, retries int, cfg Config) *Orchestrator {
	return &Orchestrator{
		client:    client,
		store:     store,
		refresher: refresher,
		logger:    logger,
		retries:   retries,
		cfg:       cfg,
	}
}

// BootstrapNeeded reports whether the startup bootstrap should run. The
// historical load is idempotent through the natural-key upsert, but
// re-fetching the full range on every restart is pointless once countries
// exist.
func (o *Orchestrator) BootstrapNeeded(ctx context.Context) (bool, error) {
	count, err := o.store.CountCountries(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

type unit struct {
	code string
	year int
}

type fetchResult struct {
	code string
	rows []nager.Holiday
}

// Bootstrap performs the historical backfill: the full country list once,
// then the cross product of (country x configured year range) fetched
// concurrently and inserted in batches. No diffing happens; bootstrap
// assumes an empty table and relies on the upsert for idempotency.
//
// A terminal failure on the country fetch aborts the whole bootstrap — a
// partial country list is not acceptable. Per-unit holiday fetch failures
// are counted and do not stop sibling units.
func (o *Orchestrator) Bootstrap(ctx context.Context) (*Report, error) {
	start := time.Now()

	countries, err := retry.Do(ctx, o.retries, func(ctx context.Context) ([]nager.Country, error) {
		return o.client.ListCountries(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap country fetch: %w", err)
	}

	if err := o.store.BulkInsertCountries(ctx, countries); err != nil {
		return nil, err
	}

	years := o.cfg.YearRange()
	units := make([]unit, 0, len(countries)*len(years))
	for _, c := range countries {
		for _, y := range years {
			units = append(units, unit{code: c.CountryCode, year: y})
		}
	}

	var succeeded, failed atomic.Int64

	jobs := make(chan unit, len(units))
	results := make(chan fetchResult, len(units))

	workers := runtime.NumCPU()
	if workers > len(units) && len(units) > 0 {
		workers = len(units)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for u := range jobs {
				rows, err := retry.Do(ctx, o.retries, func(ctx context.Context) ([]nager.Holiday, error) {
					return o.client.ListHolidays(ctx, u.year, u.code)
				})
				if err != nil {
					failed.Add(1)
					o.logger.Warn("Bootstrap unit failed",
						zap.String("country", u.code),
						zap.Int("year", u.year),
						zap.Error(err),
					)
					continue
				}
				succeeded.Add(1)
				results <- fetchResult{code: u.code, rows: rows}
			}
		}()
	}

	for _, u := range units {
		jobs <- u
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	byCountry := make(map[string][]nager.Holiday)
	total := 0
	for res := range results {
		byCountry[res.code] = append(byCountry[res.code], res.rows...)
		total += len(res.rows)
	}

	ids, err := o.store.CountryIDsByCode(ctx)
	if err != nil {
		return nil, err
	}
	for code, rows := range byCountry {
		countryID, ok := ids[code]
		if !ok {
			// country appeared in a holiday payload but not in the list
			o.logger.Warn("Skipping holidays of unknown country", zap.String("country", code))
			continue
		}
		if err := o.store.UpsertHolidays(ctx, countryID, rows); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Countries: len(countries),
		Holidays:  total,
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
		Elapsed:   time.Since(start),
	}
	o.logger.Info("Bootstrap load completed",
		zap.Int("from_year", o.cfg.FromYear),
		zap.Int("to_year", o.cfg.ToYear),
		zap.Int("countries", report.Countries),
		zap.Int("holidays", report.Holidays),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// RefreshAll reconciles every known country for the given years on a fixed
// worker pool. Each (country, year) unit commits independently; the call
// blocks until every dispatched unit completed or failed, then reports the
// aggregate counts.
func (o *Orchestrator) RefreshAll(ctx context.Context, years []int) (*Report, error) {
	start := time.Now()

	countries, err := retry.Do(ctx, o.retries, func(ctx context.Context) ([]nager.Country, error) {
		return o.client.ListCountries(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("refresh country fetch: %w", err)
	}

	// Countries first seen here get persisted before the fan-out so every
	// refresh unit resolves its country row.
	if err := o.store.BulkInsertCountries(ctx, countries); err != nil {
		return nil, err
	}

	units := make([]unit, 0, len(countries)*len(years))
	for _, c := range countries {
		for _, y := range years {
			units = append(units, unit{code: c.CountryCode, year: y})
		}
	}

	var succeeded, failed atomic.Int64

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	if workers > len(units) && len(units) > 0 {
		workers = len(units)
	}

	jobs := make(chan unit, len(units))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for u := range jobs {
				if _, err := o.refresher.Refresh(ctx, u.code, u.year); err != nil {
					failed.Add(1)
					o.logger.Warn("Refresh unit failed",
						zap.String("country", u.code),
						zap.Int("year", u.year),
						zap.Error(err),
					)
					continue
				}
				succeeded.Add(1)
			}
		}()
	}

	for _, u := range units {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	report := &Report{
		Countries: len(countries),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
		Elapsed:   time.Since(start),
	}
	o.logger.Info("Bulk refresh completed",
		zap.Ints("years", years),
		zap.Int("countries", report.Countries),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
