package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Reloader refetches the catalog
type Reloader interface {
	ReloadCatalog(ctx context.Context) error
}

// CatalogRefresher periodically reloads the product catalog and categories
type CatalogRefresher struct {
	sched    *cron.Cron
	reloader Reloader
	timeout  time.Duration
}

// NewCatalogRefresher schedules reloads on a cron spec such as "@every 10m"
// or "0 */15 * * * *". Each run is bounded by timeout when it is positive.
func NewCatalogRefresher(spec string, reloader Reloader, timeout time.Duration) (*CatalogRefresher, error) {
	r := &CatalogRefresher{
		sched:    cron.New(cron.WithParser(cronParser)),
		reloader: reloader,
		timeout:  timeout,
	}

	if _, err := r.sched.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start runs the scheduler in its own goroutine
func (r *CatalogRefresher) Start() {
	r.sched.Start()
}

// Stop halts the scheduler. The returned context is done once a running
// reload has finished.
func (r *CatalogRefresher) Stop() context.Context {
	return r.sched.Stop()
}

func (r *CatalogRefresher) run() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Errorf("catalog refresh panic: %v", err)
		}
	}()

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := r.reloader.ReloadCatalog(ctx); err != nil {
		zap.L().Warn("scheduled catalog refresh failed", zap.Error(err))
		return
	}
	zap.L().Debug("catalog refreshed", zap.Duration("took", time.Since(start)))
}
