package background

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"notehub/internal/caching"
	"notehub/internal/metrics"
	"notehub/internal/repositories"
)

// JobScheduler runs the periodic tenant usage snapshot: per-tenant note
// counts into the prometheus gauges, plus a tenant cache warm. Read-only;
// plan enforcement never depends on it.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	tenantRepo repositories.TenantRepository
	noteRepo   repositories.NoteRepository
	cache      caching.TenantCache
	logger     *zap.Logger
	interval   time.Duration
}

func NewJobScheduler(tenantRepo repositories.TenantRepository, noteRepo repositories.NoteRepository,
	cache caching.TenantCache, logger *zap.Logger, interval time.Duration) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		tenantRepo: tenantRepo,
		noteRepo:   noteRepo,
		cache:      cache,
		logger:     logger,
		interval:   interval,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.snapshotTenantUsage, context.Background()),
		gocron.WithName("tenant-usage-snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) snapshotTenantUsage(ctx context.Context) {
	tenants, err := js.tenantRepo.List(ctx)
	if err != nil {
		js.logger.Error("usage snapshot: failed to list tenants", zap.Error(err))
		return
	}

	for _, tenant := range tenants {
		count, err := js.noteRepo.CountByTenant(ctx, tenant.ID)
		if err != nil {
			js.logger.Error("usage snapshot: failed to count notes",
				zap.String("tenant", tenant.Slug), zap.Error(err))
			continue
		}
		metrics.NotesPerTenantGauge.WithLabelValues(tenant.Slug).Set(float64(count))

		if err := js.cache.Set(ctx, tenant, js.interval); err != nil {
			js.logger.Warn("usage snapshot: cache warm failed",
				zap.String("tenant", tenant.Slug), zap.Error(err))
		}
	}

	metrics.ActiveTenantsGauge.Set(float64(len(tenants)))
	js.logger.Debug("usage snapshot completed", zap.Int("tenants", len(tenants)))
}
