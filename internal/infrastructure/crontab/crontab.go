package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"testhub/internal/config"
	"testhub/internal/domain/report"
	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/logger"
	"testhub/internal/utils/platformerrors"
)

const (
	DefaultRefreshInterval = 30               // in minutes
	CronJobTimeout         = 10 * time.Minute // Timeout for each cron job execution
)

// Crontab periodically regenerates report artifacts for active plans
// so that cached downloads do not drift too far behind new executions.
type Crontab struct {
	ctab    *crontab.Crontab
	cfg     *config.Config
	reports *report.Service
	plans   *testplan.Service
}

func NewCrontab(cfg *config.Config, reports *report.Service, plans *testplan.Service) *Crontab {
	return &Crontab{
		ctab:    crontab.New(),
		cfg:     cfg,
		reports: reports,
		plans:   plans,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	if c.cfg.ReportRefreshEnabled {
		interval := c.cfg.ReportRefreshIntervalMinutes
		if interval <= 0 {
			interval = DefaultRefreshInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.refreshActivePlans(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add report refresh job")
		}
		log.Info().Msgf("Report refresh scheduled: every %d minute(s)", interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// refreshActivePlans regenerates artifacts that already exist on disk.
// Plans nobody ever requested a report for are skipped.
func (c *Crontab) refreshActivePlans(ctx context.Context) {
	log := logger.GetLogger()

	active := true
	plans, _, err := c.plans.List(ctx, testplan.Filter{IsActive: &active}, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active plans for report refresh")
		return
	}

	for _, plan := range plans {
		if err := c.reports.RefreshExisting(ctx, plan.ID); err != nil {
			log.Error().Err(err).Uint("plan_id", plan.ID).Msg("Failed to refresh report artifacts")
		}
	}
}
