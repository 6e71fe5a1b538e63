package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/metrics"
	"testhub/internal/utils/platformerrors"
)

// Dispatcher runs a job on a background worker.
type Dispatcher interface {
	Submit(name string, job func(ctx context.Context))
}

// PlanSummary pairs a plan with its execution statistics for the
// summary endpoint.
type PlanSummary struct {
	Plan    testplan.TestPlan `json:"test_plan"`
	Summary Summary           `json:"summary"`
}

// Service builds report aggregates and manages rendered artifacts on
// disk. An artifact that already exists is served as-is without any
// staleness check against newer executions; regeneration happens via
// the background refresh job or by deleting the file.
type Service struct {
	aggregator *Aggregator
	plans      testplan.Repository
	dispatcher Dispatcher
	reportDir  string
	log        zerolog.Logger
}

func NewService(aggregator *Aggregator, plans testplan.Repository, dispatcher Dispatcher, reportDir string, log zerolog.Logger) *Service {
	return &Service{
		aggregator: aggregator,
		plans:      plans,
		dispatcher: dispatcher,
		reportDir:  reportDir,
		log:        log.With().Str("component", "report-service").Logger(),
	}
}

// ArtifactPath returns the canonical on-disk location for a plan's
// rendered report in the given format.
func (s *Service) ArtifactPath(planID uint, format Format) string {
	return filepath.Join(s.reportDir, fmt.Sprintf("test_plan_%d_report.%s", planID, format.Ext()))
}

// GetOrCreateReport returns the path to the rendered artifact,
// generating it synchronously when no cached file exists.
func (s *Service) GetOrCreateReport(ctx context.Context, planID uint, format Format) (string, error) {
	if !format.Renderable() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnsupportedFormat,
			fmt.Sprintf("report format not implemented: %s", format), nil)
	}

	path := s.ArtifactPath(planID, format)
	if _, err := os.Stat(path); err == nil {
		metrics.ReportCacheHitsTotal.WithLabelValues(string(format)).Inc()
		s.log.Debug().Uint("plan_id", planID).Str("path", path).Msg("serving cached report artifact")
		return path, nil
	}

	if err := s.generate(ctx, planID, format, path); err != nil {
		return "", err
	}
	return path, nil
}

// StartGeneration schedules report generation on the dispatcher and
// returns a job token. The token is an acknowledgment correlator only;
// completion is observed through the artifact appearing on disk.
func (s *Service) StartGeneration(ctx context.Context, planID uint, format Format) (string, error) {
	if !format.Renderable() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnsupportedFormat,
			fmt.Sprintf("report format not implemented: %s", format), nil)
	}

	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("test plan %d not found", planID), nil)
	}

	jobID := uuid.NewString()
	path := s.ArtifactPath(planID, format)
	s.dispatcher.Submit("report.generate", func(ctx context.Context) {
		if err := s.generate(ctx, planID, format, path); err != nil {
			metrics.ReportJobFailuresTotal.Inc()
			s.log.Error().Err(err).
				Str("job_id", jobID).
				Uint("plan_id", planID).
				Str("format", string(format)).
				Msg("background report generation failed")
		}
	})

	s.log.Info().Str("job_id", jobID).Uint("plan_id", planID).Str("format", string(format)).Msg("report generation scheduled")
	return jobID, nil
}

// Summarize computes the execution statistics for a plan without
// rendering an artifact.
func (s *Service) Summarize(ctx context.Context, planID uint) (*PlanSummary, error) {
	rep, err := s.aggregator.Build(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &PlanSummary{Plan: rep.Plan, Summary: rep.Summary}, nil
}

// RefreshExisting regenerates artifacts that are already on disk for
// the given plan. Formats never requested before are left alone.
func (s *Service) RefreshExisting(ctx context.Context, planID uint) error {
	for _, format := range []Format{FormatPDF, FormatHTML} {
		path := s.ArtifactPath(planID, format)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := s.generate(ctx, planID, format, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) generate(ctx context.Context, planID uint, format Format, path string) error {
	rep, err := s.aggregator.Build(ctx, planID)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = RenderPDF(rep)
	case FormatHTML:
		data, err = RenderHTML(rep)
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnsupportedFormat,
			fmt.Sprintf("report format not implemented: %s", format), nil)
	}
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("rendering %s report for plan %d", format, planID), err)
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"creating report directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"writing report artifact", err)
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(string(format)).Inc()
	s.log.Info().Uint("plan_id", planID).Str("path", path).Msg("report artifact written")
	return nil
}
