package execution

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"testhub/internal/domain/testcase"
	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/metrics"
	"testhub/internal/utils/platformerrors"
)

// Dispatcher runs a job out-of-band. Fire-and-forget: the caller never
// observes completion or failure.
type Dispatcher interface {
	Submit(name string, job func(ctx context.Context))
}

// BatchEntry is one uploaded execution result for a known test case.
type BatchEntry struct {
	TestCaseID uint
	Status     Status
	Duration   *int
	ExecutedBy string
	Notes      string
	Steps      []BatchStep
}

// BatchStep is one step outcome inside a batch entry.
type BatchStep struct {
	StepNumber      int
	StepDescription string
	Status          Status
	ScreenshotURL   string
	Notes           string
}

// BatchRequest is a validated batch upload payload.
type BatchRequest struct {
	TestPlanID uint
	Results    []BatchEntry
}

// BatchService accepts automation result uploads and processes them in the
// background.
type BatchService struct {
	repo       Repository
	plans      testplan.Repository
	cases      testcase.Repository
	dispatcher Dispatcher
	log        zerolog.Logger
}

// NewBatchService wires the batch upload service.
func NewBatchService(repo Repository, plans testplan.Repository, cases testcase.Repository, dispatcher Dispatcher, log zerolog.Logger) *BatchService {
	return &BatchService{
		repo:       repo,
		plans:      plans,
		cases:      cases,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "batch-service").Logger(),
	}
}

// Submit validates the batch and hands it to the dispatcher. The returned
// count is the number of accepted entries, not the number committed:
// processing happens out-of-band and per-entry failures are only logged.
func (s *BatchService) Submit(ctx context.Context, req BatchRequest) (int, error) {
	if req.TestPlanID == 0 {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "test_plan_id is required", nil)
	}
	if len(req.Results) == 0 {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "empty results list", nil)
	}
	for _, entry := range req.Results {
		if entry.Status != "" && !entry.Status.Valid() {
			return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "unknown execution status: "+string(entry.Status), nil)
		}
		for _, step := range entry.Steps {
			if step.Status != "" && !step.Status.Valid() {
				return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
					platformerrors.ErrorTypeValidation, "unknown step status: "+string(step.Status), nil)
			}
		}
	}

	plan, err := s.plans.FindByID(ctx, req.TestPlanID)
	if err != nil {
		return 0, err
	}
	if plan == nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test plan not found", nil)
	}

	s.dispatcher.Submit("batch-results", func(jobCtx context.Context) {
		s.Process(jobCtx, req)
	})

	metrics.BatchUploadsTotal.Inc()
	return len(req.Results), nil
}

// Process commits batch entries one by one. Entries referencing unknown test
// cases are logged and skipped; the remaining entries are still committed.
func (s *BatchService) Process(ctx context.Context, req BatchRequest) {
	for _, entry := range req.Results {
		if entry.TestCaseID == 0 {
			s.log.Warn().Uint("plan_id", req.TestPlanID).Msg("batch entry missing test_case_id, skipping")
			metrics.BatchEntriesSkippedTotal.Inc()
			continue
		}
		tc, err := s.cases.FindByID(ctx, entry.TestCaseID)
		if err != nil {
			s.log.Error().Err(err).Uint("case_id", entry.TestCaseID).Msg("batch entry lookup failed, skipping")
			metrics.BatchEntriesSkippedTotal.Inc()
			continue
		}
		if tc == nil {
			s.log.Warn().Uint("case_id", entry.TestCaseID).Msg("batch entry references unknown test case, skipping")
			metrics.BatchEntriesSkippedTotal.Inc()
			continue
		}

		status := entry.Status
		if status == "" {
			status = StatusPending
		}
		executedBy := entry.ExecutedBy
		if executedBy == "" {
			executedBy = "api"
		}
		now := time.Now()
		exec := &Execution{
			TestPlanID: req.TestPlanID,
			TestCaseID: entry.TestCaseID,
			Status:     status,
			ExecutedAt: &now,
			ExecutedBy: executedBy,
			Duration:   entry.Duration,
			Notes:      entry.Notes,
		}

		results := make([]StepResult, 0, len(entry.Steps))
		for _, step := range entry.Steps {
			stepStatus := step.Status
			if stepStatus == "" {
				stepStatus = StatusPending
			}
			results = append(results, StepResult{
				StepNumber:      step.StepNumber,
				StepDescription: step.StepDescription,
				Status:          stepStatus,
				ScreenshotURL:   step.ScreenshotURL,
				Notes:           step.Notes,
			})
		}

		if err := s.repo.CreateWithResults(ctx, exec, results); err != nil {
			s.log.Error().Err(err).Uint("case_id", entry.TestCaseID).Msg("batch entry commit failed")
			metrics.BatchEntriesSkippedTotal.Inc()
			continue
		}
		metrics.BatchEntriesCommittedTotal.Inc()
	}
}

// SingleParams carries one synchronous automation result.
type SingleParams struct {
	TestPlanID uint
	TestCaseID uint
	Status     Status
	ExecutedBy string
	Duration   *int
	Notes      string
}

// UploadSingle records a single automation result synchronously.
func (s *BatchService) UploadSingle(ctx context.Context, params SingleParams) (*Execution, error) {
	if !params.Status.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown execution status: "+string(params.Status), nil)
	}

	plan, err := s.plans.FindByID(ctx, params.TestPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test plan not found", nil)
	}
	tc, err := s.cases.FindByID(ctx, params.TestCaseID)
	if err != nil {
		return nil, err
	}
	if tc == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test case not found", nil)
	}

	executedBy := params.ExecutedBy
	if executedBy == "" {
		executedBy = "api"
	}
	now := time.Now()
	exec := &Execution{
		TestPlanID: params.TestPlanID,
		TestCaseID: params.TestCaseID,
		Status:     params.Status,
		ExecutedAt: &now,
		ExecutedBy: executedBy,
		Duration:   params.Duration,
		Notes:      params.Notes,
	}
	if err := s.repo.Create(ctx, exec); err != nil {
		return nil, err
	}
	return exec, nil
}
