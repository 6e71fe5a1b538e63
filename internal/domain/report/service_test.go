package report_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/report"
	"testhub/internal/domain/testplan"
	"testhub/internal/utils/platformerrors"
)

// syncDispatcher runs submitted jobs inline so tests observe their effects
// without coordination.
type syncDispatcher struct {
	submitted []string
}

func (d *syncDispatcher) Submit(name string, job func(ctx context.Context)) {
	d.submitted = append(d.submitted, name)
	job(context.Background())
}

func newReportService(t *testing.T) (*report.Service, *syncDispatcher, string) {
	t.Helper()

	plan := &testplan.TestPlan{ID: 7, Name: "Release 2.4", IsActive: true}
	planRepo := &MockPlanRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*testplan.TestPlan, error) {
			if id == plan.ID {
				return plan, nil
			}
			return nil, nil
		},
	}
	execRepo := &MockExecutionRepository{
		ListByPlanFunc: func(ctx context.Context, planID uint) ([]execution.Execution, error) {
			return []execution.Execution{
				{ID: 1, TestPlanID: planID, TestCaseID: 99, Status: execution.StatusPassed},
			}, nil
		},
	}

	dir := t.TempDir()
	dispatcher := &syncDispatcher{}
	aggregator := report.NewAggregator(planRepo, &MockCaseRepository{}, execRepo)
	service := report.NewService(aggregator, planRepo, dispatcher, dir, zerolog.Nop())
	return service, dispatcher, dir
}

func TestArtifactPath(t *testing.T) {
	service, _, dir := newReportService(t)

	got := service.ArtifactPath(7, report.FormatPDF)
	want := filepath.Join(dir, "test_plan_7_report.pdf")
	if got != want {
		t.Errorf("ArtifactPath = %q, want %q", got, want)
	}
}

func TestGetOrCreateReport_GeneratesWhenMissing(t *testing.T) {
	service, _, _ := newReportService(t)

	path, err := service.GetOrCreateReport(context.Background(), 7, report.FormatHTML)
	if err != nil {
		t.Fatalf("GetOrCreateReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(data), "Release 2.4") {
		t.Error("artifact does not contain the plan name")
	}
}

func TestGetOrCreateReport_ServesCachedFile(t *testing.T) {
	service, _, dir := newReportService(t)

	// A pre-existing artifact is served as-is, even when newer executions
	// would produce different content.
	sentinel := []byte("cached artifact")
	path := filepath.Join(dir, "test_plan_7_report.html")
	if err := os.WriteFile(path, sentinel, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := service.GetOrCreateReport(context.Background(), 7, report.FormatHTML)
	if err != nil {
		t.Fatalf("GetOrCreateReport failed: %v", err)
	}
	if got != path {
		t.Errorf("expected cached path %q, got %q", path, got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(sentinel) {
		t.Error("cached artifact was regenerated")
	}
}

func TestGetOrCreateReport_UnsupportedFormat(t *testing.T) {
	service, _, dir := newReportService(t)

	_, err := service.GetOrCreateReport(context.Background(), 7, report.FormatCSV)
	if err == nil {
		t.Fatal("expected an error for csv")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnsupportedFormat) {
		t.Errorf("expected an unsupported-format error, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no artifact should be written for a rejected format, found %d files", len(entries))
	}
}

func TestStartGeneration(t *testing.T) {
	service, dispatcher, dir := newReportService(t)

	jobID, err := service.StartGeneration(context.Background(), 7, report.FormatPDF)
	if err != nil {
		t.Fatalf("StartGeneration failed: %v", err)
	}
	if jobID == "" {
		t.Error("expected a non-empty job token")
	}
	if len(dispatcher.submitted) != 1 {
		t.Fatalf("expected 1 dispatched job, got %d", len(dispatcher.submitted))
	}

	// The dispatcher is synchronous here, so the artifact exists already.
	if _, err := os.Stat(filepath.Join(dir, "test_plan_7_report.pdf")); err != nil {
		t.Errorf("artifact not written by background job: %v", err)
	}
}

func TestStartGeneration_PlanNotFound(t *testing.T) {
	service, dispatcher, _ := newReportService(t)

	_, err := service.StartGeneration(context.Background(), 42, report.FormatPDF)
	if err == nil {
		t.Fatal("expected an error for a missing plan")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected a not-found error, got %v", err)
	}
	if len(dispatcher.submitted) != 0 {
		t.Error("no job should be dispatched for a missing plan")
	}
}

func TestRefreshExisting(t *testing.T) {
	service, _, dir := newReportService(t)

	// Only the html artifact exists; refresh must regenerate it and leave
	// the never-requested pdf absent.
	htmlPath := filepath.Join(dir, "test_plan_7_report.html")
	if err := os.WriteFile(htmlPath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := service.RefreshExisting(context.Background(), 7); err != nil {
		t.Fatalf("RefreshExisting failed: %v", err)
	}

	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Error("existing artifact was not regenerated")
	}
	if _, err := os.Stat(filepath.Join(dir, "test_plan_7_report.pdf")); !os.IsNotExist(err) {
		t.Error("refresh must not create artifacts for formats never requested")
	}
}

func TestSummarizePlan(t *testing.T) {
	service, _, _ := newReportService(t)

	summary, err := service.Summarize(context.Background(), 7)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Plan.ID != 7 {
		t.Errorf("unexpected plan in summary: %+v", summary.Plan)
	}
	if summary.Summary.Total != 1 || summary.Summary.Passed != 1 {
		t.Errorf("unexpected summary: %+v", summary.Summary)
	}
}
