package report

import (
	"context"
	"math"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/testcase"
	"testhub/internal/domain/testplan"
	"testhub/internal/utils/platformerrors"
)

// Summary holds the derived statistics over all executions of a plan.
// Rates are percentages rounded to two decimal places.
type Summary struct {
	Total          int     `json:"total"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	Skipped        int     `json:"skipped"`
	Pending        int     `json:"pending"`
	Blocked        int     `json:"blocked"`
	CompletionRate float64 `json:"completion_rate"`
	PassRate       float64 `json:"pass_rate"`
}

// ExecutionDetail pairs an execution with its resolved test case and its
// step results sorted ascending by step number.
type ExecutionDetail struct {
	Execution execution.Execution
	Case      testcase.TestCase
	Results   []execution.StepResult
}

// Report is the in-memory aggregate both renderers consume.
type Report struct {
	Plan    testplan.TestPlan
	Details []ExecutionDetail
	Summary Summary
}

// Aggregator loads a plan with its executions, cases and step results and
// derives the summary statistics.
type Aggregator struct {
	plans      testplan.Repository
	cases      testcase.Repository
	executions execution.Repository
}

// NewAggregator wires the aggregation engine with its repositories.
func NewAggregator(plans testplan.Repository, cases testcase.Repository, executions execution.Repository) *Aggregator {
	return &Aggregator{
		plans:      plans,
		cases:      cases,
		executions: executions,
	}
}

// Summarize computes statistics over a set of executions. Every execution
// counts, including ones whose referenced test case no longer resolves: the
// summary reflects the full execution set while the detail section only
// shows resolvable cases.
func Summarize(execs []execution.Execution) Summary {
	s := Summary{Total: len(execs)}
	for _, e := range execs {
		switch e.Status {
		case execution.StatusPassed:
			s.Passed++
		case execution.StatusFailed:
			s.Failed++
		case execution.StatusSkipped:
			s.Skipped++
		case execution.StatusPending:
			s.Pending++
		case execution.StatusBlocked:
			s.Blocked++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = roundRate(float64(s.Passed+s.Failed+s.Skipped) / float64(s.Total))
	}
	if s.Passed+s.Failed > 0 {
		s.PassRate = roundRate(float64(s.Passed) / float64(s.Passed+s.Failed))
	}
	return s
}

func roundRate(fraction float64) float64 {
	return math.Round(fraction*100*100) / 100
}

// Build assembles the full aggregate for a plan. It fails only when the plan
// itself is missing; an execution whose test case cannot be resolved is
// dropped from the detail list but still contributes to the summary.
func (a *Aggregator) Build(ctx context.Context, planID uint) (*Report, error) {
	plan, err := a.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test plan not found", nil)
	}

	execs, err := a.executions.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Plan:    *plan,
		Summary: Summarize(execs),
	}

	for _, exec := range execs {
		tc, err := a.cases.FindByID(ctx, exec.TestCaseID)
		if err != nil {
			return nil, err
		}
		if tc == nil {
			continue
		}
		results, err := a.executions.ListResults(ctx, exec.ID)
		if err != nil {
			return nil, err
		}
		rep.Details = append(rep.Details, ExecutionDetail{
			Execution: exec,
			Case:      *tc,
			Results:   results,
		})
	}

	return rep, nil
}
