package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/report"
	"testhub/internal/domain/testcase"
	"testhub/internal/domain/testplan"
)

func sampleReport() *report.Report {
	executedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	execs := []execution.Execution{
		{ID: 1, TestCaseID: 1, Status: execution.StatusPassed, ExecutedBy: "alice", ExecutedAt: &executedAt},
		{ID: 2, TestCaseID: 2, Status: execution.StatusFailed},
		{ID: 3, TestCaseID: 2, Status: execution.StatusPassed},
	}
	return &report.Report{
		Plan: testplan.TestPlan{
			ID:        7,
			Name:      "Release 2.4 Regression",
			CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		Details: []report.ExecutionDetail{
			{
				Execution: execs[0],
				Case:      testcase.TestCase{ID: 1, Title: "Login flow", TestType: testcase.CaseTypeManual, Priority: testcase.PriorityHigh},
				Results: []execution.StepResult{
					{StepNumber: 1, StepDescription: "open login page", Status: execution.StatusPassed},
					{StepNumber: 2, StepDescription: "submit credentials", Status: execution.StatusPassed},
				},
			},
			{
				Execution: execs[1],
				Case:      testcase.TestCase{ID: 2, Title: "Checkout", TestType: testcase.CaseTypeAutomated, Priority: testcase.PriorityCritical},
			},
		},
		Summary: report.Summarize(execs),
	}
}

func TestRenderHTML(t *testing.T) {
	data, err := report.RenderHTML(sampleReport())
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	html := string(data)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Test Plan Report: Release 2.4 Regression",
		"Login flow",
		"Checkout",
		"100.00%", // completion: all three executions are terminal
		"66.67%",  // pass rate: 2 of 3 pass/fail outcomes passed
		"alice",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderHTML_EmptyPlan(t *testing.T) {
	rep := &report.Report{
		Plan:    testplan.TestPlan{ID: 3, Name: "Empty Plan", CreatedAt: time.Now()},
		Summary: report.Summarize(nil),
	}

	data, err := report.RenderHTML(rep)
	if err != nil {
		t.Fatalf("RenderHTML failed on an empty plan: %v", err)
	}

	html := string(data)
	if !strings.Contains(html, "Empty Plan") {
		t.Error("rendered HTML missing plan name")
	}
	if strings.Contains(html, "Detailed Results") {
		t.Error("empty plan must not render a detail section")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := report.RenderPDF(sampleReport())
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header, got %q", data[:min(8, len(data))])
	}
}

func TestRenderPDF_EmptyPlan(t *testing.T) {
	rep := &report.Report{
		Plan:    testplan.TestPlan{ID: 3, Name: "Empty Plan", CreatedAt: time.Now()},
		Summary: report.Summarize(nil),
	}

	data, err := report.RenderPDF(rep)
	if err != nil {
		t.Fatalf("RenderPDF failed on an empty plan: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty PDF output")
	}
}
