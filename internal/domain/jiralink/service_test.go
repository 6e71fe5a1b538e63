package jiralink_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/jiralink"
	"testhub/internal/domain/query"
	"testhub/internal/domain/testcase"
	"testhub/internal/utils/platformerrors"
)

// MockLinkRepository is a func-field fake of jiralink.Repository.
type MockLinkRepository struct {
	CreateFunc   func(ctx context.Context, link *jiralink.JiraLink) (*jiralink.JiraLink, error)
	FindByIDFunc func(ctx context.Context, id uint) (*jiralink.JiraLink, error)
	FindManyFunc func(ctx context.Context, filter jiralink.Filter) ([]jiralink.JiraLink, error)
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *MockLinkRepository) Create(ctx context.Context, link *jiralink.JiraLink) (*jiralink.JiraLink, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, link)
	}
	return link, nil
}

func (m *MockLinkRepository) FindByID(ctx context.Context, id uint) (*jiralink.JiraLink, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockLinkRepository) FindMany(ctx context.Context, filter jiralink.Filter) ([]jiralink.JiraLink, error) {
	if m.FindManyFunc != nil {
		return m.FindManyFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockLinkRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockIssueClient records calls against the issue tracker.
type MockIssueClient struct {
	GetIssueFunc        func(ctx context.Context, issueKey string) error
	AddCommentFunc      func(ctx context.Context, issueKey, body string) error
	ListTransitionsFunc func(ctx context.Context, issueKey string) ([]jiralink.Transition, error)
	ApplyTransitionFunc func(ctx context.Context, issueKey, transitionID string) error

	comments    map[string][]string
	transitions map[string][]string
}

func (m *MockIssueClient) GetIssue(ctx context.Context, issueKey string) error {
	if m.GetIssueFunc != nil {
		return m.GetIssueFunc(ctx, issueKey)
	}
	return nil
}

func (m *MockIssueClient) AddComment(ctx context.Context, issueKey, body string) error {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, issueKey, body)
	}
	if m.comments == nil {
		m.comments = make(map[string][]string)
	}
	m.comments[issueKey] = append(m.comments[issueKey], body)
	return nil
}

func (m *MockIssueClient) ListTransitions(ctx context.Context, issueKey string) ([]jiralink.Transition, error) {
	if m.ListTransitionsFunc != nil {
		return m.ListTransitionsFunc(ctx, issueKey)
	}
	return []jiralink.Transition{
		{ID: "31", Name: "done"},
		{ID: "41", Name: "reopen"},
	}, nil
}

func (m *MockIssueClient) ApplyTransition(ctx context.Context, issueKey, transitionID string) error {
	if m.ApplyTransitionFunc != nil {
		return m.ApplyTransitionFunc(ctx, issueKey, transitionID)
	}
	if m.transitions == nil {
		m.transitions = make(map[string][]string)
	}
	m.transitions[issueKey] = append(m.transitions[issueKey], transitionID)
	return nil
}

type fixedExecutionRepo struct {
	executions map[uint]*execution.Execution
}

func (f *fixedExecutionRepo) Create(ctx context.Context, exec *execution.Execution) error { return nil }
func (f *fixedExecutionRepo) CreateWithResults(ctx context.Context, exec *execution.Execution, results []execution.StepResult) error {
	return nil
}
func (f *fixedExecutionRepo) FindByID(ctx context.Context, id uint) (*execution.Execution, error) {
	return f.executions[id], nil
}
func (f *fixedExecutionRepo) FindMany(ctx context.Context, filter execution.Filter, pagination *query.Pagination) ([]execution.Execution, int64, error) {
	return nil, 0, nil
}
func (f *fixedExecutionRepo) ListByPlan(ctx context.Context, planID uint) ([]execution.Execution, error) {
	return nil, nil
}
func (f *fixedExecutionRepo) Update(ctx context.Context, exec *execution.Execution) error { return nil }
func (f *fixedExecutionRepo) Delete(ctx context.Context, id uint) error                   { return nil }
func (f *fixedExecutionRepo) AddResult(ctx context.Context, result *execution.StepResult) error {
	return nil
}
func (f *fixedExecutionRepo) ListResults(ctx context.Context, executionID uint) ([]execution.StepResult, error) {
	return nil, nil
}

type fixedCaseRepo struct {
	cases map[uint]*testcase.TestCase
}

func (f *fixedCaseRepo) Create(ctx context.Context, tc *testcase.TestCase) error { return nil }
func (f *fixedCaseRepo) FindByID(ctx context.Context, id uint) (*testcase.TestCase, error) {
	return f.cases[id], nil
}
func (f *fixedCaseRepo) FindMany(ctx context.Context, filter testcase.Filter, pagination *query.Pagination) ([]testcase.TestCase, int64, error) {
	return nil, 0, nil
}
func (f *fixedCaseRepo) Update(ctx context.Context, tc *testcase.TestCase) error { return nil }
func (f *fixedCaseRepo) Delete(ctx context.Context, id uint) error               { return nil }

func uintPtr(v uint) *uint { return &v }

func newJiraService(status execution.Status, links []jiralink.JiraLink, client *MockIssueClient) *jiralink.Service {
	repo := &MockLinkRepository{
		FindManyFunc: func(ctx context.Context, filter jiralink.Filter) ([]jiralink.JiraLink, error) {
			return links, nil
		},
	}
	executions := &fixedExecutionRepo{executions: map[uint]*execution.Execution{
		10: {ID: 10, TestPlanID: 1, TestCaseID: 2, Status: status},
	}}
	cases := &fixedCaseRepo{cases: map[uint]*testcase.TestCase{
		2: {ID: 2, Title: "Login"},
	}}
	return jiralink.NewService(repo, cases, executions, client, zerolog.Nop())
}

func TestUpdateStatus_PassedTransitionsToDone(t *testing.T) {
	client := &MockIssueClient{}
	links := []jiralink.JiraLink{
		{ID: 1, JiraProjectKey: "QA", JiraIssueKey: "QA-101", TestExecutionID: uintPtr(10)},
	}
	service := newJiraService(execution.StatusPassed, links, client)

	results, err := service.UpdateStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	result := results[0]
	if !result.CommentAdded {
		t.Error("a comment must always be added")
	}
	if !result.StatusUpdated || result.NewStatus != "Done" {
		t.Errorf("passed execution must transition to Done, got %+v", result)
	}
	if result.Error != "" {
		t.Errorf("unexpected per-issue error: %s", result.Error)
	}

	// The mock declares the transition name in lowercase; matching is
	// case-insensitive and resolves to its id.
	if got := client.transitions["QA-101"]; len(got) != 1 || got[0] != "31" {
		t.Errorf("expected transition 31 applied once, got %v", got)
	}
	if comments := client.comments["QA-101"]; len(comments) != 1 || !strings.Contains(comments[0], "Test passed") {
		t.Errorf("unexpected comments: %v", comments)
	}
}

func TestUpdateStatus_FailedTransitionsToReopen(t *testing.T) {
	client := &MockIssueClient{}
	links := []jiralink.JiraLink{
		{ID: 1, JiraIssueKey: "QA-102", TestExecutionID: uintPtr(10)},
	}
	service := newJiraService(execution.StatusFailed, links, client)

	results, err := service.UpdateStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !results[0].StatusUpdated || results[0].NewStatus != "Reopen" {
		t.Errorf("failed execution must transition to Reopen, got %+v", results[0])
	}
	if comments := client.comments["QA-102"]; len(comments) != 1 || !strings.Contains(comments[0], "Test failed") {
		t.Errorf("unexpected comments: %v", comments)
	}
}

func TestUpdateStatus_NonTerminalCommentsOnly(t *testing.T) {
	client := &MockIssueClient{
		ListTransitionsFunc: func(ctx context.Context, issueKey string) ([]jiralink.Transition, error) {
			t.Error("non-terminal status must not look up transitions")
			return nil, nil
		},
	}
	links := []jiralink.JiraLink{
		{ID: 1, JiraIssueKey: "QA-103", TestExecutionID: uintPtr(10)},
	}
	service := newJiraService(execution.StatusPending, links, client)

	results, err := service.UpdateStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !results[0].CommentAdded || results[0].StatusUpdated {
		t.Errorf("expected comment without transition, got %+v", results[0])
	}
}

func TestUpdateStatus_CollectsPerIssueFailures(t *testing.T) {
	client := &MockIssueClient{
		AddCommentFunc: func(ctx context.Context, issueKey, body string) error {
			if issueKey == "QA-201" {
				return errors.New("jira unavailable")
			}
			return nil
		},
	}
	links := []jiralink.JiraLink{
		{ID: 1, JiraIssueKey: "QA-201", TestExecutionID: uintPtr(10)},
		{ID: 2, JiraIssueKey: "QA-202", TestExecutionID: uintPtr(10)},
	}
	service := newJiraService(execution.StatusPassed, links, client)

	results, err := service.UpdateStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("a per-issue failure must not abort the batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Error == "" || results[0].CommentAdded {
		t.Errorf("first issue should have failed, got %+v", results[0])
	}
	if results[1].Error != "" || !results[1].StatusUpdated {
		t.Errorf("second issue should have succeeded, got %+v", results[1])
	}
}

func TestUpdateStatus_MissingTransitionReported(t *testing.T) {
	client := &MockIssueClient{
		ListTransitionsFunc: func(ctx context.Context, issueKey string) ([]jiralink.Transition, error) {
			return []jiralink.Transition{{ID: "11", Name: "In Progress"}}, nil
		},
	}
	links := []jiralink.JiraLink{
		{ID: 1, JiraIssueKey: "QA-301", TestExecutionID: uintPtr(10)},
	}
	service := newJiraService(execution.StatusPassed, links, client)

	results, err := service.UpdateStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	result := results[0]
	if !result.CommentAdded {
		t.Error("the comment must land even when no transition matches")
	}
	if result.StatusUpdated {
		t.Error("no transition should have been applied")
	}
	if !strings.Contains(result.Error, "Done") {
		t.Errorf("error should name the missing transition, got %q", result.Error)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	client := &MockIssueClient{}
	ctx := context.Background()

	// Unknown execution.
	service := newJiraService(execution.StatusPassed, nil, client)
	if _, err := service.UpdateStatus(ctx, 99); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected a not-found error for an unknown execution, got %v", err)
	}

	// Known execution without links.
	if _, err := service.UpdateStatus(ctx, 10); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected a not-found error when no issues are linked, got %v", err)
	}
}

func TestLink(t *testing.T) {
	client := &MockIssueClient{}
	service := newJiraService(execution.StatusPending, nil, client)
	ctx := context.Background()

	link, err := service.Link(ctx, jiralink.LinkParams{
		JiraProjectKey:  "QA",
		JiraIssueKey:    "QA-401",
		TestCaseID:      uintPtr(2),
		TestExecutionID: uintPtr(10),
	})
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if link.JiraIssueKey != "QA-401" {
		t.Errorf("unexpected link: %+v", link)
	}
}

func TestLink_Validation(t *testing.T) {
	client := &MockIssueClient{}
	service := newJiraService(execution.StatusPending, nil, client)
	ctx := context.Background()

	if _, err := service.Link(ctx, jiralink.LinkParams{JiraProjectKey: "QA"}); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected a validation error without an issue key, got %v", err)
	}
	if _, err := service.Link(ctx, jiralink.LinkParams{JiraProjectKey: "QA", JiraIssueKey: "QA-1", TestCaseID: uintPtr(99)}); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected a not-found error for an unknown case, got %v", err)
	}
}

func TestLink_IssueMustExist(t *testing.T) {
	client := &MockIssueClient{
		GetIssueFunc: func(ctx context.Context, issueKey string) error {
			return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeNotFound, "jira issue not found: "+issueKey, nil)
		},
	}
	service := newJiraService(execution.StatusPending, nil, client)

	if _, err := service.Link(context.Background(), jiralink.LinkParams{JiraProjectKey: "QA", JiraIssueKey: "QA-404"}); err == nil {
		t.Fatal("expected the issue lookup failure to propagate")
	}
}
