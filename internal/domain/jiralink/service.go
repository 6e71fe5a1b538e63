package jiralink

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/testcase"
	"testhub/internal/infrastructure/metrics"
	"testhub/internal/utils/platformerrors"
)

// Service manages issue tracker links and pushes execution outcomes
// back to the tracker.
type Service struct {
	repo       Repository
	cases      testcase.Repository
	executions execution.Repository
	client     IssueClient
	log        zerolog.Logger
}

func NewService(repo Repository, cases testcase.Repository, executions execution.Repository, client IssueClient, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		cases:      cases,
		executions: executions,
		client:     client,
		log:        log.With().Str("component", "jiralink-service").Logger(),
	}
}

type LinkParams struct {
	JiraProjectKey  string
	JiraIssueKey    string
	TestCaseID      *uint
	TestExecutionID *uint
}

// Link records an association between a Jira issue and a test case
// and/or execution. The issue must exist in Jira and any referenced
// rows must exist locally.
func (s *Service) Link(ctx context.Context, params LinkParams) (*JiraLink, error) {
	if params.JiraProjectKey == "" || params.JiraIssueKey == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"jira_project_key and jira_issue_key are required", nil)
	}

	if err := s.client.GetIssue(ctx, params.JiraIssueKey); err != nil {
		return nil, err
	}

	if params.TestCaseID != nil {
		tc, err := s.cases.FindByID(ctx, *params.TestCaseID)
		if err != nil {
			return nil, err
		}
		if tc == nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("test case %d not found", *params.TestCaseID), nil)
		}
	}
	if params.TestExecutionID != nil {
		exec, err := s.executions.FindByID(ctx, *params.TestExecutionID)
		if err != nil {
			return nil, err
		}
		if exec == nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("test execution %d not found", *params.TestExecutionID), nil)
		}
	}

	link := &JiraLink{
		JiraProjectKey:  params.JiraProjectKey,
		JiraIssueKey:    params.JiraIssueKey,
		TestCaseID:      params.TestCaseID,
		TestExecutionID: params.TestExecutionID,
	}
	return s.repo.Create(ctx, link)
}

// ListLinks returns links matching the filter.
func (s *Service) ListLinks(ctx context.Context, filter Filter) ([]JiraLink, error) {
	return s.repo.FindMany(ctx, filter)
}

// DeleteLink removes a link record. The Jira issue itself is untouched.
func (s *Service) DeleteLink(ctx context.Context, id uint) error {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("jira link %d not found", id), nil)
	}
	return s.repo.Delete(ctx, id)
}

// IssueResult reports the outcome of pushing one execution's status to
// one linked issue.
type IssueResult struct {
	IssueKey      string `json:"issue_key"`
	CommentAdded  bool   `json:"comment_added"`
	StatusUpdated bool   `json:"status_updated"`
	NewStatus     string `json:"new_status,omitempty"`
	Error         string `json:"error,omitempty"`
}

// UpdateStatus comments on every issue linked to the execution and, for
// terminal pass/fail outcomes, attempts the matching workflow
// transition. Failures against individual issues are collected into the
// result list instead of aborting the batch.
func (s *Service) UpdateStatus(ctx context.Context, executionID uint) ([]IssueResult, error) {
	exec, err := s.executions.FindByID(ctx, executionID)
	if err != nil {
		return nil, err
	}
	if exec == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("test execution %d not found", executionID), nil)
	}

	links, err := s.repo.FindMany(ctx, Filter{TestExecutionID: &executionID})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("no jira issues linked to execution %d", executionID), nil)
	}

	comment, transitionName := statusMessage(executionID, exec.Status)

	results := make([]IssueResult, 0, len(links))
	for _, link := range links {
		results = append(results, s.pushIssue(ctx, link.JiraIssueKey, comment, transitionName))
	}
	return results, nil
}

func (s *Service) pushIssue(ctx context.Context, issueKey, comment, transitionName string) IssueResult {
	result := IssueResult{IssueKey: issueKey}

	if err := s.client.GetIssue(ctx, issueKey); err != nil {
		metrics.JiraSyncErrorsTotal.Inc()
		result.Error = err.Error()
		return result
	}
	if err := s.client.AddComment(ctx, issueKey, comment); err != nil {
		metrics.JiraSyncErrorsTotal.Inc()
		result.Error = err.Error()
		return result
	}
	result.CommentAdded = true

	if transitionName == "" {
		return result
	}

	transitions, err := s.client.ListTransitions(ctx, issueKey)
	if err != nil {
		metrics.JiraSyncErrorsTotal.Inc()
		result.Error = err.Error()
		return result
	}

	var transitionID string
	for _, t := range transitions {
		if strings.EqualFold(t.Name, transitionName) {
			transitionID = t.ID
			break
		}
	}
	if transitionID == "" {
		result.Error = fmt.Sprintf("no transition named %q available on issue", transitionName)
		return result
	}

	if err := s.client.ApplyTransition(ctx, issueKey, transitionID); err != nil {
		metrics.JiraSyncErrorsTotal.Inc()
		result.Error = err.Error()
		return result
	}
	result.StatusUpdated = true
	result.NewStatus = transitionName
	s.log.Info().Str("issue_key", issueKey).Str("transition", transitionName).Msg("jira issue transitioned")
	return result
}

// statusMessage maps an execution outcome to the comment posted on the
// issue and the workflow transition to attempt, if any.
func statusMessage(executionID uint, status execution.Status) (string, string) {
	switch status {
	case execution.StatusPassed:
		return fmt.Sprintf("Test passed: execution %d completed successfully.", executionID), "Done"
	case execution.StatusFailed:
		return fmt.Sprintf("Test failed: execution %d did not pass. Check the detailed results.", executionID), "Reopen"
	default:
		return fmt.Sprintf("Test status: execution %d is currently %s.", executionID, status), ""
	}
}
