package jiralink

import (
	"context"
	"time"
)

// JiraLink associates an issue tracker entry with a test case and/or a
// test execution. Links outlive both parents; deleting a case or an
// execution only clears the corresponding reference.
type JiraLink struct {
	ID              uint      `json:"id"`
	JiraProjectKey  string    `json:"jira_project_key"`
	JiraIssueKey    string    `json:"jira_issue_key"`
	TestCaseID      *uint     `json:"test_case_id,omitempty"`
	TestExecutionID *uint     `json:"test_execution_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Filter narrows ListLinks results. Zero values mean no constraint.
type Filter struct {
	TestCaseID      *uint
	TestExecutionID *uint
	JiraIssueKey    string
}

type Repository interface {
	Create(ctx context.Context, link *JiraLink) (*JiraLink, error)
	FindByID(ctx context.Context, id uint) (*JiraLink, error)
	FindMany(ctx context.Context, filter Filter) ([]JiraLink, error)
	Delete(ctx context.Context, id uint) error
}

// Transition is a workflow move currently available on an issue.
type Transition struct {
	ID   string
	Name string
}

// IssueClient is the surface of the issue tracker the service needs.
type IssueClient interface {
	GetIssue(ctx context.Context, issueKey string) error
	AddComment(ctx context.Context, issueKey, body string) error
	ListTransitions(ctx context.Context, issueKey string) ([]Transition, error)
	ApplyTransition(ctx context.Context, issueKey, transitionID string) error
}
