package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"

	"testhub/internal/config"
	"testhub/internal/domain/jiralink"
	"testhub/internal/utils/platformerrors"
)

// Config carries the Jira connection settings.
type Config struct {
	BaseURL  string
	Username string
	APIToken string
	Timeout  time.Duration
}

// NewIssueClient builds the issue client from service configuration.
// With the integration disabled every call fails with an explicit
// configuration error instead of a connection failure.
func NewIssueClient(cfg *config.Config) jiralink.IssueClient {
	if !cfg.JiraEnabled {
		return disabledClient{}
	}
	return NewClient(Config{
		BaseURL:  cfg.JiraURL,
		Username: cfg.JiraUsername,
		APIToken: cfg.JiraAPIToken,
	})
}

type disabledClient struct{}

func (disabledClient) GetIssue(ctx context.Context, issueKey string) error {
	return errNotConfigured(ctx)
}

func (disabledClient) AddComment(ctx context.Context, issueKey, body string) error {
	return errNotConfigured(ctx)
}

func (disabledClient) ListTransitions(ctx context.Context, issueKey string) ([]jiralink.Transition, error) {
	return nil, errNotConfigured(ctx)
}

func (disabledClient) ApplyTransition(ctx context.Context, issueKey, transitionID string) error {
	return errNotConfigured(ctx)
}

func errNotConfigured(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		"jira integration is not configured, set JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN", nil)
}

// Client talks to the Jira REST API v2 and implements
// jiralink.IssueClient.
type Client struct {
	client *resty.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.Username, cfg.APIToken).
		SetTimeout(timeout)
	return &Client{client: client}
}

// GetIssue verifies the issue exists and is visible to the configured
// credentials.
func (c *Client) GetIssue(ctx context.Context, issueKey string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/rest/api/2/issue/%s", issueKey))
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("fetching jira issue %s", issueKey), err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("jira issue %s not found", issueKey), nil)
	}
	if resp.IsError() {
		return c.errorFromResponse(ctx, resp, fmt.Sprintf("fetching jira issue %s", issueKey))
	}
	return nil
}

// AddComment posts a comment on the issue.
func (c *Client) AddComment(ctx context.Context, issueKey, body string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"body": body}).
		Post(fmt.Sprintf("/rest/api/2/issue/%s/comment", issueKey))
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("commenting on jira issue %s", issueKey), err)
	}
	if resp.IsError() {
		return c.errorFromResponse(ctx, resp, fmt.Sprintf("commenting on jira issue %s", issueKey))
	}
	return nil
}

type transitionsResponse struct {
	Transitions []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"transitions"`
}

// ListTransitions returns the workflow moves currently available on the
// issue.
func (c *Client) ListTransitions(ctx context.Context, issueKey string) ([]jiralink.Transition, error) {
	var respBody transitionsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&respBody).
		Get(fmt.Sprintf("/rest/api/2/issue/%s/transitions", issueKey))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("listing transitions for jira issue %s", issueKey), err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, fmt.Sprintf("listing transitions for jira issue %s", issueKey))
	}

	transitions := make([]jiralink.Transition, 0, len(respBody.Transitions))
	for _, t := range respBody.Transitions {
		transitions = append(transitions, jiralink.Transition{ID: t.ID, Name: t.Name})
	}
	return transitions, nil
}

// ApplyTransition moves the issue through the named workflow
// transition.
func (c *Client) ApplyTransition(ctx context.Context, issueKey, transitionID string) error {
	payload := map[string]any{
		"transition": map[string]string{"id": transitionID},
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(fmt.Sprintf("/rest/api/2/issue/%s/transitions", issueKey))
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("transitioning jira issue %s", issueKey), err)
	}
	if resp.IsError() {
		return c.errorFromResponse(ctx, resp, fmt.Sprintf("transitioning jira issue %s", issueKey))
	}
	return nil
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("%s with status %d", message, resp.StatusCode()), nil)
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s with status %d: %s", message, resp.StatusCode(), body), nil)
}
