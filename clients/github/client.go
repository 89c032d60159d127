package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"monkeybot/clients"
	"monkeybot/models"
)

var githubAPIBase = "https://api.github.com"

// GitHubClient implements the clients.TrackerClient interface against the
// GitHub REST API
type GitHubClient struct {
	httpClient *http.Client
	// token is optional; unauthenticated requests work for public
	// repositories but issue creation requires it
	token string
}

// NewGitHubClient creates a new GitHub tracker client
func NewGitHubClient(httpClient *http.Client, token string) clients.TrackerClient {
	return &GitHubClient{
		httpClient: httpClient,
		token:      token,
	}
}

// FetchLabels fetches the label collection of the given "owner/name" repository
func (c *GitHubClient) FetchLabels(ctx context.Context, repo string) ([]models.Label, error) {
	url := fmt.Sprintf("%s/repos/%s/labels?per_page=100", githubAPIBase, repo)

	body, err := c.doRequest(ctx, "GET", url, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch labels: %w", err)
	}

	var labels []models.Label
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels response: %w", err)
	}
	return labels, nil
}

// FetchLatestRelease fetches the most recent published release of the repository
func (c *GitHubClient) FetchLatestRelease(ctx context.Context, repo string) (*models.Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPIBase, repo)

	body, err := c.doRequest(ctx, "GET", url, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	var release models.Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}
	return &release, nil
}

// CreateIssue files a new issue in the repository
func (c *GitHubClient) CreateIssue(ctx context.Context, repo string, issue models.NewIssue) (*models.Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/issues", githubAPIBase, repo)

	payload, err := json.Marshal(issue)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issue payload: %w", err)
	}

	body, err := c.doRequest(ctx, "POST", url, payload, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	var created models.Issue
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode issue response: %w", err)
	}
	return &created, nil
}

func (c *GitHubClient) doRequest(ctx context.Context, method, url string, payload []byte, wantStatus int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("GitHub API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
