// Package github supplies issue bodies and labels from the GitHub REST
// API. It is the dashboard's only upstream data source; everything else
// operates on what this client returns.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Issue is the subset of the GitHub issue shape the dashboard consumes.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Body      string    `json:"body"`
	Labels    []Label   `json:"labels"`
	Assignees []User    `json:"assignees"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Label is a GitHub label.
type Label struct {
	Name string `json:"name"`
}

// User is a GitHub account reference.
type User struct {
	Login string `json:"login"`
}

// LabelNames flattens the issue's labels to their names.
func (i Issue) LabelNames() []string {
	out := make([]string, len(i.Labels))
	for j, l := range i.Labels {
		out[j] = l.Name
	}
	return out
}

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string // defaults to https://api.github.com
	Token   string
}

// Client is a minimal GitHub REST v3 client.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// NewClient creates a Client. Passing nil for httpClient uses a default
// http.Client with a 30s timeout.
func NewClient(cfg ClientConfig, httpClient HTTPClient) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

// ListIssues retrieves issues for a repository ("owner/repo"). state is
// "open", "closed", or "all"; empty means open.
func (c *Client) ListIssues(ctx context.Context, repository, state string) ([]Issue, error) {
	if state == "" {
		state = "open"
	}
	url := fmt.Sprintf("%s/repos/%s/issues?state=%s&per_page=100", c.baseURL, repository, state)

	var issues []Issue
	if err := c.doRequest(ctx, url, &issues); err != nil {
		return nil, fmt.Errorf("list issues for %s: %w", repository, err)
	}
	return issues, nil
}

// GetIssue retrieves a single issue.
func (c *Client) GetIssue(ctx context.Context, repository string, number int) (*Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, repository, number)

	var issue Issue
	if err := c.doRequest(ctx, url, &issue); err != nil {
		return nil, fmt.Errorf("get issue %s#%d: %w", repository, number, err)
	}
	return &issue, nil
}

func (c *Client) doRequest(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", FormatAuthHeader(c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{ResourceType: "resource", ResourceID: url}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining == "0" || resp.StatusCode == http.StatusTooManyRequests {
			return &RateLimitError{RetryAfter: retryAfter(resp)}
		}
		fallthrough
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Until(time.Unix(reset, 0)); wait > 0 {
				return wait
			}
		}
	}
	return 0
}
