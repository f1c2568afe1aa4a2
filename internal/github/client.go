// Package github fetches public repositories for a username from the GitHub
// REST API, with a Redis cache in front of the upstream call.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/observability"
)

// Repo is the subset of the GitHub repository payload the directory page
// renders.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
	CreatedAt       string `json:"created_at"`
}

// Client queries the GitHub API for user repositories.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient creates a GitHub API client. baseURL should not carry a
// trailing slash.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// UserRepos returns the user's five most recently listed repositories,
// sorted by creation time ascending. Any upstream failure or non-200
// response collapses to ErrNoGithubProfile. Successful lookups are cached.
func (c *Client) UserRepos(ctx context.Context, username string) ([]Repo, error) {
	key := cache.GithubReposKey(username)

	var repos []Repo
	err := cache.Aside(ctx, key, &repos, cache.GithubReposTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	ctx, span := observability.TraceUpstreamCall(ctx, "github", "UserRepos")
	defer span.End()

	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnector")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubLookupFailures.WithLabelValues("transport").Inc()
		return nil, models.ErrNoGithubProfile
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.GithubLookupFailures.WithLabelValues("status").Inc()
		io.Copy(io.Discard, resp.Body)
		return nil, models.ErrNoGithubProfile
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		observability.GithubLookupFailures.WithLabelValues("decode").Inc()
		return nil, models.ErrNoGithubProfile
	}
	return repos, nil
}
