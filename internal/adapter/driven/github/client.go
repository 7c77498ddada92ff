// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
	"github.com/ericfisherdev/lgtmeme/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

const (
	// searchPageSize caps the search to the 5 most recently updated closed
	// PRs reviewed by the user per cycle.
	searchPageSize = 5
	// listPageSize is the fixed page size for list endpoints. The bot never
	// follows pagination links; one page per call.
	listPageSize = 100
)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// SearchReviewedRepos queries the issue search API for closed PRs reviewed by
// the given user, most recently updated first, and returns the repository
// full name of each hit. Hits without a parseable repository reference are
// skipped.
func (c *Client) SearchReviewedRepos(ctx context.Context, reviewer string) ([]string, error) {
	query := fmt.Sprintf("reviewed-by:%s type:pr state:closed", reviewer)
	opts := &gh.SearchOptions{
		Sort:  "updated",
		Order: "desc",
		ListOptions: gh.ListOptions{
			PerPage: searchPageSize,
		},
	}

	result, resp, err := c.gh.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching PRs reviewed by %s: %w", reviewer, err)
	}

	logRateLimit(resp, "search/issues", len(result.Issues))

	repos := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		repo, ok := repoFromURL(issue.GetRepositoryURL())
		if !ok {
			continue
		}
		repos = append(repos, repo)
	}

	return repos, nil
}

// FetchOpenPullRequests lists open PRs for the repository, sorted by creation
// descending. Only the first page is fetched.
func (c *Client) FetchOpenPullRequests(ctx context.Context, repoFullName string) ([]model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:     "open",
		Sort:      "created",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: listPageSize,
		},
	}

	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing open pull requests for %s: %w", repoFullName, err)
	}

	logRateLimit(resp, repoFullName, len(prs))

	result := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, mapPullRequest(pr, repoFullName))
	}

	return result, nil
}

// FetchReviews retrieves reviews for a pull request. A 404 response means the
// PR has no reviews endpoint data and is reported as an empty list.
func (c *Client) FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, prNumber, &gh.ListOptions{PerPage: listPageSize})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return []model.Review{}, nil
		}
		return nil, fmt.Errorf("listing reviews for %s#%d: %w", repoFullName, prNumber, err)
	}

	result := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, mapReview(r))
	}

	return result, nil
}

// FetchReviewEvents retrieves the issue timeline for a pull request and maps
// each "reviewed" event to a Review. The event's created-at time stands in
// for the submission time.
func (c *Client) FetchReviewEvents(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	events, resp, err := c.gh.Issues.ListIssueTimeline(ctx, owner, repo, prNumber, &gh.ListOptions{PerPage: listPageSize})
	if err != nil {
		return nil, fmt.Errorf("listing issue timeline for %s#%d: %w", repoFullName, prNumber, err)
	}

	logRateLimit(resp, repoFullName+"/timeline", len(events))

	var result []model.Review
	for _, ev := range events {
		if ev.GetEvent() != "reviewed" {
			continue
		}
		result = append(result, model.Review{
			ReviewerLogin: ev.GetActor().GetLogin(),
			State:         model.ReviewState(strings.ToLower(ev.GetState())),
			SubmittedAt:   ev.GetCreatedAt().Time,
		})
	}

	return result, nil
}

// FetchIssueComments retrieves PR-level comments (from the Issues API) for a
// pull request. Only the first page is fetched.
func (c *Client) FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: listPageSize},
	}

	comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, prNumber, opts)
	if err != nil {
		return nil, fmt.Errorf("listing issue comments for %s#%d: %w", repoFullName, prNumber, err)
	}

	logRateLimit(resp, repoFullName+"/comments", len(comments))

	result := make([]model.IssueComment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, mapIssueComment(comment))
	}

	return result, nil
}

// CreateIssueComment creates a top-level (non-diff) comment on a pull request.
func (c *Client) CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.CreateComment(ctx, owner, repo, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating issue comment on %s#%d: %w", repoFullName, prNumber, err)
	}

	return nil
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest, repoFullName string) model.PullRequest {
	return model.PullRequest{
		Number:       pr.GetNumber(),
		RepoFullName: repoFullName,
		Title:        pr.GetTitle(),
		Author:       pr.GetUser().GetLogin(),
		URL:          pr.GetHTMLURL(),
	}
}

// mapReview converts a go-github PullRequestReview to a domain model Review.
func mapReview(r *gh.PullRequestReview) model.Review {
	return model.Review{
		ReviewerLogin: r.GetUser().GetLogin(),
		State:         model.ReviewState(strings.ToLower(r.GetState())),
		SubmittedAt:   r.GetSubmittedAt().Time,
	}
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// repoFromURL extracts the "owner/repo" full name from a search hit's
// repository API URL (".../repos/{owner}/{repo}"). Returns false when the
// reference is missing or malformed.
func repoFromURL(repoURL string) (string, bool) {
	idx := strings.Index(repoURL, "/repos/")
	if idx < 0 {
		return "", false
	}

	parts := strings.Split(repoURL[idx+len("/repos/"):], "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}

	return parts[0] + "/" + parts[1], true
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
