package driven

import (
	"context"

	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
)

// GitHubClient defines the driven port for interacting with the GitHub API.
// Read methods fetch data; CreateIssueComment is the single write the bot
// performs.
type GitHubClient interface {
	// SearchReviewedRepos returns the repository full name ("owner/repo") of
	// each recently updated closed PR reviewed by the given user, one entry
	// per search hit. Hits without a usable repository reference are skipped;
	// duplicates are returned as-is and collapsed by the caller.
	SearchReviewedRepos(ctx context.Context, reviewer string) ([]string, error)

	// FetchOpenPullRequests lists open PRs for a repository, newest first.
	FetchOpenPullRequests(ctx context.Context, repoFullName string) ([]model.PullRequest, error)

	// FetchReviews lists native reviews for a PR. A 404 from the reviews
	// endpoint is reported as an empty list, not an error.
	FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error)

	// FetchReviewEvents lists "reviewed" issue timeline events for a PR,
	// each mapped to a Review. Used as a fallback when FetchReviews returns
	// an empty list.
	FetchReviewEvents(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error)

	// FetchIssueComments lists PR-level comments (via the Issues API).
	FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)

	// CreateIssueComment adds a PR-level comment (via the Issues API).
	CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) error
}
