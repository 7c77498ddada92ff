// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
	"github.com/ericfisherdev/lgtmeme/internal/domain/port/driven"
)

// CycleSummary records the outcome of one polling cycle, exposed through the
// status endpoint.
type CycleSummary struct {
	StartedAt  time.Time
	Duration   time.Duration
	Repos      int
	Candidates int
	Approved   int
	Posted     int
	Errors     int
}

// CelebrationService orchestrates one polling cycle: discover repositories
// with recent review activity, fetch their open PRs, and post a meme comment
// on each PR the configured user freshly approved.
//
// Approval state is rebuilt from scratch every cycle; nothing survives a
// process restart, so the dedup check against existing comments is the only
// guard against double-posting.
type CelebrationService struct {
	gh       driven.GitHubClient
	username string
	orgs     []string
	window   time.Duration
	catalog  model.MemeCatalog

	mu   sync.Mutex
	last *CycleSummary
}

// NewCelebrationService creates a CelebrationService with all required
// dependencies. window is the trailing freshness interval for approvals.
func NewCelebrationService(
	gh driven.GitHubClient,
	username string,
	orgs []string,
	window time.Duration,
	catalog model.MemeCatalog,
) *CelebrationService {
	return &CelebrationService{
		gh:       gh,
		username: username,
		orgs:     orgs,
		window:   window,
		catalog:  catalog,
	}
}

// RunCycle executes one full polling cycle. Tracking and fetching errors
// abort the cycle and are returned to the caller; everything downstream is
// handled per PR and never escapes.
func (s *CelebrationService) RunCycle(ctx context.Context) error {
	start := time.Now()

	repos, err := s.TrackApprovedRepositories(ctx)
	if err != nil {
		return fmt.Errorf("tracking approved repositories: %w", err)
	}

	watched := FilterByOrganization(repos, s.orgs)

	prs, err := s.FetchOpenPullRequests(ctx, watched)
	if err != nil {
		return fmt.Errorf("fetching open pull requests: %w", err)
	}

	var (
		wg       sync.WaitGroup
		resultMu sync.Mutex
		approved int
		posted   int
		errs     int
	)

	for _, pr := range prs {
		if !pr.HasRef() {
			slog.Warn("skipping pull request with missing reference fields", "url", pr.URL, "title", pr.Title)
			continue
		}

		wg.Add(1)
		go func(pr model.PullRequest) {
			defer wg.Done()

			wasApproved, didPost, err := s.celebrate(ctx, pr)

			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				slog.Error("pull request processing failed", "pr", pr.Ref(), "error", err)
				errs++
				return
			}
			if wasApproved {
				approved++
			}
			if didPost {
				posted++
			}
		}(pr)
	}
	wg.Wait()

	summary := CycleSummary{
		StartedAt:  start,
		Duration:   time.Since(start),
		Repos:      len(watched),
		Candidates: len(prs),
		Approved:   approved,
		Posted:     posted,
		Errors:     errs,
	}

	s.mu.Lock()
	s.last = &summary
	s.mu.Unlock()

	slog.Info("celebration cycle complete",
		"repos", summary.Repos,
		"candidates", summary.Candidates,
		"approved", summary.Approved,
		"posted", summary.Posted,
		"errors", summary.Errors,
		"duration", summary.Duration.Round(time.Millisecond),
	)

	return nil
}

// LastCycle returns the summary of the most recent completed cycle, if any.
func (s *CelebrationService) LastCycle() (CycleSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return CycleSummary{}, false
	}
	return *s.last, true
}

// TrackApprovedRepositories returns the distinct repositories of closed PRs
// recently reviewed by the configured user. The set is a fresh value every
// call; there is no cross-cycle memory.
func (s *CelebrationService) TrackApprovedRepositories(ctx context.Context) ([]string, error) {
	hits, err := s.gh.SearchReviewedRepos(ctx, s.username)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(hits))
	repos := make([]string, 0, len(hits))
	for _, repo := range hits {
		if seen[repo] {
			continue
		}
		seen[repo] = true
		repos = append(repos, repo)
	}

	return repos, nil
}

// FetchOpenPullRequests fetches open PRs for every repository concurrently
// and concatenates the results in input-list order. A failure for any single
// repository fails the whole batch.
func (s *CelebrationService) FetchOpenPullRequests(ctx context.Context, repos []string) ([]model.PullRequest, error) {
	results := make([][]model.PullRequest, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		g.Go(func() error {
			prs, err := s.gh.FetchOpenPullRequests(ctx, repo)
			if err != nil {
				return err
			}
			results[i] = prs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.PullRequest
	for _, prs := range results {
		all = append(all, prs...)
	}

	return all, nil
}

// celebrate runs the per-PR pipeline: approval check, duplicate check, post.
// The returned flags report whether the PR was freshly approved and whether a
// comment was actually posted. Posting failures are logged and swallowed.
func (s *CelebrationService) celebrate(ctx context.Context, pr model.PullRequest) (wasApproved, didPost bool, err error) {
	fresh, err := s.IsFreshlyApproved(ctx, pr)
	if err != nil {
		return false, false, err
	}
	if !fresh {
		return false, false, nil
	}

	if s.hasMemeComment(ctx, pr) {
		slog.Debug("meme already present, skipping", "pr", pr.Ref())
		return true, false, nil
	}

	meme := s.catalog.Random()
	body := fmt.Sprintf("![Meme](%s)", meme)
	if err := s.gh.CreateIssueComment(ctx, pr.RepoFullName, pr.Number, body); err != nil {
		slog.Error("posting meme comment failed", "pr", pr.Ref(), "error", err)
		return true, false, nil
	}

	slog.Info("meme posted", "pr", pr.Ref(), "meme", meme)
	return true, true, nil
}

// IsFreshlyApproved reports whether the configured user approved the PR
// within the trailing freshness window. Native reviews are consulted first;
// if none exist, "reviewed" timeline events stand in. The first matching
// approval wins; a later approval is never preferred over an earlier hit.
func (s *CelebrationService) IsFreshlyApproved(ctx context.Context, pr model.PullRequest) (bool, error) {
	reviews, err := s.gh.FetchReviews(ctx, pr.RepoFullName, pr.Number)
	if err != nil {
		return false, err
	}

	if len(reviews) == 0 {
		reviews, err = s.gh.FetchReviewEvents(ctx, pr.RepoFullName, pr.Number)
		if err != nil {
			slog.Error("fetching review events failed", "pr", pr.Ref(), "error", err)
			reviews = nil
		}
	}

	cutoff := time.Now().Add(-s.window)
	for _, review := range reviews {
		if review.IsFreshApprovalBy(s.username, cutoff) {
			return true, nil
		}
	}

	return false, nil
}

// hasMemeComment reports whether any existing comment on the PR already
// contains a catalog URL. A fetch failure is logged and treated as "no
// comments", allowing the cycle to continue with degraded data.
func (s *CelebrationService) hasMemeComment(ctx context.Context, pr model.PullRequest) bool {
	comments, err := s.gh.FetchIssueComments(ctx, pr.RepoFullName, pr.Number)
	if err != nil {
		slog.Error("fetching issue comments failed", "pr", pr.Ref(), "error", err)
		return false
	}

	for _, comment := range comments {
		if s.catalog.AppearsIn(comment.Body) {
			return true
		}
	}

	return false
}

// FilterByOrganization keeps only repositories whose owner segment exactly
// matches one of the configured organization names.
func FilterByOrganization(repos, orgs []string) []string {
	filtered := make([]string, 0, len(repos))
	for _, repo := range repos {
		owner, _, ok := strings.Cut(repo, "/")
		if !ok {
			continue
		}
		for _, org := range orgs {
			if owner == org {
				filtered = append(filtered, repo)
				break
			}
		}
	}
	return filtered
}
