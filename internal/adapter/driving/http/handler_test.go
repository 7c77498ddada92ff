package httphandler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/lgtmeme/internal/adapter/driving/http"
	"github.com/ericfisherdev/lgtmeme/internal/application"
	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
)

// stubGitHubClient satisfies the GitHubClient port with canned empty results,
// enough to drive one successful cycle for the status endpoint.
type stubGitHubClient struct {
	repos []string
}

func (s *stubGitHubClient) SearchReviewedRepos(_ context.Context, _ string) ([]string, error) {
	return s.repos, nil
}

func (s *stubGitHubClient) FetchOpenPullRequests(_ context.Context, _ string) ([]model.PullRequest, error) {
	return nil, nil
}

func (s *stubGitHubClient) FetchReviews(_ context.Context, _ string, _ int) ([]model.Review, error) {
	return nil, nil
}

func (s *stubGitHubClient) FetchReviewEvents(_ context.Context, _ string, _ int) ([]model.Review, error) {
	return nil, nil
}

func (s *stubGitHubClient) FetchIssueComments(_ context.Context, _ string, _ int) ([]model.IssueComment, error) {
	return nil, nil
}

func (s *stubGitHubClient) CreateIssueComment(_ context.Context, _ string, _ int, _ string) error {
	return nil
}

func newTestServer(t *testing.T, svc *application.CelebrationService) *httptest.Server {
	t.Helper()

	handler := httphandler.NewServeMux(httphandler.NewHandler(svc, slog.Default()), slog.Default())
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func newTestService(gh *stubGitHubClient) *application.CelebrationService {
	return application.NewCelebrationService(gh, "alice", []string{"orgA"}, 5*time.Minute, model.DefaultMemeCatalog)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, newTestService(&stubGitHubClient{}))

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httphandler.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Time)
}

func TestStatus_BeforeFirstCycle(t *testing.T) {
	server := newTestServer(t, newTestService(&stubGitHubClient{}))

	resp, err := http.Get(server.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httphandler.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Ran)
}

func TestStatus_AfterCycle(t *testing.T) {
	svc := newTestService(&stubGitHubClient{repos: []string{"orgA/repo1"}})
	require.NoError(t, svc.RunCycle(context.Background()))

	server := newTestServer(t, svc)

	resp, err := http.Get(server.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httphandler.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Ran)
	assert.Equal(t, 1, body.Repos)
	assert.NotEmpty(t, body.StartedAt)
}

func TestUnknownRouteIs404(t *testing.T) {
	server := newTestServer(t, newTestService(&stubGitHubClient{}))

	resp, err := http.Get(server.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
