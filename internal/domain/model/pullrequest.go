package model

import "fmt"

// PullRequest identifies one open pull request discovered during a polling
// cycle. Instances live only for the duration of the cycle and are never
// persisted.
type PullRequest struct {
	Number       int
	RepoFullName string
	Title        string
	Author       string
	URL          string
}

// Ref returns the conventional "owner/repo#number" identifier, used in logs.
func (pr PullRequest) Ref() string {
	return fmt.Sprintf("%s#%d", pr.RepoFullName, pr.Number)
}

// HasRef reports whether the PR carries the reference fields required to
// process it. PRs without them are skipped with a warning.
func (pr PullRequest) HasRef() bool {
	return pr.RepoFullName != "" && pr.Number > 0
}
