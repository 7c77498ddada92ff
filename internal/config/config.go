// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken    string
	GitHubUsername string
	Orgs           []string
	PollInterval   time.Duration
	ApprovalWindow time.Duration
	ListenAddr     string
}

// Load reads configuration from environment variables and returns a validated
// Config. LGTMEME_GITHUB_TOKEN, LGTMEME_GITHUB_USERNAME, and LGTMEME_ORGS are
// required; the bot cannot do anything useful without credentials and at
// least one organization to watch. Optional variables with defaults:
// LGTMEME_POLL_INTERVAL (5m), LGTMEME_APPROVAL_WINDOW (5m),
// LGTMEME_LISTEN_ADDR (127.0.0.1:8080).
func Load() (*Config, error) {
	token := os.Getenv("LGTMEME_GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("LGTMEME_GITHUB_TOKEN is required")
	}

	username := os.Getenv("LGTMEME_GITHUB_USERNAME")
	if username == "" {
		return nil, fmt.Errorf("LGTMEME_GITHUB_USERNAME is required")
	}

	var orgs []string
	for _, org := range strings.Split(os.Getenv("LGTMEME_ORGS"), ",") {
		org = strings.TrimSpace(org)
		if org != "" {
			orgs = append(orgs, org)
		}
	}
	if len(orgs) == 0 {
		return nil, fmt.Errorf("LGTMEME_ORGS must list at least one organization")
	}

	pollInterval := 5 * time.Minute
	if v, ok := os.LookupEnv("LGTMEME_POLL_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("LGTMEME_POLL_INTERVAL has invalid duration %q: %w", v, err)
		}
		pollInterval = parsed
	}

	approvalWindow := 5 * time.Minute
	if v, ok := os.LookupEnv("LGTMEME_APPROVAL_WINDOW"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("LGTMEME_APPROVAL_WINDOW has invalid duration %q: %w", v, err)
		}
		approvalWindow = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("LGTMEME_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	return &Config{
		GitHubToken:    token,
		GitHubUsername: username,
		Orgs:           orgs,
		PollInterval:   pollInterval,
		ApprovalWindow: approvalWindow,
		ListenAddr:     listenAddr,
	}, nil
}
