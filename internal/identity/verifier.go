package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

// ErrAuthFailed is returned when the identity provider rejects the token or
// the token cannot read the requested repository. Callers surface it as an
// authentication error, never as an unlicensed decision.
var ErrAuthFailed = errors.New("token rejected or repository not accessible")

// Identity is the stable user reference resolved from an access token.
// It is derived per request and never persisted.
type Identity struct {
	ID    string
	Login string
}

// Verifier resolves an access token to an Identity and confirms the token
// can read the named repository.
type Verifier interface {
	Verify(ctx context.Context, token, repository string) (*Identity, error)
}

// GitHubVerifier implements Verifier against the GitHub REST API.
type GitHubVerifier struct {
	baseURL string
	timeout time.Duration
}

// NewGitHubVerifier creates a verifier for the given API base URL. The
// timeout applies to each outbound call; failed calls are not retried.
func NewGitHubVerifier(baseURL string, timeout time.Duration) *GitHubVerifier {
	return &GitHubVerifier{baseURL: baseURL, timeout: timeout}
}

// Verify resolves the token to a user via the current-user endpoint, then
// confirms repository access. Any upstream failure maps to ErrAuthFailed.
func (v *GitHubVerifier) Verify(ctx context.Context, token, repository string) (*Identity, error) {
	owner, name, ok := splitRepository(repository)
	if !ok {
		return nil, ErrAuthFailed
	}

	client, err := newClient(ctx, token, v.baseURL, v.timeout)
	if err != nil {
		return nil, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		slog.Warn("github user lookup failed", "error", err)
		return nil, ErrAuthFailed
	}

	if _, _, err := client.Repositories.Get(ctx, owner, name); err != nil {
		slog.Warn("github repository lookup failed", "repository", repository, "error", err)
		return nil, ErrAuthFailed
	}

	return &Identity{
		ID:    strconv.FormatInt(user.GetID(), 10),
		Login: user.GetLogin(),
	}, nil
}

// splitRepository splits an "owner/name" repository reference.
func splitRepository(repository string) (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}

// newClient builds a go-github client authenticated with the given token.
func newClient(ctx context.Context, token, baseURL string, timeout time.Duration) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	client := github.NewClient(tc)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub API URL: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}
	return client, nil
}
