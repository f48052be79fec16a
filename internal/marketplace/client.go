package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

// Purchase is one entry from the administrative token's marketplace
// purchase list.
type Purchase struct {
	AccountLogin string
	PlanName     string
}

// Client lists marketplace purchases visible to the administrative token.
// It is the fallback check when the subscription store has no record.
type Client interface {
	ListPurchases(ctx context.Context) ([]Purchase, error)
}

// GitHubClient implements Client against the GitHub Marketplace API.
type GitHubClient struct {
	token   string
	baseURL string
	timeout time.Duration
}

// NewGitHubClient creates a marketplace client authenticated with the
// administrative token.
func NewGitHubClient(token, baseURL string, timeout time.Duration) *GitHubClient {
	return &GitHubClient{token: token, baseURL: baseURL, timeout: timeout}
}

// ListPurchases fetches all pages of the purchase list. A single failed call
// fails the whole listing; the caller decides how to degrade.
func (c *GitHubClient) ListPurchases(ctx context.Context) ([]Purchase, error) {
	client, err := c.newClient(ctx)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}
	var purchases []Purchase
	for {
		page, resp, err := client.Marketplace.ListMarketplacePurchasesForUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing marketplace purchases: %w", err)
		}
		for _, p := range page {
			purchases = append(purchases, Purchase{
				AccountLogin: p.GetAccount().GetLogin(),
				PlanName:     p.GetPlan().GetName(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return purchases, nil
}

func (c *GitHubClient) newClient(ctx context.Context) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = c.timeout

	client := github.NewClient(tc)
	if c.baseURL != "" {
		u, err := url.Parse(c.baseURL)
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
