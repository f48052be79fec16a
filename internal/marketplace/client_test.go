package marketplace_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/license-server/internal/marketplace"
)

func TestListPurchases_MapsAccountAndPlan(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/user/marketplace_purchases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"account": {"login": "octocat"}, "plan": {"name": "premium"}},
			{"account": {"login": "hubot"}, "plan": {"name": "basic"}}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := marketplace.NewGitHubClient("admin-token", srv.URL, 2*time.Second)

	purchases, err := c.ListPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, marketplace.Purchase{AccountLogin: "octocat", PlanName: "premium"}, purchases[0])
	assert.Equal(t, marketplace.Purchase{AccountLogin: "hubot", PlanName: "basic"}, purchases[1])
}

func TestListPurchases_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c := marketplace.NewGitHubClient("admin-token", srv.URL, 2*time.Second)

	_, err := c.ListPurchases(context.Background())
	assert.Error(t, err)
}

func TestListPurchases_EmptyList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := marketplace.NewGitHubClient("admin-token", srv.URL, 2*time.Second)

	purchases, err := c.ListPurchases(context.Background())
	require.NoError(t, err)
	assert.Empty(t, purchases)
}
