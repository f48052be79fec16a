package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentforge/license-server/internal/api/handler"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealth_Healthy(t *testing.T) {
	t.Parallel()

	h := handler.NewHealthHandler(&fakePinger{}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	db := body["database"].(map[string]any)
	assert.Equal(t, true, db["connected"])
}

func TestHealth_DegradedWhenDatabaseDown(t *testing.T) {
	t.Parallel()

	h := handler.NewHealthHandler(&fakePinger{err: fmt.Errorf("connection refused")}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "degraded", body["status"])
	db := body["database"].(map[string]any)
	assert.Equal(t, false, db["connected"])
}
