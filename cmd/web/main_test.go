package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agilegame/internal/game"
)

func TestRouter_ServesStaticAndRoutes(t *testing.T) {
	store := game.NewStore()
	h, err := newRouter(store, zerolog.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/dashboard.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/live_counter")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/set_plan", strings.NewReader(`{"plan": 5}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, store.Snapshot().PlanNumber)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set_plan", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
