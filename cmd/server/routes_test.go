package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/config"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

type emptyStore struct{}

func (emptyStore) ListSchedules(context.Context, int, model.TargetType, int) ([]model.Schedule, error) {
	return nil, nil
}

func (emptyStore) ListRules(context.Context, int) ([]model.SchedulingRule, error) {
	return nil, nil
}

func (emptyStore) ListContentPriorities(context.Context, int) ([]model.ContentPriority, error) {
	return nil, nil
}

func (emptyStore) GetDisplay(context.Context, int) (*model.Display, error) {
	return nil, scheduling.ErrNotFound
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := emptyStore{}
	RegisterRoutes(r, &config.Config{JWTSecret: "secret"}, Dependencies{
		Engine: scheduling.NewEngine(store),
		Store:  store,
	})
	return r
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoutesWithoutOptionalServices(t *testing.T) {
	r := newTestRouter()
	token, err := middleware.GenerateJWT("ops", 1, "secret", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		method, target, body string
	}{
		{http.MethodPost, "/api/cache/invalidate", `{"enabled":false,"removed":0}`},
		{http.MethodGet, "/api/conflicts?target_type=group&target_id=2", `[]`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, tt.target)
		assert.JSONEq(t, tt.body, w.Body.String(), tt.target)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/timeline", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dashboard.example", w.Header().Get("Access-Control-Allow-Origin"))
}
