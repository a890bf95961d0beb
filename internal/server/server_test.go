package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:      "127.0.0.1",
		ServerPort:      "0",
		GinMode:         gin.TestMode,
		CORSOrigins:     []string{"*"},
		RateLimitWindow: time.Minute,
	}
}

func TestNew(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)

	server := New(testConfig(), db, nil)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecipeRoutesAreMounted(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	handler := New(testConfig(), db, nil).Handler()

	body := `{"name":"Tea","cooking_time":5,"ingredients":"tea, water","description":"Steep","view_count":0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var recipes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 1)
}

func TestRateLimitedWhenRedisConfigured(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := testConfig()
	cfg.RateLimit = 1
	cfg.RateLimitWindow = time.Hour
	handler := New(cfg, db, client).Handler()
	t.Cleanup(func() { _ = client.Close() })

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks are not counted
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthReportsClosedStore(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	server := New(testConfig(), db, nil)

	require.NoError(t, server.Shutdown(context.Background()))

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
