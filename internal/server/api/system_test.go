package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/jsonfixer/internal/build"
	"github.com/looplj/jsonfixer/internal/objects"
)

func TestSystemHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := newRepairService(t)
	handlers := NewSystemHandlers(SystemHandlersParams{RepairService: svc})

	router := gin.New()
	router.GET("/health", handlers.Health)
	router.GET("/version", handlers.Version)
	router.GET("/stats", handlers.Stats)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body objects.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, build.Version, body.Version)
	})

	t.Run("version", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body build.Info
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, build.Version, body.Version)
		assert.NotEmpty(t, body.GoVersion)
	})

	t.Run("stats", func(t *testing.T) {
		svc.Repair(t.Context(), `{"a": 1`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body objects.RepairStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(1), body.Failed)
	})
}
