package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goevery/coderelay/internal/handler"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRESTServer_Health(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	originChecker := NewOriginChecker(logger, []string{"http://localhost:3000"})
	restServer := NewRESTServer(logger, originChecker, handler.NewHealthHandler())

	router := mux.NewRouter()
	restServer.Register(router)

	server := httptest.NewServer(router)
	defer server.Close()

	t.Run("reports ok", func(t *testing.T) {
		req, _ := http.NewRequest("GET", server.URL+"/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

		var health handler.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "ok", health.Status)
		assert.False(t, health.Timestamp.IsZero())
	})

	t.Run("no cors headers for disallowed origins", func(t *testing.T) {
		req, _ := http.NewRequest("GET", server.URL+"/health", nil)
		req.Header.Set("Origin", "http://evil.example")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects other methods", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/health", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
