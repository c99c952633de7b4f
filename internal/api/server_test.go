package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Constructing the server mounts the huma docs routes on the same chi
// router that carries the middleware stack; chi requires all middleware
// to be in place before the first route, so construction itself is the
// behavior under test.
func TestNewServer_MountsMiddlewareAndRoutes(t *testing.T) {
	ts := setupTestServer(t)

	// Huma registers the OpenAPI routes during construction.
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The middleware stack is live: CORS answers preflight requests.
	req = httptest.NewRequest(http.MethodOptions, "/stickers", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
