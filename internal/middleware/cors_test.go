package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCORSRouter mirrors the production wiring: a router whose routes declare
// explicit methods, wrapped as a whole in the CORS middleware.
func newCORSRouter(origin string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")
	return CORS(origin)(r)
}

func TestCORS_PreflightOnMethodRestrictedRoute(t *testing.T) {
	t.Parallel()
	h := newCORSRouter("https://frontend.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// The preflight must be answered by the middleware, not the router's
	// MethodNotAllowed path.
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://frontend.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_HeadersOnActualRequest(t *testing.T) {
	t.Parallel()
	h := newCORSRouter("https://frontend.example.com")

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://frontend.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisabledIsNoOp(t *testing.T) {
	t.Parallel()
	h := newCORSRouter("")

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
