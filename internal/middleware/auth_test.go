package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authHandler(keys map[string]string) http.Handler {
	return APIKeyAuth(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetTenantFromContext(r.Context())))
	}))
}

func TestAPIKeyAuthValidKey(t *testing.T) {
	h := authHandler(map[string]string{"acme": "secret-key"})

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/summary", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", rec.Body.String())
}

func TestAPIKeyAuthBareKey(t *testing.T) {
	h := authHandler(map[string]string{"acme": "secret-key"})

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/summary", nil)
	req.Header.Set("Authorization", "secret-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuthRejectsMissingHeader(t *testing.T) {
	h := authHandler(map[string]string{"acme": "secret-key"})

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/summary", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthRejectsWrongKey(t *testing.T) {
	h := authHandler(map[string]string{"acme": "secret-key"})

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/summary", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthSkipsProbes(t *testing.T) {
	h := authHandler(map[string]string{"acme": "secret-key"})

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
