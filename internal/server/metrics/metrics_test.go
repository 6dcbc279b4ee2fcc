package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEvent(t *testing.T) {
	m := NewMetrics()

	m.AuthEvent("login", "ok")
	m.AuthEvent("login", "ok")
	m.AuthEvent("login", "invalid_credentials")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("login", "invalid_credentials")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.operations.WithLabelValues("register", "ok")))
}

func TestHTTPRequest(t *testing.T) {
	m := NewMetrics()

	m.HTTPRequest("GET", "/healthz", "200")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/healthz", "200")))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.AuthEvent("register", "conflict")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `authkeeper_auth_operations_total{operation="register",outcome="conflict"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
