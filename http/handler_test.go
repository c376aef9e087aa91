package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health", nil)

	HandleHealthCheck(w, r)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleReadyCheck(t *testing.T) {
	t.Run("service is ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/ready", nil)

		HandleReadyCheck(func() bool { return true })(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("service is not ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/ready", nil)

		HandleReadyCheck(func() bool { return false })(w, r)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/version", nil)

	HandleVersion("1.2.3")(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1.2.3", w.Body.String())
}

func TestHandleWithCORS(t *testing.T) {
	handler := HandleWithCORS(HandleVersion("1.2.3"))

	t.Run("headers are set", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/version", nil)

		handler(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "1.2.3", w.Body.String())
	})

	t.Run("preflight request is short-circuited", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/version", nil)

		handler(w, r)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, w.Body.String())
	})
}
