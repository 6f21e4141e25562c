package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paceline/paceline/internal/config"
	"github.com/paceline/paceline/internal/core/engine"
	"github.com/paceline/paceline/internal/core/protocol"
)

func testServer(upstream *httptest.Server) *Server {
	var eng *engine.Client
	if upstream != nil {
		proto := protocol.NewClient()
		proto.BaseURL = upstream.URL
		proto.TokenURL = upstream.URL + "/oauth/token"
		proto.HTTPClient = upstream.Client()
		eng = engine.New(proto)
	}
	return New(config.ServerConfig{Host: "localhost", Port: 0}, eng, nil)
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
}

func TestVersionEndpoint(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-08-24")
	s := testServer(nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "paceline", body.App.Name)
	require.Equal(t, "1.2.3", body.App.Version)
}

func TestNotFoundUsesErrorEnvelope(t *testing.T) {
	s := testServer(nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bogus", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "NOT_FOUND", body.Error.Code)
	require.NotEmpty(t, body.Error.RequestID)
}

func TestRequestIDEcho(t *testing.T) {
	s := testServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestAthleteEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/athlete", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":227615,"firstname":"Juanita"}`))
	}))
	defer upstream.Close()

	s := testServer(upstream)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/athlete", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"firstname":"Juanita"`)
}

func TestAthleteEndpointMapsUpstreamErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Authorization Error"}`, http.StatusUnauthorized)
	}))
	defer upstream.Close()

	s := testServer(upstream)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/athlete", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestUsageEndpointWithoutStore(t *testing.T) {
	s := testServer(nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
