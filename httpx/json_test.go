package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeneralBots/botlib/httpx"
	"github.com/GeneralBots/botlib/models"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/bots/demo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(models.OK(map[string]string{"name": "demo"}))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out models.APIResponse[map[string]string]
	require.NoError(t, c.GetJSON(context.Background(), "/api/bots/demo", &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Data)
	assert.Equal(t, "demo", (*out.Data)["name"])
}

func TestPostJSON(t *testing.T) {
	type createReq struct {
		Name string `json:"name"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req createReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "demo", req.Name)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "bot-1"})
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]string
	require.NoError(t, c.PostJSON(context.Background(), "/api/bots", createReq{Name: "demo"}, &out))
	assert.Equal(t, "bot-1", out["id"])
}

func TestPostJSONNilOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))
	assert.NoError(t, c.PostJSON(context.Background(), "/api/ping", map[string]string{}, nil))
}

func TestJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"bot not found"}`))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]string
	err := c.GetJSON(context.Background(), "/api/bots/nope", &out)
	require.Error(t, err)

	var herr *httpx.Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusNotFound, herr.Status)
	assert.Contains(t, err.Error(), "bot not found", "body excerpt should be preserved")
}

func TestJSONErrorStatusAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL), httpx.WithRetries(2, time.Millisecond))

	var out map[string]string
	err := c.GetJSON(context.Background(), "/api/bots", &out)
	require.Error(t, err)

	var herr *httpx.Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusServiceUnavailable, herr.Status,
		"the last status should survive retry exhaustion")
	assert.Contains(t, err.Error(), "overloaded", "body excerpt should be preserved")
}

func TestJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]string
	err := c.GetJSON(context.Background(), "/api/bots", &out)
	require.Error(t, err)

	var herr *httpx.Error
	assert.True(t, errors.As(err, &herr))
}

func TestWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]any
	require.NoError(t, c.GetJSON(context.Background(), "/api/me", &out, httpx.WithBearer("tok-123")))
}

func TestWithHeaderOption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v2", r.Header.Get("X-API-Version"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]any
	require.NoError(t, c.GetJSON(context.Background(), "/api/me", &out, httpx.WithHeader("X-API-Version", "v2")))
}

func TestHealthCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer healthy.Close()

	assert.True(t, httpx.New(httpx.WithBaseURL(healthy.URL)).HealthCheck(context.Background()))

	sick := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sick.Close()

	assert.False(t, httpx.New(httpx.WithBaseURL(sick.URL)).HealthCheck(context.Background()))
}

func TestDeleteJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
	}))
	defer srv.Close()

	c := httpx.New(httpx.WithBaseURL(srv.URL))

	var out map[string]bool
	require.NoError(t, c.DeleteJSON(context.Background(), "/api/bots/demo", &out))
	assert.True(t, out["deleted"])
}
