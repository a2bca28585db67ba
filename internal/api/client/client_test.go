package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1", "k") // nothing listening
	_, err := c.Notify(context.Background(), "listing-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "notify error body",
			status:  http.StatusNotFound,
			body:    `{"error":"Invalid API key."}`,
			wantMsg: "API error (HTTP 404): Invalid API key.",
		},
		{
			name:    "huma problem details",
			status:  http.StatusInternalServerError,
			body:    `{"title":"Internal Server Error","status":500,"detail":"failed to preview notification"}`,
			wantMsg: "API error (HTTP 500): failed to preview notification",
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "bad gateway\n",
			wantMsg: "API error (HTTP 502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "k").Notify(context.Background(), "listing-1")
			require.EqualError(t, err, tt.wantMsg)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_Notify(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/notify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.NotificationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "listing-1", req.ListingID)
		assert.Equal(t, "secret", req.APIKey)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Emails sent successfully.","sent":2,"failed":1}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL+"/", "secret").Notify(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "Emails sent successfully.", res.Message)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
}

func TestClient_Preview(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/listings/a b/preview", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Preview{
			ListingID:  "a b",
			Subject:    "Update on Your Favorite Listing: N/A",
			Recipients: []string{"ana@example.com"},
		})
	}))
	defer srv.Close()

	p, err := New(srv.URL, "secret").Preview(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "a b", p.ListingID)
	assert.Equal(t, []string{"ana@example.com"}, p.Recipients)
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()

	var ready atomic.Bool
	ready.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readyz", r.URL.Path)
		if ready.Load() {
			_, _ = w.Write([]byte(`{"status":"ready"}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	require.NoError(t, c.Ready(context.Background()))

	ready.Store(false)
	err := c.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}
