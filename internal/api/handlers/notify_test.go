package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-alert-notifier/internal/api/handlers"
	"github.com/donaldgifford/price-alert-notifier/internal/engine"
	"github.com/donaldgifford/price-alert-notifier/internal/store"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

type fakeNotifier struct {
	summary *domain.DispatchSummary
	err     error
	got     *domain.NotificationRequest
}

func (f *fakeNotifier) Notify(
	_ context.Context,
	req domain.NotificationRequest,
) (*domain.DispatchSummary, error) {
	f.got = &req
	return f.summary, f.err
}

func TestNotifyHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		summary    *domain.DispatchSummary
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid API key maps to 404",
			body:       `{"listing_id":"l1","api_key":"nope"}`,
			err:        engine.ErrInvalidAPIKey,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Invalid API key."}`,
		},
		{
			name:       "missing listing id maps to 400",
			body:       `{"api_key":"k"}`,
			err:        engine.ErrMissingListingID,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing listing_id parameter."}`,
		},
		{
			name:       "no subscribers",
			body:       `{"listing_id":"l1","api_key":"k"}`,
			summary:    &domain.DispatchSummary{ListingID: "l1", NoSubscribers: true},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"No subscribers found for this listing."}`,
		},
		{
			name:       "dispatched with partial failures",
			body:       `{"listing_id":"l1","api_key":"k"}`,
			summary:    &domain.DispatchSummary{ListingID: "l1", Recipients: 3, Sent: 2, Failed: 1},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Emails sent successfully.","sent":2,"failed":1}`,
		},
		{
			name:       "resolution failure maps to 500 with message",
			body:       `{"listing_id":"l1","api_key":"k"}`,
			err:        fmt.Errorf("getting listing: %w", store.ErrNotFound),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"getting listing: not found"}`,
		},
		{
			name:       "store outage maps to 500",
			body:       `{"listing_id":"l1","api_key":"k"}`,
			err:        errors.New("listing favorites: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"listing favorites: connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeNotifier{summary: tt.summary, err: tt.err}
			h := handlers.NewNotifyHandler(f, quietLogger())

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Notify(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			require.NotNil(t, f.got)
		})
	}
}

func TestNotifyHandler_DecodesRequest(t *testing.T) {
	t.Parallel()

	f := &fakeNotifier{summary: &domain.DispatchSummary{NoSubscribers: true}}
	h := handlers.NewNotifyHandler(f, quietLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"listing_id":"abc-123","api_key":"secret","extra":true}`))
	c := e.NewContext(req, httptest.NewRecorder())

	require.NoError(t, h.Notify(c))
	require.NotNil(t, f.got)
	assert.Equal(t, "abc-123", f.got.ListingID)
	assert.Equal(t, "secret", f.got.APIKey)
}

func TestNotifyHandler_MalformedJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `{"listing_id":`, `not json`} {
		f := &fakeNotifier{}
		h := handlers.NewNotifyHandler(f, quietLogger())

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()

		require.NoError(t, h.Notify(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":`)
		assert.Nil(t, f.got, "dispatcher must not run for %q", body)
	}
}

func TestRegisterNotifyRoutes(t *testing.T) {
	t.Parallel()

	f := &fakeNotifier{summary: &domain.DispatchSummary{NoSubscribers: true}}
	e := echo.New()
	handlers.RegisterNotifyRoutes(e, handlers.NewNotifyHandler(f, quietLogger()))

	for _, path := range []string{"/", "/api/v1/notify"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"listing_id":"l1","api_key":"k"}`))
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
