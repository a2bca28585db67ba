package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testServiceKey = "svc"
	testMailToken  = "tok"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestFixture(t *testing.T) fixture {
	t.Helper()
	fx, err := loadFixture(filepath.Join("testdata", "fixture.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return fx
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/{table...}", tableHandler(testLogger(), loadTestFixture(t), testServiceKey))
	mux.HandleFunc("POST /sendmail", sendmailHandler(testLogger(), testMailToken, "bounce.example.com"))
	return mux
}

func tableRequest(path string, q url.Values, single bool) *http.Request {
	target := path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	req.Header.Set("apikey", testServiceKey)
	req.Header.Set("Authorization", "Bearer "+testServiceKey)
	if single {
		req.Header.Set("Accept", mediaTypeSingleObject)
	}
	return req
}

func TestLoadFixture(t *testing.T) {
	fx := loadTestFixture(t)
	for _, table := range []string{"auction_listings", "profiles", "auction_favorites"} {
		if len(fx[table]) == 0 {
			t.Errorf("expected rows in %s", table)
		}
	}
}

func TestTableHandler_Favorites(t *testing.T) {
	mux := newTestMux(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, tableRequest("/rest/v1/auction_favorites",
		url.Values{"select": {"user_id"}, "listing_id": {"eq.listing-1"}}, false))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	var rows []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows=%d, want 4", len(rows))
	}
	if _, ok := rows[0]["listing_id"]; ok {
		t.Error("select should project only user_id")
	}
}

func TestTableHandler_ProfilesInFilter(t *testing.T) {
	mux := newTestMux(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, tableRequest("/rest/v1/profiles",
		url.Values{"select": {"username"}, "user_id": {`in.("u1","ghost","u3")`}}, false))

	var rows []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(rows))
	}
}

func TestTableHandler_SingleObject(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, tableRequest("/rest/v1/auction_listings",
		url.Values{"select": {"title,mileage"}, "id": {"eq.listing-1"}}, true))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	var row map[string]any
	if err := json.NewDecoder(w.Body).Decode(&row); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if row["title"] != "2019 Audi A4 Avant" {
		t.Errorf("title=%v", row["title"])
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, tableRequest("/rest/v1/auction_listings",
		url.Values{"id": {"eq.missing"}}, true))
	if w.Code != http.StatusNotAcceptable {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotAcceptable)
	}
}

func TestTableHandler_WrongKey(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodGet, "/rest/v1/profiles", http.NoBody)
	req.Header.Set("apikey", "nope")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestTableHandler_Root(t *testing.T) {
	mux := newTestMux(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, tableRequest("/rest/v1/", nil, false))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
}

func TestParseInList(t *testing.T) {
	got := parseInList(`"a","b,c","d\"e"`)
	want := []string{"a", "b,c", `d"e`}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSendmailHandler(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		body   string
		status int
	}{
		{name: "accepted", token: testMailToken, body: `{"to":"ana@example.com","subject":"s","html":"h","text":"h"}`, status: http.StatusOK},
		{name: "wrong token", token: "nope", body: `{"to":"ana@example.com"}`, status: http.StatusUnauthorized},
		{name: "bounce domain", token: testMailToken, body: `{"to":"cy@bounce.example.com"}`, status: http.StatusInternalServerError},
		{name: "missing recipient", token: testMailToken, body: `{"subject":"s"}`, status: http.StatusBadRequest},
		{name: "invalid JSON", token: testMailToken, body: `{`, status: http.StatusBadRequest},
	}

	mux := newTestMux(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sendmail", strings.NewReader(tt.body))
			req.Header.Set("token", tt.token)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status=%d, want %d", w.Code, tt.status)
			}
		})
	}
}
