// Package main implements a mock data store gateway and mail service for
// local development. It serves rows from a JSON fixture in the REST gateway
// dialect and accepts mail without delivering it, so the notifier can run
// end to end without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"
)

const mediaTypeSingleObject = "application/vnd.pgrst.object+json"

// fixture maps a table name to its rows.
type fixture map[string][]map[string]any

type mailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/fixture.json", "path to table fixture")
	serviceKey := flag.String("service-key", "mock-service-key", "accepted data store service key")
	mailToken := flag.String("mail-token", "mock-mail-token", "accepted mail API token")
	failDomain := flag.String("fail-domain", "bounce.example.com", "recipient domain whose mail is rejected")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "tables", len(fx))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/{table...}", tableHandler(logger, fx, *serviceKey))
	mux.HandleFunc("POST /sendmail", sendmailHandler(logger, *mailToken, *failDomain))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tableHandler(logger *slog.Logger, fx fixture, serviceKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != serviceKey ||
			r.Header.Get("Authorization") != "Bearer "+serviceKey {
			logger.Warn("table request with wrong service key")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid API key"})
			return
		}

		table := r.PathValue("table")
		if table == "" {
			writeJSON(w, http.StatusOK, map[string]string{"swagger": "2.0"})
			return
		}

		rows, ok := fx[table]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"code":    "42P01",
				"message": fmt.Sprintf("relation %q does not exist", table),
			})
			return
		}

		q := r.URL.Query()
		matched := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			if matches(row, q) {
				matched = append(matched, project(row, q.Get("select")))
			}
		}

		if r.Header.Get("Accept") == mediaTypeSingleObject {
			if len(matched) != 1 {
				writeJSON(w, http.StatusNotAcceptable, map[string]string{
					"code":    "PGRST116",
					"message": "JSON object requested, multiple (or no) rows returned",
				})
				return
			}
			writeJSON(w, http.StatusOK, matched[0])
			return
		}

		writeJSON(w, http.StatusOK, matched)
		logger.Info("query", "table", table, "matched", len(matched))
	}
}

// matches applies eq. and in.(...) filters; every other query key except
// select is treated as a column filter.
func matches(row map[string]any, q map[string][]string) bool {
	for col, vals := range q {
		if col == "select" || len(vals) == 0 {
			continue
		}
		got := fmt.Sprint(row[col])
		filter := vals[0]

		switch {
		case strings.HasPrefix(filter, "eq."):
			if got != strings.TrimPrefix(filter, "eq.") {
				return false
			}
		case strings.HasPrefix(filter, "in.(") && strings.HasSuffix(filter, ")"):
			if !slices.Contains(parseInList(filter[len("in.("):len(filter)-1]), got) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// parseInList splits a quoted, comma-separated list as written by the
// notifier's REST store.
func parseInList(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(out, cur.String())
}

func project(row map[string]any, sel string) map[string]any {
	if sel == "" || sel == "*" {
		return row
	}
	out := make(map[string]any)
	for _, col := range strings.Split(sel, ",") {
		col = strings.TrimSpace(col)
		out[col] = row[col]
	}
	return out
}

func sendmailHandler(logger *slog.Logger, token, failDomain string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("token") != token {
			logger.Warn("sendmail request with wrong token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		var req mailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if req.To == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing recipient"})
			return
		}

		if failDomain != "" && strings.HasSuffix(req.To, "@"+failDomain) {
			logger.Warn("rejecting mail", "to", req.To)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "mailbox unavailable"})
			return
		}

		logger.Info("accepted mail", "to", req.To, "subject", req.Subject, "html_bytes", len(req.HTML))
		writeJSON(w, http.StatusOK, map[string]string{"status": "queued"})
	}
}
