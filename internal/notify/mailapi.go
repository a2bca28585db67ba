package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response is kept on SendError.
const maxErrorBody = 512

// MailAPI implements Mailer via the mail-sending HTTP API: one JSON POST per
// recipient, authenticated with a token header.
type MailAPI struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewMailAPI creates a new MailAPI posting to endpoint.
func NewMailAPI(endpoint, token string, opts ...MailAPIOption) *MailAPI {
	m := &MailAPI{
		endpoint: endpoint,
		token:    token,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MailAPIOption configures a MailAPI.
type MailAPIOption func(*MailAPI)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) MailAPIOption {
	return func(m *MailAPI) {
		m.client = c
	}
}

// Send posts msg to the mail API. A non-2xx answer yields *SendError.
func (m *MailAPI) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", m.token)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &SendError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(respBody))}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
