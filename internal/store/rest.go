package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

const (
	restPathPrefix = "/rest/v1/"

	// mediaTypeSingleObject asks the gateway for exactly one row as a JSON
	// object; zero or many rows yield 406 Not Acceptable.
	mediaTypeSingleObject = "application/vnd.pgrst.object+json"

	listingSnapshotColumns = "title,url,firstReg,mileage,fuel,transmission,engineSize,vin,color," +
		"possiblePrice,reservedPrice,deliveryPrice,deliveryWindowStart,deliveryWindowEnd"
)

// RESTStore implements Store against the data store's REST gateway
// (PostgREST dialect), authenticating with the service-role key.
type RESTStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// RESTOption configures a RESTStore.
type RESTOption func(*RESTStore)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(s *RESTStore) {
		s.client = c
	}
}

// NewRESTStore creates a RESTStore for the project at baseURL.
func NewRESTStore(baseURL, serviceKey string, opts ...RESTOption) *RESTStore {
	s := &RESTStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RESTError is an error response from the REST gateway.
type RESTError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *RESTError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("data store returned %d", e.StatusCode)
	}
	return e.Message
}

// ListFavoriteUserIDs returns the user IDs with a favorite on the listing.
func (s *RESTStore) ListFavoriteUserIDs(ctx context.Context, listingID string) ([]string, error) {
	q := url.Values{}
	q.Set("select", "user_id")
	q.Set("listing_id", "eq."+listingID)

	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := s.get(ctx, tableFavorites, q, false, &rows); err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableFavorites, err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	return ids, nil
}

// ListSubscriberProfiles returns the profiles of the given users. Users
// without a profile are absent from the result.
func (s *RESTStore) ListSubscriberProfiles(
	ctx context.Context,
	userIDs []string,
) ([]domain.SubscriberProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("select", "username")
	q.Set("user_id", "in.("+quoteList(userIDs)+")")

	var profiles []domain.SubscriberProfile
	if err := s.get(ctx, tableProfiles, q, false, &profiles); err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableProfiles, err)
	}
	return profiles, nil
}

// GetListingSnapshot retrieves the listing attributes used in notifications.
func (s *RESTStore) GetListingSnapshot(
	ctx context.Context,
	listingID string,
) (*domain.ListingSnapshot, error) {
	q := url.Values{}
	q.Set("select", listingSnapshotColumns)
	q.Set("id", "eq."+listingID)

	l := &domain.ListingSnapshot{}
	err := s.get(ctx, tableListings, q, true, l)
	var restErr *RESTError
	if errors.As(err, &restErr) && restErr.StatusCode == http.StatusNotAcceptable {
		return nil, fmt.Errorf("listing %s: %s: %w", listingID, restErr.Error(), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableListings, err)
	}
	return l, nil
}

// Ping verifies the REST gateway is reachable and accepts the service key.
func (s *RESTStore) Ping(ctx context.Context) error {
	return s.get(ctx, "", nil, false, nil)
}

func (s *RESTStore) get(ctx context.Context, table string, q url.Values, single bool, dst any) error {
	u := s.baseURL + restPathPrefix + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if single {
		req.Header.Set("Accept", mediaTypeSingleObject)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		restErr := &RESTError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, restErr) // best effort; status alone is enough
		return restErr
	}

	if dst != nil && len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// quoteList renders values for an in.(...) filter, double-quoting each so
// commas and parentheses inside IDs are taken literally.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ",")
}

