package client

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// NotifyResult is the server's answer to a notify request. Sent and Failed
// are zero when the listing has no subscribers.
type NotifyResult struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

// Notify asks the server to notify every subscriber of listingID.
func (c *Client) Notify(ctx context.Context, listingID string) (*NotifyResult, error) {
	req := domain.NotificationRequest{ListingID: listingID, APIKey: c.apiKey}

	var res NotifyResult
	if err := c.post(ctx, "/api/v1/notify", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Preview returns what a notification for listingID would contain and who
// would receive it, without sending anything.
func (c *Client) Preview(ctx context.Context, listingID string) (*domain.Preview, error) {
	h := http.Header{}
	h.Set("X-API-Key", c.apiKey)

	var p domain.Preview
	if err := c.get(ctx, "/api/v1/listings/"+url.PathEscape(listingID)+"/preview", h, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ready reports whether the server and its data store are ready.
func (c *Client) Ready(ctx context.Context) error {
	return c.get(ctx, "/readyz", nil, nil)
}
