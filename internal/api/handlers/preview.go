package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/price-alert-notifier/internal/engine"
	"github.com/donaldgifford/price-alert-notifier/internal/store"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// Previewer renders a notification without sending it.
type Previewer interface {
	Preview(ctx context.Context, apiKey, listingID string) (*domain.Preview, error)
}

// PreviewHandler handles GET /api/v1/listings/{id}/preview.
type PreviewHandler struct {
	dispatcher Previewer
}

// NewPreviewHandler creates a PreviewHandler.
func NewPreviewHandler(d Previewer) *PreviewHandler {
	return &PreviewHandler{dispatcher: d}
}

// PreviewInput is the request for GET /api/v1/listings/{id}/preview.
type PreviewInput struct {
	ID     string `path:"id"         doc:"Listing ID"`
	APIKey string `header:"X-API-Key" doc:"Shared API key"`
}

// PreviewOutput is the response for GET /api/v1/listings/{id}/preview.
type PreviewOutput struct {
	Body *domain.Preview
}

// Preview returns the subject, body, and recipients a notification for the
// listing would have right now.
func (h *PreviewHandler) Preview(
	ctx context.Context,
	input *PreviewInput,
) (*PreviewOutput, error) {
	p, err := h.dispatcher.Preview(ctx, input.APIKey, input.ID)
	switch {
	case errors.Is(err, engine.ErrInvalidAPIKey):
		return nil, huma.Error404NotFound(msgInvalidAPIKey)
	case errors.Is(err, engine.ErrMissingListingID):
		return nil, huma.Error400BadRequest(msgMissingListingID)
	case errors.Is(err, store.ErrNotFound):
		return nil, huma.Error404NotFound("listing not found")
	case err != nil:
		return nil, huma.Error500InternalServerError("failed to preview notification", err)
	}
	return &PreviewOutput{Body: p}, nil
}

// RegisterPreviewRoutes registers the preview route on the Huma API.
func RegisterPreviewRoutes(api huma.API, h *PreviewHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "preview-notification",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}/preview",
		Summary:     "Preview notification",
		Description: "Renders the notification for a listing and lists its recipients without sending mail.",
		Tags:        []string{"notifications"},
	}, h.Preview)
}
