package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/price-alert-notifier/internal/engine"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// Response messages returned by the notify endpoint. Existing callers match
// on these strings.
const (
	msgInvalidAPIKey    = "Invalid API key."
	msgMissingListingID = "Missing listing_id parameter."
	msgNoSubscribers    = "No subscribers found for this listing."
	msgEmailsSent       = "Emails sent successfully."
)

// Notifier dispatches a notification request.
type Notifier interface {
	Notify(ctx context.Context, req domain.NotificationRequest) (*domain.DispatchSummary, error)
}

// NotifyHandler handles POST / and POST /api/v1/notify.
type NotifyHandler struct {
	dispatcher Notifier
	log        *slog.Logger
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(d Notifier, log *slog.Logger) *NotifyHandler {
	return &NotifyHandler{dispatcher: d, log: log}
}

// Notify decodes {listing_id, api_key}, runs the dispatch, and maps the
// outcome to a status code and JSON body.
func (h *NotifyHandler) Notify(c echo.Context) error {
	var req domain.NotificationRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		h.log.Error("decoding notify request", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	summary, err := h.dispatcher.Notify(c.Request().Context(), req)
	switch {
	case errors.Is(err, engine.ErrInvalidAPIKey):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: msgInvalidAPIKey})
	case errors.Is(err, engine.ErrMissingListingID):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingListingID})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	if summary.NoSubscribers {
		return c.JSON(http.StatusOK, MessageResponse{Message: msgNoSubscribers})
	}

	return c.JSON(http.StatusOK, NotifyResponse{
		Message: msgEmailsSent,
		Sent:    summary.Sent,
		Failed:  summary.Failed,
	})
}

// RegisterNotifyRoutes registers the notify endpoint on its root path and
// under the versioned API prefix.
func RegisterNotifyRoutes(e *echo.Echo, h *NotifyHandler) {
	e.POST("/", h.Notify)
	e.POST("/api/v1/notify", h.Notify)
}
