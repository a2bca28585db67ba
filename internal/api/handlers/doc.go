// Package handlers implements HTTP handlers for the price-alert-notifier API.
package handlers

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid API key."`
}

// MessageResponse is an informational response body.
type MessageResponse struct {
	Message string `json:"message" example:"No subscribers found for this listing."`
}

// NotifyResponse is the response body after a dispatch ran. Sent and Failed
// count per-recipient mail calls.
type NotifyResponse struct {
	Message string `json:"message" example:"Emails sent successfully."`
	Sent    int    `json:"sent"    example:"3"`
	Failed  int    `json:"failed"  example:"0"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
