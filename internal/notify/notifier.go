// Package notify defines the mail transport interface and implementations
// for delivering listing notifications to subscribers.
package notify

import (
	"context"
	"fmt"
)

// Message is one notification addressed to one recipient.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// Mailer delivers a single message. Implementations must be safe for
// concurrent use; the dispatcher calls Send from many goroutines at once.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendError is returned when the mail service answers with a non-2xx status.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("mail service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("mail service returned %d: %s", e.StatusCode, e.Body)
}
