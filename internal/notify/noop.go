package notify

import (
	"context"
	"log/slog"
)

// NoOpMailer implements Mailer by logging discarded messages. It is used
// for local runs where no mail should leave the machine.
type NoOpMailer struct {
	log *slog.Logger
}

// NewNoOpMailer creates a mailer that discards messages with a log line.
func NewNoOpMailer(log *slog.Logger) *NoOpMailer {
	return &NoOpMailer{log: log}
}

// Send logs and discards msg.
func (n *NoOpMailer) Send(_ context.Context, msg Message) error {
	n.log.Info("mail discarded (noop backend)",
		"to", msg.To,
		"subject", msg.Subject,
		"bytes", len(msg.HTML),
	)
	return nil
}
