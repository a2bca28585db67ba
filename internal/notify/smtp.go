package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPOptions configures an SMTPMailer.
type SMTPOptions struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Encryption string // none, starttls, ssl_tls
}

// SMTPMailer implements Mailer by relaying through an SMTP server with
// go-mail. Each message is sent as plain text with an HTML alternative.
type SMTPMailer struct {
	opts SMTPOptions
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(opts SMTPOptions) *SMTPMailer {
	return &SMTPMailer{opts: opts}
}

// Send delivers msg over a fresh SMTP connection.
func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMsg(msg)
	if err != nil {
		return err
	}

	c, err := mail.NewClient(s.opts.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPMailer) buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.opts.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)

	text := msg.Text
	if text == "" {
		text = msg.HTML
	}
	m.SetBodyString(mail.TypeTextPlain, text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}

func (s *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.opts.Port),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(s.opts.Encryption)),
	}
	if s.opts.Encryption == "ssl_tls" {
		opts = append(opts, mail.WithSSL())
	}
	if s.opts.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.opts.Username),
			mail.WithPassword(s.opts.Password),
		)
	}
	return opts
}

// tlsPolicyFromEncryption converts the encryption setting to a go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}
