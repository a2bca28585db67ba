package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestTLSPolicyFromEncryption(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mail.TLSMandatory, tlsPolicyFromEncryption("ssl_tls"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicyFromEncryption("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption("none"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption(""))
}

func TestSMTPMailer_BuildMsg(t *testing.T) {
	t.Parallel()

	s := NewSMTPMailer(SMTPOptions{
		Host: "smtp.example.com",
		Port: 587,
		From: "alerts@example.com",
	})

	m, err := s.buildMsg(testMessage())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "alerts@example.com")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
}

func TestSMTPMailer_BuildMsg_InvalidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "bad from", from: "not an address", to: "ana@example.com", wantErr: "invalid from address"},
		{name: "bad recipient", from: "alerts@example.com", to: "nope", wantErr: `invalid recipient "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSMTPMailer(SMTPOptions{Host: "smtp.example.com", From: tt.from})
			msg := testMessage()
			msg.To = tt.to

			_, err := s.buildMsg(msg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSMTPMailer_ClientOptions(t *testing.T) {
	t.Parallel()

	anon := NewSMTPMailer(SMTPOptions{Port: 25, Encryption: "none"})
	assert.Len(t, anon.clientOptions(), 2)

	auth := NewSMTPMailer(SMTPOptions{Port: 465, Encryption: "ssl_tls", Username: "u", Password: "p"})
	assert.Len(t, auth.clientOptions(), 6)
}
