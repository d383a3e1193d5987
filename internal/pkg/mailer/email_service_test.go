package mailer

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"notes-reviewer/internal/config"
	"notes-reviewer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	from    string
	to      []string
	raw     bytes.Buffer
	sendErr error
	closed  bool
}

func (f *fakeSender) Send(from string, to []string, msg io.WriterTo) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.from, f.to = from, to
	_, err := msg.WriteTo(&f.raw)
	return err
}

func (f *fakeSender) Close() error {
	f.closed = true
	return nil
}

type fakeDialer struct {
	dials   int
	sender  *fakeSender
	dialErr error
}

func (f *fakeDialer) Dial() (gomail.SendCloser, error) {
	f.dials++
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	return f.sender, nil
}

func readySMTP() config.SMTPConfig {
	return config.SMTPConfig{
		Server:    "smtp.example.com",
		Port:      587,
		Username:  "bot",
		Password:  "secret",
		FromEmail: "bot@example.com",
	}
}

func TestSend_MultipartWithAttachment(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "file-1_notes.pdf")
	require.NoError(t, os.WriteFile(attachment, []byte("%PDF-1.4"), 0o644))

	d := &fakeDialer{sender: &fakeSender{}}
	svc := newEmailService(readySMTP(), d, logger.NewNopLogger())

	ok := svc.Send([]string{"prof@example.com", "ta@example.com"}, "New approved notes", "Great job, **Ada**! See https://example.com", attachment)

	require.True(t, ok)
	assert.Equal(t, 1, d.dials)
	assert.True(t, d.sender.closed)
	assert.Equal(t, "bot@example.com", d.sender.from)
	assert.Equal(t, []string{"prof@example.com", "ta@example.com"}, d.sender.to)

	raw := d.sender.raw.String()
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "application/pdf")
	assert.Contains(t, raw, `filename="file-1_notes.pdf"`)
	assert.Contains(t, raw, "Great job, Ada!")
}

func TestSend_MissingAttachmentStillSends(t *testing.T) {
	d := &fakeDialer{sender: &fakeSender{}}
	svc := newEmailService(readySMTP(), d, logger.NewNopLogger())

	ok := svc.Send([]string{"ada@example.com"}, "s", "b", filepath.Join(t.TempDir(), "gone.txt"))

	assert.True(t, ok)
	assert.NotContains(t, d.sender.raw.String(), "gone.txt")
}

func TestSend_IncompleteConfigNeverDials(t *testing.T) {
	cfg := readySMTP()
	cfg.Password = ""
	cfg.Missing = []string{"SMTP_PASS"}
	d := &fakeDialer{sender: &fakeSender{}}
	svc := newEmailService(cfg, d, logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		assert.False(t, svc.Send([]string{"ada@example.com"}, "s", "b", ""))
	}
	assert.Equal(t, 0, d.dials)
}

func TestNewEmailService_IncompleteConfig(t *testing.T) {
	cfg := readySMTP()
	cfg.PortErr = errors.New("SMTP_PORT must be an integer")

	svc := NewEmailService(cfg, logger.NewNopLogger())

	assert.False(t, svc.Send([]string{"ada@example.com"}, "s", "b", ""))
}

func TestSend_NoRecipients(t *testing.T) {
	d := &fakeDialer{sender: &fakeSender{}}
	svc := newEmailService(readySMTP(), d, logger.NewNopLogger())

	assert.False(t, svc.Send(nil, "s", "b", ""))
	assert.Equal(t, 0, d.dials)
}

func TestSend_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		dialErr error
		sendErr error
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "smtp.example.com"}, nil},
		{"auth", &textproto.Error{Code: 535, Msg: "authentication failed"}, nil},
		{"generic dial", errors.New("connection refused"), nil},
		{"send rejected", nil, &textproto.Error{Code: 550, Msg: "mailbox unavailable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{sendErr: tt.sendErr}
			d := &fakeDialer{sender: sender, dialErr: tt.dialErr}
			svc := newEmailService(readySMTP(), d, logger.NewNopLogger())

			assert.False(t, svc.Send([]string{"ada@example.com"}, "s", "b", ""))
			if tt.dialErr == nil {
				assert.True(t, sender.closed, "connection is released after a failed send")
			}
		})
	}
}

func TestNewDialer_TLSModeByPort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantSSL bool
	}{
		{"implicit tls", 465, true},
		{"starttls submission", 587, false},
		{"starttls legacy", 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := readySMTP()
			cfg.Port = tt.port

			d := newDialer(cfg)

			assert.Equal(t, tt.wantSSL, d.SSL)
			assert.Equal(t, "smtp.example.com", d.Host)
			assert.Equal(t, tt.port, d.Port)
			assert.Equal(t, "bot", d.Username)
			require.NotNil(t, d.TLSConfig)
			assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)
		})
	}
}

func TestNewEmailService_ReadyConfigUsesGomailDialer(t *testing.T) {
	cfg := readySMTP()
	cfg.Port = 465

	svc := NewEmailService(cfg, logger.NewNopLogger()).(*emailService)

	require.True(t, svc.ready)
	d, ok := svc.dialer.(*gomail.Dialer)
	require.True(t, ok)
	assert.True(t, d.SSL)
}

func TestAttachmentContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", attachmentContentType("notes.PDF"))
	assert.Equal(t, defaultContentType, attachmentContentType("notes.unknownext"))
	assert.Equal(t, defaultContentType, attachmentContentType("README"))
}
