package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"notes-reviewer/internal/config"
	"notes-reviewer/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

const (
	logModule          = "Mailer"
	implicitTLSPort    = 465
	defaultContentType = "application/octet-stream"
)

type IEmailService interface {
	// Send delivers a multipart plain/HTML message and reports whether the server accepted it.
	// attachmentPath may be empty.
	Send(to []string, subject, body, attachmentPath string) bool
}

type dialer interface {
	Dial() (gomail.SendCloser, error)
}

type emailService struct {
	dialer    dialer
	fromEmail string
	server    string
	ready     bool
	logger    logger.ILogger
}

// NewEmailService validates cfg once. With any problem every Send fails without dialing.
func NewEmailService(cfg config.SMTPConfig, log logger.ILogger) IEmailService {
	var d dialer
	if cfg.Ready() {
		d = newDialer(cfg)
	}
	return newEmailService(cfg, d, log)
}

// newDialer uses implicit TLS on 465 and STARTTLS on any other port.
func newDialer(cfg config.SMTPConfig) *gomail.Dialer {
	d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == implicitTLSPort
	d.TLSConfig = &tls.Config{ServerName: cfg.Server, MinVersion: tls.VersionTLS12}
	return d
}

func newEmailService(cfg config.SMTPConfig, d dialer, log logger.ILogger) *emailService {
	for _, problem := range cfg.Problems() {
		log.Error(logModule, "SMTP configuration problem", map[string]interface{}{"problem": problem})
	}
	return &emailService{
		dialer:    d,
		fromEmail: cfg.FromEmail,
		server:    cfg.Server,
		ready:     cfg.Ready() && d != nil,
		logger:    log,
	}
}

func (s *emailService) Send(to []string, subject, body, attachmentPath string) (sent bool) {
	if !s.ready {
		s.logger.Error(logModule, "Cannot send email due to missing or invalid configuration", map[string]interface{}{"subject": subject})
		return false
	}
	if len(to) == 0 {
		s.logger.Warn(logModule, "No recipients, email not sent", map[string]interface{}{"subject": subject})
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(logModule, "Unexpected error while sending email", map[string]interface{}{"panic": fmt.Sprint(r), "to": to})
			sent = false
		}
	}()

	m, err := s.buildMessage(to, subject, body, attachmentPath)
	if err != nil {
		s.logger.Error(logModule, "Failed to build email", map[string]interface{}{"error": err, "to": to})
		return false
	}

	sc, err := s.dialer.Dial()
	if err != nil {
		s.logSendError(err, to)
		return false
	}
	defer func() {
		if cerr := sc.Close(); cerr != nil {
			s.logger.Debug(logModule, "SMTP close failed", map[string]interface{}{"error": cerr.Error()})
		}
	}()

	if err := gomail.Send(sc, m); err != nil {
		s.logSendError(err, to)
		return false
	}

	details := map[string]interface{}{"to": strings.Join(to, ", "), "subject": subject}
	if attachmentPath != "" {
		details["attachment"] = attachmentPath
	}
	s.logger.Info(logModule, "Email sent", details)
	return true
}

func (s *emailService) buildMessage(to []string, subject, body, attachmentPath string) (*gomail.Message, error) {
	htmlBody, err := RenderHTML(body)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", RenderPlain(body))
	m.AddAlternative("text/html", htmlBody)

	if attachmentPath != "" {
		if _, err := os.Stat(attachmentPath); err == nil {
			m.Attach(attachmentPath, gomail.SetHeader(map[string][]string{
				"Content-Type": {attachmentContentType(attachmentPath)},
			}))
		} else {
			s.logger.Warn(logModule, "Attachment not found, sending without it", map[string]interface{}{"path": attachmentPath})
		}
	}
	return m, nil
}

func (s *emailService) logSendError(err error, to []string) {
	var dnsErr *net.DNSError
	var protoErr *textproto.Error
	switch {
	case errors.As(err, &dnsErr):
		s.logger.Error(logModule, fmt.Sprintf("Could not connect to SMTP server '%s'", s.server), map[string]interface{}{"error": err, "to": to})
	case errors.As(err, &protoErr):
		s.logger.Error(logModule, "SMTP error", map[string]interface{}{"error": err, "code": protoErr.Code, "to": to})
	default:
		s.logger.Error(logModule, "Unexpected error while sending email", map[string]interface{}{"error": err, "to": to})
	}
}

func attachmentContentType(path string) string {
	if ctype := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ctype != "" {
		return ctype
	}
	return defaultContentType
}
