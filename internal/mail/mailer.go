package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/config"
)

// Mailer sends HTML notification mail. All callers invoke it fire-and-forget;
// a failed send must never fail the triggering operation.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NewMailer returns an SMTP-backed mailer, or a log-only mailer when no SMTP
// host is configured (development).
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not provided; outbound mail will be logged only")
		return &logMailer{logger: logger, from: cfg.From}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.MailConfig
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, htmlBody)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

type logMailer struct {
	logger *zap.Logger
	from   string
}

func (m *logMailer) Send(to, subject, _ string) error {
	m.logger.Info("mail (not delivered)",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
