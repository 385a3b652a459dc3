// Package mail delivers one-time codes over SMTP. Delivery is synchronous;
// whether a failure is fatal is decided by the caller.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-api/internal/api/metrics"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPMailer sends OTP mails through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg    Config
	logger zerolog.Logger
}

func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendOTP delivers a one-time code. The message body states the 10-minute
// validity window, matching the code's actual expiry.
func (m *SMTPMailer) SendOTP(_ context.Context, to, subject, code string) error {
	if m.cfg.Host == "" || m.cfg.User == "" || m.cfg.Password == "" {
		return fmt.Errorf("smtp not configured")
	}

	body := fmt.Sprintf(
		"Your one-time code is: %s\r\n\r\n"+
			"It expires in 10 minutes. If you did not request this code, ignore this email.\r\n",
		code,
	)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		metrics.MailDeliveriesTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("send mail: %w", err)
	}

	metrics.MailDeliveriesTotal.WithLabelValues("sent").Inc()
	m.logger.Debug().Str("to", to).Str("subject", subject).Msg("otp mail sent")
	return nil
}
