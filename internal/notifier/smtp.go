// Package notifier provides transports for delivering password-reset tokens.
package notifier

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/akimsavar/authwall/internal/model"
)

// SMTP delivers reset tokens over email.
type SMTP struct {
	addr string
	auth smtp.Auth
	from string
}

// Config holds SMTP connection parameters.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTP creates a new SMTP notifier.
func NewSMTP(cfg Config) *SMTP {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTP{
		addr: net.JoinHostPort(cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

var _ model.Notifier = (*SMTP)(nil)

// Send mails the reset token to the given address.
func (n *SMTP) Send(ctx context.Context, email string, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\n"+
			"Use this token to reset your password: %s\r\n"+
			"If you did not request a reset, ignore this message.\r\n",
		n.from, email, token)

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
