package notifier

import (
	"context"

	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
)

// Log writes reset tokens to the application log instead of mailing them.
// Used when no SMTP host is configured, typically in development.
type Log struct {
	logger *logger.Logger
}

// NewLog creates a new Log notifier.
func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

var _ model.Notifier = (*Log)(nil)

// Send logs the reset token for the given address.
func (n *Log) Send(_ context.Context, email string, token string) error {
	n.logger.Info("password reset token issued", "email", email, "token", token)
	return nil
}
