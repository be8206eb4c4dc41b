package mailer

import (
	"context"

	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
)

var _ Sender = (*Console)(nil)

// Console writes messages to the log instead of delivering them.
type Console struct {
	log *logger.Logger
}

func NewConsole(log *logger.Logger) *Console {
	return &Console{log: log}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, msg Message) error {
	c.log.Info("notification not delivered, no mail transport configured",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}
