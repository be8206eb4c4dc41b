package mailer

import (
	"context"
)

// Message is a plain text e-mail.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Sender delivers one message.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
