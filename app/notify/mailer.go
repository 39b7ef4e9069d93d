package notify

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer records messages in the structured log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"html", msg.HTMLContent,
	)
	return nil
}
