package service

import (
	"context"
	"log/slog"
)

// Mailer dispatches password-reset tokens to users. The API never returns a
// reset token in a response body; whatever Mailer is wired in at startup is
// the only way a token leaves the process.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer is the default Mailer: it writes the reset token to the log
// instead of sending mail. Suitable for development and for deployments that
// read tokens out of the log pipeline; swap in a real SMTP implementation
// for anything user-facing.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer constructs a LogMailer writing to logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{log: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.log.InfoContext(ctx, "password reset requested",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}
