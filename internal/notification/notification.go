package notification

import (
	"context"
	"log/slog"
)

// Deliverer hands an activation link to an invited user out of band. Delivery
// is fire-and-forget from the caller's point of view: a failure is logged by
// the invite flow, never surfaced to the inviting request.
type Deliverer interface {
	Deliver(ctx context.Context, recipientEmail, activationLink string) error
}

// LogDeliverer writes the invitation to the log instead of sending mail.
// Stand-in until a real mail provider is wired up.
type LogDeliverer struct {
	logger *slog.Logger
}

func NewLogDeliverer(logger *slog.Logger) *LogDeliverer {
	return &LogDeliverer{logger: logger}
}

func (d *LogDeliverer) Deliver(ctx context.Context, recipientEmail, activationLink string) error {
	d.logger.InfoContext(ctx, "invitation email (simulated)",
		"recipient", recipientEmail,
		"activation_link", activationLink)
	return nil
}
