// Package notifier provides the outbound notification adapter. Dispatch is
// fire-and-forget: a lost notification is an inconvenience, never a
// data-integrity failure, so errors are logged and swallowed.
package notifier

import (
	"context"
	"log/slog"
)

// SlogNotificationHook is a NotificationHook implementation that records
// events through structured logging. It stands in for a real messaging
// subsystem (push, WhatsApp, email) which consumes the same event stream.
type SlogNotificationHook struct {
	logger *slog.Logger
}

// NewSlogNotificationHook creates a logging-backed notification hook.
func NewSlogNotificationHook(logger *slog.Logger) *SlogNotificationHook {
	return &SlogNotificationHook{
		logger: logger.With("component", "notification_hook"),
	}
}

// Notify records the event. Never blocks the caller and never fails.
func (h *SlogNotificationHook) Notify(ctx context.Context, deliveryID string, eventType string, recipientRole string) {
	h.logger.InfoContext(ctx, "delivery event",
		"delivery_id", deliveryID,
		"event_type", eventType,
		"recipient_role", recipientRole,
	)
}
