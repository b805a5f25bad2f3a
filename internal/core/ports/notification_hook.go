package ports

import "context"

// Notification event types emitted after accepted state changes.
const (
	EventDeliveryCreated   = "delivery.created"
	EventCourierAssigned   = "delivery.assigned"
	EventStatusChanged     = "delivery.status_changed"
	EventDeliveryCompleted = "delivery.completed"
	EventDeliveryStale     = "delivery.stale"
)

// NotificationHook is invoked after committed state changes. Concrete
// dispatch (push, WhatsApp, email) belongs to a messaging subsystem; the core
// treats notifications as fire-and-forget. A notification failure must never
// roll back a committed transition, and loss of a notification is not a
// data-integrity failure.
type NotificationHook interface {
	// Notify reports an event about a delivery to the given recipient role.
	// Implementations must be best-effort and non-blocking for the caller.
	Notify(ctx context.Context, deliveryID string, eventType string, recipientRole string)
}
