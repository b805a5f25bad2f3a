package ports

import "context"

// CapabilityDelivery is the directory capability identifying accounts that
// may be assigned deliveries.
const CapabilityDelivery = "delivery"

// Person is a read-only view of a personnel directory entry. The directory is
// an external collaborator; the core consumes it and never owns or mutates it.
type Person struct {
	ID    string
	Name  string
	Phone string
}

// PersonnelDirectory exposes the delivery-capable, active accounts of the
// external personnel system. Lookups are bounded, best-effort calls; the
// assignment flow uses them to reject stale or deactivated accounts.
type PersonnelDirectory interface {
	// ListActiveByCapability returns the active accounts holding the given
	// capability, e.g. CapabilityDelivery.
	ListActiveByCapability(ctx context.Context, capability string) ([]Person, error)
}
