package delivery

import (
	"time"

	"handover/internal/pkg/errs"
)

// HistoryEntry is one record of the append-only audit trail backing every
// accepted transition. Entries are never mutated or removed; corrections are
// modeled as new entries with explanatory notes.
type HistoryEntry struct {
	status    Status
	at        time.Time
	note      string
	actorRole Role
}

// NewHistoryEntry creates an audit entry for an accepted transition.
func NewHistoryEntry(status Status, at time.Time, note string, actorRole Role) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actorRole.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history entry timestamp")
	}

	return HistoryEntry{
		status:    status,
		at:        at,
		note:      note,
		actorRole: actorRole,
	}, nil
}

// RestoreHistoryEntry reconstructs an audit entry from persistence.
func RestoreHistoryEntry(status Status, at time.Time, note string, actorRole Role) (HistoryEntry, error) {
	return NewHistoryEntry(status, at, note, actorRole)
}

// Status returns the status recorded by the entry.
func (e HistoryEntry) Status() Status {
	return e.status
}

// At returns the transition timestamp.
func (e HistoryEntry) At() time.Time {
	return e.at
}

// Note returns the free-form note attached to the transition.
func (e HistoryEntry) Note() string {
	return e.note
}

// ActorRole returns the role of the actor that requested the transition.
func (e HistoryEntry) ActorRole() Role {
	return e.actorRole
}
