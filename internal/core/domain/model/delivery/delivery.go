package delivery

import (
	"errors"
	"fmt"
	"time"

	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/errs"
	"handover/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New(
		"Delivery must be created via NewDelivery or RestoreDelivery constructor",
	)

	// ErrProofRequired is returned when a transition to Delivered is attempted
	// without going through the verified-handover path.
	ErrProofRequired = errors.New("transition to DELIVERED requires verified handover proof")
)

// Delivery is the aggregate root for a physical handover task. It owns the
// status machine, the single-shot courier assignment, the verification code,
// and the append-only status history.
//
// Invariants maintained by every method:
//   - statusHistory is never empty and its last entry matches the current status
//   - proof is present if and only if status is Delivered
//   - courierID is set exactly once and present for every status except
//     PendingAssignment
//   - verificationCode never changes after construction
//
// The struct uses private fields; all mutation goes through validated methods.
type Delivery struct {
	id           kernel.UUID
	number       string
	status       Status
	courierID    *kernel.UUID
	address      string
	phone        string
	deliveryTime DeliveryTime
	instructions string
	code         VerificationCode
	history      []HistoryEntry
	proof        *Proof
	orderRef     string
	createdAt    time.Time
	version      int

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery in PendingAssignment status with its first
// audit entry. The verification code and delivery number are fixed here for
// the whole lifecycle.
//
// Parameters:
//   - id: unique identifier (must be a constructed kernel.UUID)
//   - number: human-readable delivery number (DEL-YYYYMMDD-NNNNN)
//   - address, phone: destination contact data (required)
//   - deliveryTime: symbolic or absolute handover time
//   - instructions: optional special instructions
//   - orderRef: opaque reference into the originating sale/repair system
//   - code: the generated one-time verification code
//   - createdBy: role of the actor creating the delivery
//   - now: creation timestamp
func NewDelivery(
	id kernel.UUID,
	number string,
	address string,
	phone string,
	deliveryTime DeliveryTime,
	instructions string,
	orderRef string,
	code VerificationCode,
	createdBy Role,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:  PendingAssignment,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setAddress(address),
		d.setPhone(phone),
		d.setDeliveryTime(deliveryTime),
		d.setCode(code),
		d.setCreatedAt(now),
	); err != nil {
		return nil, err
	}
	d.instructions = instructions
	d.orderRef = orderRef

	entry, err := NewHistoryEntry(PendingAssignment, now, "delivery created", createdBy)
	if err != nil {
		return nil, err
	}
	d.history = []HistoryEntry{entry}

	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistent storage,
// including its full status history, optional handover proof, and the
// optimistic-concurrency version. The restored aggregate is checked against
// all invariants before being returned.
func RestoreDelivery(
	id kernel.UUID,
	number string,
	status Status,
	courierID *kernel.UUID,
	address string,
	phone string,
	deliveryTime DeliveryTime,
	instructions string,
	orderRef string,
	code VerificationCode,
	history []HistoryEntry,
	proof *Proof,
	createdAt time.Time,
	version int,
) (*Delivery, error) {
	d := &Delivery{
		status:       status,
		courierID:    courierID,
		instructions: instructions,
		orderRef:     orderRef,
		history:      append([]HistoryEntry(nil), history...),
		proof:        proof,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setNumber(number),
		d.setAddress(address),
		d.setPhone(phone),
		d.setDeliveryTime(deliveryTime),
		d.setCode(code),
		d.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidError(
			"delivery version",
			fmt.Errorf("%d is not a positive version", version),
		)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the aggregate was properly constructed and that all
// lifecycle invariants hold. Repositories call it before persisting and after
// restoring.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}

	if len(d.history) == 0 {
		return errs.NewValueIsRequiredError("status history must contain at least the creation entry")
	}
	if last := d.history[len(d.history)-1].Status(); last != d.status {
		return errs.NewValueIsInvalidErrorWithCause(
			"status history",
			fmt.Errorf("last history status %s does not match current status %s", last, d.status),
		)
	}

	if (d.proof != nil) != (d.status == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery proof",
			fmt.Errorf("proof presence %t is inconsistent with status %s", d.proof != nil, d.status),
		)
	}

	if d.status != PendingAssignment && d.courierID == nil {
		return errs.NewValueIsRequiredError("courier must be assigned past PENDING_ASSIGNMENT")
	}
	if d.status == PendingAssignment && d.courierID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"courier",
			fmt.Errorf("%s delivery cannot have a courier", PendingAssignment),
		)
	}

	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Assign binds a courier to the delivery exactly once and advances the status
// to Assigned, appending the audit entry. The binding never changes afterwards;
// there is no re-assignment path.
//
// Returns ErrForbidden when the requester is not manager-tier,
// ErrAlreadyAssigned when a courier is already bound, and ErrIllegalTransition
// when the delivery has moved past assignment.
func (d *Delivery) Assign(courierID kernel.UUID, courierName string, requesterRole Role, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !requesterRole.IsManagerTier() {
		return fmt.Errorf("%w: %s cannot assign couriers", ErrForbidden, requesterRole)
	}
	if d.courierID != nil {
		return ErrAlreadyAssigned
	}
	if _, err := d.status.GateFor(Assigned); err != nil {
		return err
	}

	note := fmt.Sprintf("assigned to %s", courierName)
	entry, err := NewHistoryEntry(Assigned, now, note, requesterRole)
	if err != nil {
		return err
	}

	d.status = Assigned
	d.courierID = &courierID
	d.history = append(d.history, entry)
	return nil
}

// Transition advances the delivery to a non-terminal target status, enforcing
// the transition table and the role gate of the requested edge. Replays of a
// stale target on an already-advanced delivery are rejected with
// ErrIllegalTransition, never silently accepted.
//
// Transition refuses the Delivered target: the terminal edge only exists via
// CompleteHandover so that proof and status are written together.
func (d *Delivery) Transition(
	target Status,
	requesterID kernel.UUID,
	requesterRole Role,
	note string,
	now time.Time,
) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == Delivered {
		return ErrProofRequired
	}

	gate, err := d.status.GateFor(target)
	if err != nil {
		return err
	}
	if !requesterRole.satisfiesGate(gate, d.isAssignedCourier(requesterID)) {
		return fmt.Errorf("%w: %s may not move %s to %s", ErrForbidden, requesterRole, d.status, target)
	}

	entry, err := NewHistoryEntry(target, now, note, requesterRole)
	if err != nil {
		return err
	}

	d.status = target
	d.history = append(d.history, entry)
	return nil
}

// CompleteHandover performs the terminal Arrived -> Delivered transition,
// persisting the handover proof atomically with the status change. Callers
// must have verified the customer's code first (see services.HandoverVerifier);
// this method assumes the proof is already approved.
func (d *Delivery) CompleteHandover(
	requesterID kernel.UUID,
	requesterRole Role,
	proof Proof,
	note string,
	now time.Time,
) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	gate, err := d.status.GateFor(Delivered)
	if err != nil {
		return err
	}
	if !requesterRole.satisfiesGate(gate, d.isAssignedCourier(requesterID)) {
		return fmt.Errorf("%w: %s may not complete the handover", ErrForbidden, requesterRole)
	}

	if note == "" {
		note = "delivered to customer"
	}
	entry, err := NewHistoryEntry(Delivered, now, note, requesterRole)
	if err != nil {
		return err
	}

	d.status = Delivered
	d.proof = &proof
	d.history = append(d.history, entry)
	return nil
}

// isAssignedCourier reports whether the requester is the courier bound to the
// delivery. False when no courier is assigned yet.
func (d *Delivery) isAssignedCourier(requesterID kernel.UUID) bool {
	return d.courierID != nil && d.courierID.IsEqual(requesterID)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Number returns the human-readable delivery number.
func (d *Delivery) Number() string {
	return d.number
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Courier returns the assigned courier's ID, or nil before assignment.
func (d *Delivery) Courier() *kernel.UUID {
	return d.courierID
}

// Address returns the delivery address.
func (d *Delivery) Address() string {
	return d.address
}

// Phone returns the customer contact phone.
func (d *Delivery) Phone() string {
	return d.phone
}

// DeliveryTime returns the requested handover time.
func (d *Delivery) DeliveryTime() DeliveryTime {
	return d.deliveryTime
}

// Instructions returns the optional special instructions.
func (d *Delivery) Instructions() string {
	return d.instructions
}

// VerificationCode returns the one-time handover code.
func (d *Delivery) VerificationCode() VerificationCode {
	return d.code
}

// History returns a copy of the append-only status history in insertion order.
func (d *Delivery) History() []HistoryEntry {
	return append([]HistoryEntry(nil), d.history...)
}

// Proof returns the handover proof, or nil unless the delivery is Delivered.
func (d *Delivery) Proof() *Proof {
	if d.proof == nil {
		return nil
	}
	p := *d.proof
	return &p
}

// OrderRef returns the opaque reference into the originating order system.
// The core never dereferences it.
func (d *Delivery) OrderRef() string {
	return d.orderRef
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// Version returns the optimistic-concurrency version as loaded from storage.
// The repository bumps it on every successful update.
func (d *Delivery) Version() int {
	return d.version
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setNumber(number string) error {
	if err := ValidateDeliveryNumber(number); err != nil {
		return err
	}
	d.number = number
	return nil
}

func (d *Delivery) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Delivery) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}

func (d *Delivery) setDeliveryTime(t DeliveryTime) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.deliveryTime = t
	return nil
}

func (d *Delivery) setCode(code VerificationCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	d.code = code
	return nil
}

func (d *Delivery) setCreatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = t
	return nil
}
