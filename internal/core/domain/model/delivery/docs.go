// Package delivery contains the Delivery aggregate and its supporting value
// objects. The aggregate owns the full lifecycle of a physical handover task:
// creation, courier assignment, the guarded forward-only status machine, and
// the verified completion that captures a signature and satisfaction rating.
//
// Key invariants enforced by the aggregate:
//   - The status history is append-only, never empty, and its last entry
//     always matches the current status.
//   - The verification code is generated once at creation and never changes.
//   - A courier is assigned exactly once; every status past PendingAssignment
//     has a courier.
//   - Handover proof exists if and only if the delivery reached Delivered.
//
// All state changes go through aggregate methods; direct struct construction
// is blocked by the constructor guard.
package delivery
