// Package services provides domain services that orchestrate business operations
// across the delivery aggregate. It implements workflows that don't naturally
// belong to a single value object.
//
// The package includes:
//   - HandoverVerifier: validates the customer's one-time code and builds the
//     handover proof that gates the terminal status transition
package services
