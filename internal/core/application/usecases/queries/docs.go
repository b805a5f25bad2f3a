// Package queries contains the read side of the CQRS split: pure read-side
// queries over the delivery store using direct SQL for optimal read
// performance. Queries never mutate state; status-tab style filtering is a
// parameter of ListDeliveries, not shared mutable selection state.
package queries
