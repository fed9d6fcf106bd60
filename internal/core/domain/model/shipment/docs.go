// Package shipment contains the parcel shipment aggregate: a closed status
// enumeration, the transition adjacency table with per-edge role policy, and
// the aggregate root enforcing reference immutability, append-only history,
// and assignment rules.
package shipment
