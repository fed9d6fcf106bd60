// Package lifecycle holds the vocabulary shared by the shipment and mandate
// aggregates: the append-only history entry, the per-edge authorization rule
// evaluated against an actor, and the domain error taxonomy of the
// fulfillment lifecycle (illegal transition, unauthorized, not assigned,
// agent not eligible, concurrent modification).
//
// Each aggregate keeps its own closed status enumeration and adjacency table;
// this package only evaluates a single declared edge against the acting
// party, so the role policy for every edge is written once, in the table,
// instead of being re-derived at call sites.
package lifecycle
