// Package kernel contains the shared value objects of the domain model:
// identifiers (UUID), human-readable tracking references, and canonical
// phone identities.
//
// All types in this package are immutable value objects. Zero values are
// invalid and must be created through the provided factory functions, which
// enforce the construction invariants.
package kernel
