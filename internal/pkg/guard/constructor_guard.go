// Package guard provides a defensive-construction primitive for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so aggregates and commands can insist on their factory
// constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object went through a
// constructor. The zero value fails validation.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it inside the object's factory constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns notConstructedErr, or ErrDefaultConstructorGuard when nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}
