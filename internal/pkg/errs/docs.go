// Package errs provides the standardized error types of the fulfillment
// platform. Every failure a caller is expected to branch on is expressed
// through one of these types, so classification happens with errors.Is
// instead of string matching.
//
// The package covers the generic failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value does not satisfy its format or rules
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: a referenced object does not exist
//   - ObjectAlreadyExistsError: a uniqueness constraint was violated
//
// Each error type follows the same pattern: a sentinel variable (for example
// ErrValueIsRequired), a struct carrying the details, constructors with and
// without an underlying cause, an Error() formatting method, and an Unwrap()
// that returns the sentinel so wrapped errors still classify correctly.
//
// Domain-specific failures (illegal transitions, authorization, concurrent
// modification) live in the lifecycle package and follow the same pattern.
package errs
