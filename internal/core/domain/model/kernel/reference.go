package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"nexaci/internal/pkg/errs"
)

// EntityKind discriminates the two fulfillment workflows.
type EntityKind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown EntityKind = iota

	// KindShipment is a physical parcel shipment.
	KindShipment

	// KindMandate is an administrative-document mandate.
	KindMandate
)

func getEntityKindStrings() map[EntityKind]string {
	return map[EntityKind]string{
		KindShipment: "shipment",
		KindMandate:  "mandate",
	}
}

func getEntityKindPrefixes() map[EntityKind]string {
	return map[EntityKind]string{
		KindShipment: "CLS",
		KindMandate:  "MND",
	}
}

// String returns "shipment", "mandate", or "unknown".
func (k EntityKind) String() string {
	if s, ok := getEntityKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Prefix returns the reference prefix of the kind (CLS or MND).
func (k EntityKind) Prefix() string {
	return getEntityKindPrefixes()[k]
}

// Validate checks that the kind is one of the known values.
func (k EntityKind) Validate() error {
	if _, ok := getEntityKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entity kind", fmt.Errorf("%d is not a valid entity kind", k))
	}
	return nil
}

// ParseEntityKind converts a kind name ("shipment", "mandate") to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	for kind, name := range getEntityKindStrings() {
		if name == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("entity kind", fmt.Errorf("%q is not a valid entity kind", s))
}

// maxReferenceSequence is the largest value the 6-digit sequence can carry.
const maxReferenceSequence = 999999

// referencePattern matches both reference forms: the canonical 6-digit
// sequence and the 13-digit epoch-millis fallback. Fallback references issued
// under write contention remain valid forever.
var referencePattern = regexp.MustCompile(`^(CLS|MND)-(\d{4})-(\d{6}|\d{13})$`)

// ErrReferenceIsNotConstructed indicates a Reference was not created via a factory function.
var ErrReferenceIsNotConstructed = errs.NewValueIsRequiredError(
	"Reference must be created via NewReference, FallbackReference, or ParseReference")

// Reference is the human-readable tracking identifier assigned exactly once
// at entity creation: "<PREFIX>-<YEAR>-<SEQ6>", e.g. "CLS-2026-000042".
//
// Sequence numbers are proposed from a counting query and are not atomic;
// uniqueness is arbitrated by the store's unique constraint with a bounded
// retry, falling back to "<PREFIX>-<YEAR>-<epoch-millis>" so reference
// assignment never blocks entity creation.
type Reference struct {
	value string
	kind  EntityKind
}

// NewReference formats a canonical reference for a kind, year and sequence number.
func NewReference(kind EntityKind, year int, seq int64) (Reference, error) {
	if err := kind.Validate(); err != nil {
		return Reference{}, err
	}
	if seq < 1 || seq > maxReferenceSequence {
		return Reference{}, errs.NewValueIsOutOfRangeError("reference sequence", seq, 1, maxReferenceSequence)
	}

	return Reference{
		value: fmt.Sprintf("%s-%04d-%06d", kind.Prefix(), year, seq),
		kind:  kind,
	}, nil
}

// FallbackReference formats the guaranteed-unique timestamp reference used
// when sequence proposal keeps colliding or the counting query fails.
func FallbackReference(kind EntityKind, now time.Time) (Reference, error) {
	if err := kind.Validate(); err != nil {
		return Reference{}, err
	}

	return Reference{
		value: fmt.Sprintf("%s-%04d-%d", kind.Prefix(), now.Year(), now.UnixMilli()),
		kind:  kind,
	}, nil
}

// ParseReference validates and rebuilds a reference from its string form.
// Both the canonical and the fallback forms are accepted.
func ParseReference(s string) (Reference, error) {
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, errs.NewValueIsInvalidErrorWithCause("reference", fmt.Errorf("%q does not match the reference format", s))
	}

	var kind EntityKind
	for k, prefix := range getEntityKindPrefixes() {
		if prefix == m[1] {
			kind = k
		}
	}

	return Reference{value: s, kind: kind}, nil
}

// String returns the reference in its wire form.
func (r Reference) String() string {
	return r.value
}

// Kind returns the entity kind encoded in the prefix.
func (r Reference) Kind() EntityKind {
	return r.kind
}

// Year returns the 4-digit creation year encoded in the reference.
func (r Reference) Year() int {
	m := referencePattern.FindStringSubmatch(r.value)
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[2])
	return year
}

// IsFallback reports whether the reference carries the epoch-millis fallback
// sequence instead of the 6-digit counter one.
func (r Reference) IsFallback() bool {
	m := referencePattern.FindStringSubmatch(r.value)
	return m != nil && len(m[3]) != 6
}

// IsEqual reports whether two references hold the same value.
func (r Reference) IsEqual(other Reference) bool {
	return r.value == other.value
}

// Validate returns ErrReferenceIsNotConstructed for the zero value.
func (r Reference) Validate() error {
	if r.value == "" {
		return ErrReferenceIsNotConstructed
	}
	return nil
}
