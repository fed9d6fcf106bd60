package kernel

import (
	"strings"

	"nexaci/internal/pkg/errs"
)

// PhoneCountryCode is the international dialing code of the national
// numbering plan the platform operates in (Côte d'Ivoire).
const PhoneCountryCode = "225"

// localPhoneDigits is the length of a full local subscriber number.
const localPhoneDigits = 10

// ErrPhoneIsNotConstructed indicates a Phone was not created via NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("Phone must be created via NewPhone")

// Phone is a value object holding the canonical form of a phone number.
//
// The canonical form is "+<CC><10-digit-local>". Input that cannot be
// normalized (fewer than ten digits after cleaning) is kept cleaned but
// unnormalized rather than guessed at, so ambiguous data is never corrupted.
// Stored records always hold the canonical form; the variant set exists only
// to match historical records written before normalization was enforced.
type Phone struct {
	value     string
	canonical bool
}

// NewPhone cleans and normalizes a raw phone input.
// Returns an error only when no digits survive cleaning.
func NewPhone(raw string) (Phone, error) {
	cleaned := cleanPhone(raw)
	if countDigits(cleaned) == 0 {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	normalized, ok := normalizePhone(cleaned)
	return Phone{value: normalized, canonical: ok}, nil
}

// NormalizePhone returns the canonical form of a raw phone input, or the
// cleaned input unchanged when it holds fewer than ten digits.
// Idempotent: NormalizePhone(NormalizePhone(x)) == NormalizePhone(x).
func NormalizePhone(raw string) string {
	normalized, _ := normalizePhone(cleanPhone(raw))
	return normalized
}

// PhoneVariants returns the deterministic superset of plausible stored forms
// of a raw phone input: the cleaned input, the bare local forms with and
// without the leading zero, and the country-prefixed forms with and without
// the plus sign. The set always contains NormalizePhone(raw). It is used
// exclusively for lookup queries, never for storage.
func PhoneVariants(raw string) []string {
	cleaned := cleanPhone(raw)
	digits := digitsOf(cleaned)

	variants := make([]string, 0, 6)
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	add(cleaned)
	add(digits)

	if len(digits) < localPhoneDigits {
		return variants
	}

	local := digits[len(digits)-localPhoneDigits:]
	last9 := local[1:]

	add(local)
	add(last9)
	add("0" + last9)
	add("+" + PhoneCountryCode + local)
	add(PhoneCountryCode + local)

	return variants
}

// String returns the stored form: canonical when normalization succeeded,
// otherwise the cleaned input.
func (p Phone) String() string {
	return p.value
}

// IsCanonical reports whether the stored form is the "+<CC>..." canonical one.
func (p Phone) IsCanonical() bool {
	return p.canonical
}

// Variants returns the lookup variant set of the stored form.
func (p Phone) Variants() []string {
	return PhoneVariants(p.value)
}

// IsEqual reports whether two phones hold the same stored form.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}

// Validate returns ErrPhoneIsNotConstructed for the zero value.
func (p Phone) Validate() error {
	if p.value == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}

// RestorePhone rebuilds a Phone from its persisted form without
// re-normalizing, preserving historical values byte for byte.
func RestorePhone(stored string) (Phone, error) {
	if stored == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	_, canonical := normalizePhone(stored)
	return Phone{value: stored, canonical: canonical && strings.HasPrefix(stored, "+")}, nil
}

func cleanPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '\t', '-', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countDigits(s string) int {
	return len(digitsOf(s))
}

// normalizePhone canonicalizes a cleaned input. The second return value
// reports whether a canonical form was produced.
func normalizePhone(cleaned string) (string, bool) {
	digits := digitsOf(cleaned)
	if len(digits) < localPhoneDigits {
		return cleaned, false
	}

	local := digits[len(digits)-localPhoneDigits:]
	return "+" + PhoneCountryCode + local, true
}
