package lifecycle

import (
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"
)

// HistoryEntry is one immutable record of the audit ledger. Entries are
// appended in chronological order and never reordered or mutated; the first
// entry is seeded at entity creation with the initial status.
type HistoryEntry struct {
	status      string
	description string
	occurredAt  time.Time
	actorID     *kernel.UUID
	details     map[string]any
}

// NewHistoryEntry creates an audit record attributed to an actor.
// Details is an opaque structured payload (GPS coordinates, failure reason);
// it is copied so later mutation of the caller's map cannot alter the ledger.
func NewHistoryEntry(status, description string, occurredAt time.Time, actorID *kernel.UUID, details map[string]any) (HistoryEntry, error) {
	if status == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("status")
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	return HistoryEntry{
		status:      status,
		description: description,
		occurredAt:  occurredAt,
		actorID:     actorID,
		details:     copyDetails(details),
	}, nil
}

// NewSystemHistoryEntry creates an audit record with no acting party, for
// system-generated events such as the creation seed.
func NewSystemHistoryEntry(status, description string, occurredAt time.Time, details map[string]any) (HistoryEntry, error) {
	return NewHistoryEntry(status, description, occurredAt, nil, details)
}

// Status returns the entity status recorded at the time of entry.
func (h HistoryEntry) Status() string {
	return h.status
}

// Description returns the free-text description.
func (h HistoryEntry) Description() string {
	return h.description
}

// OccurredAt returns the entry timestamp.
func (h HistoryEntry) OccurredAt() time.Time {
	return h.occurredAt
}

// ActorID returns the identity that made the change, or nil for
// system-generated entries.
func (h HistoryEntry) ActorID() *kernel.UUID {
	return h.actorID
}

// Details returns a copy of the opaque payload, or nil when absent.
func (h HistoryEntry) Details() map[string]any {
	return copyDetails(h.details)
}

func copyDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	cp := make(map[string]any, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}
