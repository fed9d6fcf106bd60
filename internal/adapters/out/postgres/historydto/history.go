// Package historydto maps the audit history ledger to its JSONB column form,
// shared by the shipment and mandate repositories.
package historydto

import (
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"

	"github.com/google/uuid"
)

// Entry is the JSON shape of one audit ledger record. The ledger is stored as
// an ordered JSONB array on the owning row so that status change and history
// append commit atomically.
type Entry struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
	ActorID     *uuid.UUID     `json:"actorId,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// FromDomain converts a history ledger to its column form, preserving order.
func FromDomain(history []lifecycle.HistoryEntry) []Entry {
	entries := make([]Entry, 0, len(history))
	for _, h := range history {
		var actorID *uuid.UUID
		if id := h.ActorID(); id != nil {
			raw := id.Bytes()
			actorID = &raw
		}

		entries = append(entries, Entry{
			Status:      h.Status(),
			Description: h.Description(),
			OccurredAt:  h.OccurredAt(),
			ActorID:     actorID,
			Details:     h.Details(),
		})
	}
	return entries
}

// ToDomain converts a column form ledger back to domain entries, preserving order.
func ToDomain(entries []Entry) ([]lifecycle.HistoryEntry, error) {
	history := make([]lifecycle.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		var actorID *kernel.UUID
		if e.ActorID != nil {
			id, err := kernel.UUIDFromBytes((*e.ActorID)[:])
			if err != nil {
				return nil, err
			}
			actorID = &id
		}

		entry, err := lifecycle.NewHistoryEntry(e.Status, e.Description, e.OccurredAt, actorID, e.Details)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, nil
}
