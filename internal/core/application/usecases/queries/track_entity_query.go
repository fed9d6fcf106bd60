package queries

import (
	"errors"
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/guard"
)

var ErrTrackEntityQueryIsNotConstructed = errors.New(
	"TrackEntityQuery must be created via NewTrackEntityQuery constructor",
)

// TrackEntityQuery looks up the public tracking view of a shipment or mandate
// by its reference. The prefix of the reference decides which workflow is
// consulted, so callers never have to say which kind they are tracking.
//
// Example:
//
//	query, err := NewTrackEntityQuery("CLS-2026-000042")
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to track: %w", err)
//	}
//
//	fmt.Printf("%s is %s\n", view.Reference, view.Status)
type TrackEntityQuery struct {
	reference kernel.Reference

	guard guard.ConstructorGuard
}

// NewTrackEntityQuery creates a tracking query from the raw reference string.
// Both the canonical and the fallback reference forms are accepted.
func NewTrackEntityQuery(rawReference string) (TrackEntityQuery, error) {
	reference, err := kernel.ParseReference(rawReference)
	if err != nil {
		return TrackEntityQuery{}, err
	}

	return TrackEntityQuery{
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Reference returns the parsed tracking reference.
func (q TrackEntityQuery) Reference() kernel.Reference {
	return q.reference
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackEntityQueryIsNotConstructed if validation fails.
func (q TrackEntityQuery) Validate() error {
	return q.guard.Validate(ErrTrackEntityQueryIsNotConstructed)
}

// TrackEntityQueryResponse is the public tracking view of one entity.
// Statuses are reported in their wire form and the history ledger is returned
// in the order it was written.
type TrackEntityQueryResponse struct {
	ID              kernel.UUID
	Reference       string
	Kind            string
	Status          string
	AssignedAgentID *kernel.UUID
	History         []TrackEntityHistoryEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TrackEntityHistoryEntry is one audit ledger record of the tracking view.
type TrackEntityHistoryEntry struct {
	Status      string
	Description string
	OccurredAt  time.Time
	ActorID     *kernel.UUID
	Details     map[string]any
}
