package queries

import (
	"context"
	"encoding/json"
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/mandate"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackEntityQueryHandler serves the public tracking endpoint straight from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the row to read lives in the table named by the reference prefix.
type TrackEntityQueryHandler struct {
	db *gorm.DB
}

// NewTrackEntityQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackEntityQueryHandler(db *gorm.DB) TrackEntityQueryHandler {
	return TrackEntityQueryHandler{db: db}
}

// ledgerEntry is the JSONB shape of one audit record as the repositories
// persist it.
type ledgerEntry struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
	ActorID     *uuid.UUID     `json:"actorId,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// Handle resolves the reference to its tracking view.
// Returns errs.ErrObjectNotFound when no entity carries the reference.
func (h TrackEntityQueryHandler) Handle(
	ctx context.Context,
	query TrackEntityQuery,
) (TrackEntityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackEntityQueryResponse{}, err
	}

	var table string
	switch query.Reference().Kind() {
	case kernel.KindShipment:
		table = "shipments"
	case kernel.KindMandate:
		table = "mandates"
	default:
		return TrackEntityQueryResponse{}, errs.NewValueIsInvalidError("reference kind")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			assigned_agent_id,
			history,
			created_at,
			updated_at
		FROM `+table+`
		WHERE reference = ?
	`, query.Reference().String()).Rows()
	if err != nil {
		return TrackEntityQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackEntityQueryResponse{}, err
		}
		return TrackEntityQueryResponse{}, errs.NewObjectNotFoundError(
			query.Reference().Kind().String(), query.Reference().String())
	}

	var (
		id        uuid.UUID
		status    int
		agent     uuid.NullUUID
		rawLedger []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err = rows.Scan(&id, &status, &agent, &rawLedger, &createdAt, &updatedAt); err != nil {
		return TrackEntityQueryResponse{}, err
	}

	response := TrackEntityQueryResponse{
		Reference: query.Reference().String(),
		Kind:      query.Reference().Kind().String(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackEntityQueryResponse{}, err
	}

	if agent.Valid {
		agentID, idErr := kernel.UUIDFromBytes(agent.UUID[:])
		if idErr != nil {
			return TrackEntityQueryResponse{}, idErr
		}
		response.AssignedAgentID = &agentID
	}

	switch query.Reference().Kind() {
	case kernel.KindShipment:
		response.Status = shipment.Status(status).String()
	case kernel.KindMandate:
		response.Status = mandate.Status(status).String()
	}

	response.History, err = unmarshalLedger(rawLedger)
	if err != nil {
		return TrackEntityQueryResponse{}, err
	}

	return response, nil
}

func unmarshalLedger(raw []byte) ([]TrackEntityHistoryEntry, error) {
	if len(raw) == 0 {
		return []TrackEntityHistoryEntry{}, nil
	}

	var entries []ledgerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	history := make([]TrackEntityHistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry := TrackEntityHistoryEntry{
			Status:      e.Status,
			Description: e.Description,
			OccurredAt:  e.OccurredAt,
			Details:     e.Details,
		}
		if e.ActorID != nil {
			actorID, err := kernel.UUIDFromBytes((*e.ActorID)[:])
			if err != nil {
				return nil, err
			}
			entry.ActorID = &actorID
		}
		history = append(history, entry)
	}
	return history, nil
}
