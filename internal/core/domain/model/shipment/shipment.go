package shipment

import (
	"errors"
	"fmt"
	"time"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/pkg/errs"
	"nexaci/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment is a parcel fulfillment aggregate tracked from registration to a
// terminal delivered/canceled state.
//
// Invariants:
//   - The reference is assigned exactly once, at creation.
//   - The status is always one of the shipment enumeration and only moves
//     along the transition graph, gated by the acting party's role.
//   - The history ledger is non-empty from creation on and is append-only;
//     every transition appends exactly one entry in the same mutation.
//   - The assigned agent is only set or replaced by manager/admin actors.
type Shipment struct {
	id               kernel.UUID
	reference        kernel.Reference
	status           Status
	originatingParty kernel.UUID
	assignedAgent    *kernel.UUID
	ownerAgency      *kernel.UUID
	history          []lifecycle.HistoryEntry
	createdAt        time.Time
	updatedAt        time.Time

	guard guard.ConstructorGuard
}

// NewShipment registers a shipment in pending status and seeds the history
// ledger with a system entry carrying the initial status.
func NewShipment(
	id kernel.UUID,
	reference kernel.Reference,
	originatingParty kernel.UUID,
	ownerAgency *kernel.UUID,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setReference(reference),
		s.setOriginatingParty(originatingParty),
		s.setOwnerAgency(ownerAgency),
	); err != nil {
		return nil, err
	}

	seed, err := lifecycle.NewSystemHistoryEntry(StatusPending.String(), "shipment registered", now, nil)
	if err != nil {
		return nil, err
	}

	s.history = []lifecycle.HistoryEntry{seed}
	s.createdAt = now
	s.updatedAt = now
	return s, nil
}

// RestoreShipment rebuilds the aggregate from persistence.
func RestoreShipment(
	id kernel.UUID,
	reference kernel.Reference,
	status Status,
	originatingParty kernel.UUID,
	assignedAgent *kernel.UUID,
	ownerAgency *kernel.UUID,
	history []lifecycle.HistoryEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setReference(reference),
		s.setStatus(status),
		s.setOriginatingParty(originatingParty),
		s.setOwnerAgency(ownerAgency),
	); err != nil {
		return nil, err
	}

	if assignedAgent != nil {
		if err := assignedAgent.Validate(); err != nil {
			return nil, err
		}
		agent := *assignedAgent
		s.assignedAgent = &agent
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}

	s.history = append([]lifecycle.HistoryEntry(nil), history...)
	s.createdAt = createdAt
	s.updatedAt = updatedAt
	return s, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Reference returns the immutable tracking reference.
func (s *Shipment) Reference() kernel.Reference {
	return s.reference
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// OriginatingParty returns the requesting client's identifier.
func (s *Shipment) OriginatingParty() kernel.UUID {
	return s.originatingParty
}

// AssignedAgent returns the fulfillment agent's identifier, or nil before assignment.
func (s *Shipment) AssignedAgent() *kernel.UUID {
	if s.assignedAgent == nil {
		return nil
	}
	agent := *s.assignedAgent
	return &agent
}

// OwnerAgency returns the scoping agency, or nil for agency-less shipments.
func (s *Shipment) OwnerAgency() *kernel.UUID {
	if s.ownerAgency == nil {
		return nil
	}
	agency := *s.ownerAgency
	return &agency
}

// History returns a copy of the audit ledger in insertion order.
func (s *Shipment) History() []lifecycle.HistoryEntry {
	return append([]lifecycle.HistoryEntry(nil), s.history...)
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// TransitionTo moves the shipment along one edge of the graph on behalf of
// an actor, appending one history entry in the same mutation.
//
// Checks, in order: edge legality (IllegalTransition), agent presence for
// edges that need one (NotAssigned), actor authorization for the edge
// (Unauthorized).
func (s *Shipment) TransitionTo(
	requested Status,
	actor *account.Account,
	description string,
	details map[string]any,
	now time.Time,
) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	rule, ok := s.status.RuleFor(requested)
	if !ok {
		return lifecycle.NewIllegalTransitionError(kernel.KindShipment.String(), s.status.String(), requested.String())
	}

	action := fmt.Sprintf("move shipment from %s to %s", s.status, requested)
	if rule.RequiresAgent && s.assignedAgent == nil {
		return lifecycle.NewNotAssignedError(action)
	}
	if err := lifecycle.Authorize(rule, s, actor, action); err != nil {
		return err
	}

	actorID := actor.ID()
	entry, err := lifecycle.NewHistoryEntry(requested.String(), description, now, &actorID, details)
	if err != nil {
		return err
	}

	s.status = requested
	s.history = append(s.history, entry)
	s.updatedAt = now
	return nil
}

// Assign binds a fulfillment agent to the shipment. Only managers of the
// owner agency and admins may assign; the agent must hold the courier role
// and belong to the owner agency when the shipment is agency-scoped.
//
// Assignment never changes the status. Rebinding an already assigned agent
// appends an informational history entry naming the prior and new agents.
func (s *Shipment) Assign(agent *account.Account, actor *account.Account, now time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot assign an agent to a %s shipment", s.status))
	}

	if err := lifecycle.AuthorizeAssignment(s, actor); err != nil {
		return err
	}
	if err := lifecycle.CheckAgentEligibility(s, agent); err != nil {
		return err
	}

	if s.assignedAgent != nil && !s.assignedAgent.IsEqual(agent.ID()) {
		actorID := actor.ID()
		entry, err := lifecycle.NewHistoryEntry(
			s.status.String(),
			fmt.Sprintf("agent reassigned from %s to %s", s.assignedAgent, agent.ID()),
			now,
			&actorID,
			nil,
		)
		if err != nil {
			return err
		}
		s.history = append(s.history, entry)
	}

	agentID := agent.ID()
	s.assignedAgent = &agentID
	s.updatedAt = now
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setReference(reference kernel.Reference) error {
	if err := reference.Validate(); err != nil {
		return err
	}
	if reference.Kind() != kernel.KindShipment {
		return errs.NewValueIsInvalidErrorWithCause("reference",
			fmt.Errorf("%s is not a shipment reference", reference))
	}
	s.reference = reference
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setOriginatingParty(party kernel.UUID) error {
	if err := party.Validate(); err != nil {
		return err
	}
	s.originatingParty = party
	return nil
}

func (s *Shipment) setOwnerAgency(agency *kernel.UUID) error {
	if agency == nil {
		return nil
	}
	if err := agency.Validate(); err != nil {
		return err
	}
	a := *agency
	s.ownerAgency = &a
	return nil
}
