package mandate

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

// ErrMandateIsNotConstructed is returned when a Mandate instance was not
// created through NewMandate or RestoreMandate.
var ErrMandateIsNotConstructed = errors.New("Mandate must be created via NewMandate or RestoreMandate")

// Mandate is an administrative-procedure aggregate tracked from registration
// to a terminal delivered/canceled/failed state.
//
// Invariants match the shipment aggregate: single immutable reference,
// status moves only along the transition graph under role gating, history is
// append-only and non-empty, agent binding goes through manager/admin actors.
type Mandate struct {
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

// NewMandate registers a mandate in pending status and seeds the history
// ledger with a system entry carrying the initial status.
func NewMandate(
	id kernel.UUID,
	reference kernel.Reference,
	originatingParty kernel.UUID,
	ownerAgency *kernel.UUID,
	now time.Time,
) (*Mandate, error) {
	m := &Mandate{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setReference(reference),
		m.setOriginatingParty(originatingParty),
		m.setOwnerAgency(ownerAgency),
	); err != nil {
		return nil, err
	}

	seed, err := lifecycle.NewSystemHistoryEntry(StatusPending.String(), "mandate registered", now, nil)
	if err != nil {
		return nil, err
	}

	m.history = []lifecycle.HistoryEntry{seed}
	m.createdAt = now
	m.updatedAt = now
	return m, nil
}

// RestoreMandate rebuilds the aggregate from persistence.
func RestoreMandate(
	id kernel.UUID,
	reference kernel.Reference,
	status Status,
	originatingParty kernel.UUID,
	assignedAgent *kernel.UUID,
	ownerAgency *kernel.UUID,
	history []lifecycle.HistoryEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Mandate, error) {
	m := &Mandate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setReference(reference),
		m.setStatus(status),
		m.setOriginatingParty(originatingParty),
		m.setOwnerAgency(ownerAgency),
	); err != nil {
		return nil, err
	}

	if assignedAgent != nil {
		if err := assignedAgent.Validate(); err != nil {
			return nil, err
		}
		agent := *assignedAgent
		m.assignedAgent = &agent
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}

	m.history = append([]lifecycle.HistoryEntry(nil), history...)
	m.createdAt = createdAt
	m.updatedAt = updatedAt
	return m, nil
}

// Validate ensures the mandate was created through a constructor.
func (m *Mandate) Validate() error {
	if m == nil {
		return ErrMandateIsNotConstructed
	}
	return m.guard.Validate(ErrMandateIsNotConstructed)
}

// ID returns the mandate identifier.
func (m *Mandate) ID() kernel.UUID {
	return m.id
}

// Reference returns the immutable tracking reference.
func (m *Mandate) Reference() kernel.Reference {
	return m.reference
}

// Status returns the current lifecycle status.
func (m *Mandate) Status() Status {
	return m.status
}

// OriginatingParty returns the requesting client's identifier.
func (m *Mandate) OriginatingParty() kernel.UUID {
	return m.originatingParty
}

// AssignedAgent returns the handling agent's identifier, or nil before assignment.
func (m *Mandate) AssignedAgent() *kernel.UUID {
	if m.assignedAgent == nil {
		return nil
	}
	agent := *m.assignedAgent
	return &agent
}

// OwnerAgency returns the scoping agency, or nil for agency-less mandates.
func (m *Mandate) OwnerAgency() *kernel.UUID {
	if m.ownerAgency == nil {
		return nil
	}
	agency := *m.ownerAgency
	return &agency
}

// History returns a copy of the audit ledger in insertion order.
func (m *Mandate) History() []lifecycle.HistoryEntry {
	return append([]lifecycle.HistoryEntry(nil), m.history...)
}

// CreatedAt returns the creation timestamp.
func (m *Mandate) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (m *Mandate) UpdatedAt() time.Time {
	return m.updatedAt
}

// TransitionTo moves the mandate along one edge of the graph on behalf of an
// actor, appending one history entry in the same mutation.
//
// Checks, in order: edge legality (IllegalTransition), agent presence for
// edges that need one (NotAssigned), actor authorization for the edge
// (Unauthorized).
func (m *Mandate) TransitionTo(
	requested Status,
	actor *account.Account,
	description string,
	details map[string]any,
	now time.Time,
) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	rule, ok := m.status.RuleFor(requested)
	if !ok {
		return lifecycle.NewIllegalTransitionError(kernel.KindMandate.String(), m.status.String(), requested.String())
	}

	action := fmt.Sprintf("move mandate from %s to %s", m.status, requested)
	if rule.RequiresAgent && m.assignedAgent == nil {
		return lifecycle.NewNotAssignedError(action)
	}
	if err := lifecycle.Authorize(rule, m, actor, action); err != nil {
		return err
	}

	actorID := actor.ID()
	entry, err := lifecycle.NewHistoryEntry(requested.String(), description, now, &actorID, details)
	if err != nil {
		return err
	}

	m.status = requested
	m.history = append(m.history, entry)
	m.updatedAt = now
	return nil
}

// Assign binds a handling agent to the mandate. Only managers of the owner
// agency and admins may assign; the agent must hold the courier role and
// belong to the owner agency when the mandate is agency-scoped.
//
// Assignment never changes the status. Rebinding an already assigned agent
// appends an informational history entry naming the prior and new agents.
func (m *Mandate) Assign(agent *account.Account, actor *account.Account, now time.Time) error {
	if m.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot assign an agent to a %s mandate", m.status))
	}

	if err := lifecycle.AuthorizeAssignment(m, actor); err != nil {
		return err
	}
	if err := lifecycle.CheckAgentEligibility(m, agent); err != nil {
		return err
	}

	if m.assignedAgent != nil && !m.assignedAgent.IsEqual(agent.ID()) {
		actorID := actor.ID()
		entry, err := lifecycle.NewHistoryEntry(
			m.status.String(),
			fmt.Sprintf("agent reassigned from %s to %s", m.assignedAgent, agent.ID()),
			now,
			&actorID,
			nil,
		)
		if err != nil {
			return err
		}
		m.history = append(m.history, entry)
	}

	agentID := agent.ID()
	m.assignedAgent = &agentID
	m.updatedAt = now
	return nil
}

func (m *Mandate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Mandate) setReference(reference kernel.Reference) error {
	if err := reference.Validate(); err != nil {
		return err
	}
	if reference.Kind() != kernel.KindMandate {
		return errs.NewValueIsInvalidErrorWithCause("reference",
			fmt.Errorf("%s is not a mandate reference", reference))
	}
	m.reference = reference
	return nil
}

func (m *Mandate) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}

func (m *Mandate) setOriginatingParty(party kernel.UUID) error {
	if err := party.Validate(); err != nil {
		return err
	}
	m.originatingParty = party
	return nil
}

func (m *Mandate) setOwnerAgency(agency *kernel.UUID) error {
	if agency == nil {
		return nil
	}
	if err := agency.Validate(); err != nil {
		return err
	}
	a := *agency
	m.ownerAgency = &a
	return nil
}
