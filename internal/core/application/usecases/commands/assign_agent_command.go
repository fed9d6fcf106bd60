package commands

import (
	"errors"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents a request to bind a fulfillment agent to a
// shipment or mandate on behalf of a manager or admin actor.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	kind     kernel.EntityKind
	entityID kernel.UUID
	agentID  kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign an agent to an entity.
func NewAssignAgentCommand(
	kind kernel.EntityKind,
	entityID, agentID, actorID kernel.UUID,
) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setEntityID(entityID),
		cmd.setAgentID(agentID),
		cmd.setActorID(actorID),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// Kind returns the entity kind the assignment targets.
func (c AssignAgentCommand) Kind() kernel.EntityKind {
	return c.kind
}

// EntityID returns the target entity's identifier.
func (c AssignAgentCommand) EntityID() kernel.UUID {
	return c.entityID
}

// AgentID returns the proposed agent's identifier.
func (c AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ActorID returns the acting account's identifier.
func (c AssignAgentCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AssignAgentCommand) setKind(kind kernel.EntityKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *AssignAgentCommand) setEntityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entityID = id
	return nil
}

func (c *AssignAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.agentID = id
	return nil
}

func (c *AssignAgentCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
