package commands

import (
	"errors"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"
	"nexaci/internal/pkg/guard"
)

var ErrTransitionEntityCommandIsNotConstructed = errors.New(
	"TransitionEntityCommand must be created via NewTransitionEntityCommand constructor",
)

// TransitionEntityCommand represents a request to move a shipment or mandate
// to a new lifecycle status on behalf of an acting account. The status is
// carried in wire form and parsed against the entity kind's own enumeration
// by the handler.
type TransitionEntityCommand struct { //nolint:recvcheck //using for validation
	kind        kernel.EntityKind
	entityID    kernel.UUID
	status      string
	actorID     kernel.UUID
	description string
	details     map[string]any

	guard guard.ConstructorGuard
}

// NewTransitionEntityCommand creates a command to transition an entity.
// Description and details are optional audit payload.
func NewTransitionEntityCommand(
	kind kernel.EntityKind,
	entityID kernel.UUID,
	status string,
	actorID kernel.UUID,
	description string,
	details map[string]any,
) (TransitionEntityCommand, error) {
	cmd := TransitionEntityCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setEntityID(entityID),
		cmd.setStatus(status),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionEntityCommand{}, err
	}

	if details != nil {
		cp := make(map[string]any, len(details))
		for k, v := range details {
			cp[k] = v
		}
		cmd.details = cp
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionEntityCommand) Validate() error {
	return c.guard.Validate(ErrTransitionEntityCommandIsNotConstructed)
}

// Kind returns the entity kind the transition targets.
func (c TransitionEntityCommand) Kind() kernel.EntityKind {
	return c.kind
}

// EntityID returns the target entity's identifier.
func (c TransitionEntityCommand) EntityID() kernel.UUID {
	return c.entityID
}

// Status returns the requested status in wire form.
func (c TransitionEntityCommand) Status() string {
	return c.status
}

// ActorID returns the acting account's identifier.
func (c TransitionEntityCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Description returns the optional audit description.
func (c TransitionEntityCommand) Description() string {
	return c.description
}

// Details returns the optional structured audit payload.
func (c TransitionEntityCommand) Details() map[string]any {
	return c.details
}

func (c *TransitionEntityCommand) setKind(kind kernel.EntityKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *TransitionEntityCommand) setEntityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entityID = id
	return nil
}

func (c *TransitionEntityCommand) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.status = status
	return nil
}

func (c *TransitionEntityCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
