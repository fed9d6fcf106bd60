package commands

import (
	"context"
	"time"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
)

// AssignAgentCommandHandler binds fulfillment agents to entities. The
// aggregate enforces who may assign and who is eligible; this handler only
// loads the parties and persists the result.
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(uowFactory UoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accounts := uow.AccountRepository()
	actor, err := accounts.Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	agent, err := accounts.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	switch cmd.Kind() {
	case kernel.KindShipment:
		err = h.assignShipment(ctx, uow, cmd.EntityID(), agent, actor, now)
	case kernel.KindMandate:
		err = h.assignMandate(ctx, uow, cmd.EntityID(), agent, actor, now)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignAgentCommandHandler) assignShipment(
	ctx context.Context,
	uow UoW,
	entityID kernel.UUID,
	agent, actor *account.Account,
	now time.Time,
) error {
	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, entityID)
	if err != nil {
		return err
	}

	loadedStatus := aggregate.Status()
	if err = aggregate.Assign(agent, actor, now); err != nil {
		return err
	}

	return repo.Update(ctx, aggregate, loadedStatus)
}

func (h AssignAgentCommandHandler) assignMandate(
	ctx context.Context,
	uow UoW,
	entityID kernel.UUID,
	agent, actor *account.Account,
	now time.Time,
) error {
	repo := uow.MandateRepository()
	aggregate, err := repo.Get(ctx, entityID)
	if err != nil {
		return err
	}

	loadedStatus := aggregate.Status()
	if err = aggregate.Assign(agent, actor, now); err != nil {
		return err
	}

	return repo.Update(ctx, aggregate, loadedStatus)
}
