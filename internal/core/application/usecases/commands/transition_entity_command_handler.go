package commands

import (
	"context"
	"time"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/mandate"
	"nexaci/internal/core/domain/model/shipment"
)

// TransitionEntityCommandHandler applies one lifecycle transition to a
// shipment or mandate. The status-guarded update turns two racing transitions
// into one winner and one concurrent-modification error instead of a silent
// double append.
type TransitionEntityCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionEntityCommandHandler creates a handler for lifecycle transitions.
func NewTransitionEntityCommandHandler(uowFactory UoWFactory) TransitionEntityCommandHandler {
	return TransitionEntityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command. The status change and its history
// entry persist in the same transaction.
func (h TransitionEntityCommandHandler) Handle(ctx context.Context, cmd TransitionEntityCommand) error {
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

	actor, err := uow.AccountRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	switch cmd.Kind() {
	case kernel.KindShipment:
		err = h.transitionShipment(ctx, uow, cmd, actor, now)
	case kernel.KindMandate:
		err = h.transitionMandate(ctx, uow, cmd, actor, now)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h TransitionEntityCommandHandler) transitionShipment(
	ctx context.Context,
	uow UoW,
	cmd TransitionEntityCommand,
	actor *account.Account,
	now time.Time,
) error {
	requested, err := shipment.ParseStatus(cmd.Status())
	if err != nil {
		return err
	}

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, cmd.EntityID())
	if err != nil {
		return err
	}

	loadedStatus := aggregate.Status()
	if err = aggregate.TransitionTo(requested, actor, cmd.Description(), cmd.Details(), now); err != nil {
		return err
	}

	return repo.Update(ctx, aggregate, loadedStatus)
}

func (h TransitionEntityCommandHandler) transitionMandate(
	ctx context.Context,
	uow UoW,
	cmd TransitionEntityCommand,
	actor *account.Account,
	now time.Time,
) error {
	requested, err := mandate.ParseStatus(cmd.Status())
	if err != nil {
		return err
	}

	repo := uow.MandateRepository()
	aggregate, err := repo.Get(ctx, cmd.EntityID())
	if err != nil {
		return err
	}

	loadedStatus := aggregate.Status()
	if err = aggregate.TransitionTo(requested, actor, cmd.Description(), cmd.Details(), now); err != nil {
		return err
	}

	return repo.Update(ctx, aggregate, loadedStatus)
}
