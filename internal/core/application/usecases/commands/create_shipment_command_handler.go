package commands

import (
	"context"
	"errors"
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/pkg/errs"
)

// maxReferenceAttempts bounds the count-then-assign retry loop. Sequence
// proposal is a plain count, so two concurrent creations can propose the same
// number; the unique index rejects the loser, who retries with a fresh count.
const maxReferenceAttempts = 5

// CreateShipmentCommandHandler registers shipments and allocates their
// tracking references. When the retry budget is spent, or the counting query
// itself fails, the handler falls back to the epoch-millis reference so
// creation never blocks on reference contention.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment creation command and returns the assigned
// tracking reference.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (kernel.Reference, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Reference{}, err
	}

	now := time.Now().UTC()

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		seq, err := h.uowFactory.Create().ShipmentRepository().NextSequence(ctx, now.Year())
		if err != nil {
			break
		}

		ref, err := kernel.NewReference(kernel.KindShipment, now.Year(), int64(seq))
		if err != nil {
			break
		}

		err = h.create(ctx, cmd, ref, now)
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			continue
		}
		if err != nil {
			return kernel.Reference{}, err
		}
		return ref, nil
	}

	ref, err := kernel.FallbackReference(kernel.KindShipment, now)
	if err != nil {
		return kernel.Reference{}, err
	}

	if err = h.create(ctx, cmd, ref, now); err != nil {
		return kernel.Reference{}, err
	}
	return ref, nil
}

// create runs one registration attempt in its own transaction, so a rejected
// reference leaves nothing behind for the retry to trip over.
func (h CreateShipmentCommandHandler) create(
	ctx context.Context,
	cmd CreateShipmentCommand,
	ref kernel.Reference,
	now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.AccountRepository().Get(ctx, cmd.ClientID()); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), ref, cmd.ClientID(), cmd.AgencyID(), now)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
