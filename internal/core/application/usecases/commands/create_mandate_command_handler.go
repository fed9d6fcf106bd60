package commands

import (
	"context"
	"errors"
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/mandate"
	"nexaci/internal/pkg/errs"
)

// CreateMandateCommandHandler registers mandates with the same
// count-then-assign reference allocation as shipment creation.
type CreateMandateCommandHandler struct {
	uowFactory MandateUoWFactory
}

// NewCreateMandateCommandHandler creates a handler for mandate registration.
func NewCreateMandateCommandHandler(uowFactory MandateUoWFactory) CreateMandateCommandHandler {
	return CreateMandateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mandate creation command and returns the assigned
// tracking reference.
func (h CreateMandateCommandHandler) Handle(ctx context.Context, cmd CreateMandateCommand) (kernel.Reference, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Reference{}, err
	}

	now := time.Now().UTC()

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		seq, err := h.uowFactory.Create().MandateRepository().NextSequence(ctx, now.Year())
		if err != nil {
			break
		}

		ref, err := kernel.NewReference(kernel.KindMandate, now.Year(), int64(seq))
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

	ref, err := kernel.FallbackReference(kernel.KindMandate, now)
	if err != nil {
		return kernel.Reference{}, err
	}

	if err = h.create(ctx, cmd, ref, now); err != nil {
		return kernel.Reference{}, err
	}
	return ref, nil
}

func (h CreateMandateCommandHandler) create(
	ctx context.Context,
	cmd CreateMandateCommand,
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

	aggregate, err := mandate.NewMandate(cmd.MandateID(), ref, cmd.ClientID(), cmd.AgencyID(), now)
	if err != nil {
		return err
	}

	if err = uow.MandateRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
