package commands

import (
	"context"
	"errors"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/pkg/errs"
)

// RegisterAccountCommandHandler registers platform participants. A variant
// lookup runs before the insert so a number stored under a historical
// spelling is caught even though it would slip past the unique index on the
// canonical column.
type RegisterAccountCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewRegisterAccountCommandHandler creates a handler for account registration.
func NewRegisterAccountCommandHandler(uowFactory AccountUoWFactory) RegisterAccountCommandHandler {
	return RegisterAccountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the account registration command.
func (h RegisterAccountCommandHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) error {
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

	_, err := accounts.FindByPhone(ctx, cmd.Phone().Variants())
	if err == nil {
		return errs.NewObjectAlreadyExistsError("account", cmd.Phone().String())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if cmd.Email() != "" {
		_, err = accounts.FindByEmail(ctx, cmd.Email())
		if err == nil {
			return errs.NewObjectAlreadyExistsError("account", cmd.Email())
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
	}

	aggregate, err := account.NewAccount(
		cmd.AccountID(),
		cmd.Name(),
		cmd.Email(),
		cmd.Phone(),
		cmd.Role(),
		cmd.AgencyID(),
	)
	if err != nil {
		return err
	}

	if err = accounts.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
