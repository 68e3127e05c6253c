package commands

import (
	"context"

	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentMethodCommands interface {
	SetDefault(ctx context.Context, userID, paymentMethodID uuid.UUID) error
}

type paymentMethodUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewPaymentMethodUseCase(uow shared.UnitOfWork) PaymentMethodCommands {
	return &paymentMethodUseCaseImpl{uow: uow}
}

func (uc *paymentMethodUseCaseImpl) SetDefault(ctx context.Context, userID, paymentMethodID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.PaymentMethods().SetDefault(ctx, tx.DB(), userID, paymentMethodID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPaymentMethodNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
