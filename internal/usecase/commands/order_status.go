package commands

import (
	"context"
	"log/slog"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/domain/user"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderCommands interface {
	// UpdateStatus moves an order one step along its lifecycle on behalf of store staff.
	UpdateStatus(ctx context.Context, actor user.Actor, orderID uuid.UUID, next order.Status) (*queries.OrderView, error)
}

type orderUseCaseImpl struct {
	uow    shared.UnitOfWork
	orders queries.OrderQueries
	clock  clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, orders queries.OrderQueries, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{uow: uow, orders: orders, clock: clk}
}

func (uc *orderUseCaseImpl) UpdateStatus(ctx context.Context, actor user.Actor, orderID uuid.UUID, next order.Status) (*queries.OrderView, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}

	var prev order.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrOrderNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !actor.CanOperateStore(o.StoreID()) {
			return ErrForbidden
		}

		prev = o.Status()
		if err := o.TransitionTo(next, uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), o.ID(), prev, o.Status(), o.UpdatedAt()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrOrderStatusConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order status changed",
		"order_id", orderID,
		"from", prev.String(),
		"to", next.String(),
		"actor_id", actor.UserID)

	return uc.orders.GetByIDSystem(ctx, orderID)
}
