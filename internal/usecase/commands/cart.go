package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/pkg/keylock"
	"store-pickup/internal/pkg/money"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartView struct {
	UserID    uuid.UUID
	StoreID   *uuid.UUID
	Lines     []cart.Line
	Totals    money.Totals
	UpdatedAt time.Time
	// products dropped because the newly selected store does not sell them
	Removed []uuid.UUID
}

type CartCommands interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	SelectStore(ctx context.Context, userID, storeID uuid.UUID) (*CartView, error)
	ClearStore(ctx context.Context, userID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)
	ChangeQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)
}

type cartUseCaseImpl struct {
	carts CartStore
	uow   shared.UnitOfWork
	deals queries.DealResolver
	locks *keylock.KeyedMutex[uuid.UUID]
	clock clock.Clock
}

func NewCartUseCase(
	carts CartStore,
	uow shared.UnitOfWork,
	deals queries.DealResolver,
	locks *keylock.KeyedMutex[uuid.UUID],
	clk clock.Clock,
) CartCommands {
	return &cartUseCaseImpl{
		carts: carts,
		uow:   uow,
		deals: deals,
		locks: locks,
		clock: clk,
	}
}

// GetCart prices the stored cart against today's deals without writing it back.
func (uc *cartUseCaseImpl) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	c, err := uc.carts.Load(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	applyDeals(ctx, uc.deals, c, uc.clock.Now())
	return newCartView(c), nil
}

// SelectStore attaches the cart to storeID and reprices every line at that
// store. Lines the store does not sell or has marked unavailable are removed.
func (uc *cartUseCaseImpl) SelectStore(ctx context.Context, userID, storeID uuid.UUID) (*CartView, error) {
	var removed []uuid.UUID
	view, err := uc.mutate(ctx, userID, func(ctx context.Context, c *cart.Cart) error {
		store, err := uc.uow.CommandReads().StoreByID(ctx, storeID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrStoreNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		c.SelectStore(*store)
		for _, line := range c.Lines() {
			p, err := uc.uow.CommandReads().StoreProduct(ctx, storeID, line.ProductID)
			switch {
			case infra.IsKind(err, infra.KindNotFound):
			case err != nil:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			case p.Available && p.Price != nil:
				if err := c.Reprice(line.ProductID, *p.Price); err != nil {
					return errs.Mark(err, ErrInvalidInput)
				}
				continue
			}
			c.RemoveItem(line.ProductID)
			removed = append(removed, line.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		slog.InfoContext(ctx, "removed lines not sold at selected store",
			"user_id", userID,
			"store_id", storeID,
			"removed", len(removed))
	}
	view.Removed = removed
	return view, nil
}

func (uc *cartUseCaseImpl) ClearStore(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	return uc.mutate(ctx, userID, func(_ context.Context, c *cart.Cart) error {
		if c.Store() != nil {
			c.ClearStore()
		}
		return nil
	})
}

func (uc *cartUseCaseImpl) AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	return uc.mutate(ctx, userID, func(ctx context.Context, c *cart.Cart) error {
		store := c.Store()
		if store == nil {
			return ErrNoStoreSelected
		}

		p, err := uc.uow.CommandReads().StoreProduct(ctx, store.ID, productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrProductNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.AddItem(*p); err != nil {
			slog.WarnContext(ctx, "rejected cart item",
				"user_id", userID,
				"product_id", productID,
				"error", err)
			return errs.Mark(err, ErrInvalidInput)
		}
		return nil
	})
}

func (uc *cartUseCaseImpl) ChangeQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (*CartView, error) {
	return uc.mutate(ctx, userID, func(_ context.Context, c *cart.Cart) error {
		if err := c.ChangeQuantity(productID, delta); err != nil {
			if errors.Is(err, cart.ErrLineNotFound) {
				return errs.Mark(err, ErrCartLineNotFound)
			}
			return errs.Mark(err, ErrInvalidInput)
		}
		return nil
	})
}

func (uc *cartUseCaseImpl) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	return uc.mutate(ctx, userID, func(_ context.Context, c *cart.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

// mutate serializes all changes to one user's cart: load, apply fn, recompute
// discounts for the resulting state and save. A cart that fn left unchanged is
// not written.
func (uc *cartUseCaseImpl) mutate(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context, c *cart.Cart) error) (*CartView, error) {
	unlock, err := uc.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.carts.Load(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	before := c.Seq()
	if err := fn(ctx, c); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	applyDeals(ctx, uc.deals, c, now)
	if c.Seq() == before {
		return newCartView(c), nil
	}

	c.Touch(now)
	if err := uc.carts.Save(ctx, c); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrCartConflict)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return newCartView(c), nil
}

func newCartView(c *cart.Cart) *CartView {
	var storeID *uuid.UUID
	if s := c.Store(); s != nil {
		id := s.ID
		storeID = &id
	}
	return &CartView{
		UserID:    c.UserID(),
		StoreID:   storeID,
		Lines:     c.Lines(),
		Totals:    c.Totals(),
		UpdatedAt: c.UpdatedAt(),
	}
}
