package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/domain/order"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/pkg/keylock"
	"store-pickup/internal/pkg/logctx"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	checkoutEndpoint  = "POST /api/checkout"
	idempotencyWindow = 24 * time.Hour
)

type CheckoutParams struct {
	PaymentMethodID uuid.UUID  `json:"payment_method_id"`
	PickupAt        *time.Time `json:"pickup_at,omitempty"`
	Instructions    string     `json:"instructions"`
}

type CheckoutResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, userID uuid.UUID, params CheckoutParams, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow      shared.UnitOfWork
	carts    CartStore
	deals    queries.DealResolver
	payments PaymentGateway
	orders   queries.OrderQueries
	locks    *keylock.KeyedMutex[uuid.UUID]
	clock    clock.Clock
	currency string
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	carts CartStore,
	deals queries.DealResolver,
	payments PaymentGateway,
	orders queries.OrderQueries,
	locks *keylock.KeyedMutex[uuid.UUID],
	clk clock.Clock,
	currency string,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:      uow,
		carts:    carts,
		deals:    deals,
		payments: payments,
		orders:   orders,
		locks:    locks,
		clock:    clk,
		currency: currency,
	}
}

// Checkout turns the user's cart into a placed order. Payment is captured
// once per idempotency key; a repeated request with the same key and body
// returns the recorded order.
func (uc *checkoutUseCaseImpl) Checkout(
	ctx context.Context,
	userID uuid.UUID,
	params CheckoutParams,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	requestHash := calculateRequestHash(params)

	replayID, err := uc.claimIdempotencyKey(ctx, idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		view, err := uc.orders.GetByIDSystem(ctx, *replayID)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{Order: view, IsReplayed: true}, nil
	}

	view, err := uc.placeOrder(ctx, userID, params, idempotencyKey)
	if err != nil {
		if !errors.Is(err, ErrPaymentCapturedOrderNotRecorded) {
			uc.releaseIdempotencyKey(ctx, idempotencyKey, userID)
		}
		return nil, err
	}
	return &CheckoutResult{Order: view}, nil
}

// claimIdempotencyKey returns the order id to replay, or nil when this
// request now owns the key.
func (uc *checkoutUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
) (*uuid.UUID, error) {
	expiresAt := uc.clock.Now().Add(idempotencyWindow)

	var replayID *uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayID = nil
		inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, checkoutEndpoint, requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if inserted {
			return nil
		}

		existing, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			claimed, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), idempotencyKey, userID, requestHash, expiresAt)
			if err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			if claimed == 0 {
				return ErrIdempotencyInProgress
			}
			return nil
		}

		switch existing.Status {
		case shared.IdempotencyStatusCompleted:
			if existing.RequestHash != requestHash {
				return ErrDuplicateCheckout
			}
			if existing.ResultOrderID == nil {
				return errs.Mark(errs.New("completed request missing result order ID"), ErrIdempotencyCheckFailed)
			}
			replayID = existing.ResultOrderID
			return nil

		case shared.IdempotencyStatusProcessing:
			if existing.RequestHash != requestHash {
				return ErrDuplicateCheckout
			}
			return ErrIdempotencyInProgress

		default:
			return errs.Mark(errs.Newf("invalid idempotency key status %q", existing.Status), ErrIdempotencyCheckFailed)
		}
	})
	if err != nil {
		return nil, err
	}
	return replayID, nil
}

func (uc *checkoutUseCaseImpl) placeOrder(
	ctx context.Context,
	userID uuid.UUID,
	params CheckoutParams,
	idempotencyKey uuid.UUID,
) (*queries.OrderView, error) {
	unlock, err := uc.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.carts.Load(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	o, err := uc.buildOrder(ctx, c, params)
	if err != nil {
		return nil, err
	}
	ctx = logctx.With(ctx, slog.String("order_id", o.ID().String()))

	method, err := uc.paymentMethod(ctx, userID, params.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	capture, err := uc.payments.Capture(ctx, CaptureRequest{
		Amount:         o.Totals().Total,
		Currency:       uc.currency,
		MethodRef:      method.ProviderRef,
		IdempotencyKey: idempotencyKey.String(),
	})
	if err != nil {
		return nil, err
	}
	if err := o.RecordPayment(capture.Reference); err != nil {
		return nil, uc.notRecorded(ctx, o, capture.Reference, err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return err
		}
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, calculateIDHash(o.ID()), o.ID())
	})
	if err != nil {
		return nil, uc.notRecorded(ctx, o, capture.Reference, err)
	}

	c.Clear()
	c.Touch(uc.clock.Now())
	if err := uc.carts.Save(ctx, c); err != nil {
		slog.WarnContext(ctx, "failed to clear cart after checkout",
			"user_id", userID,
			"error", err)
	}

	// Read-after-write: return the stored record
	view, err := uc.orders.GetByIDSystem(ctx, o.ID())
	if err != nil {
		slog.WarnContext(ctx, "failed to read placed order, returning local snapshot",
			"error", err)
		return orderViewFromEntity(o), nil
	}
	return view, nil
}

func (uc *checkoutUseCaseImpl) buildOrder(ctx context.Context, c *cart.Cart, params CheckoutParams) (*order.Order, error) {
	store := c.Store()
	if store == nil {
		return nil, ErrNoStoreSelected
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := uc.clock.Now()
	applyDeals(ctx, uc.deals, c, now)

	pickup := order.ASAP()
	if params.PickupAt != nil {
		p, err := order.PickupAt(*params.PickupAt, now)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidInput)
		}
		pickup = p
	}

	instructions, err := order.NewInstructions(params.Instructions)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	lines := c.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:   l.ProductID,
			Name:        l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			AppliedDeal: l.AppliedDeal,
		})
	}

	o, err := order.NewOrder(order.NewOrderParams{
		UserID:       c.UserID(),
		StoreID:      store.ID,
		Items:        items,
		Totals:       c.Totals(),
		Pickup:       pickup,
		Instructions: instructions,
	}, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}
	return o, nil
}

func (uc *checkoutUseCaseImpl) paymentMethod(ctx context.Context, userID, id uuid.UUID) (*shared.PaymentMethodSnapshot, error) {
	method, err := uc.uow.CommandReads().PaymentMethodByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if method.UserID != userID {
		return nil, ErrPaymentMethodNotFound
	}
	return method, nil
}

// notRecorded reports a capture that has no order behind it. The idempotency
// key stays in processing so a retry cannot capture a second time.
func (uc *checkoutUseCaseImpl) notRecorded(ctx context.Context, o *order.Order, paymentRef string, cause error) error {
	slog.ErrorContext(ctx, "payment captured but order not recorded",
		"order_id", o.ID(),
		"user_id", o.UserID(),
		"store_id", o.StoreID(),
		"payment_ref", paymentRef,
		"total", o.Totals().Total.String(),
		"error", cause)
	return &OrderNotRecordedError{
		PaymentRef: paymentRef,
		OrderID:    o.ID(),
		Err:        errs.Mark(cause, ErrOrderPersistence),
	}
}

func (uc *checkoutUseCaseImpl) releaseIdempotencyKey(ctx context.Context, idempotencyKey, userID uuid.UUID) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), idempotencyKey, userID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key",
			"idempotency_key", idempotencyKey,
			"error", err)
	}
}

func orderViewFromEntity(o *order.Order) *queries.OrderView {
	t := o.Totals()
	return &queries.OrderView{
		ID:           o.ID(),
		UserID:       o.UserID(),
		StoreID:      o.StoreID(),
		PaymentRef:   o.PaymentRef(),
		Items:        o.Items(),
		Subtotal:     t.Subtotal,
		Discount:     t.Discount,
		Tax:          t.Tax,
		Total:        t.Total,
		PickupAt:     o.Pickup().Time(),
		Instructions: o.Instructions().String(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func calculateRequestHash(params CheckoutParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
