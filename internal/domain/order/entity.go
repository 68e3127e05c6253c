package order

import (
	"errors"
	"time"

	"store-pickup/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type NewOrderParams struct {
	UserID       uuid.UUID
	StoreID      uuid.UUID
	Items        []Item
	Totals       money.Totals
	Pickup       Pickup
	Instructions Instructions
}

// Order items and totals are fixed at creation; only status moves afterwards.
type Order struct {
	id           uuid.UUID
	userID       uuid.UUID
	storeID      uuid.UUID
	paymentRef   string
	items        []Item
	totals       money.Totals
	pickup       Pickup
	instructions Instructions
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range p.Items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	items, err := copyItems(p.Items)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:           uuid.New(),
		userID:       p.UserID,
		storeID:      p.StoreID,
		items:        items,
		totals:       p.Totals,
		pickup:       p.Pickup,
		instructions: p.Instructions,
		status:       StatusPlaced,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructOrder(
	id, userID, storeID uuid.UUID,
	paymentRef string,
	items []Item,
	totals money.Totals,
	pickup Pickup,
	instructions Instructions,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:           id,
		userID:       userID,
		storeID:      storeID,
		paymentRef:   paymentRef,
		items:        items,
		totals:       totals,
		pickup:       pickup,
		instructions: instructions,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// RecordPayment attaches the capture reference; it can be set once.
func (o *Order) RecordPayment(ref string) error {
	if ref == "" {
		return ErrInvalidPaymentRef
	}
	if o.paymentRef != "" {
		return ErrPaymentAlreadyRecord
	}
	o.paymentRef = ref
	return nil
}

// TransitionTo moves the order one step forward. On error the order is unchanged.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) UserID() uuid.UUID          { return o.userID }
func (o *Order) StoreID() uuid.UUID         { return o.storeID }
func (o *Order) PaymentRef() string         { return o.paymentRef }
func (o *Order) Totals() money.Totals       { return o.totals }
func (o *Order) Pickup() Pickup             { return o.pickup }
func (o *Order) Instructions() Instructions { return o.instructions }
func (o *Order) Status() Status             { return o.status }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// Items returns a deep copy.
func (o *Order) Items() []Item {
	items, _ := copyItems(o.items)
	return items
}

// ItemsFrom deep-copies any slice of structs with matching field names
// (e.g. cart lines) into order items.
func ItemsFrom(src any) ([]Item, error) {
	var out []Item
	if err := copier.CopyWithOption(&out, src, copyOption); err != nil {
		return nil, err
	}
	return out, nil
}

func copyItems(in []Item) ([]Item, error) {
	return ItemsFrom(&in)
}

// decimals are immutable, so sharing their internals is safe
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{{
		SrcType: decimal.Decimal{},
		DstType: decimal.Decimal{},
		Fn: func(src any) (any, error) {
			return src.(decimal.Decimal), nil
		},
	}},
}
