package converter

import (
	"encoding/json"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/pkg/money"
	"store-pickup/internal/pkg/pgconv"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CreateOrderParams struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoreID      uuid.UUID
	PaymentRef   string
	Items        []byte
	Subtotal     pgtype.Numeric
	Discount     pgtype.Numeric
	Tax          pgtype.Numeric
	Total        pgtype.Numeric
	PickupAt     pgtype.Timestamptz
	Instructions string
	Status       string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func OrderToCreateParams(o *order.Order) (CreateOrderParams, error) {
	items, err := json.Marshal(o.Items())
	if err != nil {
		return CreateOrderParams{}, err
	}
	t := o.Totals()
	return CreateOrderParams{
		ID:           o.ID(),
		UserID:       o.UserID(),
		StoreID:      o.StoreID(),
		PaymentRef:   o.PaymentRef(),
		Items:        items,
		Subtotal:     pgconv.NumericFromDecimal(t.Subtotal),
		Discount:     pgconv.NumericFromDecimal(t.Discount),
		Tax:          pgconv.NumericFromDecimal(t.Tax),
		Total:        pgconv.NumericFromDecimal(t.Total),
		PickupAt:     pgconv.TimePtrToPgtype(o.Pickup().Time()),
		Instructions: o.Instructions().String(),
		Status:       o.Status().String(),
		CreatedAt:    pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(o.UpdatedAt()),
	}, nil
}

// OrderFromView rebuilds the aggregate from its persisted read model.
func OrderFromView(v *queries.OrderView) (*order.Order, error) {
	instructions, err := order.NewInstructions(v.Instructions)
	if err != nil {
		return nil, err
	}
	items, err := order.ItemsFrom(v.Items)
	if err != nil {
		return nil, err
	}
	return order.ReconstructOrder(
		v.ID, v.UserID, v.StoreID,
		v.PaymentRef,
		items,
		money.Totals{Subtotal: v.Subtotal, Discount: v.Discount, Tax: v.Tax, Total: v.Total},
		order.ReconstructPickup(v.PickupAt),
		instructions,
		v.Status,
		v.CreatedAt, v.UpdatedAt,
	), nil
}
