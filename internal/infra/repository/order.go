package repository

import (
	"context"
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	p, err := converter.OrderToCreateParams(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO orders (id, user_id, store_id, payment_ref, items, subtotal, discount, tax, total,
                    pickup_at, instructions, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.UserID, p.StoreID, p.PaymentRef, p.Items, p.Subtotal, p.Discount, p.Tax, p.Total,
		p.PickupAt, p.Instructions, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// UpdateStatus is a compare-and-set on the status column. Zero affected rows
// means the order is missing or someone else moved it first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, prev, next order.Status, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
UPDATE orders SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`, id, prev.String(), next.String(), updatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}
