//go:build unit || integration

package builder

import (
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderViewBuilder struct {
	view queries.OrderView
}

func NewOrderViewBuilder() *OrderViewBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &OrderViewBuilder{view: queries.OrderView{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		StoreID:    uuid.New(),
		StoreName:  "Main Street",
		PaymentRef: "pay_test",
		Items: []order.Item{{
			ProductID: uuid.New(),
			Name:      "Coffee",
			Quantity:  4,
			UnitPrice: decimal.RequireFromString("2.00"),
			Discount:  decimal.RequireFromString("2.00"),
		}},
		Subtotal:  decimal.RequireFromString("8.00"),
		Discount:  decimal.RequireFromString("2.00"),
		Tax:       decimal.RequireFromString("0.42"),
		Total:     decimal.RequireFromString("6.42"),
		Status:    order.StatusPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (b *OrderViewBuilder) WithID(id uuid.UUID) *OrderViewBuilder {
	b.view.ID = id
	return b
}

func (b *OrderViewBuilder) WithUser(id uuid.UUID) *OrderViewBuilder {
	b.view.UserID = id
	return b
}

func (b *OrderViewBuilder) WithStore(id uuid.UUID) *OrderViewBuilder {
	b.view.StoreID = id
	return b
}

func (b *OrderViewBuilder) WithStatus(s order.Status) *OrderViewBuilder {
	b.view.Status = s
	return b
}

func (b *OrderViewBuilder) WithCreatedAt(t time.Time) *OrderViewBuilder {
	b.view.CreatedAt = t
	b.view.UpdatedAt = t
	return b
}

func (b *OrderViewBuilder) WithUpdatedAt(t time.Time) *OrderViewBuilder {
	b.view.UpdatedAt = t
	return b
}

// Build returns a fresh copy each call so one builder can emit successive states.
func (b *OrderViewBuilder) Build() *queries.OrderView {
	v := b.view
	v.Items = append([]order.Item(nil), b.view.Items...)
	return &v
}
