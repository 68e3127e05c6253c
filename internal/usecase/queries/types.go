package queries

import (
	"time"

	"store-pickup/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StoreView struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Address string          `json:"address"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

type CategoryView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int32     `json:"sort_order"`
}

// ProductView is a product as priced at one store
type ProductView struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
}

type DealView struct {
	Code               string           `json:"code"`
	Description        string           `json:"description"`
	Type               string           `json:"type"`
	QuantityRequired   int              `json:"quantity_required"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	Priority           int              `json:"priority"`
	TransactionLimit   *int             `json:"transaction_limit,omitempty"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	Products           []*ProductView   `json:"products"`
}

// OrderView is the full order record; realtime delivery carries the same shape.
type OrderView struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	StoreID      uuid.UUID       `json:"store_id"`
	StoreName    string          `json:"store_name"`
	PaymentRef   string          `json:"payment_ref"`
	Items        []order.Item    `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	PickupAt     *time.Time      `json:"pickup_at,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	Status       order.Status    `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (v *OrderView) IsASAP() bool {
	return v.PickupAt == nil
}

type PaymentMethodView struct {
	ID        uuid.UUID `json:"id"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
