package cart

import (
	"store-pickup/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one distinct product in a cart. ProductID is the identity; Name is display text.
type Line struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	AppliedDeal *string         `json:"applied_deal,omitempty"`
}

func (l Line) Subtotal() decimal.Decimal {
	return money.LineSubtotal(l.UnitPrice, l.Quantity)
}

func (l Line) withoutDiscount() Line {
	l.Discount = decimal.Zero
	l.AppliedDeal = nil
	return l
}

// Product is what the catalog supplies when an item is added.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     *decimal.Decimal
	Available bool
}

type StoreRef struct {
	ID      uuid.UUID       `json:"id"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}
