package response

import (
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	ProductID    uuid.UUID `json:"productId"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    string    `json:"unitPrice"`
	LineSubtotal string    `json:"lineSubtotal"`
	Discount     string    `json:"discount"`
	AppliedDeal  *string   `json:"appliedDeal,omitempty"`
}

type CartResponse struct {
	StoreID   *uuid.UUID          `json:"storeId,omitempty"`
	Lines     []*CartLineResponse `json:"lines"`
	Totals    TotalsResponse      `json:"totals"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Removed   []uuid.UUID         `json:"removed,omitempty"`
}

func FromCartView(v *commands.CartView) *CartResponse {
	lines := make([]*CartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, fromCartLine(l))
	}
	return &CartResponse{
		StoreID:   v.StoreID,
		Lines:     lines,
		Totals:    FromTotals(v.Totals),
		UpdatedAt: v.UpdatedAt,
		Removed:   v.Removed,
	}
}

func fromCartLine(l cart.Line) *CartLineResponse {
	return &CartLineResponse{
		ProductID:    l.ProductID,
		Name:         l.Name,
		Quantity:     l.Quantity,
		UnitPrice:    amount(l.UnitPrice),
		LineSubtotal: amount(l.Subtotal()),
		Discount:     amount(l.Discount),
		AppliedDeal:  l.AppliedDeal,
	}
}
