package response

import (
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/pkg/money"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
	Discount    string    `json:"discount"`
	AppliedDeal *string   `json:"appliedDeal,omitempty"`
}

type OrderResponse struct {
	ID           uuid.UUID            `json:"id"`
	UserID       uuid.UUID            `json:"userId"`
	StoreID      uuid.UUID            `json:"storeId"`
	StoreName    string               `json:"storeName"`
	PaymentRef   string               `json:"paymentRef"`
	Items        []*OrderItemResponse `json:"items"`
	Totals       TotalsResponse       `json:"totals"`
	ASAP         bool                 `json:"asap"`
	PickupAt     *time.Time           `json:"pickupAt,omitempty"`
	Instructions string               `json:"instructions,omitempty"`
	Status       string               `json:"status"`
	NextStatus   *string              `json:"nextStatus,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type OrderListResponse struct {
	Items      []*OrderResponse `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]*OrderItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, fromOrderItem(it))
	}
	return &OrderResponse{
		ID:         v.ID,
		UserID:     v.UserID,
		StoreID:    v.StoreID,
		StoreName:  v.StoreName,
		PaymentRef: v.PaymentRef,
		Items:      items,
		Totals: FromTotals(money.Totals{
			Subtotal: v.Subtotal,
			Discount: v.Discount,
			Tax:      v.Tax,
			Total:    v.Total,
		}),
		ASAP:         v.IsASAP(),
		PickupAt:     v.PickupAt,
		Instructions: v.Instructions,
		Status:       v.Status.String(),
		NextStatus:   nextStatus(v.Status),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// nextStatus is the only status an operator can move the order to; nil once
// completed.
func nextStatus(s order.Status) *string {
	next, ok := s.Next()
	if !ok {
		return nil
	}
	out := next.String()
	return &out
}

func FromOrderViews(vs []*queries.OrderView) []*OrderResponse {
	return mapViews(vs, FromOrderView)
}

func NewOrderListResponse(vs []*queries.OrderView, next *queries.Cursor) *OrderListResponse {
	resp := &OrderListResponse{Items: FromOrderViews(vs)}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

func fromOrderItem(it order.Item) *OrderItemResponse {
	return &OrderItemResponse{
		ProductID:   it.ProductID,
		Name:        it.Name,
		Quantity:    it.Quantity,
		UnitPrice:   amount(it.UnitPrice),
		Discount:    amount(it.Discount),
		AppliedDeal: it.AppliedDeal,
	}
}
