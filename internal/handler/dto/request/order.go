package request

import (
	"store-pickup/internal/domain/order"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateOrderStatusRequest) ToStatus() (order.Status, error) {
	return order.ParseStatus(r.Status)
}
