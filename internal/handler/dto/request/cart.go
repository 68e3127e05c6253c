package request

import (
	"github.com/google/uuid"
)

type SelectStoreRequest struct {
	StoreID uuid.UUID `json:"store_id" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// ChangeQuantityRequest carries a signed delta; a line that drops to zero is removed.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}
