package commands

import (
	"context"

	"store-pickup/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartStore persists carts between requests. Save must refuse a cart whose
// sequence is not newer than the stored one.
type CartStore interface {
	Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type CaptureRequest struct {
	Amount         decimal.Decimal
	Currency       string
	MethodRef      string
	IdempotencyKey string
}

type CaptureResult struct {
	Reference string
}

// PaymentGateway captures funds against a stored payment method.
type PaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}
