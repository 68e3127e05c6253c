package request

import (
	"strings"
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	// omitted means as soon as possible
	PickupAt     *time.Time `json:"pickup_at,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
}

func (r CheckoutRequest) ToParams() (commands.CheckoutParams, error) {
	params := commands.CheckoutParams{
		PaymentMethodID: r.PaymentMethodID,
		PickupAt:        r.PickupAt,
	}
	if r.Instructions != nil {
		params.Instructions = strings.TrimSpace(*r.Instructions)
	}
	if _, err := order.NewInstructions(params.Instructions); err != nil {
		return commands.CheckoutParams{}, err
	}
	return params, nil
}
