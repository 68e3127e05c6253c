package response

import (
	"time"

	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentMethodResponse struct {
	ID        uuid.UUID `json:"id"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromPaymentMethodView(v *queries.PaymentMethodView) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:        v.ID,
		Brand:     v.Brand,
		Last4:     v.Last4,
		IsDefault: v.IsDefault,
		CreatedAt: v.CreatedAt,
	}
}

func FromPaymentMethodViews(vs []*queries.PaymentMethodView) []*PaymentMethodResponse {
	return mapViews(vs, FromPaymentMethodView)
}
