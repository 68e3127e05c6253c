package repository

import (
	"context"

	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentMethodRepository struct{}

func NewPaymentMethodRepository() *PaymentMethodRepository {
	return &PaymentMethodRepository{}
}

// SetDefault must run inside a transaction: it clears the old default before
// marking the new one so the partial unique index never sees two defaults.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, tx db.DBTX, userID, id uuid.UUID) error {
	var owned bool
	err := tx.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM payment_methods WHERE id = $1 AND user_id = $2)`, id, userID).Scan(&owned)
	if err != nil {
		return infra.WrapRepoErr("failed to check payment method", err)
	}
	if !owned {
		return infra.WrapRepoErr("payment method not found", nil, infra.KindNotFound)
	}

	if _, err := tx.Exec(ctx, `
UPDATE payment_methods SET is_default = FALSE
WHERE user_id = $1 AND is_default AND id <> $2`, userID, id); err != nil {
		return infra.WrapRepoErr("failed to clear default payment method", err)
	}

	if _, err := tx.Exec(ctx, `
UPDATE payment_methods SET is_default = TRUE WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to set default payment method", err)
	}
	return nil
}
