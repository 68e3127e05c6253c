package readstore

import (
	"context"

	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentMethodReadStore struct {
	db db.DBTX
}

func NewPaymentMethodReadStore(db db.DBTX) *PaymentMethodReadStore {
	return &PaymentMethodReadStore{db: db}
}

func (r *PaymentMethodReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.PaymentMethodView, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, brand, last4, is_default, created_at
FROM payment_methods
WHERE user_id = $1
ORDER BY is_default DESC, created_at DESC, id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment methods", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.PaymentMethodView, error) {
		var v queries.PaymentMethodView
		err := row.Scan(&v.ID, &v.Brand, &v.Last4, &v.IsDefault, &v.CreatedAt)
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan payment methods", err)
	}
	return out, nil
}

func (r *PaymentMethodReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.PaymentMethodSnapshot, error) {
	var s shared.PaymentMethodSnapshot
	err := r.db.QueryRow(ctx, `
SELECT id, user_id, provider_ref, is_default
FROM payment_methods
WHERE id = $1`, id).Scan(&s.ID, &s.UserID, &s.ProviderRef, &s.IsDefault)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment method not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment method", err)
	}
	return &s, nil
}
