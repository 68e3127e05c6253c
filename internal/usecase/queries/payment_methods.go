package queries

import (
	"context"

	"github.com/google/uuid"
)

type PaymentMethodReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentMethodView, error)
}

type PaymentMethodQueries interface {
	List(ctx context.Context, userID uuid.UUID) ([]*PaymentMethodView, error)
}

type paymentMethodQueriesImpl struct {
	store PaymentMethodReadStore
}

func NewPaymentMethodQueries(store PaymentMethodReadStore) PaymentMethodQueries {
	return &paymentMethodQueriesImpl{store: store}
}

func (q *paymentMethodQueriesImpl) List(ctx context.Context, userID uuid.UUID) ([]*PaymentMethodView, error) {
	return q.store.ListByUser(ctx, userID)
}
