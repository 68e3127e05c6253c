package readstore

import (
	"context"
	"encoding/json"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectOrderView = `
SELECT o.id, o.user_id, o.store_id, s.name, o.payment_ref, o.items,
       o.subtotal, o.discount, o.tax, o.total,
       o.pickup_at, o.instructions, o.status, o.created_at, o.updated_at
FROM orders o
JOIN stores s ON s.id = o.store_id`

const listOrderViews = selectOrderView + `
WHERE ($1::uuid IS NULL OR o.user_id = $1)
  AND ($2::uuid IS NULL OR o.store_id = $2)
  AND (cardinality($3::text[]) = 0 OR o.status = ANY($3))
  AND ($4::timestamptz IS NULL OR (o.created_at, o.id) < ($4, $5::uuid))
ORDER BY o.created_at DESC, o.id DESC
LIMIT $6`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	v, err := ScanOrderView(r.db.QueryRow(ctx, selectOrderView+` WHERE o.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order view by id", err)
	}
	return v, nil
}

func (r *OrderReadStore) List(ctx context.Context, params queries.OrderListParams) ([]*queries.OrderView, error) {
	statuses := make([]string, 0, len(params.Statuses))
	for _, s := range params.Statuses {
		statuses = append(statuses, s.String())
	}

	rows, err := r.db.Query(ctx, listOrderViews,
		pgconv.UUIDPtrToPgtype(params.UserID),
		pgconv.UUIDPtrToPgtype(params.StoreID),
		statuses,
		pgconv.TimePtrToPgtype(params.AfterCreatedAt),
		pgconv.UUIDPtrToPgtype(params.AfterID),
		params.Limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.OrderView, error) {
		return ScanOrderView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan orders", err)
	}
	return out, nil
}

// ScanOrderView scans one row selected with the order view column list.
func ScanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var (
		v                              queries.OrderView
		items                          []byte
		subtotal, discount, tax, total pgtype.Numeric
		pickupAt                       pgtype.Timestamptz
		status                         string
	)
	err := row.Scan(&v.ID, &v.UserID, &v.StoreID, &v.StoreName, &v.PaymentRef, &items,
		&subtotal, &discount, &tax, &total,
		&pickupAt, &v.Instructions, &status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &v.Items); err != nil {
		return nil, err
	}
	if v.Subtotal, err = pgconv.DecimalFromNumeric(subtotal); err != nil {
		return nil, err
	}
	if v.Discount, err = pgconv.DecimalFromNumeric(discount); err != nil {
		return nil, err
	}
	if v.Tax, err = pgconv.DecimalFromNumeric(tax); err != nil {
		return nil, err
	}
	if v.Total, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, err
	}
	if v.Status, err = order.ParseStatus(status); err != nil {
		return nil, err
	}
	v.PickupAt = pgconv.TimePtrFromPgtype(pickupAt)
	return &v, nil
}
