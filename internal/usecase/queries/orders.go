package queries

import (
	"context"
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/domain/user"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidStatusFilter = errs.New("invalid order status filter")

const StatusFilterActive = "active"

// OrderFilter narrows order listings. An empty Statuses matches every status.
type OrderFilter struct {
	Statuses []order.Status
}

// ParseOrderFilter accepts "", "active" or a single status name.
func ParseOrderFilter(s string) (OrderFilter, error) {
	switch s {
	case "":
		return OrderFilter{}, nil
	case StatusFilterActive:
		return OrderFilter{Statuses: order.ActiveStatuses()}, nil
	}
	st, err := order.ParseStatus(s)
	if err != nil {
		return OrderFilter{}, errs.Mark(err, ErrInvalidStatusFilter)
	}
	return OrderFilter{Statuses: []order.Status{st}}, nil
}

type OrderListParams struct {
	UserID         *uuid.UUID
	StoreID        *uuid.UUID
	Statuses       []order.Status
	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int32
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, params OrderListParams) ([]*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OrderView, error)
	// GetByIDSystem skips access checks; used for idempotent replay and change feeds.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, actor user.Actor, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	ListByStore(ctx context.Context, actor user.Actor, storeID uuid.UUID, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OrderView, error) {
	v, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(actor, v) {
		// hide existence from other customers
		return nil, errs.ErrOrderNotFound
	}
	return v, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, actor user.Actor, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	userID := actor.UserID
	return q.list(ctx, OrderListParams{UserID: &userID, Statuses: filter.Statuses}, cursor, limit)
}

func (q *orderQueriesImpl) ListByStore(ctx context.Context, actor user.Actor, storeID uuid.UUID, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	if !actor.CanOperateStore(storeID) {
		return nil, nil, errs.ErrOrderAccess
	}
	return q.list(ctx, OrderListParams{StoreID: &storeID, Statuses: filter.Statuses}, cursor, limit)
}

func (q *orderQueriesImpl) list(ctx context.Context, params OrderListParams, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)
	params.Limit = int32(limit + 1)

	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		params.AfterCreatedAt = &lastCreatedAt
		params.AfterID = &lastID
	}

	rows, err := q.store.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	rows, next := nextPage(rows, limit, func(v *OrderView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	})
	return rows, next, nil
}

// CanView reports whether actor may see the order: customers their own,
// operators their store's, admins all.
func CanView(actor user.Actor, v *OrderView) bool {
	if v.UserID == actor.UserID {
		return true
	}
	return actor.IsStaff() && actor.CanOperateStore(v.StoreID)
}
