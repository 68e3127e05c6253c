package realtime

import (
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
)

// Filter selects the orders an observer follows: one order, one store's or
// one user's. ActiveOnly drops orders once they leave the active states.
type Filter struct {
	OrderID    *uuid.UUID
	StoreID    *uuid.UUID
	UserID     *uuid.UUID
	ActiveOnly bool
}

func ForOrder(id uuid.UUID) Filter {
	return Filter{OrderID: &id}
}

func ForStore(id uuid.UUID, activeOnly bool) Filter {
	return Filter{StoreID: &id, ActiveOnly: activeOnly}
}

func ForUser(id uuid.UUID, activeOnly bool) Filter {
	return Filter{UserID: &id, ActiveOnly: activeOnly}
}

// InScope ignores ActiveOnly so a subscriber still hears about an order
// that just completed and can drop it.
func (f Filter) InScope(v *queries.OrderView) bool {
	if v == nil {
		return false
	}
	if f.OrderID != nil && *f.OrderID != v.ID {
		return false
	}
	if f.StoreID != nil && *f.StoreID != v.StoreID {
		return false
	}
	if f.UserID != nil && *f.UserID != v.UserID {
		return false
	}
	return true
}

// Wants reports whether the record belongs in the observer's state.
func (f Filter) Wants(v *queries.OrderView) bool {
	if !f.InScope(v) {
		return false
	}
	return !f.ActiveOnly || v.Status.IsActive()
}

func (f Filter) logAttrs() []any {
	attrs := []any{"active_only", f.ActiveOnly}
	if f.OrderID != nil {
		attrs = append(attrs, "order_id", f.OrderID.String())
	}
	if f.StoreID != nil {
		attrs = append(attrs, "store_id", f.StoreID.String())
	}
	if f.UserID != nil {
		attrs = append(attrs, "user_id", f.UserID.String())
	}
	return attrs
}
