package realtime

import (
	"context"
	"sort"
	"sync"

	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
)

type Change int

const (
	ChangeIgnored Change = iota
	ChangeUpsert
	ChangeRemove
	// ChangeDeferred: held until the observer's own mutation of that order ends
	ChangeDeferred
)

func (c Change) String() string {
	switch c {
	case ChangeUpsert:
		return "upsert"
	case ChangeRemove:
		return "remove"
	case ChangeDeferred:
		return "deferred"
	default:
		return "ignored"
	}
}

type FetchFunc func(ctx context.Context) ([]*queries.OrderView, error)

// Observer keeps the latest known record per order for one Filter.
// Pushed records overwrite local state, except for orders this observer is
// itself mutating: those wait for EndMutation so a push never hides the
// observer's own write.
type Observer struct {
	filter Filter

	mu       sync.Mutex
	orders   map[uuid.UUID]*queries.OrderView
	inflight map[uuid.UUID]int
	pending  map[uuid.UUID]*queries.OrderView
}

func NewObserver(f Filter) *Observer {
	return &Observer{
		filter:   f,
		orders:   make(map[uuid.UUID]*queries.OrderView),
		inflight: make(map[uuid.UUID]int),
		pending:  make(map[uuid.UUID]*queries.OrderView),
	}
}

func (o *Observer) Filter() Filter {
	return o.filter
}

func (o *Observer) Apply(v *queries.OrderView) Change {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.filter.InScope(v) {
		return ChangeIgnored
	}
	if o.inflight[v.ID] > 0 {
		if cur, ok := o.pending[v.ID]; !ok || !isOlder(v, cur) {
			o.pending[v.ID] = v
		}
		return ChangeDeferred
	}
	return o.applyLocked(v)
}

func (o *Observer) BeginMutation(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inflight[id]++
}

// EndMutation releases the hold on id. result is the record the mutation
// produced, or nil if it failed; in that case the previous state stays.
// Records pushed meanwhile are applied afterwards if they are not older.
func (o *Observer) EndMutation(id uuid.UUID, result *queries.OrderView) Change {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inflight[id] > 1 {
		o.inflight[id]--
		if result != nil {
			o.pending[id] = newest(o.pending[id], result)
		}
		return ChangeDeferred
	}
	delete(o.inflight, id)

	next := newest(o.pending[id], result)
	delete(o.pending, id)
	if next == nil {
		return ChangeIgnored
	}
	return o.applyLocked(next)
}

// Resync replaces all state with a fresh fetch. On error the state is kept.
func (o *Observer) Resync(ctx context.Context, fetch FetchFunc) error {
	rows, err := fetch(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.orders = make(map[uuid.UUID]*queries.OrderView, len(rows))
	for _, v := range rows {
		if o.filter.Wants(v) {
			o.orders[v.ID] = v
		}
	}
	for id, v := range o.pending {
		if cur, ok := o.orders[id]; ok && isOlder(v, cur) {
			delete(o.pending, id)
		}
	}
	return nil
}

func (o *Observer) Get(id uuid.UUID) (*queries.OrderView, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.orders[id]
	return v, ok
}

// Snapshot returns held records newest first.
func (o *Observer) Snapshot() []*queries.OrderView {
	o.mu.Lock()
	out := make([]*queries.OrderView, 0, len(o.orders))
	for _, v := range o.orders {
		out = append(out, v)
	}
	o.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (o *Observer) applyLocked(v *queries.OrderView) Change {
	cur, held := o.orders[v.ID]
	if held && isOlder(v, cur) {
		return ChangeIgnored
	}
	if !o.filter.Wants(v) {
		if held {
			delete(o.orders, v.ID)
			return ChangeRemove
		}
		return ChangeIgnored
	}
	o.orders[v.ID] = v
	return ChangeUpsert
}

// isOlder reports whether a is an earlier state of the same order than b.
// Status only moves forward, so it breaks updated_at ties.
func isOlder(a, b *queries.OrderView) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
	return a.Status.Rank() < b.Status.Rank()
}

func newest(a, b *queries.OrderView) *queries.OrderView {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case isOlder(a, b):
		return b
	default:
		return a
	}
}
