package queries

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"store-pickup/internal/domain/deal"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/errs"

	"github.com/google/uuid"
)

type DealReadStore interface {
	// FindActiveByStore returns deals linked to the store through an active link
	// whose date window contains date. Rows that fail validation are skipped.
	FindActiveByStore(ctx context.Context, storeID uuid.UUID, date time.Time) ([]deal.ActiveDeal, error)
}

// DealResolver yields the deals that apply to a store on a given day.
type DealResolver interface {
	// ResolveActiveDeals never fails; a lookup error yields no deals.
	ResolveActiveDeals(ctx context.Context, storeID uuid.UUID, asOf time.Time) []deal.ActiveDeal
	ListStoreDeals(ctx context.Context, storeID uuid.UUID) ([]*DealView, error)
}

type dealResolverImpl struct {
	deals   DealReadStore
	catalog CatalogReadStore
	clock   clock.Clock
	loc     *time.Location
}

func NewDealResolver(deals DealReadStore, catalog CatalogReadStore, clk clock.Clock, loc *time.Location) DealResolver {
	return &dealResolverImpl{deals: deals, catalog: catalog, clock: clk, loc: loc}
}

func (r *dealResolverImpl) ResolveActiveDeals(ctx context.Context, storeID uuid.UUID, asOf time.Time) []deal.ActiveDeal {
	date := clock.DateOf(asOf, r.loc)

	rows, err := r.deals.FindActiveByStore(ctx, storeID, date)
	if err != nil {
		slog.WarnContext(ctx, "deal lookup failed, pricing without deals",
			"store_id", storeID.String(),
			"as_of", date.Format(time.DateOnly),
			"error", err.Error())
		return nil
	}

	out := make([]deal.ActiveDeal, 0, len(rows))
	for _, ad := range rows {
		if !ad.Deal.IsActiveOn(date) {
			continue
		}
		out = append(out, ad)
	}
	return out
}

func (r *dealResolverImpl) ListStoreDeals(ctx context.Context, storeID uuid.UUID) ([]*DealView, error) {
	if _, err := r.catalog.FindStore(ctx, storeID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrStoreNotFound
		}
		return nil, err
	}

	active := r.ResolveActiveDeals(ctx, storeID, r.clock.Now())
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Deal.Priority != active[j].Deal.Priority {
			return active[i].Deal.Priority > active[j].Deal.Priority
		}
		return active[i].Deal.Code < active[j].Deal.Code
	})

	views := make([]*DealView, 0, len(active))
	for _, ad := range active {
		products := []*ProductView{}
		if len(ad.ProductIDs) > 0 {
			found, err := r.catalog.FindStoreProductsByIDs(ctx, storeID, ad.ProductIDs)
			if err != nil {
				return nil, err
			}
			products = found
		}
		views = append(views, toDealView(ad, products))
	}
	return views, nil
}

func toDealView(ad deal.ActiveDeal, products []*ProductView) *DealView {
	d := ad.Deal
	v := &DealView{
		Code:               d.Code,
		Description:        d.Description,
		Type:               string(d.Type),
		QuantityRequired:   d.QuantityRequired,
		DiscountAmount:     d.DiscountAmount,
		DiscountPercentage: d.DiscountPercentage,
		Priority:           d.Priority,
		TransactionLimit:   d.TransactionLimit,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		Products:           products,
	}
	if ad.StoreOverride != nil {
		override := *ad.StoreOverride
		if d.Type == deal.TypePercentage {
			v.DiscountPercentage = &override
		} else {
			v.DiscountAmount = &override
		}
	}
	return v
}
