package readstore

import (
	"context"
	"log/slog"
	"time"

	"store-pickup/internal/domain/deal"
	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectActiveDeals = `
SELECT d.code, d.description, d.type, d.quantity_required,
       d.discount_amount, d.discount_percentage, d.priority, d.transaction_limit,
       d.start_date, d.end_date, d.active, sd.discount_override,
       COALESCE(array_agg(dp.product_id ORDER BY dp.product_id) FILTER (WHERE dp.product_id IS NOT NULL), '{}')
FROM store_deals sd
JOIN deals d ON d.code = sd.deal_code
LEFT JOIN deal_products dp ON dp.deal_code = d.code
WHERE sd.store_id = $1
  AND sd.active
  AND d.active
  AND d.start_date <= $2 AND $2 <= d.end_date
GROUP BY d.code, sd.discount_override
ORDER BY d.priority DESC, d.code`

type DealReadStore struct {
	db db.DBTX
}

func NewDealReadStore(db db.DBTX) *DealReadStore {
	return &DealReadStore{db: db}
}

func (r *DealReadStore) FindActiveByStore(ctx context.Context, storeID uuid.UUID, date time.Time) ([]deal.ActiveDeal, error) {
	rows, err := r.db.Query(ctx, selectActiveDeals, storeID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active deals", err)
	}
	defer rows.Close()

	var out []deal.ActiveDeal
	for rows.Next() {
		ad, err := scanActiveDeal(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan active deal", err)
		}
		if verr := ad.Deal.Validate(); verr != nil {
			slog.WarnContext(ctx, "skipping malformed deal",
				"code", ad.Deal.Code,
				"store_id", storeID.String(),
				"error", verr.Error())
			continue
		}
		out = append(out, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active deals", err)
	}
	return out, nil
}

func scanActiveDeal(row pgx.Row) (deal.ActiveDeal, error) {
	var (
		d                         deal.Deal
		typ                       string
		quantityRequired          int32
		priority                  int32
		amount, percent, override pgtype.Numeric
		limit                     pgtype.Int4
		start, end                pgtype.Date
		productIDs                []pgtype.UUID
	)
	err := row.Scan(&d.Code, &d.Description, &typ, &quantityRequired,
		&amount, &percent, &priority, &limit,
		&start, &end, &d.Active, &override, &productIDs)
	if err != nil {
		return deal.ActiveDeal{}, err
	}

	d.Type = deal.Type(typ)
	d.QuantityRequired = int(quantityRequired)
	d.Priority = int(priority)
	d.StartDate = start.Time
	d.EndDate = end.Time
	if limit.Valid {
		l := int(limit.Int32)
		d.TransactionLimit = &l
	}
	if d.DiscountAmount, err = pgconv.DecimalPtrFromNumeric(amount); err != nil {
		return deal.ActiveDeal{}, err
	}
	if d.DiscountPercentage, err = pgconv.DecimalPtrFromNumeric(percent); err != nil {
		return deal.ActiveDeal{}, err
	}
	storeOverride, err := pgconv.DecimalPtrFromNumeric(override)
	if err != nil {
		return deal.ActiveDeal{}, err
	}

	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if p := pgconv.UUIDPtrFromPgtype(id); p != nil {
			ids = append(ids, *p)
		}
	}

	return deal.ActiveDeal{Deal: d, StoreOverride: storeOverride, ProductIDs: ids}, nil
}
