//go:build unit || integration

package builder

import (
	"time"

	"store-pickup/internal/domain/deal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DealBuilder struct {
	Deal       deal.Deal
	Override   *decimal.Decimal
	ProductIDs []uuid.UUID
}

func NewDealBuilder() *DealBuilder {
	amount := decimal.RequireFromString("1.00")
	return &DealBuilder{
		Deal: deal.Deal{
			Code:             "DEAL",
			Description:      "Buy 2 save $1",
			Type:             deal.TypeAmount,
			QuantityRequired: 2,
			DiscountAmount:   &amount,
			Priority:         0,
			StartDate:        time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
			Active:           true,
		},
	}
}

func (b *DealBuilder) With(mutate func(*DealBuilder)) *DealBuilder {
	mutate(b)
	return b
}

func (b *DealBuilder) WithCode(code string) *DealBuilder {
	b.Deal.Code = code
	return b
}

func (b *DealBuilder) WithPriority(p int) *DealBuilder {
	b.Deal.Priority = p
	return b
}

func (b *DealBuilder) WithQuantityRequired(n int) *DealBuilder {
	b.Deal.QuantityRequired = n
	return b
}

func (b *DealBuilder) WithAmount(amount string) *DealBuilder {
	v := decimal.RequireFromString(amount)
	b.Deal.Type = deal.TypeAmount
	b.Deal.DiscountAmount = &v
	return b
}

func (b *DealBuilder) WithoutAmount() *DealBuilder {
	b.Deal.DiscountAmount = nil
	return b
}

func (b *DealBuilder) WithPercentage(pct string) *DealBuilder {
	v := decimal.RequireFromString(pct)
	b.Deal.Type = deal.TypePercentage
	b.Deal.DiscountAmount = nil
	b.Deal.DiscountPercentage = &v
	return b
}

func (b *DealBuilder) WithLimit(limit int) *DealBuilder {
	b.Deal.TransactionLimit = &limit
	return b
}

func (b *DealBuilder) WithOverride(amount string) *DealBuilder {
	v := decimal.RequireFromString(amount)
	b.Override = &v
	return b
}

func (b *DealBuilder) WithProducts(ids ...uuid.UUID) *DealBuilder {
	b.ProductIDs = append(b.ProductIDs, ids...)
	return b
}

func (b *DealBuilder) WithDates(start, end time.Time) *DealBuilder {
	b.Deal.StartDate = start
	b.Deal.EndDate = end
	return b
}

func (b *DealBuilder) Inactive() *DealBuilder {
	b.Deal.Active = false
	return b
}

func (b *DealBuilder) BuildDomain() deal.Deal {
	return b.Deal
}

func (b *DealBuilder) BuildActive() deal.ActiveDeal {
	ids := make([]uuid.UUID, len(b.ProductIDs))
	copy(ids, b.ProductIDs)
	return deal.ActiveDeal{
		Deal:          b.Deal,
		StoreOverride: b.Override,
		ProductIDs:    ids,
	}
}
