package deal

import (
	"errors"
	"time"

	"store-pickup/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode             = errors.New("deal code is required")
	ErrInvalidType             = errors.New("invalid deal type")
	ErrInvalidQuantityRequired = errors.New("quantity required must be at least 1")
	ErrInvalidTransactionLimit = errors.New("transaction limit must be at least 1")
	ErrInvalidDateRange        = errors.New("deal start date must not be after end date")
	ErrInvalidPercentage       = errors.New("discount percentage must be between 0 and 100")
	ErrNegativeDiscount        = errors.New("discount amount cannot be negative")
)

type Type string

const (
	TypeAmount     Type = "amount"
	TypePercentage Type = "percentage"
)

func (t Type) IsValid() bool {
	return t == TypeAmount || t == TypePercentage
}

type Deal struct {
	Code               string
	Description        string
	Type               Type
	QuantityRequired   int
	DiscountAmount     *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	// higher wins when a line qualifies for several deals
	Priority         int
	TransactionLimit *int
	// inclusive calendar dates
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

func (d Deal) Validate() error {
	if d.Code == "" {
		return ErrInvalidCode
	}
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	if d.QuantityRequired < 1 {
		return ErrInvalidQuantityRequired
	}
	if d.TransactionLimit != nil && *d.TransactionLimit < 1 {
		return ErrInvalidTransactionLimit
	}
	if dateKey(d.StartDate) > dateKey(d.EndDate) {
		return ErrInvalidDateRange
	}
	if d.DiscountAmount != nil && d.DiscountAmount.IsNegative() {
		return ErrNegativeDiscount
	}
	if p := d.DiscountPercentage; p != nil && (p.IsNegative() || p.GreaterThan(hundred)) {
		return ErrInvalidPercentage
	}
	return nil
}

// IsActiveOn compares by calendar date, inclusive on both ends.
func (d Deal) IsActiveOn(date time.Time) bool {
	k := dateKey(date)
	return d.Active && dateKey(d.StartDate) <= k && k <= dateKey(d.EndDate)
}

// ActiveDeal is a deal resolved for one store: its per-store override and
// the products that qualify for it.
type ActiveDeal struct {
	Deal          Deal
	StoreOverride *decimal.Decimal
	ProductIDs    []uuid.UUID
}

func (a ActiveDeal) Qualifies(productID uuid.UUID) bool {
	for _, id := range a.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Inert deals can never produce a discount.
func (a ActiveDeal) Inert() bool {
	return len(a.ProductIDs) == 0 || a.Deal.QuantityRequired < 1
}

// UnitDiscount is the discount granted per application for amount deals.
func (a ActiveDeal) UnitDiscount() decimal.Decimal {
	return patch.Coalesce(patch.FirstNonNil(a.StoreOverride, a.Deal.DiscountAmount), decimal.Zero)
}

// Percentage is the rate applied to consumed units for percentage deals,
// clamped to [0, 100].
func (a ActiveDeal) Percentage() decimal.Decimal {
	p := patch.Coalesce(patch.FirstNonNil(a.StoreOverride, a.Deal.DiscountPercentage), decimal.Zero)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

var hundred = decimal.NewFromInt(100)

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
