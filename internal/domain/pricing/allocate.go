// Package pricing computes per-line promotional discounts for a cart.
package pricing

import (
	"sort"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/domain/deal"
	"store-pickup/internal/pkg/money"

	"github.com/shopspring/decimal"
)

// Allocate recomputes every line's discount from scratch. Lines keep their
// input order; lines with a non-positive quantity are returned untouched.
//
// Deals are evaluated by priority (highest first), ties broken by code, and
// a line keeps the first deal that gives it units. Each deal group counts
// all of its qualifying lines, including lines already taken by a stronger
// deal; the share such lines would have received is dropped.
func Allocate(lines []cart.Line, deals []deal.ActiveDeal) []cart.Line {
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	if len(out) == 0 {
		return out
	}

	eligible := make([]int, 0, len(out))
	for i := range out {
		if out[i].Quantity <= 0 {
			continue
		}
		out[i].Discount = decimal.Zero
		out[i].AppliedDeal = nil
		eligible = append(eligible, i)
	}
	// stable member order inside every group
	sort.SliceStable(eligible, func(a, b int) bool {
		return out[eligible[a]].ProductID.String() < out[eligible[b]].ProductID.String()
	})

	claimed := make(map[int]bool, len(eligible))
	for _, d := range orderDeals(deals) {
		if d.Inert() {
			continue
		}
		shares := groupShares(out, eligible, d)
		code := d.Deal.Code
		for _, s := range shares {
			if claimed[s.index] {
				continue
			}
			claimed[s.index] = true
			line := &out[s.index]
			line.Discount = money.Min(s.amount, line.Subtotal())
			c := code
			line.AppliedDeal = &c
		}
	}
	return out
}

type share struct {
	index  int
	amount decimal.Decimal
}

func orderDeals(deals []deal.ActiveDeal) []deal.ActiveDeal {
	ordered := make([]deal.ActiveDeal, len(deals))
	copy(ordered, deals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Deal.Priority != ordered[j].Deal.Priority {
			return ordered[i].Deal.Priority > ordered[j].Deal.Priority
		}
		return ordered[i].Deal.Code < ordered[j].Deal.Code
	})
	return ordered
}

// groupShares returns the share of each member line that consumes units of d,
// or nil when the group does not reach the quantity threshold.
func groupShares(lines []cart.Line, eligible []int, d deal.ActiveDeal) []share {
	var members []int
	totalQty := 0
	for _, i := range eligible {
		if d.Qualifies(lines[i].ProductID) {
			members = append(members, i)
			totalQty += lines[i].Quantity
		}
	}

	required := d.Deal.QuantityRequired
	if totalQty < required {
		return nil
	}
	times := totalQty / required
	if limit := d.Deal.TransactionLimit; limit != nil && *limit < times {
		times = max(*limit, 0)
	}
	unitsInDeal := times * required
	if unitsInDeal == 0 {
		return nil
	}

	if d.Deal.Type == deal.TypePercentage {
		return percentageShares(lines, members, unitsInDeal, d.Percentage())
	}
	total := money.Round(d.UnitDiscount().Mul(decimal.NewFromInt(int64(times))))
	return amountShares(lines, members, unitsInDeal, total)
}

// amountShares spreads total over consumed units. Each line gets the
// difference of the rounded running totals before and after its units, so
// shares are never negative and always sum to total.
func amountShares(lines []cart.Line, members []int, unitsInDeal int, total decimal.Decimal) []share {
	perUnit := total.Div(decimal.NewFromInt(int64(unitsInDeal)))
	consumed := 0
	distributed := decimal.Zero

	var shares []share
	for _, i := range members {
		if consumed == unitsInDeal {
			break
		}
		consumed += min(lines[i].Quantity, unitsInDeal-consumed)

		upTo := money.Round(perUnit.Mul(decimal.NewFromInt(int64(consumed))))
		if consumed == unitsInDeal {
			upTo = total
		}
		shares = append(shares, share{index: i, amount: upTo.Sub(distributed)})
		distributed = upTo
	}
	return shares
}

func percentageShares(lines []cart.Line, members []int, unitsInDeal int, pct decimal.Decimal) []share {
	rate := pct.Div(decimal.NewFromInt(100))
	remaining := unitsInDeal

	var shares []share
	for _, i := range members {
		if remaining == 0 {
			break
		}
		units := min(lines[i].Quantity, remaining)
		remaining -= units
		amount := money.Round(money.LineSubtotal(lines[i].UnitPrice, units).Mul(rate))
		shares = append(shares, share{index: i, amount: amount})
	}
	return shares
}
