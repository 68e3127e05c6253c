// Package money holds currency arithmetic shared by carts and orders.
// Amounts are decimal.Decimal values in the store currency; rounding happens
// only at the currency boundary (2 places, half away from zero).
package money

import (
	"github.com/shopspring/decimal"
)

const CurrencyPlaces = 2

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ComputeTotals applies tax to the discounted amount. The discount never
// exceeds the subtotal.
func ComputeTotals(subtotal, discount, taxRate decimal.Decimal) Totals {
	subtotal = Round(subtotal)
	discount = Round(discount)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	taxable := subtotal.Sub(discount)
	tax := Round(taxable.Mul(taxRate))
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
