package response

import (
	"store-pickup/internal/pkg/money"

	"github.com/shopspring/decimal"
)

// amounts leave the API as fixed two-place strings
func amount(d decimal.Decimal) string {
	return d.StringFixed(money.CurrencyPlaces)
}

func optionalAmount(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func FromTotals(t money.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: amount(t.Subtotal),
		Discount: amount(t.Discount),
		Tax:      amount(t.Tax),
		Total:    amount(t.Total),
	}
}
