//go:build unit

package money_test

import (
	"testing"

	"store-pickup/internal/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name                         string
		subtotal, discount, rate     string
		wantDiscount, wantTax, total string
	}{
		{name: "coffee scenario", subtotal: "8.00", discount: "2.00", rate: "0.07", wantDiscount: "2", wantTax: "0.42", total: "6.42"},
		{name: "zero rate", subtotal: "10.00", discount: "1.50", rate: "0", wantDiscount: "1.5", wantTax: "0", total: "8.5"},
		{name: "discount clamped to subtotal", subtotal: "3.00", discount: "5.00", rate: "0.1", wantDiscount: "3", wantTax: "0", total: "0"},
		{name: "half rounds away from zero", subtotal: "0.50", discount: "0", rate: "0.05", wantDiscount: "0", wantTax: "0.03", total: "0.53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.ComputeTotals(d(tt.subtotal), d(tt.discount), d(tt.rate))
			assert.True(t, d(tt.wantDiscount).Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, d(tt.wantTax).Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, d(tt.total).Equal(got.Total), "total %s", got.Total)
			assert.True(t, got.Subtotal.Sub(got.Discount).Add(got.Tax).Equal(got.Total))
		})
	}
}

func TestLineSubtotal(t *testing.T) {
	assert.True(t, d("8.00").Equal(money.LineSubtotal(d("2.00"), 4)))
	assert.True(t, decimal.Zero.Equal(money.LineSubtotal(d("2.00"), 0)))
}
