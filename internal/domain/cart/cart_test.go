//go:build unit

package cart_test

import (
	"testing"

	"store-pickup/internal/domain/cart"
	"store-pickup/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	t.Run("new product appends a line with quantity 1", func(t *testing.T) {
		c := cart.NewCart(uuid.New())
		p := builder.NewProduct("Coffee", "2.00")

		require.NoError(t, c.AddItem(p))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, p.ID, lines[0].ProductID)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.True(t, lines[0].Discount.IsZero())
		assert.Nil(t, lines[0].AppliedDeal)
		assert.Equal(t, uint64(1), c.Seq())
	})

	t.Run("same product merges into one line", func(t *testing.T) {
		c := cart.NewCart(uuid.New())
		p := builder.NewProduct("Coffee", "2.00")

		require.NoError(t, c.AddItem(p))
		require.NoError(t, c.AddItem(p))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("same name different product stays separate", func(t *testing.T) {
		c := cart.NewCart(uuid.New())
		require.NoError(t, c.AddItem(builder.NewProduct("Coffee", "2.00")))
		require.NoError(t, c.AddItem(builder.NewProduct("Coffee", "2.50")))

		assert.Len(t, c.Lines(), 2)
	})

	t.Run("invalid items are rejected without mutation", func(t *testing.T) {
		noName := builder.NewProduct("", "2.00")
		noPrice := builder.NewProduct("Coffee", "2.00")
		noPrice.Price = nil
		negative := builder.NewProduct("Coffee", "-1")
		unavailable := builder.NewProduct("Coffee", "2.00")
		unavailable.Available = false

		tests := []struct {
			name  string
			p     cart.Product
			errIs error
		}{
			{name: "missing name", p: noName, errIs: cart.ErrInvalidItem},
			{name: "missing price", p: noPrice, errIs: cart.ErrInvalidItem},
			{name: "negative price", p: negative, errIs: cart.ErrInvalidItem},
			{name: "unavailable", p: unavailable, errIs: cart.ErrProductUnavailable},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := cart.NewCart(uuid.New())
				assert.ErrorIs(t, c.AddItem(tt.p), tt.errIs)
				assert.True(t, c.IsEmpty())
				assert.Equal(t, uint64(0), c.Seq())
			})
		}
	})
}

func TestCart_ChangeQuantity(t *testing.T) {
	productID := uuid.New()
	newCart := func() *cart.Cart {
		return builder.NewCartBuilder().WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()
	}

	t.Run("positive delta", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.ChangeQuantity(productID, 3))
		l, ok := c.Line(productID)
		require.True(t, ok)
		assert.Equal(t, 5, l.Quantity)
	})

	t.Run("result zero removes the line", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.ChangeQuantity(productID, -2))
		assert.True(t, c.IsEmpty())
	})

	t.Run("result below zero removes the line", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.ChangeQuantity(productID, -7))
		assert.True(t, c.IsEmpty())
	})

	t.Run("unknown product", func(t *testing.T) {
		c := newCart()
		assert.ErrorIs(t, c.ChangeQuantity(uuid.New(), 1), cart.ErrLineNotFound)
	})

	t.Run("zero delta keeps sequence", func(t *testing.T) {
		c := newCart()
		before := c.Seq()
		require.NoError(t, c.ChangeQuantity(productID, 0))
		assert.Equal(t, before, c.Seq())
	})
}

func TestCart_RemoveItem(t *testing.T) {
	productID := uuid.New()
	c := builder.NewCartBuilder().WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()

	c.RemoveItem(uuid.New())
	assert.Len(t, c.Lines(), 1)

	c.RemoveItem(productID)
	assert.True(t, c.IsEmpty())
}

func TestCart_ApplyAllocation(t *testing.T) {
	productID := uuid.New()
	code := "COFFEE2"
	discounted := func(lines []cart.Line) []cart.Line {
		out := make([]cart.Line, len(lines))
		copy(out, lines)
		for i := range out {
			out[i].Discount = decimal.RequireFromString("1.00")
			out[i].AppliedDeal = &code
		}
		return out
	}

	t.Run("current sequence is applied", func(t *testing.T) {
		c := builder.NewCartBuilder().WithStore(uuid.New(), "0").
			WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()

		require.NoError(t, c.ApplyAllocation(c.Seq(), discounted(c.Lines())))
		assert.Equal(t, "1", c.Totals().Discount.String())
	})

	t.Run("older sequence is rejected", func(t *testing.T) {
		c := builder.NewCartBuilder().WithStore(uuid.New(), "0").
			WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()
		staleSeq, staleLines := c.Seq(), c.Lines()

		require.NoError(t, c.ChangeQuantity(productID, 1))

		assert.ErrorIs(t, c.ApplyAllocation(staleSeq, discounted(staleLines)), cart.ErrStaleAllocation)
		assert.True(t, c.Totals().Discount.IsZero())
	})

	t.Run("mismatched lines are rejected", func(t *testing.T) {
		c := builder.NewCartBuilder().WithStore(uuid.New(), "0").
			WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()
		lines := discounted(c.Lines())
		lines[0].Quantity = 9

		assert.ErrorIs(t, c.ApplyAllocation(c.Seq(), lines), cart.ErrStaleAllocation)
	})

	t.Run("cart without store keeps zero discounts", func(t *testing.T) {
		c := builder.NewCartBuilder().WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()

		require.NoError(t, c.ApplyAllocation(c.Seq(), discounted(c.Lines())))
		assert.True(t, c.Totals().Discount.IsZero())
	})
}

func TestCart_Totals(t *testing.T) {
	t.Run("no store means no tax", func(t *testing.T) {
		c := builder.NewCartBuilder().WithLine(builder.NewLine(uuid.New(), "Coffee", "2.00", 3)).BuildDomain()
		totals := c.Totals()
		assert.Equal(t, "6", totals.Subtotal.String())
		assert.True(t, totals.Tax.IsZero())
		assert.Equal(t, "6", totals.Total.String())
	})

	t.Run("clearing the store drops discounts and tax", func(t *testing.T) {
		productID := uuid.New()
		line := builder.NewLine(productID, "Coffee", "2.00", 2)
		line.Discount = decimal.RequireFromString("1")
		c := builder.NewCartBuilder().WithStore(uuid.New(), "0.07").WithLine(line).BuildDomain()

		c.ClearStore()

		totals := c.Totals()
		assert.Nil(t, c.Store())
		assert.True(t, totals.Discount.IsZero())
		assert.True(t, totals.Tax.IsZero())
		assert.Equal(t, "4", totals.Total.String())
	})
}

func TestCart_SnapshotRestore(t *testing.T) {
	productID := uuid.New()
	original := builder.NewCartBuilder().WithStore(uuid.New(), "0.07").
		WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).WithSeq(7).BuildDomain()

	snap := original.Snapshot()
	restored := cart.Restore(snap)

	assert.Equal(t, original.UserID(), restored.UserID())
	assert.Equal(t, uint64(7), restored.Seq())
	assert.Equal(t, original.Lines(), restored.Lines())

	// mutating the snapshot does not leak into the cart
	snap.Lines[0].Quantity = 99
	l, _ := original.Line(productID)
	assert.Equal(t, 2, l.Quantity)
}

func TestCart_Reprice(t *testing.T) {
	productID := uuid.New()
	c := builder.NewCartBuilder().WithLine(builder.NewLine(productID, "Coffee", "2.00", 2)).BuildDomain()

	require.NoError(t, c.Reprice(productID, decimal.RequireFromString("2.25")))
	assert.Equal(t, "4.5", c.Totals().Subtotal.String())
	assert.ErrorIs(t, c.Reprice(uuid.New(), decimal.Zero), cart.ErrLineNotFound)
}
