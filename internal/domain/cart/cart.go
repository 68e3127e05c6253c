package cart

import (
	"errors"
	"time"

	"store-pickup/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItem        = errors.New("item must have a name and a non-negative price")
	ErrProductUnavailable = errors.New("product is not available at this store")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrStaleAllocation    = errors.New("allocation computed for an older cart state")
)

// Cart owns its lines. Every mutation bumps seq so that a discount
// allocation computed for an older state can be recognised and dropped.
type Cart struct {
	userID    uuid.UUID
	store     *StoreRef
	lines     []Line
	seq       uint64
	updatedAt time.Time
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{userID: userID}
}

// AddItem merges by product id; a new line starts at quantity 1.
func (c *Cart) AddItem(p Product) error {
	if p.ID == uuid.Nil || p.Name == "" || p.Price == nil || p.Price.IsNegative() {
		return ErrInvalidItem
	}
	if !p.Available {
		return ErrProductUnavailable
	}

	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity++
		c.lines[i].Name = p.Name
		c.bump()
		return nil
	}

	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: *p.Price,
		Discount:  decimal.Zero,
	})
	c.bump()
	return nil
}

// ChangeQuantity adds a signed delta; a result of zero or less removes the line.
func (c *Cart) ChangeQuantity(productID uuid.UUID, delta int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if delta == 0 {
		return nil
	}
	next := c.lines[i].Quantity + delta
	if next <= 0 {
		c.removeAt(i)
	} else {
		c.lines[i].Quantity = next
	}
	c.bump()
	return nil
}

// RemoveItem is a no-op for products not in the cart.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
		c.bump()
	}
}

func (c *Cart) SelectStore(store StoreRef) {
	c.store = &store
	c.bump()
}

// ClearStore detaches the cart; a cart without a store carries no discounts.
func (c *Cart) ClearStore() {
	c.store = nil
	for i := range c.lines {
		c.lines[i] = c.lines[i].withoutDiscount()
	}
	c.bump()
}

// Reprice sets the unit price of a line, e.g. after switching stores.
func (c *Cart) Reprice(productID uuid.UUID, price decimal.Decimal) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if price.IsNegative() {
		return ErrInvalidItem
	}
	c.lines[i].UnitPrice = price
	c.bump()
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
	c.bump()
}

// ApplyAllocation installs the discounts computed for the state identified by seq.
// The line set must match the current one product for product.
func (c *Cart) ApplyAllocation(seq uint64, allocated []Line) error {
	if seq != c.seq || len(allocated) != len(c.lines) {
		return ErrStaleAllocation
	}
	byProduct := make(map[uuid.UUID]Line, len(allocated))
	for _, l := range allocated {
		byProduct[l.ProductID] = l
	}
	for _, cur := range c.lines {
		a, ok := byProduct[cur.ProductID]
		if !ok || a.Quantity != cur.Quantity || !a.UnitPrice.Equal(cur.UnitPrice) {
			return ErrStaleAllocation
		}
	}
	for i := range c.lines {
		a := byProduct[c.lines[i].ProductID]
		if c.store == nil {
			a = a.withoutDiscount()
		}
		c.lines[i].Discount = a.Discount
		c.lines[i].AppliedDeal = a.AppliedDeal
	}
	return nil
}

func (c *Cart) Totals() money.Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Subtotal())
		discount = discount.Add(l.Discount)
	}
	rate := decimal.Zero
	if c.store != nil {
		rate = c.store.TaxRate
	}
	return money.ComputeTotals(subtotal, discount, rate)
}

func (c *Cart) Touch(now time.Time) {
	c.updatedAt = now
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Line(productID uuid.UUID) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) UserID() uuid.UUID    { return c.userID }
func (c *Cart) Store() *StoreRef     { return c.store }
func (c *Cart) Seq() uint64          { return c.seq }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

func (c *Cart) bump() {
	c.seq++
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
