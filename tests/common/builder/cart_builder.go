//go:build unit || integration

package builder

import (
	"store-pickup/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func NewLine(productID uuid.UUID, name, unitPrice string, quantity int) cart.Line {
	return cart.Line{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: decimal.RequireFromString(unitPrice),
		Discount:  decimal.Zero,
	}
}

func NewProduct(name, price string) cart.Product {
	p := decimal.RequireFromString(price)
	return cart.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     &p,
		Available: true,
	}
}

type CartBuilder struct {
	UserID uuid.UUID
	Store  *cart.StoreRef
	Lines  []cart.Line
	Seq    uint64
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{UserID: uuid.New()}
}

func (b *CartBuilder) WithUser(id uuid.UUID) *CartBuilder {
	b.UserID = id
	return b
}

func (b *CartBuilder) WithStore(id uuid.UUID, taxRate string) *CartBuilder {
	b.Store = &cart.StoreRef{ID: id, TaxRate: decimal.RequireFromString(taxRate)}
	return b
}

func (b *CartBuilder) WithLine(l cart.Line) *CartBuilder {
	b.Lines = append(b.Lines, l)
	return b
}

func (b *CartBuilder) WithSeq(seq uint64) *CartBuilder {
	b.Seq = seq
	return b
}

func (b *CartBuilder) BuildSnapshot() cart.Snapshot {
	lines := make([]cart.Line, len(b.Lines))
	copy(lines, b.Lines)
	return cart.Snapshot{
		UserID: b.UserID,
		Store:  b.Store,
		Lines:  lines,
		Seq:    b.Seq,
	}
}

func (b *CartBuilder) BuildDomain() *cart.Cart {
	return cart.Restore(b.BuildSnapshot())
}
