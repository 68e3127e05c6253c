package response

import (
	"time"

	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
)

type StoreResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	TaxRate string    `json:"taxRate"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int32     `json:"sortOrder"`
}

type ProductResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName *string    `json:"categoryName,omitempty"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	Price        string     `json:"price"`
	Available    bool       `json:"available"`
}

type DealResponse struct {
	Code               string             `json:"code"`
	Description        string             `json:"description"`
	Type               string             `json:"type"`
	QuantityRequired   int                `json:"quantityRequired"`
	DiscountAmount     *string            `json:"discountAmount,omitempty"`
	DiscountPercentage *string            `json:"discountPercentage,omitempty"`
	TransactionLimit   *int               `json:"transactionLimit,omitempty"`
	StartDate          string             `json:"startDate"`
	EndDate            string             `json:"endDate"`
	Products           []*ProductResponse `json:"products"`
}

func FromStoreView(v *queries.StoreView) *StoreResponse {
	return &StoreResponse{
		ID:      v.ID,
		Name:    v.Name,
		Address: v.Address,
		TaxRate: v.TaxRate.String(),
	}
}

func FromCategoryView(v *queries.CategoryView) *CategoryResponse {
	return &CategoryResponse{
		ID:        v.ID,
		Name:      v.Name,
		SortOrder: v.SortOrder,
	}
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:           v.ID,
		Name:         v.Name,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		ImageURL:     v.ImageURL,
		Price:        amount(v.Price),
		Available:    v.Available,
	}
}

func FromDealView(v *queries.DealView) *DealResponse {
	products := make([]*ProductResponse, 0, len(v.Products))
	for _, p := range v.Products {
		products = append(products, FromProductView(p))
	}
	return &DealResponse{
		Code:               v.Code,
		Description:        v.Description,
		Type:               v.Type,
		QuantityRequired:   v.QuantityRequired,
		DiscountAmount:     optionalAmount(v.DiscountAmount),
		DiscountPercentage: optionalAmount(v.DiscountPercentage),
		TransactionLimit:   v.TransactionLimit,
		StartDate:          v.StartDate.Format(time.DateOnly),
		EndDate:            v.EndDate.Format(time.DateOnly),
		Products:           products,
	}
}

func mapViews[V any, R any](vs []V, fn func(V) R) []R {
	out := make([]R, 0, len(vs))
	for _, v := range vs {
		out = append(out, fn(v))
	}
	return out
}

func FromStoreViews(vs []*queries.StoreView) []*StoreResponse {
	return mapViews(vs, FromStoreView)
}

func FromCategoryViews(vs []*queries.CategoryView) []*CategoryResponse {
	return mapViews(vs, FromCategoryView)
}

func FromProductViews(vs []*queries.ProductView) []*ProductResponse {
	return mapViews(vs, FromProductView)
}

func FromDealViews(vs []*queries.DealView) []*DealResponse {
	return mapViews(vs, FromDealView)
}
