package queries

import (
	"context"

	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/errs"

	"github.com/google/uuid"
)

type CatalogReadStore interface {
	ListStores(ctx context.Context) ([]*StoreView, error)
	FindStore(ctx context.Context, id uuid.UUID) (*StoreView, error)
	ListCategories(ctx context.Context) ([]*CategoryView, error)
	ListStoreProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID) ([]*ProductView, error)
	FindStoreProductsByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]*ProductView, error)
	FindStoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductView, error)
}

type CatalogQueries interface {
	ListStores(ctx context.Context) ([]*StoreView, error)
	ListCategories(ctx context.Context) ([]*CategoryView, error)
	ListProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID) ([]*ProductView, error)
	GetStoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListStores(ctx context.Context) ([]*StoreView, error) {
	return q.store.ListStores(ctx)
}

func (q *catalogQueriesImpl) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	return q.store.ListCategories(ctx)
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID) ([]*ProductView, error) {
	if _, err := q.store.FindStore(ctx, storeID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrStoreNotFound
		}
		return nil, err
	}
	return q.store.ListStoreProducts(ctx, storeID, categoryID)
}

func (q *catalogQueriesImpl) GetStoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductView, error) {
	p, err := q.store.FindStoreProduct(ctx, storeID, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}
