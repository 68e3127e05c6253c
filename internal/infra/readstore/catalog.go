package readstore

import (
	"context"

	"store-pickup/internal/infra"
	"store-pickup/internal/infra/db"
	"store-pickup/internal/pkg/pgconv"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectStore = `SELECT id, name, address, tax_rate FROM stores`

	selectStoreProduct = `
SELECT p.id, p.name, p.category_id, c.name, p.image_url, sp.price, sp.available
FROM store_products sp
JOIN products p ON p.id = sp.product_id
LEFT JOIN categories c ON c.id = p.category_id`
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

func (r *CatalogReadStore) ListStores(ctx context.Context) ([]*queries.StoreView, error) {
	rows, err := r.db.Query(ctx, selectStore+` ORDER BY name, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stores", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.StoreView, error) {
		return scanStore(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan stores", err)
	}
	return out, nil
}

func (r *CatalogReadStore) FindStore(ctx context.Context, id uuid.UUID) (*queries.StoreView, error) {
	v, err := scanStore(r.db.QueryRow(ctx, selectStore+` WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("store not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get store", err)
	}
	return v, nil
}

func (r *CatalogReadStore) ListCategories(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, sort_order FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CategoryView, error) {
		var v queries.CategoryView
		err := row.Scan(&v.ID, &v.Name, &v.SortOrder)
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan categories", err)
	}
	return out, nil
}

func (r *CatalogReadStore) ListStoreProducts(ctx context.Context, storeID uuid.UUID, categoryID *uuid.UUID) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, selectStoreProduct+`
WHERE sp.store_id = $1 AND ($2::uuid IS NULL OR p.category_id = $2)
ORDER BY p.name, p.id`, storeID, pgconv.UUIDPtrToPgtype(categoryID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list store products", err)
	}
	return collectProducts(rows)
}

func (r *CatalogReadStore) FindStoreProductsByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, selectStoreProduct+`
WHERE sp.store_id = $1 AND sp.product_id = ANY($2)
ORDER BY p.name, p.id`, storeID, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get store products by ids", err)
	}
	return collectProducts(rows)
}

func (r *CatalogReadStore) FindStoreProduct(ctx context.Context, storeID, productID uuid.UUID) (*queries.ProductView, error) {
	v, err := scanProduct(r.db.QueryRow(ctx, selectStoreProduct+`
WHERE sp.store_id = $1 AND sp.product_id = $2`, storeID, productID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not sold at store", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get store product", err)
	}
	return v, nil
}

func collectProducts(rows pgx.Rows) ([]*queries.ProductView, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ProductView, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan store products", err)
	}
	return out, nil
}

func scanStore(row pgx.Row) (*queries.StoreView, error) {
	var (
		v    queries.StoreView
		rate pgtype.Numeric
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Address, &rate); err != nil {
		return nil, err
	}
	d, err := pgconv.DecimalFromNumeric(rate)
	if err != nil {
		return nil, err
	}
	v.TaxRate = d
	return &v, nil
}

func scanProduct(row pgx.Row) (*queries.ProductView, error) {
	var (
		v          queries.ProductView
		categoryID pgtype.UUID
		category   pgtype.Text
		image      pgtype.Text
		price      pgtype.Numeric
	)
	if err := row.Scan(&v.ID, &v.Name, &categoryID, &category, &image, &price, &v.Available); err != nil {
		return nil, err
	}
	d, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, err
	}
	v.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	v.CategoryName = pgconv.StringPtrFromPgtype(category)
	v.ImageURL = pgconv.StringPtrFromPgtype(image)
	v.Price = d
	return &v, nil
}
