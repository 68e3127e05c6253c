//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateStore(t *testing.T, db DBLike, name, taxRate string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO stores (name, address, tax_rate) VALUES ($1, $2, $3::numeric) RETURNING id",
		name, name+" address", taxRate).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateCategory(t *testing.T, db DBLike, name string, sortOrder int) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO categories (name, sort_order) VALUES ($1, $2) RETURNING id",
		name, sortOrder).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateProduct(t *testing.T, db DBLike, name string, categoryID *uuid.UUID) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO products (name, category_id) VALUES ($1, $2) RETURNING id",
		name, categoryID).Scan(&id)
	require.NoError(t, err)
	return id
}

// StockProduct lists productID at storeID for price.
func StockProduct(t *testing.T, db DBLike, storeID, productID uuid.UUID, price string, available bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO store_products (store_id, product_id, price, available) VALUES ($1, $2, $3::numeric, $4)",
		storeID, productID, price, available)
	require.NoError(t, err)
}

type DealFixture struct {
	Code               string
	Type               string
	QuantityRequired   int
	DiscountAmount     *string
	DiscountPercentage *string
	Priority           int
	TransactionLimit   *int
	StartDate          time.Time
	EndDate            time.Time
	Active             bool
	ProductIDs         []uuid.UUID
}

func CreateDeal(t *testing.T, db DBLike, d DealFixture) {
	t.Helper()

	ctx := context.Background()
	typ := d.Type
	if typ == "" {
		typ = "amount"
	}
	_, err := db.Exec(ctx, `
INSERT INTO deals (code, description, type, quantity_required, discount_amount, discount_percentage,
                   priority, transaction_limit, start_date, end_date, active)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9::date, $10::date, $11)`,
		d.Code, d.Code+" deal", typ, d.QuantityRequired, d.DiscountAmount, d.DiscountPercentage,
		d.Priority, d.TransactionLimit, d.StartDate.Format(time.DateOnly), d.EndDate.Format(time.DateOnly), d.Active)
	require.NoError(t, err)

	for _, pid := range d.ProductIDs {
		_, err := db.Exec(ctx, "INSERT INTO deal_products (deal_code, product_id) VALUES ($1, $2)", d.Code, pid)
		require.NoError(t, err)
	}
}

// OfferDeal makes a deal available at a store, optionally overriding its discount.
func OfferDeal(t *testing.T, db DBLike, storeID uuid.UUID, code string, override *string, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO store_deals (store_id, deal_code, discount_override, active) VALUES ($1, $2, $3::numeric, $4)",
		storeID, code, override, active)
	require.NoError(t, err)
}

func CreatePaymentMethod(t *testing.T, db DBLike, userID uuid.UUID, last4 string, isDefault bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
INSERT INTO payment_methods (user_id, provider_ref, brand, last4, is_default)
VALUES ($1, $2, 'visa', $3, $4) RETURNING id`,
		userID, "pm_"+last4, last4, isDefault).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateOrder inserts a one-line order totalling 6.42 directly.
func CreateOrder(t *testing.T, db DBLike, userID, storeID uuid.UUID, status string, createdAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	items := fmt.Sprintf(`[{"product_id":%q,"name":"Coffee","quantity":4,"unit_price":"2.00","discount":"2.00","applied_deal":"COFFEE2"}]`, uuid.New().String())
	_, err := db.Exec(context.Background(), `
INSERT INTO orders (id, user_id, store_id, payment_ref, items, subtotal, discount, tax, total,
                    instructions, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::jsonb, 8.00, 2.00, 0.42, 6.42, '', $6, $7, $7)`,
		id, userID, storeID, "pay_"+id.String()[:8], items, status, createdAt)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
