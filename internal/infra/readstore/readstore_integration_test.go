//go:build integration

package readstore_test

import (
	"context"
	"testing"
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/infra"
	"store-pickup/internal/infra/readstore"
	"store-pickup/internal/usecase/queries"
	"store-pickup/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReadStoreSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	ctx  context.Context
}

func TestReadStoreSuite(t *testing.T) {
	suite.Run(t, new(ReadStoreSuite))
}

func (s *ReadStoreSuite) SetupSuite() {
	s.pool, _ = dbtest.NewDatabase(s.T())
	s.ctx = context.Background()
}

func (s *ReadStoreSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
}

func strPtr(s string) *string { return &s }

// =============================================================================
// Catalog
// =============================================================================

func (s *ReadStoreSuite) TestCatalog_StoresAndProducts() {
	t := s.T()
	rs := readstore.NewCatalogReadStore(s.pool)

	uptown := dbtest.CreateStore(t, s.pool, "Uptown", "0.0700")
	downtown := dbtest.CreateStore(t, s.pool, "Downtown", "0.0825")

	drinks := dbtest.CreateCategory(t, s.pool, "Drinks", 1)
	snacks := dbtest.CreateCategory(t, s.pool, "Snacks", 2)
	coffee := dbtest.CreateProduct(t, s.pool, "Coffee", &drinks)
	chips := dbtest.CreateProduct(t, s.pool, "Chips", &snacks)
	loose := dbtest.CreateProduct(t, s.pool, "Ice", nil)

	dbtest.StockProduct(t, s.pool, uptown, coffee, "2.00", true)
	dbtest.StockProduct(t, s.pool, uptown, chips, "1.50", false)
	dbtest.StockProduct(t, s.pool, uptown, loose, "3.25", true)
	dbtest.StockProduct(t, s.pool, downtown, coffee, "2.25", true)

	s.Run("stores are ordered by name", func() {
		stores, err := rs.ListStores(s.ctx)
		require.NoError(t, err)
		require.Len(t, stores, 2)
		assert.Equal(t, "Downtown", stores[0].Name)
		assert.True(t, stores[0].TaxRate.Equal(decimal.RequireFromString("0.0825")))
	})

	s.Run("unknown store is not found", func() {
		_, err := rs.FindStore(s.ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("categories are ordered by sort order", func() {
		cats, err := rs.ListCategories(s.ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Drinks", cats[0].Name)
		assert.Equal(t, "Snacks", cats[1].Name)
	})

	s.Run("store products carry the store price", func() {
		products, err := rs.ListStoreProducts(s.ctx, uptown, nil)
		require.NoError(t, err)
		require.Len(t, products, 3)

		assert.Equal(t, "Chips", products[0].Name)
		assert.False(t, products[0].Available)
		assert.Equal(t, "Snacks", *products[0].CategoryName)

		assert.Equal(t, "Ice", products[2].Name)
		assert.Nil(t, products[2].CategoryID)

		down, err := rs.FindStoreProduct(s.ctx, downtown, coffee)
		require.NoError(t, err)
		assert.Equal(t, "2.25", down.Price.StringFixed(2))
	})

	s.Run("category filter", func() {
		products, err := rs.ListStoreProducts(s.ctx, uptown, &drinks)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, coffee, products[0].ID)
	})

	s.Run("lookup by ids skips products the store does not sell", func() {
		products, err := rs.FindStoreProductsByIDs(s.ctx, downtown, []uuid.UUID{coffee, chips})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, coffee, products[0].ID)
	})

	s.Run("product not sold at store is not found", func() {
		_, err := rs.FindStoreProduct(s.ctx, downtown, chips)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

// =============================================================================
// Deals
// =============================================================================

func (s *ReadStoreSuite) TestDeal_FindActiveByStore() {
	t := s.T()
	rs := readstore.NewDealReadStore(s.pool)

	store := dbtest.CreateStore(t, s.pool, "Uptown", "0.0700")
	other := dbtest.CreateStore(t, s.pool, "Downtown", "0.0700")
	coffee := dbtest.CreateProduct(t, s.pool, "Coffee", nil)
	tea := dbtest.CreateProduct(t, s.pool, "Tea", nil)

	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	limit := 2

	dbtest.CreateDeal(t, s.pool, dbtest.DealFixture{
		Code: "COFFEE2", QuantityRequired: 2, DiscountAmount: strPtr("1.00"), Priority: 5,
		TransactionLimit: &limit, StartDate: june, EndDate: june.AddDate(0, 0, 29), Active: true,
		ProductIDs: []uuid.UUID{coffee, tea},
	})
	dbtest.CreateDeal(t, s.pool, dbtest.DealFixture{
		Code: "TEA10", Type: "percentage", QuantityRequired: 1, DiscountPercentage: strPtr("10"), Priority: 1,
		StartDate: june, EndDate: june.AddDate(0, 0, 29), Active: true, ProductIDs: []uuid.UUID{tea},
	})
	dbtest.CreateDeal(t, s.pool, dbtest.DealFixture{
		Code: "MAY", QuantityRequired: 1, DiscountAmount: strPtr("0.50"),
		StartDate: june.AddDate(0, -1, 0), EndDate: june.AddDate(0, 0, -1), Active: true, ProductIDs: []uuid.UUID{tea},
	})
	dbtest.CreateDeal(t, s.pool, dbtest.DealFixture{
		Code: "BROKEN", Type: "percentage", QuantityRequired: 1, DiscountPercentage: strPtr("150"),
		StartDate: june, EndDate: june, Active: true, ProductIDs: []uuid.UUID{tea},
	})
	dbtest.CreateDeal(t, s.pool, dbtest.DealFixture{
		Code: "PAUSED", QuantityRequired: 1, DiscountAmount: strPtr("0.50"),
		StartDate: june, EndDate: june, Active: true, ProductIDs: []uuid.UUID{tea},
	})

	dbtest.OfferDeal(t, s.pool, store, "COFFEE2", strPtr("1.25"), true)
	dbtest.OfferDeal(t, s.pool, store, "TEA10", nil, true)
	dbtest.OfferDeal(t, s.pool, store, "MAY", nil, true)
	dbtest.OfferDeal(t, s.pool, store, "BROKEN", nil, true)
	dbtest.OfferDeal(t, s.pool, store, "PAUSED", nil, false)
	dbtest.OfferDeal(t, s.pool, other, "TEA10", nil, true)

	deals, err := rs.FindActiveByStore(s.ctx, store, june)
	require.NoError(t, err)
	require.Len(t, deals, 2, "expired, malformed and store-paused deals are excluded")

	first := deals[0]
	assert.Equal(t, "COFFEE2", first.Deal.Code)
	require.NotNil(t, first.StoreOverride)
	assert.Equal(t, "1.25", first.StoreOverride.StringFixed(2))
	require.NotNil(t, first.Deal.TransactionLimit)
	assert.Equal(t, 2, *first.Deal.TransactionLimit)
	assert.ElementsMatch(t, []uuid.UUID{coffee, tea}, first.ProductIDs)

	second := deals[1]
	assert.Equal(t, "TEA10", second.Deal.Code)
	assert.Nil(t, second.StoreOverride)
	require.NotNil(t, second.Deal.DiscountPercentage)
	assert.True(t, second.Deal.DiscountPercentage.Equal(decimal.NewFromInt(10)))

	s.Run("end date is inclusive", func() {
		deals, err := rs.FindActiveByStore(s.ctx, store, june.AddDate(0, 0, 29))
		require.NoError(t, err)
		assert.Len(t, deals, 2)
	})

	s.Run("after the window nothing is active", func() {
		deals, err := rs.FindActiveByStore(s.ctx, store, june.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Empty(t, deals)
	})
}

// =============================================================================
// Orders
// =============================================================================

func (s *ReadStoreSuite) TestOrder_FindAndList() {
	t := s.T()
	rs := readstore.NewOrderReadStore(s.pool)

	store := dbtest.CreateStore(t, s.pool, "Uptown", "0.0700")
	other := dbtest.CreateStore(t, s.pool, "Downtown", "0.0700")
	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// five orders for alice, newest last
	var aliceOrders []uuid.UUID
	for i, status := range []string{"completed", "placed", "preparing", "ready", "placed"} {
		aliceOrders = append(aliceOrders,
			dbtest.CreateOrder(t, s.pool, alice, store, status, base.Add(time.Duration(i)*time.Minute)))
	}
	bobOrder := dbtest.CreateOrder(t, s.pool, bob, other, "placed", base)

	s.Run("find by id decodes the snapshot", func() {
		v, err := rs.FindByID(s.ctx, aliceOrders[0])
		require.NoError(t, err)
		assert.Equal(t, "Uptown", v.StoreName)
		assert.Equal(t, order.StatusCompleted, v.Status)
		assert.Equal(t, "6.42", v.Total.StringFixed(2))
		require.Len(t, v.Items, 1)
		assert.Equal(t, 4, v.Items[0].Quantity)
		require.NotNil(t, v.Items[0].AppliedDeal)
		assert.Equal(t, "COFFEE2", *v.Items[0].AppliedDeal)
		assert.True(t, v.IsASAP())
	})

	s.Run("missing order is not found", func() {
		_, err := rs.FindByID(s.ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("keyset pages newest first", func() {
		page1, err := rs.List(s.ctx, queries.OrderListParams{UserID: &alice, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page1, 2)
		assert.Equal(t, aliceOrders[4], page1[0].ID)
		assert.Equal(t, aliceOrders[3], page1[1].ID)

		last := page1[1]
		page2, err := rs.List(s.ctx, queries.OrderListParams{
			UserID: &alice, AfterCreatedAt: &last.CreatedAt, AfterID: &last.ID, Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, page2, 3)
		assert.Equal(t, aliceOrders[2], page2[0].ID)
		assert.Equal(t, aliceOrders[0], page2[2].ID)
	})

	s.Run("status filter", func() {
		active, err := rs.List(s.ctx, queries.OrderListParams{
			UserID: &alice, Statuses: order.ActiveStatuses(), Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, active, 4)
		for _, v := range active {
			assert.True(t, v.Status.IsActive())
		}
	})

	s.Run("store filter", func() {
		views, err := rs.List(s.ctx, queries.OrderListParams{StoreID: &other, Limit: 10})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, bobOrder, views[0].ID)
	})
}

// =============================================================================
// Payment methods
// =============================================================================

func (s *ReadStoreSuite) TestPaymentMethod_ListAndFind() {
	t := s.T()
	rs := readstore.NewPaymentMethodReadStore(s.pool)

	user := uuid.New()
	first := dbtest.CreatePaymentMethod(t, s.pool, user, "1111", false)
	def := dbtest.CreatePaymentMethod(t, s.pool, user, "4242", true)
	dbtest.CreatePaymentMethod(t, s.pool, uuid.New(), "9999", true)

	list, err := rs.ListByUser(s.ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, def, list[0].ID, "default sorts first")
	assert.Equal(t, first, list[1].ID)

	snap, err := rs.FindByID(s.ctx, def)
	require.NoError(t, err)
	assert.Equal(t, user, snap.UserID)
	assert.Equal(t, "pm_4242", snap.ProviderRef)
	assert.True(t, snap.IsDefault)

	_, err = rs.FindByID(s.ctx, uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

// =============================================================================
// Idempotency
// =============================================================================

func (s *ReadStoreSuite) TestIdempotency_Get() {
	t := s.T()
	key, user := uuid.New(), uuid.New()

	_, err := s.pool.Exec(s.ctx, `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, expires_at)
VALUES ($1, $2, 'POST /checkout', 'hash', $3)`, key, user, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	s.Run("live key", func() {
		rs := readstore.NewIdempotencyReadStore(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
		rec, err := rs.Get(s.ctx, s.pool, key, user)
		require.NoError(t, err)
		assert.Equal(t, "processing", rec.Status)
		assert.Equal(t, "hash", rec.RequestHash)
		assert.Nil(t, rec.ResultOrderID)
	})

	s.Run("expired key reads as missing", func() {
		rs := readstore.NewIdempotencyReadStore(func() time.Time { return time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC) })
		_, err := rs.Get(s.ctx, s.pool, key, user)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("keys are scoped per user", func() {
		rs := readstore.NewIdempotencyReadStore(nil)
		_, err := rs.Get(s.ctx, s.pool, key, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
