//go:build e2e

package checkout_test

import (
	"net/http"
	"testing"
	"time"

	"store-pickup/internal/handler/dto/request"
	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/tests/common/dbtest"
	"store-pickup/tests/common/httptest"
	"store-pickup/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type checkoutSuite struct {
	e2e.SharedSuite

	storeID  uuid.UUID
	coffeeID uuid.UUID
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(checkoutSuite))
}

func (s *checkoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.storeID = dbtest.CreateStore(t, s.DB, "Uptown", "0.0700")
	s.coffeeID = dbtest.CreateProduct(t, s.DB, "Coffee", nil)
	dbtest.StockProduct(t, s.DB, s.storeID, s.coffeeID, "2.00", true)

	amount := "1.00"
	today := time.Now().UTC()
	dbtest.CreateDeal(t, s.DB, dbtest.DealFixture{
		Code: "COFFEE2", QuantityRequired: 2, DiscountAmount: &amount, Priority: 1,
		StartDate: today.AddDate(0, 0, -1), EndDate: today.AddDate(0, 0, 1), Active: true,
		ProductIDs: []uuid.UUID{s.coffeeID},
	})
	dbtest.OfferDeal(t, s.DB, s.storeID, "COFFEE2", nil, true)
}

// fillCart selects the store and adds four coffees.
func (s *checkoutSuite) fillCart(token string) resdto.CartResponse {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/cart/store",
		request.SelectStoreRequest{StoreID: s.storeID}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cart resdto.CartResponse
	for range 4 {
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items",
			request.AddCartItemRequest{ProductID: s.coffeeID}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
	return cart
}

func (s *checkoutSuite) checkout(token string, key string, methodID uuid.UUID) (int, resdto.OrderResponse) {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/checkout",
		request.CheckoutRequest{PaymentMethodID: methodID}, token,
		map[string]string{"Idempotency-Key": key})

	var out resdto.OrderResponse
	if w.Code < http.StatusBadRequest {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &out))
	}
	return w.Code, out
}

func (s *checkoutSuite) TestPickupFlow() {
	s.Run("cart pricing, checkout, replay and fulfilment", func() {
		t := s.T()
		customer := uuid.New()
		token := s.JWT.CustomerToken(t, customer)
		methodID := dbtest.CreatePaymentMethod(t, s.DB, customer, "4242", true)

		cart := s.fillCart(token)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 4, cart.Lines[0].Quantity)
		assert.Equal(t, "2.00", cart.Lines[0].Discount)
		assert.Equal(t, resdto.TotalsResponse{Subtotal: "8.00", Discount: "2.00", Tax: "0.42", Total: "6.42"}, cart.Totals)

		key := uuid.New().String()
		status, placed := s.checkout(token, key, methodID)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "placed", placed.Status)
		assert.Equal(t, "6.42", placed.Totals.Total)
		assert.True(t, placed.ASAP)
		assert.Equal(t, 1, s.Payments.Captures())

		status, replay := s.checkout(token, key, methodID)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, placed.ID, replay.ID)
		assert.Equal(t, 1, s.Payments.Captures(), "replay must not capture again")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/cart", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var emptied resdto.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &emptied))
		assert.Empty(t, emptied.Lines)

		operator := s.JWT.OperatorToken(t, uuid.New(), s.storeID)
		for _, next := range []string{"preparing", "ready", "completed"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPatch, "/api/orders/"+placed.ID.String()+"/status",
				request.UpdateOrderStatusRequest{Status: next}, operator)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, "/api/orders/"+placed.ID.String()+"/status",
			request.UpdateOrderStatusRequest{Status: "placed"}, operator)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/orders?status=active", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var active resdto.OrderListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &active))
		assert.Empty(t, active.Items)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/orders/"+placed.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var final resdto.OrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &final))
		assert.Equal(t, "completed", final.Status)
	})

	s.Run("declined payment keeps the cart", func() {
		t := s.T()
		customer := uuid.New()
		token := s.JWT.CustomerToken(t, customer)
		methodID := dbtest.CreatePaymentMethod(t, s.DB, customer, "0002", true)
		s.Payments.DeclineMethod("pm_0002")

		s.fillCart(token)
		status, _ := s.checkout(token, uuid.New().String(), methodID)
		assert.Equal(t, http.StatusPaymentRequired, status)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/cart", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var cart resdto.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 4, cart.Lines[0].Quantity)
	})

	s.Run("customers cannot see other customers' orders", func() {
		t := s.T()
		owner := uuid.New()
		ownerToken := s.JWT.CustomerToken(t, owner)
		methodID := dbtest.CreatePaymentMethod(t, s.DB, owner, "4242", true)

		s.fillCart(ownerToken)
		status, placed := s.checkout(ownerToken, uuid.New().String(), methodID)
		require.Equal(t, http.StatusCreated, status)

		stranger := s.JWT.CustomerToken(t, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/orders/"+placed.ID.String(), nil, stranger)
		assert.Equal(t, http.StatusNotFound, w.Code, "existence is hidden")

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, "/api/orders/"+placed.ID.String()+"/status",
			request.UpdateOrderStatusRequest{Status: "preparing"}, stranger)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("expired token is rejected", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/cart", nil, s.JWT.CreateExpiredToken(t, uuid.New()))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
