//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/handler/api"
	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/commands"
	"store-pickup/tests/common/builder"
	"store-pickup/tests/common/httptest"
	"store-pickup/tests/common/testutil"
	commandsmock "store-pickup/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	actor        user.Actor
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	handler := api.NewCheckoutHandler(s.mockCommands)
	s.actor = customer()

	s.router.POST("/checkout", fakeAuth(&s.actor), handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) checkout(body any, key string) *nethttptest.ResponseRecorder {
	headers := map[string]string{}
	if key != "" {
		headers["Idempotency-Key"] = key
	}
	return httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/checkout", body, bearer, headers)
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	methodID := uuid.New()
	key := uuid.New()
	base := map[string]any{
		"payment_method_id": methodID,
		"instructions":      "  no lid  ",
	}

	s.Run("success: 201 with trimmed instructions and ASAP pickup", func() {
		view := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), s.actor.UserID, commands.CheckoutParams{
				PaymentMethodID: methodID,
				Instructions:    "no lid",
			}, key).
			Return(&commands.CheckoutResult{Order: view}, nil)

		rec := s.checkout(base, key.String())

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.True(body.ASAP)
		s.Equal("6.42", body.Totals.Total)
	})

	s.Run("replay: 200", func() {
		view := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
		s.mockCommands.EXPECT().Checkout(gomock.Any(), s.actor.UserID, gomock.Any(), key).
			Return(&commands.CheckoutResult{Order: view, IsReplayed: true}, nil)

		rec := s.checkout(base, key.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("missing idempotency key: 400", func() {
		rec := s.checkout(base, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key required")
	})

	s.Run("malformed idempotency key: 400", func() {
		rec := s.checkout(base, "abc")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key")
	})

	s.Run("missing payment method: 400", func() {
		rec := s.checkout(testutil.DtoMap(s.T(), base, testutil.Field("payment_method_id", nil)), key.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("instructions too long: 422", func() {
		rec := s.checkout(testutil.DtoMap(s.T(), base, testutil.Field("instructions", strings.Repeat("a", 501))), key.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "too long")
	})

	cases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "empty cart", err: commands.ErrEmptyCart, expectCode: http.StatusUnprocessableEntity, expectMsg: "Cart is empty"},
		{name: "no store", err: commands.ErrNoStoreSelected, expectCode: http.StatusUnprocessableEntity, expectMsg: "Select a store first"},
		{name: "pickup in the past", err: errs.Mark(errors.New("pickup time cannot be in the past"), commands.ErrInvalidInput), expectCode: http.StatusUnprocessableEntity, expectMsg: "Invalid checkout request"},
		{name: "unknown payment method", err: commands.ErrPaymentMethodNotFound, expectCode: http.StatusNotFound, expectMsg: "Payment method not found"},
		{name: "declined", err: errs.Wrap(errs.ErrPaymentDeclined, "capture"), expectCode: http.StatusPaymentRequired, expectMsg: "Payment declined"},
		{name: "provider down", err: errs.ErrPaymentUnavailable, expectCode: http.StatusServiceUnavailable, expectMsg: "Payment provider unavailable"},
		{name: "key reused", err: commands.ErrDuplicateCheckout, expectCode: http.StatusConflict, expectMsg: "different parameters"},
		{name: "key in flight", err: commands.ErrIdempotencyInProgress, expectCode: http.StatusConflict, expectMsg: "currently being processed"},
		{name: "unexpected", err: errors.New("boom"), expectCode: http.StatusInternalServerError, expectMsg: "Checkout failed"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Checkout(gomock.Any(), s.actor.UserID, gomock.Any(), key).Return(nil, tc.err)

			rec := s.checkout(base, key.String())
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("captured but not recorded: 500 carries the payment reference", func() {
		orderID := uuid.New()
		s.mockCommands.EXPECT().Checkout(gomock.Any(), s.actor.UserID, gomock.Any(), key).
			Return(nil, &commands.OrderNotRecordedError{
				PaymentRef: "pay_123",
				OrderID:    orderID,
				Err:        errs.Mark(errors.New("insert failed"), commands.ErrOrderPersistence),
			})

		rec := s.checkout(base, key.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Payment was captured")

		var body struct {
			Detail struct {
				PaymentRef string    `json:"payment_ref"`
				OrderID    uuid.UUID `json:"order_id"`
			} `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("pay_123", body.Detail.PaymentRef)
		s.Equal(orderID, body.Detail.OrderID)
	})
}
