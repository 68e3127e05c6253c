//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/handler/middleware"
	"store-pickup/tests/common/httptest"
	usecasemock "store-pickup/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	auth := middleware.NewAuthMiddleware(s.mockValidator)

	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role, "store_id": actor.StoreID})
	}
	s.router.GET("/me", auth.RequireAuth(), whoami)
	s.router.GET("/staff", auth.RequireAuth(), auth.RequireStaff(), whoami)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

type whoamiResponse struct {
	UserID  uuid.UUID  `json:"user_id"`
	Role    string     `json:"role"`
	StoreID *uuid.UUID `json:"store_id"`
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("bearer token", func() {
		storeID := uuid.New()
		actor := user.Actor{UserID: uuid.New(), Role: user.RoleOperator, StoreID: &storeID}
		s.mockValidator.EXPECT().ValidateToken("good").Return(actor, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good")

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(actor.UserID, body.UserID)
		s.Equal("operator", body.Role)
		s.Equal(storeID, *body.StoreID)
	})

	s.Run("cookie fallback", func() {
		actor := user.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		s.mockValidator.EXPECT().ValidateToken("from-cookie").Return(actor, nil)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/me", nil,
			[]*http.Cookie{{Name: "access_token", Value: "from-cookie"}}, "")

		var body whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(actor.UserID, body.UserID)
		s.Nil(body.StoreID)
	})

	s.Run("missing token: 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejected token: 401", func() {
		s.mockValidator.EXPECT().ValidateToken("expired").Return(user.Actor{}, errors.New("token is expired"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "expired")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireStaff() {
	storeID := uuid.New()
	cases := []struct {
		name       string
		actor      user.Actor
		expectCode int
	}{
		{name: "customer", actor: user.Actor{UserID: uuid.New(), Role: user.RoleCustomer}, expectCode: http.StatusForbidden},
		{name: "operator", actor: user.Actor{UserID: uuid.New(), Role: user.RoleOperator, StoreID: &storeID}, expectCode: http.StatusOK},
		{name: "admin", actor: user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}, expectCode: http.StatusOK},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockValidator.EXPECT().ValidateToken("token").Return(tc.actor, nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff", nil, "token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}
