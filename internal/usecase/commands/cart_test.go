//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/domain/deal"
	"store-pickup/internal/infra"
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/pkg/keylock"
	"store-pickup/internal/usecase/commands"
	"store-pickup/tests/common/builder"
	commandsmock "store-pickup/tests/mock/commands"
	queriesmock "store-pickup/tests/mock/queries"
	sharedmock "store-pickup/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartCommandsTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockCarts *commandsmock.MockCartStore
	mockUoW   *sharedmock.MockUnitOfWork
	mockReads *sharedmock.MockCommandReads
	mockDeals *queriesmock.MockDealResolver
	clock     *clock.MockClock
	useCase   commands.CartCommands

	userID  uuid.UUID
	storeID uuid.UUID
	coffee  uuid.UUID
}

func (s *CartCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCarts = commandsmock.NewMockCartStore(s.mockCtrl)
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockDeals = queriesmock.NewMockDealResolver(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.useCase = commands.NewCartUseCase(s.mockCarts, s.mockUoW, s.mockDeals, keylock.New[uuid.UUID](), s.clock)

	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads).AnyTimes()

	s.userID = uuid.New()
	s.storeID = uuid.New()
	s.coffee = uuid.New()
}

func (s *CartCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartCommandsSuite(t *testing.T) {
	suite.Run(t, new(CartCommandsTestSuite))
}

func (s *CartCommandsTestSuite) coffeeDeal() deal.ActiveDeal {
	return builder.NewDealBuilder().
		WithCode("COFFEE2").
		WithQuantityRequired(2).
		WithAmount("1.00").
		WithProducts(s.coffee).
		BuildActive()
}

func (s *CartCommandsTestSuite) storedCart(lines ...cart.Line) *cart.Cart {
	b := builder.NewCartBuilder().WithUser(s.userID).WithStore(s.storeID, "0.07").WithSeq(5)
	for _, l := range lines {
		b.WithLine(l)
	}
	return b.BuildDomain()
}

func (s *CartCommandsTestSuite) expectSave() *cart.Cart {
	saved := &cart.Cart{}
	s.mockCarts.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *cart.Cart) error {
			*saved = *c
			return nil
		}).Times(1)
	return saved
}

// ================================================================================
// AddItem
// ================================================================================

func (s *CartCommandsTestSuite) TestAddItem() {
	ctx := context.Background()

	s.Run("success: merges into existing line and applies deals", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).
			Return(s.storedCart(builder.NewLine(s.coffee, "Coffee", "2.00", 3)), nil)
		price := decimal.RequireFromString("2.00")
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), s.storeID, s.coffee).
			Return(&cart.Product{ID: s.coffee, Name: "Coffee", Price: &price, Available: true}, nil)
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, s.clock.Now()).
			Return([]deal.ActiveDeal{s.coffeeDeal()})
		saved := s.expectSave()

		view, err := s.useCase.AddItem(ctx, s.userID, s.coffee)

		s.Require().NoError(err)
		s.Require().Len(view.Lines, 1)
		s.Equal(4, view.Lines[0].Quantity)
		s.Equal("2", view.Lines[0].Discount.String())
		s.Equal("COFFEE2", *view.Lines[0].AppliedDeal)
		s.Equal("8", view.Totals.Subtotal.String())
		s.Equal("0.42", view.Totals.Tax.String())
		s.Equal("6.42", view.Totals.Total.String())
		s.Equal(uint64(6), saved.Seq())
		s.Equal(s.clock.Now(), saved.UpdatedAt())
	})

	s.Run("error: no store selected", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(cart.NewCart(s.userID), nil)

		_, err := s.useCase.AddItem(ctx, s.userID, s.coffee)

		s.ErrorIs(err, commands.ErrNoStoreSelected)
	})

	s.Run("error: product not sold at store", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(), nil)
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), s.storeID, s.coffee).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		_, err := s.useCase.AddItem(ctx, s.userID, s.coffee)

		s.ErrorIs(err, errs.ErrProductNotFound)
	})

	s.Run("error: unavailable product is invalid input and nothing is saved", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(), nil)
		price := decimal.RequireFromString("2.00")
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), s.storeID, s.coffee).
			Return(&cart.Product{ID: s.coffee, Name: "Coffee", Price: &price, Available: false}, nil)

		_, err := s.useCase.AddItem(ctx, s.userID, s.coffee)

		s.ErrorIs(err, commands.ErrInvalidInput)
		s.ErrorIs(err, cart.ErrProductUnavailable)
	})

	s.Run("error: concurrent save maps to cart conflict", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(), nil)
		price := decimal.RequireFromString("2.00")
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), s.storeID, s.coffee).
			Return(&cart.Product{ID: s.coffee, Name: "Coffee", Price: &price, Available: true}, nil)
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, gomock.Any()).Return(nil)
		s.mockCarts.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("stale cart", nil, infra.KindConflict))

		_, err := s.useCase.AddItem(ctx, s.userID, s.coffee)

		s.ErrorIs(err, commands.ErrCartConflict)
	})
}

// ================================================================================
// ChangeQuantity / RemoveItem
// ================================================================================

func (s *CartCommandsTestSuite) TestChangeQuantity() {
	ctx := context.Background()

	s.Run("success: dropping below the threshold removes the discount", func() {
		line := builder.NewLine(s.coffee, "Coffee", "2.00", 2)
		line.Discount = decimal.RequireFromString("1.00")
		code := "COFFEE2"
		line.AppliedDeal = &code
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(line), nil)
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, gomock.Any()).
			Return([]deal.ActiveDeal{s.coffeeDeal()})
		s.expectSave()

		view, err := s.useCase.ChangeQuantity(ctx, s.userID, s.coffee, -1)

		s.Require().NoError(err)
		s.Require().Len(view.Lines, 1)
		s.True(view.Lines[0].Discount.IsZero())
		s.Nil(view.Lines[0].AppliedDeal)
	})

	s.Run("success: reaching zero removes the line", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).
			Return(s.storedCart(builder.NewLine(s.coffee, "Coffee", "2.00", 1)), nil)
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, gomock.Any()).Return(nil)
		s.expectSave()

		view, err := s.useCase.ChangeQuantity(ctx, s.userID, s.coffee, -5)

		s.Require().NoError(err)
		s.Empty(view.Lines)
		s.True(view.Totals.Total.IsZero())
	})

	s.Run("error: unknown line", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(), nil)

		_, err := s.useCase.ChangeQuantity(ctx, s.userID, s.coffee, 1)

		s.ErrorIs(err, commands.ErrCartLineNotFound)
	})
}

func (s *CartCommandsTestSuite) TestRemoveItem() {
	ctx := context.Background()

	s.Run("success: removing an absent product does not write", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).
			Return(s.storedCart(builder.NewLine(s.coffee, "Coffee", "2.00", 1)), nil)
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, gomock.Any()).Return(nil)

		view, err := s.useCase.RemoveItem(ctx, s.userID, uuid.New())

		s.Require().NoError(err)
		s.Len(view.Lines, 1)
	})

	s.Run("error: load failure", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(nil, errors.New("redis down"))

		_, err := s.useCase.RemoveItem(ctx, s.userID, s.coffee)

		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}

// ================================================================================
// SelectStore / ClearStore
// ================================================================================

func (s *CartCommandsTestSuite) TestSelectStore() {
	ctx := context.Background()

	s.Run("success: reprices lines and drops products the store does not sell", func() {
		otherStore := uuid.New()
		tea := uuid.New()
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(
			builder.NewLine(s.coffee, "Coffee", "2.00", 2),
			builder.NewLine(tea, "Tea", "1.50", 1),
		), nil)
		s.mockReads.EXPECT().StoreByID(gomock.Any(), otherStore).
			Return(&cart.StoreRef{ID: otherStore, TaxRate: decimal.RequireFromString("0.05")}, nil)
		newPrice := decimal.RequireFromString("2.50")
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), otherStore, s.coffee).
			Return(&cart.Product{ID: s.coffee, Name: "Coffee", Price: &newPrice, Available: true}, nil)
		s.mockReads.EXPECT().StoreProduct(gomock.Any(), otherStore, tea).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))
		s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), otherStore, gomock.Any()).Return(nil)
		s.expectSave()

		view, err := s.useCase.SelectStore(ctx, s.userID, otherStore)

		s.Require().NoError(err)
		s.Equal(otherStore, *view.StoreID)
		s.Require().Len(view.Lines, 1)
		s.Equal("2.5", view.Lines[0].UnitPrice.String())
		s.Equal([]uuid.UUID{tea}, view.Removed)
		s.Equal("5", view.Totals.Subtotal.String())
		s.Equal("0.25", view.Totals.Tax.String())
	})

	s.Run("error: unknown store", func() {
		s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(), nil)
		s.mockReads.EXPECT().StoreByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		_, err := s.useCase.SelectStore(ctx, s.userID, uuid.New())

		s.ErrorIs(err, errs.ErrStoreNotFound)
	})
}

func (s *CartCommandsTestSuite) TestClearStore() {
	line := builder.NewLine(s.coffee, "Coffee", "2.00", 2)
	line.Discount = decimal.RequireFromString("1.00")
	s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).Return(s.storedCart(line), nil)
	s.expectSave()

	view, err := s.useCase.ClearStore(context.Background(), s.userID)

	s.Require().NoError(err)
	s.Nil(view.StoreID)
	s.True(view.Lines[0].Discount.IsZero())
	s.True(view.Totals.Tax.IsZero())
	s.Equal("4", view.Totals.Total.String())
}

func (s *CartCommandsTestSuite) TestGetCart() {
	s.mockCarts.EXPECT().Load(gomock.Any(), s.userID).
		Return(s.storedCart(builder.NewLine(s.coffee, "Coffee", "2.00", 4)), nil)
	s.mockDeals.EXPECT().ResolveActiveDeals(gomock.Any(), s.storeID, gomock.Any()).
		Return([]deal.ActiveDeal{s.coffeeDeal()})

	view, err := s.useCase.GetCart(context.Background(), s.userID)

	s.Require().NoError(err)
	s.Equal("2", view.Totals.Discount.String())
	s.Equal("6.42", view.Totals.Total.String())
}
