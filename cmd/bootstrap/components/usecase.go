package components

import (
	"store-pickup/internal/pkg/clock"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/keylock"
	"store-pickup/internal/usecase"
	"store-pickup/internal/usecase/commands"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	// one lock table shared by cart edits and checkout so both serialize per user
	keylock.New[uuid.UUID],
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartUseCase,
		NewCheckoutCommands,
		commands.NewOrderUseCase,
		commands.NewPaymentMethodUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		NewDealResolver,
		queries.NewOrderQueries,
		queries.NewPaymentMethodQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewDealResolver(deals queries.DealReadStore, catalog queries.CatalogReadStore, clk clock.Clock, cfg config.Config) queries.DealResolver {
	return queries.NewDealResolver(deals, catalog, clk, cfg.Pricing.Location())
}

func NewCheckoutCommands(
	u shared.UnitOfWork,
	carts commands.CartStore,
	deals queries.DealResolver,
	payments commands.PaymentGateway,
	orders queries.OrderQueries,
	locks *keylock.KeyedMutex[uuid.UUID],
	clk clock.Clock,
	cfg config.Config,
) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(u, carts, deals, payments, orders, locks, clk, cfg.Payment.Currency)
}
