package components

import (
	"store-pickup/internal/handler"
	"store-pickup/internal/handler/api"
	"store-pickup/internal/handler/middleware"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/realtime"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		NewStreamHandler,
		api.NewPaymentMethodHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewStreamHandler(hub *realtime.Hub, q queries.OrderQueries, cfg config.Config) *api.StreamHandler {
	return api.NewStreamHandler(hub, q, cfg.Realtime)
}

func NewHandlers(
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	stream *api.StreamHandler,
	paymentMethod *api.PaymentMethodHandler,
) handler.Handlers {
	return handler.Handlers{
		Catalog:       catalog,
		Cart:          cart,
		Checkout:      checkout,
		Order:         order,
		Stream:        stream,
		PaymentMethod: paymentMethod,
	}
}
