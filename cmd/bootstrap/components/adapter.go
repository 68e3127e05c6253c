package components

import (
	"store-pickup/internal/infra/cartstore"
	"store-pickup/internal/infra/payment"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// AdapterModule provides the non-Postgres ports: Redis carts and the payment provider.
var AdapterModule = fx.Module("adapter",
	fx.Provide(
		fx.Annotate(
			NewCartStore,
			fx.As(new(commands.CartStore)),
		),
		fx.Annotate(
			NewPaymentClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewCartStore(client *redis.Client, cfg config.Config) *cartstore.RedisCartStore {
	return cartstore.NewRedisCartStore(client, cfg.Redis)
}

func NewPaymentClient(cfg config.Config) *payment.Client {
	return payment.NewClient(cfg.Payment, nil)
}
