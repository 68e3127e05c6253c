package bootstrap

import (
	"context"

	"store-pickup/internal/infra/notify"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/realtime"

	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		NewHub,
		NewOrderListener,
	),
	fx.Invoke(func(*notify.Listener) {}),
)

func NewHub(lc fx.Lifecycle, cfg config.Config) *realtime.Hub {
	hub := realtime.NewHub(cfg.Realtime)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			hub.Close()
			return nil
		},
	})
	return hub
}

// NewOrderListener feeds committed order changes into the hub.
func NewOrderListener(lc fx.Lifecycle, cfg config.Config, orders queries.OrderQueries, hub *realtime.Hub) *notify.Listener {
	l := notify.NewListener(cfg.DB, cfg.Realtime, orders, hub)
	lc.Append(fx.Hook{
		OnStart: l.Start,
		OnStop:  l.Stop,
	})
	return l
}
