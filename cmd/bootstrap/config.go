package bootstrap

import (
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
	),
)

// LoadConfig fails startup on settings that would otherwise surface later as
// misdated deals or a silent change feed.
func LoadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errs.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
