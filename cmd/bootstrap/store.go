package bootstrap

import (
	"log/slog"

	"tablebook/internal/infra/store"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config, logger *slog.Logger) (*store.Client, error) {
				return store.New(cfg.Store, logger)
			},
			fx.As(new(usecase.ReservationStore)),
		),
	),
)
