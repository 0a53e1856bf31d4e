package components

import (
	"log/slog"

	"tablebook/internal/domain/table"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		table.DefaultCatalog,
		func(store usecase.ReservationStore, catalog []table.Table, cfg config.Config, clk clock.Clock, logger *slog.Logger) usecase.BookingUseCase {
			return usecase.NewBookingUseCase(store, catalog, cfg.Booking, clk, logger)
		},
		usecase.NewProfileUseCase,
	),
)
