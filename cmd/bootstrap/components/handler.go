package components

import (
	"tablebook/internal/handler"
	"tablebook/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTablesHandler,
		api.NewBookingHandler,
		api.NewProfileHandler,
	),
	fx.Invoke(handler.NewRouter),
)
