package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	tablesHandler *api.TablesHandler,
	bookingHandler *api.BookingHandler,
	profileHandler *api.ProfileHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, tablesHandler, bookingHandler, profileHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	tablesHandler *api.TablesHandler,
	bookingHandler *api.BookingHandler,
	profileHandler *api.ProfileHandler,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/tables", tablesHandler.List)

		booking := apiGroup.Group("/booking/sessions")
		booking.Use(middleware.RequireIdentity())
		{
			addRoutes(booking, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.OpenSession},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetSession},
				{Method: http.MethodPatch, Path: "/:id/candidate", Handler: bookingHandler.UpdateCandidate},
				{Method: http.MethodPost, Path: "/:id/select", Handler: bookingHandler.Select},
				{Method: http.MethodPost, Path: "/:id/focus", Handler: bookingHandler.RefreshFocus},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: bookingHandler.Submit},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.CloseSession},
			})
		}

		profile := apiGroup.Group("/profile/reservations")
		profile.Use(middleware.RequireIdentity())
		{
			addRoutes(profile, []route{
				{Method: http.MethodGet, Path: "", Handler: profileHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: profileHandler.Get},
				{Method: http.MethodGet, Path: "/:id/edit", Handler: profileHandler.EditForm},
				{Method: http.MethodPatch, Path: "/:id", Handler: profileHandler.Update},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: profileHandler.Cancel},
				{Method: http.MethodDelete, Path: "/:id", Handler: profileHandler.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}
