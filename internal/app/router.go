package app

import (
	httpserver "github.com/mthstanley/stockpot/internal/http"
	"github.com/mthstanley/stockpot/internal/observability"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		RecipeHandler:  handlers.Recipe,
		HealthHandler:  handlers.Health,
	})
}
