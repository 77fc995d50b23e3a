package app

import (
	httpH "github.com/mthstanley/stockpot/internal/http/handlers"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	User   *httpH.UserHandler
	Recipe *httpH.RecipeHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		User:   httpH.NewUserHandler(log, services.User, services.Auth),
		Recipe: httpH.NewRecipeHandler(log, services.Recipe),
	}
}
