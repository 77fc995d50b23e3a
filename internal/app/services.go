package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/platform/logger"
	"github.com/mthstanley/stockpot/internal/services"
)

type Services struct {
	User   services.UserService
	Auth   services.AuthService
	Recipe services.RecipeService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, aggs Aggregates) (Services, error) {
	log.Info("Wiring services...")
	auth, err := services.NewAuthService(log, r.AuthUser, cfg.JWTTokenSecret, cfg.BcryptCost)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}
	return Services{
		User:   services.NewUserService(db, log, r.User, r.AuthUser, cfg.BcryptCost),
		Auth:   auth,
		Recipe: services.NewRecipeService(log, aggs.Recipe, services.AuthorOnlyPolicy{}),
	}, nil
}
