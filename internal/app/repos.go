package app

import (
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/repos"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	AuthUser    repos.AuthUserRepo
	Ingredient  repos.NameRefRepo
	Unit        repos.NameRefRepo
	Recipe      repos.RecipeRepo
	Step        repos.StepRepo
	RecipeLines repos.RecipeIngredientRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		AuthUser:    repos.NewAuthUserRepo(db, log),
		Ingredient:  repos.NewIngredientRepo(db, log),
		Unit:        repos.NewUnitRepo(db, log),
		Recipe:      repos.NewRecipeRepo(db, log),
		Step:        repos.NewStepRepo(db, log),
		RecipeLines: repos.NewRecipeIngredientRepo(db, log),
	}
}
