package repos

import (
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/repos/auth"
	"github.com/mthstanley/stockpot/internal/data/repos/recipe"
	"github.com/mthstanley/stockpot/internal/data/repos/user"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type UserRepo = user.UserRepo
type AuthUserRepo = auth.AuthUserRepo

type NameRefRepo = recipe.NameRefRepo
type RecipeRepo = recipe.RecipeRepo
type StepRepo = recipe.StepRepo
type RecipeIngredientRepo = recipe.RecipeIngredientRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewAuthUserRepo(db *gorm.DB, baseLog *logger.Logger) AuthUserRepo {
	return auth.NewAuthUserRepo(db, baseLog)
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) NameRefRepo {
	return recipe.NewIngredientRepo(db, baseLog)
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) NameRefRepo {
	return recipe.NewUnitRepo(db, baseLog)
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipe.NewRecipeRepo(db, baseLog)
}

func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	return recipe.NewStepRepo(db, baseLog)
}

func NewRecipeIngredientRepo(db *gorm.DB, baseLog *logger.Logger) RecipeIngredientRepo {
	return recipe.NewRecipeIngredientRepo(db, baseLog)
}
