package domain

import (
	"github.com/mthstanley/stockpot/internal/domain/auth"
	"github.com/mthstanley/stockpot/internal/domain/recipe"
	"github.com/mthstanley/stockpot/internal/domain/user"
)

type User = user.User
type AuthUser = auth.AuthUser

type Unit = recipe.Unit
type Ingredient = recipe.Ingredient
type Step = recipe.Step
type RecipeIngredient = recipe.RecipeIngredient
type Recipe = recipe.Recipe
