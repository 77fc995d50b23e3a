package aggregates

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/repos"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/domain/recipe"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

type RecipeAggregateDeps struct {
	Base BaseDeps

	Recipes     repos.RecipeRepo
	Steps       repos.StepRepo
	Lines       repos.RecipeIngredientRepo
	Ingredients repos.NameRefRepo
	Units       repos.NameRefRepo
}

type recipeAggregate struct {
	deps RecipeAggregateDeps
	refs *referenceResolver
}

func NewRecipeAggregate(deps RecipeAggregateDeps) domainagg.RecipeAggregate {
	deps.Base = deps.Base.withDefaults()
	return &recipeAggregate{
		deps: deps,
		refs: newReferenceResolver(ReferenceResolverDeps{
			Base:        deps.Base,
			Ingredients: deps.Ingredients,
			Units:       deps.Units,
		}),
	}
}

func (a *recipeAggregate) Contract() domainagg.Contract {
	return domainagg.RecipeAggregateContract
}

func (a *recipeAggregate) configured() bool {
	return a.deps.Recipes != nil &&
		a.deps.Steps != nil &&
		a.deps.Lines != nil &&
		a.deps.Ingredients != nil &&
		a.deps.Units != nil
}

func (a *recipeAggregate) List(ctx context.Context) ([]*recipe.Recipe, error) {
	const op = "Recipe.RecipeAggregate.List"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	var out []*recipe.Recipe
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Recipes.ListAggregates(dbc)
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*recipe.Recipe{}
	}
	return out, nil
}

func (a *recipeAggregate) Get(ctx context.Context, id int) (*recipe.Recipe, error) {
	const op = "Recipe.RecipeAggregate.Get"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	var out *recipe.Recipe
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, err := a.load(dbc, id)
		if err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// load reads the hydrated recipe inside dbc, translating a missing row.
func (a *recipeAggregate) load(dbc dbctx.Context, id int) (*recipe.Recipe, error) {
	rec, err := a.deps.Recipes.GetAggregate(dbc, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, recipeNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func recipeNotFound(id int) error {
	return NotFoundError(fmt.Sprintf("recipe with id `%d` not found", id))
}
