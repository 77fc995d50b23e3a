package services

import (
	"context"
	"fmt"

	types "github.com/mthstanley/stockpot/internal/domain"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type RecipeService interface {
	List(ctx context.Context) ([]*types.Recipe, error)
	Get(ctx context.Context, id int) (*types.Recipe, error)
	// Create stores in with actor as its author.
	Create(ctx context.Context, in *types.Recipe, actor types.User) (*types.Recipe, error)
	// Update replaces the stored recipe in.ID when actor may mutate it.
	Update(ctx context.Context, in *types.Recipe, actor types.User) (*types.Recipe, error)
	// Delete removes recipe id when actor may mutate it and returns the
	// recipe as it was before removal.
	Delete(ctx context.Context, id int, actor types.User) (*types.Recipe, error)
}

// RecipePolicy decides whether actor may change or remove a stored recipe.
type RecipePolicy interface {
	CanMutate(actor types.User, current *types.Recipe) bool
}

// AuthorOnlyPolicy lets only a recipe's author mutate it.
type AuthorOnlyPolicy struct{}

func (AuthorOnlyPolicy) CanMutate(actor types.User, current *types.Recipe) bool {
	return current.IsAuthoredBy(actor)
}

type recipeService struct {
	log     *logger.Logger
	recipes domainagg.RecipeAggregate
	policy  RecipePolicy
}

func NewRecipeService(log *logger.Logger, recipes domainagg.RecipeAggregate, policy RecipePolicy) RecipeService {
	if policy == nil {
		policy = AuthorOnlyPolicy{}
	}
	return &recipeService{
		log:     log.With("service", "RecipeService"),
		recipes: recipes,
		policy:  policy,
	}
}

func (rs *recipeService) List(ctx context.Context) ([]*types.Recipe, error) {
	out, err := rs.recipes.List(ctx)
	if err != nil {
		return nil, surface(rs.log, "RecipeService.List", err)
	}
	return out, nil
}

func (rs *recipeService) Get(ctx context.Context, id int) (*types.Recipe, error) {
	out, err := rs.recipes.Get(ctx, id)
	if err != nil {
		return nil, surface(rs.log, "RecipeService.Get", err)
	}
	return out, nil
}

func (rs *recipeService) Create(ctx context.Context, in *types.Recipe, actor types.User) (*types.Recipe, error) {
	const op = "RecipeService.Create"
	if in == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing recipe", nil)
	}
	in.ID = 0
	in.AuthorID = actor.ID
	in.Author = actor

	out, err := rs.recipes.Create(ctx, in)
	if err != nil {
		return nil, surface(rs.log, op, err)
	}
	rs.log.Info("Recipe created", "recipe_id", out.ID, "user_id", actor.ID)
	return out, nil
}

func (rs *recipeService) Update(ctx context.Context, in *types.Recipe, actor types.User) (*types.Recipe, error) {
	const op = "RecipeService.Update"
	if in == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing recipe", nil)
	}
	current, err := rs.recipes.Get(ctx, in.ID)
	if err != nil {
		return nil, surface(rs.log, op, err)
	}
	if !rs.policy.CanMutate(actor, current) {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op,
			fmt.Sprintf("Unable to update recipe belonging to another user %s", current.Author.Name), nil)
	}

	in.AuthorID = current.AuthorID
	in.Author = current.Author
	out, err := rs.recipes.Update(ctx, in)
	if err != nil {
		return nil, surface(rs.log, op, err)
	}
	return out, nil
}

func (rs *recipeService) Delete(ctx context.Context, id int, actor types.User) (*types.Recipe, error) {
	const op = "RecipeService.Delete"
	current, err := rs.recipes.Get(ctx, id)
	if err != nil {
		return nil, surface(rs.log, op, err)
	}
	if !rs.policy.CanMutate(actor, current) {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op,
			fmt.Sprintf("Unable to delete recipe belonging to another user %s", current.Author.Name), nil)
	}

	out, err := rs.recipes.Delete(ctx, id)
	if err != nil {
		return nil, surface(rs.log, op, err)
	}
	rs.log.Info("Recipe deleted", "recipe_id", id, "user_id", actor.ID)
	return out, nil
}
