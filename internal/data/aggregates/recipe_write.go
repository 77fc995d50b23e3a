package aggregates

import (
	"context"
	"fmt"
	"strings"

	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/domain/recipe"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

// resolvedRefs holds reference ids for one payload, keyed by trimmed name.
type resolvedRefs struct {
	ingredients map[string]int
	units       map[string]int
}

func (r resolvedRefs) ingredientID(name string) int {
	return r.ingredients[strings.TrimSpace(name)]
}

func (r resolvedRefs) unitID(name string) int {
	return r.units[strings.TrimSpace(name)]
}

func (a *recipeAggregate) Create(ctx context.Context, in *recipe.Recipe) (*recipe.Recipe, error) {
	const op = "Recipe.RecipeAggregate.Create"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	if err := validateRecipe(in); err != nil {
		return nil, MapError(op, err)
	}

	var out *recipe.Recipe
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		refs, err := a.resolveRefs(dbc, in)
		if err != nil {
			return err
		}

		created, err := a.deps.Recipes.Create(dbc, scalarRow(in, refs))
		if err != nil {
			return recipeRowError(op, in, err)
		}

		steps := make([]*recipe.Step, 0, len(in.Steps))
		for _, s := range in.Steps {
			steps = append(steps, stepRow(created.ID, 0, s))
		}
		if _, err := a.deps.Steps.Create(dbc, steps); err != nil {
			return err
		}

		lines := make([]*recipe.RecipeIngredient, 0, len(in.Ingredients))
		for _, l := range in.Ingredients {
			lines = append(lines, lineRow(created.ID, 0, l, refs))
		}
		if _, err := a.deps.Lines.Create(dbc, lines); err != nil {
			return err
		}

		out, err = a.load(dbc, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *recipeAggregate) Update(ctx context.Context, in *recipe.Recipe) (*recipe.Recipe, error) {
	const op = "Recipe.RecipeAggregate.Update"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	if err := validateRecipe(in); err != nil {
		return nil, MapError(op, err)
	}
	if in.ID <= 0 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "recipe id is required", nil)
	}

	var out *recipe.Recipe
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.deps.Recipes.LockByID(dbc, in.ID)
		if err != nil {
			return err
		}
		if !exists {
			return recipeNotFound(in.ID)
		}

		storedSteps, err := a.deps.Steps.ListIDsByRecipe(dbc, in.ID)
		if err != nil {
			return err
		}
		storedLines, err := a.deps.Lines.ListIDsByRecipe(dbc, in.ID)
		if err != nil {
			return err
		}
		stepPlan := planChildren(storedSteps, in.Steps, func(s recipe.Step) int { return s.ID })
		linePlan := planChildren(storedLines, in.Ingredients, func(l recipe.RecipeIngredient) int { return l.ID })
		a.deps.Base.Log.Debug("Reconciling recipe",
			"recipe_id", in.ID,
			"steps_insert", len(stepPlan.inserts),
			"steps_update", len(stepPlan.updates),
			"steps_delete", len(stepPlan.deletes),
			"lines_insert", len(linePlan.inserts),
			"lines_update", len(linePlan.updates),
			"lines_delete", len(linePlan.deletes),
		)

		refs, err := a.resolveRefs(dbc, in)
		if err != nil {
			return err
		}

		row := scalarRow(in, refs)
		row.ID = in.ID
		if err := a.deps.Recipes.UpdateScalars(dbc, row); err != nil {
			return recipeRowError(op, in, err)
		}

		for _, s := range stepPlan.updates {
			if err := a.deps.Steps.Update(dbc, stepRow(in.ID, s.ID, s)); err != nil {
				return err
			}
		}
		for _, l := range linePlan.updates {
			if err := a.deps.Lines.Update(dbc, lineRow(in.ID, l.ID, l, refs)); err != nil {
				return err
			}
		}

		newSteps := make([]*recipe.Step, 0, len(stepPlan.inserts))
		for _, s := range stepPlan.inserts {
			newSteps = append(newSteps, stepRow(in.ID, 0, s))
		}
		if _, err := a.deps.Steps.Create(dbc, newSteps); err != nil {
			return err
		}
		newLines := make([]*recipe.RecipeIngredient, 0, len(linePlan.inserts))
		for _, l := range linePlan.inserts {
			newLines = append(newLines, lineRow(in.ID, 0, l, refs))
		}
		if _, err := a.deps.Lines.Create(dbc, newLines); err != nil {
			return err
		}

		if _, err := a.deps.Steps.DeleteByIDs(dbc, in.ID, stepPlan.deletes); err != nil {
			return err
		}
		if _, err := a.deps.Lines.DeleteByIDs(dbc, in.ID, linePlan.deletes); err != nil {
			return err
		}

		out, err = a.load(dbc, in.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *recipeAggregate) Delete(ctx context.Context, id int) (*recipe.Recipe, error) {
	const op = "Recipe.RecipeAggregate.Delete"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}

	var out *recipe.Recipe
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.deps.Recipes.LockByID(dbc, id)
		if err != nil {
			return err
		}
		if !exists {
			return recipeNotFound(id)
		}
		snapshot, err := a.load(dbc, id)
		if err != nil {
			return err
		}
		deleted, err := a.deps.Recipes.DeleteByID(dbc, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return recipeNotFound(id)
		}
		out = snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveRefs get-or-creates every ingredient and unit name in the payload.
func (a *recipeAggregate) resolveRefs(dbc dbctx.Context, in *recipe.Recipe) (resolvedRefs, error) {
	ingredientNames := make([]string, 0, len(in.Ingredients))
	unitNames := make([]string, 0, len(in.Ingredients)+1)
	for _, l := range in.Ingredients {
		ingredientNames = append(ingredientNames, l.Ingredient.Name)
		unitNames = append(unitNames, l.Units.Name)
	}
	if in.YieldUnits != nil {
		unitNames = append(unitNames, in.YieldUnits.Name)
	}

	ingredients, err := a.refs.resolveIn(dbc, domainagg.ReferenceIngredient, ingredientNames)
	if err != nil {
		return resolvedRefs{}, err
	}
	units, err := a.refs.resolveIn(dbc, domainagg.ReferenceUnit, unitNames)
	if err != nil {
		return resolvedRefs{}, err
	}
	return resolvedRefs{ingredients: ingredients, units: units}, nil
}

// recipeRowError reports a recipe row rejected for a dangling author as an
// internal failure: callers must pass an existing author.
func recipeRowError(op string, in *recipe.Recipe, err error) error {
	if domainagg.IsCode(MapError(op, err), domainagg.CodePreconditionFailed) {
		return domainagg.NewError(domainagg.CodeInternal, op, fmt.Sprintf("author %d does not exist", in.AuthorID), err)
	}
	return err
}

func validateRecipe(in *recipe.Recipe) error {
	if in == nil {
		return ValidationError("missing recipe")
	}
	if strings.TrimSpace(in.Title) == "" {
		return ValidationError("recipe title is required")
	}
	if in.AuthorID <= 0 {
		return ValidationError("recipe author is required")
	}
	for name, v := range map[string]*int64{
		"prep_time_seconds":     in.PrepTimeSeconds,
		"cook_time_seconds":     in.CookTimeSeconds,
		"inactive_time_seconds": in.InactiveTimeSeconds,
	} {
		if v != nil && *v < 0 {
			return ValidationError(fmt.Sprintf("%s must not be negative", name))
		}
	}
	return nil
}

func scalarRow(in *recipe.Recipe, refs resolvedRefs) *recipe.Recipe {
	row := &recipe.Recipe{
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		AuthorID:            in.AuthorID,
		PrepTimeSeconds:     in.PrepTimeSeconds,
		CookTimeSeconds:     in.CookTimeSeconds,
		InactiveTimeSeconds: in.InactiveTimeSeconds,
		YieldQuantity:       in.YieldQuantity,
	}
	if in.YieldUnits != nil {
		id := refs.unitID(in.YieldUnits.Name)
		row.YieldUnitsID = &id
	}
	return row
}

func stepRow(recipeID, id int, s recipe.Step) *recipe.Step {
	return &recipe.Step{
		ID:          id,
		RecipeID:    recipeID,
		Ordinal:     s.Ordinal,
		Instruction: s.Instruction,
	}
}

func lineRow(recipeID, id int, l recipe.RecipeIngredient, refs resolvedRefs) *recipe.RecipeIngredient {
	return &recipe.RecipeIngredient{
		ID:           id,
		RecipeID:     recipeID,
		IngredientID: refs.ingredientID(l.Ingredient.Name),
		Quantity:     l.Quantity,
		UnitsID:      refs.unitID(l.Units.Name),
		Preparation:  l.Preparation,
	}
}
