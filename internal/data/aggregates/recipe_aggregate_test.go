package aggregates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/aggregates"
	aggtest "github.com/mthstanley/stockpot/internal/data/aggregates/testutil"
	"github.com/mthstanley/stockpot/internal/data/repos"
	repotest "github.com/mthstanley/stockpot/internal/data/repos/testutil"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/domain/recipe"
)

func newRecipeAggregate(t *testing.T, db *gorm.DB) (domainagg.RecipeAggregate, *aggtest.HooksRecorder) {
	t.Helper()
	log := repotest.Logger(t)
	hooks := &aggtest.HooksRecorder{}
	agg := aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log, Hooks: hooks},
		Recipes:     repos.NewRecipeRepo(db, log),
		Steps:       repos.NewStepRepo(db, log),
		Lines:       repos.NewRecipeIngredientRepo(db, log),
		Ingredients: repos.NewIngredientRepo(db, log),
		Units:       repos.NewUnitRepo(db, log),
	})
	return agg, hooks
}

func line(ingredient string, quantity int, units, preparation string) recipe.RecipeIngredient {
	return recipe.RecipeIngredient{
		Ingredient:  recipe.Ingredient{Name: ingredient},
		Quantity:    quantity,
		Units:       recipe.Unit{Name: units},
		Preparation: preparation,
	}
}

func butteredCarrots(authorID int) *recipe.Recipe {
	return &recipe.Recipe{
		Title:    "Buttered Carrots",
		AuthorID: authorID,
		Ingredients: []recipe.RecipeIngredient{
			line("carrots", 200, "grams", "diced"),
			line("butter", 200, "grams", "melted"),
		},
		Steps: []recipe.Step{
			{Ordinal: 1, Instruction: "Saute the carrots in the butter"},
		},
	}
}

func TestRecipeAggregateCreateButteredCarrots(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	created, err := agg.Create(ctx, butteredCarrots(author.ID))
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Buttered Carrots", created.Title)
	assert.Equal(t, author.ID, created.Author.ID)
	assert.Equal(t, "Julia", created.Author.Name)
	assert.Nil(t, created.YieldUnits)

	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, 1, created.Ingredients[0].ID)
	assert.Equal(t, 2, created.Ingredients[1].ID)
	assert.Equal(t, "carrots", created.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "butter", created.Ingredients[1].Ingredient.Name)
	assert.Equal(t, "melted", created.Ingredients[1].Preparation)
	assert.Equal(t, created.Ingredients[0].Units.ID, created.Ingredients[1].Units.ID)
	assert.Equal(t, "grams", created.Ingredients[0].Units.Name)

	require.Len(t, created.Steps, 1)
	assert.Equal(t, 1, created.Steps[0].ID)
	assert.Equal(t, created.ID, created.Steps[0].RecipeID)
	assert.Equal(t, "Saute the carrots in the butter", created.Steps[0].Instruction)

	assert.EqualValues(t, 1, repotest.CountRows(t, ctx, db, "unit"))
	assert.EqualValues(t, 2, repotest.CountRows(t, ctx, db, "ingredient"))
}

func TestRecipeAggregateRoundTrip(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	desc := "Weeknight side"
	prep := int64(300)
	in := butteredCarrots(author.ID)
	in.Description = &desc
	in.PrepTimeSeconds = &prep
	in.YieldQuantity = 4
	in.YieldUnits = &recipe.Unit{Name: "servings"}

	created, err := agg.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.YieldUnits)
	assert.Equal(t, "servings", created.YieldUnits.Name)

	got, err := agg.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	list, err := agg.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestRecipeAggregateSharesReferenceRowsAcrossRecipes(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	first, err := agg.Create(ctx, butteredCarrots(author.ID))
	require.NoError(t, err)
	second, err := agg.Create(ctx, &recipe.Recipe{
		Title:       "Glazed Carrots",
		AuthorID:    author.ID,
		Ingredients: []recipe.RecipeIngredient{line("carrots", 300, "grams", "")},
	})
	require.NoError(t, err)

	assert.Equal(t, first.Ingredients[0].Ingredient.ID, second.Ingredients[0].Ingredient.ID)
	assert.Equal(t, first.Ingredients[0].Units.ID, second.Ingredients[0].Units.ID)
	assert.Empty(t, second.Steps)
	assert.EqualValues(t, 2, repotest.CountRows(t, ctx, db, "ingredient"))
	assert.EqualValues(t, 1, repotest.CountRows(t, ctx, db, "unit"))
}

func TestRecipeAggregateUpdateAddsChild(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	created, err := agg.Create(ctx, &recipe.Recipe{
		Title:       "Toast",
		AuthorID:    author.ID,
		Ingredients: []recipe.RecipeIngredient{line("bread", 1, "slices", "")},
	})
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 1)
	keptID := created.Ingredients[0].ID

	payload := *created
	payload.Ingredients = []recipe.RecipeIngredient{
		created.Ingredients[0],
		line("butter", 10, "grams", "softened"),
	}
	updated, err := agg.Update(ctx, &payload)
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, keptID, updated.Ingredients[0].ID)
	assert.NotZero(t, updated.Ingredients[1].ID)
	assert.NotEqual(t, keptID, updated.Ingredients[1].ID)
	assert.Equal(t, "butter", updated.Ingredients[1].Ingredient.Name)

	got, err := agg.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestRecipeAggregateUpdateRemovesChild(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	created, err := agg.Create(ctx, &recipe.Recipe{
		Title:    "Tea",
		AuthorID: author.ID,
		Steps: []recipe.Step{
			{Ordinal: 1, Instruction: "Boil water"},
			{Ordinal: 2, Instruction: "Steep"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Steps, 2)

	payload := *created
	payload.Steps = []recipe.Step{created.Steps[0]}
	updated, err := agg.Update(ctx, &payload)
	require.NoError(t, err)

	require.Len(t, updated.Steps, 1)
	assert.Equal(t, created.Steps[0].ID, updated.Steps[0].ID)
	assert.EqualValues(t, 1, repotest.CountRows(t, ctx, db, "step"))
}

func TestRecipeAggregateUpdateChangesFieldsInPlace(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	created, err := agg.Create(ctx, butteredCarrots(author.ID))
	require.NoError(t, err)

	cook := int64(600)
	payload := *created
	payload.Title = "Honey Buttered Carrots"
	payload.CookTimeSeconds = &cook
	payload.Ingredients = append([]recipe.RecipeIngredient(nil), created.Ingredients...)
	payload.Ingredients[0].Quantity = 250
	payload.Ingredients[1].Units = recipe.Unit{Name: "tablespoons"}
	payload.Steps = append([]recipe.Step(nil), created.Steps...)
	payload.Steps[0].Instruction = "Saute the carrots in the butter until glossy"

	updated, err := agg.Update(ctx, &payload)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Honey Buttered Carrots", updated.Title)
	require.NotNil(t, updated.CookTimeSeconds)
	assert.EqualValues(t, 600, *updated.CookTimeSeconds)

	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, created.Ingredients[0].ID, updated.Ingredients[0].ID)
	assert.Equal(t, 250, updated.Ingredients[0].Quantity)
	assert.Equal(t, created.Ingredients[1].ID, updated.Ingredients[1].ID)
	assert.Equal(t, "tablespoons", updated.Ingredients[1].Units.Name)

	require.Len(t, updated.Steps, 1)
	assert.Equal(t, created.Steps[0].ID, updated.Steps[0].ID)
	assert.Equal(t, "Saute the carrots in the butter until glossy", updated.Steps[0].Instruction)
}

func TestRecipeAggregateUpdateForeignChildIDInserts(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	first, err := agg.Create(ctx, &recipe.Recipe{
		Title:    "Rice",
		AuthorID: author.ID,
		Steps:    []recipe.Step{{Ordinal: 1, Instruction: "Rinse"}},
	})
	require.NoError(t, err)
	second, err := agg.Create(ctx, &recipe.Recipe{
		Title:    "Beans",
		AuthorID: author.ID,
		Steps:    []recipe.Step{{Ordinal: 1, Instruction: "Soak"}},
	})
	require.NoError(t, err)

	payload := *second
	payload.Steps = []recipe.Step{{ID: first.Steps[0].ID, Ordinal: 1, Instruction: "Simmer"}}
	updated, err := agg.Update(ctx, &payload)
	require.NoError(t, err)

	require.Len(t, updated.Steps, 1)
	assert.NotEqual(t, first.Steps[0].ID, updated.Steps[0].ID)
	assert.Equal(t, "Simmer", updated.Steps[0].Instruction)

	untouched, err := agg.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, untouched)
}

func TestRecipeAggregateNotFound(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	agg, hooks := newRecipeAggregate(t, db)

	_, err := agg.Get(ctx, 99)
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
	assert.Equal(t, "recipe with id `99` not found", domainagg.MessageOf(err))
	assert.Equal(t, "not_found", hooks.StatusOf("Recipe.RecipeAggregate.Get"))

	_, err = agg.Update(ctx, &recipe.Recipe{ID: 99, Title: "Ghost", AuthorID: 1})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)

	_, err = agg.Delete(ctx, 99)
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
}

func TestRecipeAggregateListEmpty(t *testing.T) {
	db := repotest.DB(t)
	agg, _ := newRecipeAggregate(t, db)

	list, err := agg.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRecipeAggregateDeleteCascades(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, hooks := newRecipeAggregate(t, db)

	created, err := agg.Create(ctx, butteredCarrots(author.ID))
	require.NoError(t, err)

	deleted, err := agg.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)
	assert.Equal(t, "success", hooks.StatusOf("Recipe.RecipeAggregate.Delete"))

	_, err = agg.Get(ctx, created.ID)
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "step"))
	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "recipe_ingredient"))
	// reference data is never garbage collected
	assert.EqualValues(t, 2, repotest.CountRows(t, ctx, db, "ingredient"))
}

func TestRecipeAggregateCreateIsAtomic(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	agg, _ := newRecipeAggregate(t, db)

	// no such author: the recipe insert fails after names were resolved
	_, err := agg.Create(ctx, butteredCarrots(404))
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeInternal), "got %v", err)

	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "recipe"))
	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "ingredient"))
	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "unit"))
}

func TestRecipeAggregateValidation(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	author := repotest.SeedUser(t, ctx, db, "Julia")
	agg, _ := newRecipeAggregate(t, db)

	in := butteredCarrots(author.ID)
	in.Ingredients[1].Ingredient.Name = " "
	_, err := agg.Create(ctx, in)
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)

	in = butteredCarrots(author.ID)
	in.Title = ""
	_, err = agg.Create(ctx, in)
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)

	negative := int64(-1)
	in = butteredCarrots(author.ID)
	in.InactiveTimeSeconds = &negative
	_, err = agg.Create(ctx, in)
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)

	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "recipe"))
	assert.EqualValues(t, 0, repotest.CountRows(t, ctx, db, "ingredient"))
}
