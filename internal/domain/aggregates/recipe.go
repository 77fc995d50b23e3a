package aggregates

import (
	"context"

	"github.com/mthstanley/stockpot/internal/domain/recipe"
)

var RecipeAggregateContract = Contract{
	Name:             "Recipe.RecipeAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes: "Owns the recipe row, its steps and its ingredient lines. Creates, reconciles and deletes " +
		"the whole graph in one write boundary; reads return a single consistent snapshot.",
}

var ReferenceDataContract = Contract{
	Name:             "Recipe.ReferenceData",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Get-or-create of ingredient and unit rows by unique name. Never deletes or renames.",
}

// ReferenceKind selects which reference table a name belongs to.
type ReferenceKind string

const (
	ReferenceIngredient ReferenceKind = "ingredient"
	ReferenceUnit       ReferenceKind = "unit"
)

// ReferenceResolver maps free-text names to shared reference row ids,
// creating rows on first use.
//
// Failures return *aggregates.Error with CodeValidation (empty name) or CodeInternal.
type ReferenceResolver interface {
	Aggregate

	Resolve(ctx context.Context, kind ReferenceKind, names []string) (map[string]int, error)
}

// RecipeAggregate owns recipe graph reads and writes.
//
// Failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type RecipeAggregate interface {
	Aggregate

	// List returns every recipe ordered by id.
	List(ctx context.Context) ([]*recipe.Recipe, error)

	// Get returns the hydrated recipe or CodeNotFound.
	Get(ctx context.Context, id int) (*recipe.Recipe, error)

	// Create persists a new recipe graph. Ids on the input are ignored.
	Create(ctx context.Context, in *recipe.Recipe) (*recipe.Recipe, error)

	// Update reconciles the stored graph for in.ID with the payload.
	// It does not check authorship.
	Update(ctx context.Context, in *recipe.Recipe) (*recipe.Recipe, error)

	// Delete removes the recipe and returns it as it was before removal.
	Delete(ctx context.Context, id int) (*recipe.Recipe, error)
}
