package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/mthstanley/stockpot/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := &types.User{Name: name}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedUnit(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Unit {
	tb.Helper()
	u := &types.Unit{Name: name}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed unit: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{Name: name}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

// SeedRecipe inserts a bare recipe row without children.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID int, title string) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{AuthorID: authorID, Title: title}
	if err := tx.WithContext(ctx).Omit("Author", "YieldUnits", "Steps", "Ingredients").Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedStep(tb testing.TB, ctx context.Context, tx *gorm.DB, recipeID, ordinal int, instruction string) *types.Step {
	tb.Helper()
	s := &types.Step{RecipeID: recipeID, Ordinal: ordinal, Instruction: instruction}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed step: %v", err)
	}
	return s
}

func CountRows(tb testing.TB, ctx context.Context, tx *gorm.DB, table string) int64 {
	tb.Helper()
	var n int64
	if err := tx.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}
