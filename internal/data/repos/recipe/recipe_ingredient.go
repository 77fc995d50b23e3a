package recipe

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type RecipeIngredientRepo interface {
	// Create inserts lines by their IngredientID/UnitsID; nested structs are not written.
	Create(dbc dbctx.Context, lines []*types.RecipeIngredient) ([]*types.RecipeIngredient, error)
	ListIDsByRecipe(dbc dbctx.Context, recipeID int) ([]int, error)
	Update(dbc dbctx.Context, line *types.RecipeIngredient) error
	DeleteByIDs(dbc dbctx.Context, recipeID int, ids []int) (int64, error)
}

type recipeIngredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeIngredientRepo(db *gorm.DB, baseLog *logger.Logger) RecipeIngredientRepo {
	return &recipeIngredientRepo{
		db:  db,
		log: baseLog.With("repo", "RecipeIngredientRepo"),
	}
}

func (r *recipeIngredientRepo) Create(dbc dbctx.Context, lines []*types.RecipeIngredient) ([]*types.RecipeIngredient, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lines) == 0 {
		return []*types.RecipeIngredient{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Create(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *recipeIngredientRepo) ListIDsByRecipe(dbc dbctx.Context, recipeID int) ([]int, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	ids := []int{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.RecipeIngredient{}).
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeIngredientRepo) Update(dbc dbctx.Context, line *types.RecipeIngredient) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.RecipeIngredient{}).
		Where("id = ? AND recipe_id = ?", line.ID, line.RecipeID).
		Updates(map[string]interface{}{
			"ingredient_id": line.IngredientID,
			"quantity":      line.Quantity,
			"units_id":      line.UnitsID,
			"preparation":   line.Preparation,
		}).Error
}

func (r *recipeIngredientRepo) DeleteByIDs(dbc dbctx.Context, recipeID int, ids []int) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ? AND id IN ?", recipeID, ids).
		Delete(&types.RecipeIngredient{})
	return res.RowsAffected, res.Error
}
