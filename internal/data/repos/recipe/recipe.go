package recipe

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mthstanley/stockpot/internal/data/db"
	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type RecipeRepo interface {
	// Create inserts the recipe row only; children are written by their own repos.
	Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error)
	// GetAggregate loads the recipe with author, yield units, steps and
	// ingredient lines. Missing rows yield gorm.ErrRecordNotFound.
	GetAggregate(dbc dbctx.Context, id int) (*types.Recipe, error)
	ListAggregates(dbc dbctx.Context) ([]*types.Recipe, error)
	// LockByID takes a row lock on Postgres and reports whether the row exists.
	LockByID(dbc dbctx.Context, id int) (bool, error)
	UpdateScalars(dbc dbctx.Context, recipe *types.Recipe) error
	DeleteByID(dbc dbctx.Context, id int) (int64, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{
		db:  db,
		log: baseLog.With("repo", "RecipeRepo"),
	}
}

func (r *recipeRepo) Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.Recipe{
		Title:               recipe.Title,
		Description:         recipe.Description,
		AuthorID:            recipe.AuthorID,
		PrepTimeSeconds:     recipe.PrepTimeSeconds,
		CookTimeSeconds:     recipe.CookTimeSeconds,
		InactiveTimeSeconds: recipe.InactiveTimeSeconds,
		YieldQuantity:       recipe.YieldQuantity,
		YieldUnitsID:        recipe.YieldUnitsID,
	}
	if err := transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *recipeRepo) preload(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("YieldUnits").
		Preload("Steps", func(q *gorm.DB) *gorm.DB {
			return q.Order("step.id ASC")
		}).
		Preload("Ingredients", func(q *gorm.DB) *gorm.DB {
			return q.Order("recipe_ingredient.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Units")
}

func (r *recipeRepo) GetAggregate(dbc dbctx.Context, id int) (*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.Recipe
	if err := r.preload(transaction.WithContext(dbc.Ctx)).
		Where("recipe.id = ?", id).
		First(&out).Error; err != nil {
		return nil, err
	}
	normalizeChildren(&out)
	return &out, nil
}

func (r *recipeRepo) ListAggregates(dbc dbctx.Context) ([]*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Recipe{}
	if err := r.preload(transaction.WithContext(dbc.Ctx)).
		Order("recipe.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	for _, rec := range out {
		normalizeChildren(rec)
	}
	return out, nil
}

func (r *recipeRepo) LockByID(dbc dbctx.Context, id int) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.Recipe{}).Select("id").Where("id = ?", id)
	if db.IsPostgres(transaction) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []int
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *recipeRepo) UpdateScalars(dbc dbctx.Context, recipe *types.Recipe) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"title":                 recipe.Title,
			"description":           recipe.Description,
			"author_id":             recipe.AuthorID,
			"prep_time_seconds":     recipe.PrepTimeSeconds,
			"cook_time_seconds":     recipe.CookTimeSeconds,
			"inactive_time_seconds": recipe.InactiveTimeSeconds,
			"yield_quantity":        recipe.YieldQuantity,
			"yield_units_id":        recipe.YieldUnitsID,
		}).Error
}

func (r *recipeRepo) DeleteByID(dbc dbctx.Context, id int) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Recipe{})
	return res.RowsAffected, res.Error
}

func normalizeChildren(r *types.Recipe) {
	if r.Steps == nil {
		r.Steps = []types.Step{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []types.RecipeIngredient{}
	}
}
