package recipe

import (
	"gorm.io/gorm"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type StepRepo interface {
	Create(dbc dbctx.Context, steps []*types.Step) ([]*types.Step, error)
	ListIDsByRecipe(dbc dbctx.Context, recipeID int) ([]int, error)
	// Update rewrites ordinal and instruction of a step owned by step.RecipeID.
	Update(dbc dbctx.Context, step *types.Step) error
	DeleteByIDs(dbc dbctx.Context, recipeID int, ids []int) (int64, error)
}

type stepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	return &stepRepo{
		db:  db,
		log: baseLog.With("repo", "StepRepo"),
	}
}

func (r *stepRepo) Create(dbc dbctx.Context, steps []*types.Step) ([]*types.Step, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(steps) == 0 {
		return []*types.Step{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *stepRepo) ListIDsByRecipe(dbc dbctx.Context, recipeID int) ([]int, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	ids := []int{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Step{}).
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *stepRepo) Update(dbc dbctx.Context, step *types.Step) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Step{}).
		Where("id = ? AND recipe_id = ?", step.ID, step.RecipeID).
		Updates(map[string]interface{}{
			"ordinal":     step.Ordinal,
			"instruction": step.Instruction,
		}).Error
}

func (r *stepRepo) DeleteByIDs(dbc dbctx.Context, recipeID int, ids []int) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ? AND id IN ?", recipeID, ids).
		Delete(&types.Step{})
	return res.RowsAffected, res.Error
}
