package recipe

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

// NameRefRepo reads and writes a name-keyed reference table (ingredient, unit).
type NameRefRepo interface {
	Table() string
	// InsertIgnore inserts names, skipping any that already exist.
	InsertIgnore(dbc dbctx.Context, names []string) error
	// GetIDsByNames returns the id of every stored row among names.
	GetIDsByNames(dbc dbctx.Context, names []string) (map[string]int, error)
}

type nameRefRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	table string
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) NameRefRepo {
	return &nameRefRepo{db: db, log: baseLog.With("repo", "IngredientRepo"), table: "ingredient"}
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) NameRefRepo {
	return &nameRefRepo{db: db, log: baseLog.With("repo", "UnitRepo"), table: "unit"}
}

func (r *nameRefRepo) Table() string { return r.table }

func (r *nameRefRepo) InsertIgnore(dbc dbctx.Context, names []string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(names) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		rows = append(rows, map[string]interface{}{"name": name})
	}
	return transaction.WithContext(dbc.Ctx).
		Table(r.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(rows).Error
}

func (r *nameRefRepo) GetIDsByNames(dbc dbctx.Context, names []string) (map[string]int, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[string]int, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var rows []struct {
		ID   int
		Name string
	}
	if err := transaction.WithContext(dbc.Ctx).
		Table(r.table).
		Select("id", "name").
		Where("name IN ?", names).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Name] = row.ID
	}
	return out, nil
}
