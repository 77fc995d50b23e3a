package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/mthstanley/stockpot/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// =========================
		// Identity + credentials
		// =========================
		&types.User{},
		&types.AuthUser{},

		// =========================
		// Reference data
		// =========================
		&types.Unit{},
		&types.Ingredient{},

		// =========================
		// Recipe aggregate
		// =========================
		&types.Recipe{},
		&types.Step{},
		&types.RecipeIngredient{},
	)
}

func EnsureRecipeIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_step_recipe_ordinal ON step(recipe_id, ordinal);`).Error; err != nil {
		return fmt.Errorf("create idx_step_recipe_ordinal: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recipe_author ON recipe(author_id, id);`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_author: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureRecipeIndexes(s.db); err != nil {
		s.log.Error("Recipe index migration failed", "error", err)
		return err
	}
	return nil
}
