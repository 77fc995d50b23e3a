package recipe

import (
	"github.com/mthstanley/stockpot/internal/domain/user"
)

// Unit is shared reference data; names are unique across all recipes.
type Unit struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (Unit) TableName() string { return "unit" }

// Ingredient is shared reference data; names are unique across all recipes.
type Ingredient struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (Ingredient) TableName() string { return "ingredient" }

type Step struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID    int    `gorm:"index;not null;column:recipe_id" json:"-"`
	Ordinal     int    `gorm:"not null;column:ordinal" json:"ordinal"`
	Instruction string `gorm:"not null;column:instruction" json:"instruction"`
}

func (Step) TableName() string { return "step" }

type RecipeIngredient struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     int        `gorm:"index;not null;column:recipe_id" json:"-"`
	IngredientID int        `gorm:"index;not null;column:ingredient_id" json:"-"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID" json:"ingredient"`
	Quantity     int        `gorm:"not null;column:quantity" json:"quantity"`
	UnitsID      int        `gorm:"index;not null;column:units_id" json:"-"`
	Units        Unit       `gorm:"foreignKey:UnitsID;references:ID" json:"units"`
	Preparation  string     `gorm:"not null;default:'';column:preparation" json:"preparation"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

// Recipe is the aggregate root. Steps and Ingredients are owned children and
// are removed with the recipe row.
type Recipe struct {
	ID                  int                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title               string             `gorm:"not null;column:title" json:"title"`
	Description         *string            `gorm:"column:description" json:"description"`
	AuthorID            int                `gorm:"index;not null;column:author_id" json:"-"`
	Author              user.User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author"`
	PrepTimeSeconds     *int64             `gorm:"column:prep_time_seconds" json:"prep_time_seconds"`
	CookTimeSeconds     *int64             `gorm:"column:cook_time_seconds" json:"cook_time_seconds"`
	InactiveTimeSeconds *int64             `gorm:"column:inactive_time_seconds" json:"inactive_time_seconds"`
	YieldQuantity       int                `gorm:"not null;default:0;column:yield_quantity" json:"yield_quantity"`
	YieldUnitsID        *int               `gorm:"index;column:yield_units_id" json:"-"`
	YieldUnits          *Unit              `gorm:"foreignKey:YieldUnitsID;references:ID" json:"yield_units"`
	Ingredients         []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"ingredients"`
	Steps               []Step             `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"steps"`
}

func (Recipe) TableName() string { return "recipe" }

// IsAuthoredBy reports whether u is the recipe's author.
func (r *Recipe) IsAuthoredBy(u user.User) bool {
	return r != nil && u.ID != 0 && r.AuthorID == u.ID
}
