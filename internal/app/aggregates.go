package app

import (
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/aggregates"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/observability"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type Aggregates struct {
	Recipe domainagg.RecipeAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, r Repos, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:     db,
		Log:    log.With("layer", "aggregates"),
		Runner: aggregates.NewGormTxRunner(db),
		Hooks:  aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Recipe: aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
			Base:        base,
			Recipes:     r.Recipe,
			Steps:       r.Step,
			Lines:       r.RecipeLines,
			Ingredients: r.Ingredient,
			Units:       r.Unit,
		}),
	}
}
